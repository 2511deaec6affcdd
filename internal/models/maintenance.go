package models

import (
	"time"
)

// MaintenanceRecord represents a flat vehicle service record.
type MaintenanceRecord struct {
	ID              string              `json:"id" bson:"_id"`
	VehicleID       string              `json:"vehicle_id" bson:"vehicle_id"`
	ServiceType     MaintenanceType     `json:"service_type" bson:"service_type"`
	Description     string              `json:"description" bson:"description"`
	ServiceDate     time.Time           `json:"service_date" bson:"service_date"`
	NextServiceDate *time.Time          `json:"next_service_date,omitempty" bson:"next_service_date,omitempty"`
	Mileage         float64             `json:"mileage" bson:"mileage"` // in kilometers
	Cost            float64             `json:"cost" bson:"cost"`       // in USD
	LaborCost       float64             `json:"labor_cost" bson:"labor_cost"`
	PartsCost       float64             `json:"parts_cost" bson:"parts_cost"`
	Technician      string              `json:"technician" bson:"technician"`
	ServiceLocation string              `json:"service_location" bson:"service_location"`
	Status          MaintenanceStatus   `json:"status" bson:"status"`
	Priority        MaintenancePriority `json:"priority" bson:"priority"`
	Notes           string              `json:"notes" bson:"notes"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}

// PartRequirement is a part a task needs before it can be performed.
type PartRequirement struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Quantity int    `json:"quantity" bson:"quantity"`
	InStock  bool   `json:"in_stock" bson:"in_stock"`
}

// PartReplacement is a part actually fitted during completed maintenance.
type PartReplacement struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Quantity int     `json:"quantity" bson:"quantity"`
	UnitCost float64 `json:"unit_cost" bson:"unit_cost"`
	Cost     float64 `json:"cost" bson:"cost"`
}

// MaintenanceTask is one unit of work within a schedule.
type MaintenanceTask struct {
	ID             string              `json:"id" bson:"id"`
	VehicleID      string              `json:"vehicle_id" bson:"vehicle_id"`
	Name           string              `json:"name" bson:"name"`
	Description    string              `json:"description" bson:"description"`
	Type           MaintenanceType     `json:"type" bson:"type"`
	Status         MaintenanceStatus   `json:"status" bson:"status"`
	Priority       MaintenancePriority `json:"priority" bson:"priority"`
	ScheduledDate  time.Time           `json:"scheduled_date" bson:"scheduled_date"`
	CompletionDate *time.Time          `json:"completion_date,omitempty" bson:"completion_date,omitempty"`
	EstimatedHours float64             `json:"estimated_hours" bson:"estimated_hours"`
	ActualHours    *float64            `json:"actual_hours,omitempty" bson:"actual_hours,omitempty"`
	Completed      bool                `json:"completed" bson:"completed"`
	Notes          string              `json:"notes,omitempty" bson:"notes,omitempty"`
	LaborCost      *float64            `json:"labor_cost,omitempty" bson:"labor_cost,omitempty"`
	PartsCost      *float64            `json:"parts_cost,omitempty" bson:"parts_cost,omitempty"`
	Parts          []PartRequirement   `json:"parts" bson:"parts"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" bson:"updated_at"`
}

// MaintenanceSchedule is a planned maintenance event for one vehicle.
//
// EstimatedCost is a cached rollup of Tasks; it is fixed at creation and only
// changes through an explicit recompute.
type MaintenanceSchedule struct {
	ID             string              `json:"id" bson:"_id"`
	VehicleID      string              `json:"vehicle_id" bson:"vehicle_id"`
	VehicleName    string              `json:"vehicle_name" bson:"vehicle_name"`
	VehicleType    string              `json:"vehicle_type" bson:"vehicle_type"`
	Tasks          []MaintenanceTask   `json:"tasks" bson:"tasks"`
	ScheduledDate  time.Time           `json:"scheduled_date" bson:"scheduled_date"`
	CompletionDate *time.Time          `json:"completion_date,omitempty" bson:"completion_date,omitempty"`
	Status         MaintenanceStatus   `json:"status" bson:"status"`
	Priority       MaintenancePriority `json:"priority" bson:"priority"`
	Notes          string              `json:"notes" bson:"notes"`
	AssigneeID     string              `json:"assignee_id,omitempty" bson:"assignee_id,omitempty"`
	AssigneeName   string              `json:"assignee_name,omitempty" bson:"assignee_name,omitempty"`
	EstimatedCost  float64             `json:"estimated_cost" bson:"estimated_cost"`
	ActualCost     *float64            `json:"actual_cost,omitempty" bson:"actual_cost,omitempty"`
	Mileage        *float64            `json:"mileage,omitempty" bson:"mileage,omitempty"`
	Location       string              `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" bson:"updated_at"`
}

// ScheduleDetail is a schedule together with values derived at read time.
type ScheduleDetail struct {
	Schedule       MaintenanceSchedule `json:"schedule"`
	Cost           CostBreakdown       `json:"cost"`
	Overdue        bool                `json:"overdue"`
	DaysUntilDue   int                 `json:"days_until_due"`
	CompletedTasks int                 `json:"completed_tasks"`
}

// MaintenanceHistory is an immutable record of a completed maintenance event.
type MaintenanceHistory struct {
	ID          string            `json:"id" bson:"_id"`
	VehicleID   string            `json:"vehicle_id" bson:"vehicle_id"`
	ScheduleID  string            `json:"schedule_id" bson:"schedule_id"`
	Date        time.Time         `json:"date" bson:"date"`
	Type        MaintenanceType   `json:"type" bson:"type"`
	Description string            `json:"description" bson:"description"`
	Technician  string            `json:"technician" bson:"technician"`
	Cost        float64           `json:"cost" bson:"cost"`
	Parts       []PartReplacement `json:"parts" bson:"parts"`
	Notes       string            `json:"notes,omitempty" bson:"notes,omitempty"`
	Mileage     float64           `json:"mileage" bson:"mileage"`
}

// MaintenanceReminder is a projection of an upcoming or overdue maintenance need.
// It is recomputed on every load and never stored.
type MaintenanceReminder struct {
	ID             string              `json:"id"`
	VehicleID      string              `json:"vehicle_id"`
	VehicleName    string              `json:"vehicle_name"`
	TaskName       string              `json:"task_name"`
	DueDate        time.Time           `json:"due_date"`
	DaysRemaining  int                 `json:"days_remaining"`
	MilesRemaining *int                `json:"miles_remaining,omitempty"`
	Priority       MaintenancePriority `json:"priority"`
	Type           MaintenanceType     `json:"type"`
}
