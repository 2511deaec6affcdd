package maintenance

import (
	"fmt"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

// ScheduleInput is a schedule before it has an identity.
type ScheduleInput struct {
	VehicleID     string                     `json:"vehicle_id"`
	VehicleName   string                     `json:"vehicle_name"`
	VehicleType   string                     `json:"vehicle_type"`
	Tasks         []models.MaintenanceTask   `json:"tasks"`
	ScheduledDate time.Time                  `json:"scheduled_date"`
	Status        models.MaintenanceStatus   `json:"status"`
	Priority      models.MaintenancePriority `json:"priority"`
	Notes         string                     `json:"notes"`
	AssigneeID    string                     `json:"assignee_id"`
	AssigneeName  string                     `json:"assignee_name"`
	Mileage       *float64                   `json:"mileage,omitempty"`
	Location      string                     `json:"location"`
}

// Validate returns field-level problems; an empty result means the input can be submitted.
func (in ScheduleInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if in.VehicleID == "" {
		errs["vehicle_id"] = "Vehicle is required"
	}
	if in.ScheduledDate.IsZero() {
		errs["scheduled_date"] = "Scheduled date is required"
	}
	if in.Status != "" && !models.IsValidStatus(in.Status) {
		errs["status"] = "Unknown status"
	}
	if in.Priority != "" && !models.IsValidPriority(in.Priority) {
		errs["priority"] = "Unknown priority"
	}
	validateTasks(in.Tasks, errs)
	return errs
}

func validateTasks(tasks []models.MaintenanceTask, errs FieldErrors) {
	if len(tasks) == 0 {
		errs["tasks"] = "At least one task is required"
	}
	for i, t := range tasks {
		if t.Name == "" {
			errs[fmt.Sprintf("tasks[%d].name", i)] = "Task name is required"
		}
		if t.EstimatedHours <= 0 {
			errs[fmt.Sprintf("tasks[%d].estimated_hours", i)] = "Estimated hours must be greater than zero"
		}
		if t.Type != "" && !models.IsValidType(t.Type) {
			errs[fmt.Sprintf("tasks[%d].type", i)] = "Unknown type"
		}
		for j, p := range t.Parts {
			if p.Quantity < 1 {
				errs[fmt.Sprintf("tasks[%d].parts[%d].quantity", i, j)] = "Quantity must be at least 1"
			}
		}
	}
}

// ScheduleDraft is a schedule being edited in a form. EstimatedCost follows
// the task list on every add and remove.
type ScheduleDraft struct {
	ScheduleInput
	EstimatedCost float64 `json:"estimated_cost"`
}

// AddTask appends a task and recomputes the estimate.
func (d *ScheduleDraft) AddTask(t models.MaintenanceTask) {
	d.Tasks = append(d.Tasks, t)
	d.EstimatedCost = CalculateCost(d.Tasks).Total
}

// RemoveTask drops the task at index i and recomputes the estimate.
func (d *ScheduleDraft) RemoveTask(i int) bool {
	if i < 0 || i >= len(d.Tasks) {
		return false
	}
	d.Tasks = append(d.Tasks[:i:i], d.Tasks[i+1:]...)
	d.EstimatedCost = CalculateCost(d.Tasks).Total
	return true
}

// SchedulePatch holds the fields an update changes; nil fields are left alone.
// Replacing Tasks does not refresh EstimatedCost, see Provider.RecomputeEstimatedCost.
type SchedulePatch struct {
	VehicleID      *string                     `json:"vehicle_id,omitempty"`
	VehicleName    *string                     `json:"vehicle_name,omitempty"`
	VehicleType    *string                     `json:"vehicle_type,omitempty"`
	Tasks          *[]models.MaintenanceTask   `json:"tasks,omitempty"`
	ScheduledDate  *time.Time                  `json:"scheduled_date,omitempty"`
	CompletionDate *time.Time                  `json:"completion_date,omitempty"`
	Status         *models.MaintenanceStatus   `json:"status,omitempty"`
	Priority       *models.MaintenancePriority `json:"priority,omitempty"`
	Notes          *string                     `json:"notes,omitempty"`
	AssigneeID     *string                     `json:"assignee_id,omitempty"`
	AssigneeName   *string                     `json:"assignee_name,omitempty"`
	ActualCost     *float64                    `json:"actual_cost,omitempty"`
	Mileage        *float64                    `json:"mileage,omitempty"`
	Location       *string                     `json:"location,omitempty"`
}

func (p SchedulePatch) validate() error {
	if p.Status != nil && !models.IsValidStatus(*p.Status) {
		return fmt.Errorf("status %q: %w", *p.Status, ErrInvalidInput)
	}
	if p.Priority != nil && !models.IsValidPriority(*p.Priority) {
		return fmt.Errorf("priority %q: %w", *p.Priority, ErrInvalidInput)
	}
	if p.Tasks != nil {
		errs := FieldErrors{}
		validateTasks(*p.Tasks, errs)
		if len(errs) > 0 {
			return fmt.Errorf("%d invalid task fields: %w", len(errs), ErrInvalidInput)
		}
	}
	return nil
}

func (p SchedulePatch) apply(s *models.MaintenanceSchedule) {
	if p.VehicleID != nil {
		s.VehicleID = *p.VehicleID
	}
	if p.VehicleName != nil {
		s.VehicleName = *p.VehicleName
	}
	if p.VehicleType != nil {
		s.VehicleType = *p.VehicleType
	}
	if p.Tasks != nil {
		s.Tasks = append([]models.MaintenanceTask(nil), (*p.Tasks)...)
	}
	if p.ScheduledDate != nil {
		s.ScheduledDate = *p.ScheduledDate
	}
	if p.CompletionDate != nil {
		d := *p.CompletionDate
		s.CompletionDate = &d
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Priority != nil {
		s.Priority = *p.Priority
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.AssigneeID != nil {
		s.AssigneeID = *p.AssigneeID
	}
	if p.AssigneeName != nil {
		s.AssigneeName = *p.AssigneeName
	}
	if p.ActualCost != nil {
		c := *p.ActualCost
		s.ActualCost = &c
	}
	if p.Mileage != nil {
		m := *p.Mileage
		s.Mileage = &m
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
}

// RecordPatch holds the record fields an update changes.
type RecordPatch struct {
	ServiceType     *models.MaintenanceType     `json:"service_type,omitempty"`
	Description     *string                     `json:"description,omitempty"`
	ServiceDate     *time.Time                  `json:"service_date,omitempty"`
	NextServiceDate *time.Time                  `json:"next_service_date,omitempty"`
	Mileage         *float64                    `json:"mileage,omitempty"`
	Cost            *float64                    `json:"cost,omitempty"`
	LaborCost       *float64                    `json:"labor_cost,omitempty"`
	PartsCost       *float64                    `json:"parts_cost,omitempty"`
	Technician      *string                     `json:"technician,omitempty"`
	ServiceLocation *string                     `json:"service_location,omitempty"`
	Status          *models.MaintenanceStatus   `json:"status,omitempty"`
	Priority        *models.MaintenancePriority `json:"priority,omitempty"`
	Notes           *string                     `json:"notes,omitempty"`
}

func (p RecordPatch) validate() error {
	if p.ServiceType != nil && !models.IsValidType(*p.ServiceType) {
		return fmt.Errorf("service type %q: %w", *p.ServiceType, ErrInvalidInput)
	}
	if p.Status != nil && !models.IsValidStatus(*p.Status) {
		return fmt.Errorf("status %q: %w", *p.Status, ErrInvalidInput)
	}
	if p.Priority != nil && !models.IsValidPriority(*p.Priority) {
		return fmt.Errorf("priority %q: %w", *p.Priority, ErrInvalidInput)
	}
	return nil
}

func (p RecordPatch) apply(r *models.MaintenanceRecord) {
	if p.ServiceType != nil {
		r.ServiceType = *p.ServiceType
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ServiceDate != nil {
		r.ServiceDate = *p.ServiceDate
	}
	if p.NextServiceDate != nil {
		d := *p.NextServiceDate
		r.NextServiceDate = &d
	}
	if p.Mileage != nil {
		r.Mileage = *p.Mileage
	}
	if p.Cost != nil {
		r.Cost = *p.Cost
	}
	if p.LaborCost != nil {
		r.LaborCost = *p.LaborCost
	}
	if p.PartsCost != nil {
		r.PartsCost = *p.PartsCost
	}
	if p.Technician != nil {
		r.Technician = *p.Technician
	}
	if p.ServiceLocation != nil {
		r.ServiceLocation = *p.ServiceLocation
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Priority != nil {
		r.Priority = *p.Priority
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}
