package models

// MaintenanceStatus is the lifecycle state of a schedule or task.
type MaintenanceStatus string

const (
	StatusScheduled  MaintenanceStatus = "scheduled"
	StatusInProgress MaintenanceStatus = "in_progress"
	StatusCompleted  MaintenanceStatus = "completed"
	StatusCancelled  MaintenanceStatus = "cancelled"
	StatusOverdue    MaintenanceStatus = "overdue"
)

// MaintenancePriority ranks how urgent a piece of maintenance is.
type MaintenancePriority string

const (
	PriorityLow      MaintenancePriority = "low"
	PriorityMedium   MaintenancePriority = "medium"
	PriorityHigh     MaintenancePriority = "high"
	PriorityCritical MaintenancePriority = "critical"
)

// MaintenanceType classifies the kind of work performed.
type MaintenanceType string

const (
	TypePreventive MaintenanceType = "preventive"
	TypeCorrective MaintenanceType = "corrective"
	TypePredictive MaintenanceType = "predictive"
	TypeInspection MaintenanceType = "inspection"
	TypeSafety     MaintenanceType = "safety"
	TypeRoutine    MaintenanceType = "routine"
)

// Statuses, Priorities and Types list every enum value in display order.
var (
	Statuses   = []MaintenanceStatus{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusOverdue}
	Priorities = []MaintenancePriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	Types      = []MaintenanceType{TypePreventive, TypeCorrective, TypePredictive, TypeInspection, TypeSafety, TypeRoutine}
)

// StatusLabels and StatusColors are the presentation tables for MaintenanceStatus.
var (
	StatusLabels = map[MaintenanceStatus]string{
		StatusScheduled:  "Scheduled",
		StatusInProgress: "In Progress",
		StatusCompleted:  "Completed",
		StatusCancelled:  "Cancelled",
		StatusOverdue:    "Overdue",
	}
	StatusColors = map[MaintenanceStatus]string{
		StatusScheduled:  "blue",
		StatusInProgress: "yellow",
		StatusCompleted:  "green",
		StatusCancelled:  "gray",
		StatusOverdue:    "red",
	}
)

var (
	PriorityLabels = map[MaintenancePriority]string{
		PriorityLow:      "Low",
		PriorityMedium:   "Medium",
		PriorityHigh:     "High",
		PriorityCritical: "Critical",
	}
	PriorityColors = map[MaintenancePriority]string{
		PriorityLow:      "slate",
		PriorityMedium:   "blue",
		PriorityHigh:     "orange",
		PriorityCritical: "red",
	}
)

var (
	TypeLabels = map[MaintenanceType]string{
		TypePreventive: "Preventive",
		TypeCorrective: "Corrective",
		TypePredictive: "Predictive",
		TypeInspection: "Inspection",
		TypeSafety:     "Safety",
		TypeRoutine:    "Routine",
	}
	TypeColors = map[MaintenanceType]string{
		TypePreventive: "green",
		TypeCorrective: "orange",
		TypePredictive: "purple",
		TypeInspection: "blue",
		TypeSafety:     "red",
		TypeRoutine:    "gray",
	}
)

// IsValidStatus checks if a status is one of the known values.
func IsValidStatus(s MaintenanceStatus) bool {
	_, ok := StatusLabels[s]
	return ok
}

// IsValidPriority checks if a priority is one of the known values.
func IsValidPriority(p MaintenancePriority) bool {
	_, ok := PriorityLabels[p]
	return ok
}

// IsValidType checks if a maintenance type is one of the known values.
func IsValidType(t MaintenanceType) bool {
	_, ok := TypeLabels[t]
	return ok
}

func (s MaintenanceStatus) Label() string   { return StatusLabels[s] }
func (s MaintenanceStatus) Color() string   { return StatusColors[s] }
func (p MaintenancePriority) Label() string { return PriorityLabels[p] }
func (p MaintenancePriority) Color() string { return PriorityColors[p] }
func (t MaintenanceType) Label() string     { return TypeLabels[t] }
func (t MaintenanceType) Color() string     { return TypeColors[t] }

// IsTerminal reports whether no further work is expected for the status.
func (s MaintenanceStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
