package maintenance

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

const (
	// LaborRate is the hourly labor cost in USD.
	LaborRate = 75.0
	// AvgPartCost is the flat cost in USD of one part unit.
	AvgPartCost = 20.0
)

// CalculateCost rolls up the estimated labor and parts cost of tasks.
func CalculateCost(tasks []models.MaintenanceTask) models.CostBreakdown {
	var c models.CostBreakdown
	for _, t := range tasks {
		c.Labor += t.EstimatedHours * LaborRate
		units := 0
		for _, p := range t.Parts {
			units += p.Quantity
		}
		c.Parts += float64(units) * AvgPartCost
	}
	c.Total = c.Labor + c.Parts
	return c
}

// IsOverdue reports whether work in the given status and scheduled date is past due at now.
func IsOverdue(status models.MaintenanceStatus, scheduled, now time.Time) bool {
	if status.IsTerminal() {
		return false
	}
	return scheduled.Before(now)
}

// DaysUntil returns the number of whole days from now to target, both taken
// at midnight in now's location. Negative values mean target has passed.
func DaysUntil(target, now time.Time) int {
	loc := now.Location()
	ty, tm, td := target.In(loc).Date()
	ny, nm, nd := now.Date()
	// rebuild in UTC so DST shifts cannot produce 23 or 25 hour days
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(t.Sub(n).Hours() / 24))
}

// ReminderPriority maps days remaining to reminder urgency.
func ReminderPriority(daysRemaining int) models.MaintenancePriority {
	switch {
	case daysRemaining < 0:
		return models.PriorityCritical
	case daysRemaining < 7:
		return models.PriorityHigh
	case daysRemaining < 14:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// Group is one bucket produced by GroupBy.
type Group[T any] struct {
	Key   string `json:"key"`
	Items []T    `json:"items"`
}

// GroupBy buckets items by key, keeping keys in first-seen order.
func GroupBy[T any](items []T, key func(T) string) []Group[T] {
	index := make(map[string]int)
	var groups []Group[T]
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// GroupTasksByVehicle buckets tasks by vehicle id.
func GroupTasksByVehicle(tasks []models.MaintenanceTask) []Group[models.MaintenanceTask] {
	return GroupBy(tasks, func(t models.MaintenanceTask) string { return t.VehicleID })
}

// GroupHistoryByMonth buckets history entries under "January 2006" style
// labels, newest month first.
func GroupHistoryByMonth(history []models.MaintenanceHistory) []Group[models.MaintenanceHistory] {
	groups := GroupBy(history, func(h models.MaintenanceHistory) string {
		return h.Date.Format("January 2006")
	})
	month := func(g Group[models.MaintenanceHistory]) time.Time {
		y, m, _ := g.Items[0].Date.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return month(groups[i]).After(month(groups[j]))
	})
	return groups
}

// ReplacementsFor maps a task's required parts to realized replacements.
func ReplacementsFor(task models.MaintenanceTask) []models.PartReplacement {
	out := make([]models.PartReplacement, 0, len(task.Parts))
	for _, p := range task.Parts {
		out = append(out, models.PartReplacement{
			ID:       p.ID,
			Name:     p.Name,
			Quantity: p.Quantity,
			UnitCost: AvgPartCost,
			Cost:     float64(p.Quantity) * AvgPartCost,
		})
	}
	return out
}

// Detail derives the read-time view of a schedule.
func Detail(s models.MaintenanceSchedule, now time.Time) models.ScheduleDetail {
	done := 0
	for _, t := range s.Tasks {
		if t.Completed {
			done++
		}
	}
	return models.ScheduleDetail{
		Schedule:       s,
		Cost:           CalculateCost(s.Tasks),
		Overdue:        IsOverdue(s.Status, s.ScheduledDate, now),
		DaysUntilDue:   DaysUntil(s.ScheduledDate, now),
		CompletedTasks: done,
	}
}

// HistoryFromSchedule builds the history entry recorded when s completes.
func HistoryFromSchedule(id string, s models.MaintenanceSchedule, now time.Time) models.MaintenanceHistory {
	date := now
	if s.CompletionDate != nil {
		date = *s.CompletionDate
	}
	cost := s.EstimatedCost
	if s.ActualCost != nil {
		cost = *s.ActualCost
	}
	var mileage float64
	if s.Mileage != nil {
		mileage = *s.Mileage
	}

	typ := models.TypeRoutine
	names := make([]string, 0, len(s.Tasks))
	parts := []models.PartReplacement{}
	for i, t := range s.Tasks {
		if i == 0 {
			typ = t.Type
		}
		names = append(names, t.Name)
		parts = append(parts, ReplacementsFor(t)...)
	}

	return models.MaintenanceHistory{
		ID:          id,
		VehicleID:   s.VehicleID,
		ScheduleID:  s.ID,
		Date:        date,
		Type:        typ,
		Description: strings.Join(names, ", "),
		Technician:  s.AssigneeName,
		Cost:        cost,
		Parts:       parts,
		Notes:       s.Notes,
		Mileage:     mileage,
	}
}

// RemindersFromSchedules projects one reminder per open task of every
// schedule that is still pending. Reminder ids are derived from the task id.
func RemindersFromSchedules(schedules []models.MaintenanceSchedule, now time.Time) []models.MaintenanceReminder {
	var out []models.MaintenanceReminder
	for _, s := range schedules {
		if s.Status.IsTerminal() {
			continue
		}
		for _, t := range s.Tasks {
			if t.Completed {
				continue
			}
			days := DaysUntil(s.ScheduledDate, now)
			out = append(out, models.MaintenanceReminder{
				ID:            "rem-" + t.ID,
				VehicleID:     s.VehicleID,
				VehicleName:   s.VehicleName,
				TaskName:      t.Name,
				DueDate:       s.ScheduledDate,
				DaysRemaining: days,
				Priority:      ReminderPriority(days),
				Type:          t.Type,
			})
		}
	}
	return out
}
