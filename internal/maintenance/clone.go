package maintenance

import "github.com/ukydev/fleet-maintenance/internal/models"

// The provider hands out deep copies so callers can never mutate its state.

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTask(t models.MaintenanceTask) models.MaintenanceTask {
	t.CompletionDate = clonePtr(t.CompletionDate)
	t.ActualHours = clonePtr(t.ActualHours)
	t.LaborCost = clonePtr(t.LaborCost)
	t.PartsCost = clonePtr(t.PartsCost)
	t.Parts = append([]models.PartRequirement(nil), t.Parts...)
	return t
}

func cloneSchedule(s models.MaintenanceSchedule) models.MaintenanceSchedule {
	s.CompletionDate = clonePtr(s.CompletionDate)
	s.ActualCost = clonePtr(s.ActualCost)
	s.Mileage = clonePtr(s.Mileage)
	if s.Tasks != nil {
		tasks := make([]models.MaintenanceTask, len(s.Tasks))
		for i, t := range s.Tasks {
			tasks[i] = cloneTask(t)
		}
		s.Tasks = tasks
	}
	return s
}

func cloneRecord(r models.MaintenanceRecord) models.MaintenanceRecord {
	r.NextServiceDate = clonePtr(r.NextServiceDate)
	return r
}

func cloneHistory(h models.MaintenanceHistory) models.MaintenanceHistory {
	h.Parts = append([]models.PartReplacement(nil), h.Parts...)
	return h
}

func cloneReminder(r models.MaintenanceReminder) models.MaintenanceReminder {
	r.MilesRemaining = clonePtr(r.MilesRemaining)
	return r
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}
