package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

func validInput() ScheduleInput {
	return ScheduleInput{
		VehicleID:     "v1",
		VehicleName:   "Truck 101",
		ScheduledDate: fixedNow.AddDate(0, 0, 3),
		Priority:      models.PriorityHigh,
		Tasks:         []models.MaintenanceTask{task(2, 3)},
	}
}

func TestScheduleInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScheduleInput)
		fields []string
	}{
		{"valid", func(*ScheduleInput) {}, nil},
		{"missing vehicle", func(in *ScheduleInput) { in.VehicleID = "" }, []string{"vehicle_id"}},
		{"missing date", func(in *ScheduleInput) { in.ScheduledDate = time.Time{} }, []string{"scheduled_date"}},
		{"no tasks", func(in *ScheduleInput) { in.Tasks = nil }, []string{"tasks"}},
		{"bad status", func(in *ScheduleInput) { in.Status = "done" }, []string{"status"}},
		{"bad priority", func(in *ScheduleInput) { in.Priority = "urgent" }, []string{"priority"}},
		{
			"bad task fields",
			func(in *ScheduleInput) {
				in.Tasks = []models.MaintenanceTask{task(1), {EstimatedHours: 0, Parts: []models.PartRequirement{{Quantity: 0}}}}
			},
			[]string{"tasks[1].name", "tasks[1].estimated_hours", "tasks[1].parts[0].quantity"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			errs := in.Validate()
			assert.Len(t, errs, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestScheduleDraft_TracksEstimate(t *testing.T) {
	var d ScheduleDraft
	assert.Zero(t, d.EstimatedCost)

	d.AddTask(task(2, 3))
	assert.InDelta(t, 210.0, d.EstimatedCost, 1e-9)

	d.AddTask(task(1))
	assert.InDelta(t, 285.0, d.EstimatedCost, 1e-9)

	require.True(t, d.RemoveTask(0))
	assert.InDelta(t, 75.0, d.EstimatedCost, 1e-9)
	assert.False(t, d.RemoveTask(5))
	assert.False(t, d.RemoveTask(-1))

	require.True(t, d.RemoveTask(0))
	assert.Zero(t, d.EstimatedCost)
}

func TestSchedulePatch_Validate(t *testing.T) {
	bad := models.MaintenanceStatus("done")
	assert.ErrorIs(t, SchedulePatch{Status: &bad}.validate(), ErrInvalidInput)

	badPriority := models.MaintenancePriority("urgent")
	assert.ErrorIs(t, SchedulePatch{Priority: &badPriority}.validate(), ErrInvalidInput)

	taskCases := map[string][]models.MaintenanceTask{
		"zero hours":     {task(0)},
		"zero quantity":  {task(1, 0)},
		"unnamed":        {{EstimatedHours: 1}},
		"unknown type":   {{Name: "x", EstimatedHours: 1, Type: "cosmetic"}},
		"empty task set": {},
	}
	for name, tasks := range taskCases {
		tasks := tasks
		assert.ErrorIs(t, SchedulePatch{Tasks: &tasks}.validate(), ErrInvalidInput, name)
	}

	ok := models.StatusCancelled
	assert.NoError(t, SchedulePatch{Status: &ok}.validate())
}

func TestSchedulePatch_ApplyLeavesCostAlone(t *testing.T) {
	s := models.MaintenanceSchedule{Notes: "old", EstimatedCost: 210, Tasks: []models.MaintenanceTask{task(2, 3)}}
	notes := "new"
	tasks := []models.MaintenanceTask{task(4)}
	SchedulePatch{Notes: &notes, Tasks: &tasks}.apply(&s)

	assert.Equal(t, "new", s.Notes)
	assert.Len(t, s.Tasks, 1)
	assert.Equal(t, 210.0, s.EstimatedCost)
}

func TestRecordPatch(t *testing.T) {
	bad := models.MaintenanceType("wash")
	assert.ErrorIs(t, RecordPatch{ServiceType: &bad}.validate(), ErrInvalidInput)

	r := models.MaintenanceRecord{Cost: 10, Technician: "A"}
	cost := 99.0
	RecordPatch{Cost: &cost}.apply(&r)
	assert.Equal(t, 99.0, r.Cost)
	assert.Equal(t, "A", r.Technician)
}
