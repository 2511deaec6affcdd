package maintenance

import (
	"math/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// forcedOverdueChance is how often a critical, unfinished schedule is forced
// to overdue with a past date.
const forcedOverdueChance = 0.7

type weighted[T any] struct {
	value  T
	weight float64
}

var statusWeights = []weighted[models.MaintenanceStatus]{
	{models.StatusScheduled, 0.4},
	{models.StatusInProgress, 0.2},
	{models.StatusCompleted, 0.3},
	{models.StatusOverdue, 0.1},
}

var priorityWeights = []weighted[models.MaintenancePriority]{
	{models.PriorityLow, 0.4},
	{models.PriorityMedium, 0.3},
	{models.PriorityHigh, 0.2},
	{models.PriorityCritical, 0.1},
}

func pick[T any](rng *rand.Rand, options []weighted[T]) T {
	r := rng.Float64()
	for _, o := range options {
		if r < o.weight {
			return o.value
		}
		r -= o.weight
	}
	return options[len(options)-1].value
}

// Generator produces internally consistent mock maintenance data. Output is
// fully determined by the random source and the clock; it never does I/O.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	clock func() time.Time
}

// NewGenerator creates a generator drawing from rng with clock as "now".
func NewGenerator(rng *rand.Rand, clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{rng: rng, clock: clock}
}

func (g *Generator) id(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), g.rng).String()
}

// between draws uniformly from [from, to).
func (g *Generator) between(from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(g.rng.Int63n(int64(span))))
}

func (g *Generator) scheduleDate(status models.MaintenanceStatus, now time.Time) time.Time {
	switch status {
	case models.StatusCompleted:
		return g.between(now.AddDate(0, -2, 0), now)
	case models.StatusOverdue:
		return g.between(now.AddDate(0, -1, 0), now.AddDate(0, 0, -1))
	default:
		return g.between(now.AddDate(0, 0, -5), now.AddDate(0, 0, 30))
	}
}

func (g *Generator) taskFromTemplate(tpl TaskTemplate, vehicleID string, priority models.MaintenancePriority, date, now time.Time) models.MaintenanceTask {
	parts := make([]models.PartRequirement, 0, len(tpl.Parts))
	for _, p := range tpl.Parts {
		p.ID = g.id(now)
		parts = append(parts, p)
	}
	return models.MaintenanceTask{
		ID:             g.id(now),
		VehicleID:      vehicleID,
		Name:           tpl.Name,
		Description:    tpl.Description,
		Type:           tpl.Type,
		Status:         models.StatusScheduled,
		Priority:       priority,
		ScheduledDate:  date,
		EstimatedHours: tpl.Hours,
		Parts:          parts,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (g *Generator) completeTask(t *models.MaintenanceTask, at time.Time) {
	hours := t.EstimatedHours * (0.8 + g.rng.Float64()*0.4)
	t.Completed = true
	t.Status = models.StatusCompleted
	t.ActualHours = &hours
	t.CompletionDate = &at
}

func (g *Generator) tasks(vehicleID string, status models.MaintenanceStatus, priority models.MaintenancePriority, date, now time.Time) []models.MaintenanceTask {
	n := 1 + g.rng.Intn(3)
	picked := g.rng.Perm(len(TaskTemplates))[:n]
	tasks := make([]models.MaintenanceTask, 0, n)
	for i, idx := range picked {
		t := g.taskFromTemplate(TaskTemplates[idx], vehicleID, priority, date, now)
		t.Status = status
		switch status {
		case models.StatusCompleted:
			g.completeTask(&t, date)
		case models.StatusInProgress:
			// never the last task, an in-progress schedule keeps open work
			if i < n-1 && g.rng.Float64() < 0.5 {
				g.completeTask(&t, date)
			}
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// Schedule generates one schedule.
func (g *Generator) Schedule() models.MaintenanceSchedule {
	now := g.clock()
	v := Fleet[g.rng.Intn(len(Fleet))]

	status := pick(g.rng, statusWeights)
	priority := pick(g.rng, priorityWeights)
	if priority == models.PriorityCritical && status != models.StatusCompleted && g.rng.Float64() < forcedOverdueChance {
		status = models.StatusOverdue
	}
	date := g.scheduleDate(status, now)

	tech := Technicians[g.rng.Intn(len(Technicians))]
	tasks := g.tasks(v.ID, status, priority, date, now)
	mileage := float64(10000 + g.rng.Intn(140000))
	created := date.AddDate(0, 0, -(1 + g.rng.Intn(14)))

	s := models.MaintenanceSchedule{
		ID:            g.id(now),
		VehicleID:     v.ID,
		VehicleName:   v.Name,
		VehicleType:   v.Type,
		Tasks:         tasks,
		ScheduledDate: date,
		Status:        status,
		Priority:      priority,
		Notes:         "Scheduled " + priority.Label() + " priority maintenance",
		AssigneeID:    tech.ID,
		AssigneeName:  tech.Name,
		EstimatedCost: CalculateCost(tasks).Total,
		Mileage:       &mileage,
		Location:      ServiceLocations[g.rng.Intn(len(ServiceLocations))],
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	if status == models.StatusCompleted {
		actual := s.EstimatedCost * (0.8 + g.rng.Float64()*0.4)
		done := date
		s.ActualCost = &actual
		s.CompletionDate = &done
		s.UpdatedAt = done
	}
	return s
}

// Schedules generates n schedules.
func (g *Generator) Schedules(n int) []models.MaintenanceSchedule {
	out := make([]models.MaintenanceSchedule, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Schedule())
	}
	return out
}

func (g *Generator) historyEntry(v models.Vehicle, now time.Time) models.MaintenanceHistory {
	tpl := TaskTemplates[g.rng.Intn(len(TaskTemplates))]
	task := g.taskFromTemplate(tpl, v.ID, models.PriorityMedium, now, now)
	parts := ReplacementsFor(task)
	cost := tpl.Hours * LaborRate
	for _, p := range parts {
		cost += p.Cost
	}
	return models.MaintenanceHistory{
		ID:          g.id(now),
		VehicleID:   v.ID,
		ScheduleID:  g.id(now),
		Date:        g.between(now.AddDate(-1, 0, 0), now),
		Type:        tpl.Type,
		Description: tpl.Description,
		Technician:  Technicians[g.rng.Intn(len(Technicians))].Name,
		Cost:        cost,
		Parts:       parts,
		Mileage:     float64(10000 + g.rng.Intn(140000)),
	}
}

// History generates n completed-maintenance entries spread round-robin over
// the fleet, newest first. A non-empty vehicleID puts all n on that vehicle.
func (g *Generator) History(vehicleID string, n int) []models.MaintenanceHistory {
	now := g.clock()
	vehicles := Fleet
	if vehicleID != "" {
		vehicles = []models.Vehicle{{ID: vehicleID}}
		for _, v := range Fleet {
			if v.ID == vehicleID {
				vehicles = []models.Vehicle{v}
				break
			}
		}
	}
	if n < 0 {
		n = 0
	}
	out := make([]models.MaintenanceHistory, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.historyEntry(vehicles[i%len(vehicles)], now))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Reminders generates n reminders due over the next 30 days.
func (g *Generator) Reminders(n int) []models.MaintenanceReminder {
	now := g.clock()
	out := make([]models.MaintenanceReminder, 0, n)
	for i := 0; i < n; i++ {
		v := Fleet[g.rng.Intn(len(Fleet))]
		tpl := TaskTemplates[g.rng.Intn(len(TaskTemplates))]
		due := g.between(now, now.AddDate(0, 0, 30))
		days := DaysUntil(due, now)

		r := models.MaintenanceReminder{
			ID:            g.id(now),
			VehicleID:     v.ID,
			VehicleName:   v.Name,
			TaskName:      tpl.Name,
			DueDate:       due,
			DaysRemaining: days,
			Priority:      ReminderPriority(days),
			Type:          tpl.Type,
		}
		if g.rng.Float64() < 0.5 {
			var miles int
			if g.rng.Float64() < 0.7 {
				miles = 1 + g.rng.Intn(5000)
			} else {
				miles = -(1 + g.rng.Intn(1000))
			}
			r.MilesRemaining = &miles
		}
		out = append(out, r)
	}
	return out
}

// Records generates n flat service records.
func (g *Generator) Records(n int) []models.MaintenanceRecord {
	now := g.clock()
	out := make([]models.MaintenanceRecord, 0, n)
	for i := 0; i < n; i++ {
		v := Fleet[g.rng.Intn(len(Fleet))]
		tpl := TaskTemplates[g.rng.Intn(len(TaskTemplates))]
		status := pick(g.rng, statusWeights)
		priority := pick(g.rng, priorityWeights)
		date := g.scheduleDate(status, now)
		cost := CalculateCost([]models.MaintenanceTask{g.taskFromTemplate(tpl, v.ID, priority, date, now)})
		next := date.AddDate(0, 3, 0)

		out = append(out, models.MaintenanceRecord{
			ID:              g.id(now),
			VehicleID:       v.ID,
			ServiceType:     tpl.Type,
			Description:     tpl.Description,
			ServiceDate:     date,
			NextServiceDate: &next,
			Mileage:         float64(10000 + g.rng.Intn(140000)),
			Cost:            cost.Total,
			LaborCost:       cost.Labor,
			PartsCost:       cost.Parts,
			Technician:      Technicians[g.rng.Intn(len(Technicians))].Name,
			ServiceLocation: ServiceLocations[g.rng.Intn(len(ServiceLocations))],
			Status:          status,
			Priority:        priority,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return out
}
