package maintenance

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ukydev/fleet-maintenance/internal/metrics"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Default bounds of the simulated network latency.
const (
	DefaultMinLatency = 300 * time.Millisecond
	DefaultMaxLatency = 800 * time.Millisecond
)

type operation struct {
	name   string
	done   string // success toast title, empty for none
	failed string
}

var (
	opLoadRecords    = operation{"load_records", "", "Failed to load maintenance records"}
	opLoadSchedules  = operation{"load_schedules", "", "Failed to load maintenance schedules"}
	opLoadReminders  = operation{"load_reminders", "", "Failed to load maintenance reminders"}
	opLoadHistory    = operation{"load_history", "", "Failed to load maintenance history"}
	opCreateRecord   = operation{"create_record", "Maintenance record created", "Failed to create maintenance record"}
	opUpdateRecord   = operation{"update_record", "Maintenance record updated", "Failed to update maintenance record"}
	opDeleteRecord   = operation{"delete_record", "Maintenance record deleted", "Failed to delete maintenance record"}
	opCreateSchedule = operation{"create_schedule", "Maintenance scheduled", "Failed to create maintenance schedule"}
	opUpdateSchedule = operation{"update_schedule", "Maintenance schedule updated", "Failed to update maintenance schedule"}
	opDeleteSchedule = operation{"delete_schedule", "Maintenance schedule deleted", "Failed to delete maintenance schedule"}
	opCompleteTask   = operation{"complete_task", "Task completed", "Failed to complete task"}
	opRecomputeCost  = operation{"recompute_cost", "Estimated cost updated", "Failed to recompute estimated cost"}
)

const (
	opGetSchedule = "get_schedule"

	collectionRecords   = "records"
	collectionSchedules = "schedules"
	collectionReminders = "reminders"
	collectionHistory   = "history"
)

// Option configures a Provider.
type Option func(*Provider)

// WithNotifier sets where toasts are delivered.
func WithNotifier(n Notifier) Option {
	return func(p *Provider) { p.notifier = n }
}

// WithLatency sets the simulated latency range; zero disables it.
func WithLatency(min, max time.Duration) Option {
	return func(p *Provider) {
		p.minLatency = min
		p.maxLatency = max
	}
}

// WithClock replaces time.Now for timestamps and derived values.
func WithClock(clock func() time.Time) Option {
	return func(p *Provider) { p.clock = clock }
}

// WithIDs replaces the ULID identifier generator.
func WithIDs(newID func() string) Option {
	return func(p *Provider) { p.newID = newID }
}

// WithLogger sets the log entry operations are logged under.
func WithLogger(l *log.Entry) Option {
	return func(p *Provider) { p.log = l }
}

// State is a snapshot of the provider's flags and selection mirrors.
type State struct {
	IsLoading        bool                        `json:"is_loading"`
	Error            string                      `json:"error,omitempty"`
	SelectedRecord   *models.MaintenanceRecord   `json:"selected_record,omitempty"`
	SelectedSchedule *models.MaintenanceSchedule `json:"selected_schedule,omitempty"`
}

// Provider owns every maintenance collection for the lifetime of the process
// and is the only thing allowed to change them. Each operation waits a
// simulated latency before it touches state and gives up if ctx ends first.
type Provider struct {
	source   Source
	notifier Notifier
	log      *log.Entry
	clock    func() time.Time
	newID    func() string

	minLatency time.Duration
	maxLatency time.Duration
	rngMu      sync.Mutex
	rng        *rand.Rand

	mu               sync.RWMutex
	records          []models.MaintenanceRecord
	schedules        []models.MaintenanceSchedule
	reminders        []models.MaintenanceReminder
	history          []models.MaintenanceHistory
	loading          int
	lastErr          string
	selectedRecord   *models.MaintenanceRecord
	selectedSchedule *models.MaintenanceSchedule
}

// NewProvider creates an empty provider backed by source.
func NewProvider(source Source, opts ...Option) *Provider {
	p := &Provider{
		source:     source,
		notifier:   nopNotifier{},
		log:        log.WithField("component", "maintenance"),
		clock:      time.Now,
		newID:      func() string { return ulid.Make().String() },
		minLatency: DefaultMinLatency,
		maxLatency: DefaultMaxLatency,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) wait(ctx context.Context) error {
	d := p.minLatency
	if span := p.maxLatency - p.minLatency; span > 0 {
		p.rngMu.Lock()
		d += time.Duration(p.rng.Int63n(int64(span)))
		p.rngMu.Unlock()
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// track marks an operation in flight and returns the function that settles
// it: loading flag, error string, toast, log line and metrics.
func (p *Provider) track(ctx context.Context, op operation) func(*error) {
	start := time.Now()
	p.mu.Lock()
	p.loading++
	p.lastErr = ""
	p.mu.Unlock()

	return func(errp *error) {
		err := *errp
		p.mu.Lock()
		p.loading--
		if err != nil {
			p.lastErr = err.Error()
		}
		p.mu.Unlock()

		metrics.RecordOperation(op.name, err, time.Since(start))
		notifyCtx := context.WithoutCancel(ctx)

		if err != nil {
			entry := p.log.WithField("operation", op.name).WithError(err)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				entry.Debug("Maintenance operation abandoned")
				return
			}
			entry.Warn("Maintenance operation failed")
			p.notifier.Notify(notifyCtx, Toast{Title: op.failed, Description: err.Error(), Variant: ToastDestructive})
			return
		}
		if op.done != "" {
			p.notifier.Notify(notifyCtx, Toast{Title: op.done, Variant: ToastDefault})
		}
	}
}

// IsLoading reports whether any operation is in flight.
func (p *Provider) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading > 0
}

// Error returns the message of the last failed operation, or "".
func (p *Provider) Error() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// State returns the flags and selection mirrors in one snapshot.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	st := State{IsLoading: p.loading > 0, Error: p.lastErr}
	if p.selectedRecord != nil {
		r := cloneRecord(*p.selectedRecord)
		st.SelectedRecord = &r
	}
	if p.selectedSchedule != nil {
		s := cloneSchedule(*p.selectedSchedule)
		st.SelectedSchedule = &s
	}
	return st
}

// Records returns a copy of the loaded maintenance records.
func (p *Provider) Records() []models.MaintenanceRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneAll(p.records, cloneRecord)
}

// Schedules returns a copy of the current schedules, tasks included.
func (p *Provider) Schedules() []models.MaintenanceSchedule {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneAll(p.schedules, cloneSchedule)
}

// Reminders returns a copy of the loaded reminders.
func (p *Provider) Reminders() []models.MaintenanceReminder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneAll(p.reminders, cloneReminder)
}

// History returns a copy of the completion history. Completions recorded
// since the last load are appended at the end.
func (p *Provider) History() []models.MaintenanceHistory {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneAll(p.history, cloneHistory)
}

// LoadRecords replaces the records collection with the source's.
func (p *Provider) LoadRecords(ctx context.Context) (err error) {
	defer p.track(ctx, opLoadRecords)(&err)
	if err = p.wait(ctx); err != nil {
		return err
	}
	records, err := p.source.Records(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	p.mu.Lock()
	p.records = cloneAll(records, cloneRecord)
	if p.selectedRecord != nil {
		id := p.selectedRecord.ID
		p.selectedRecord = nil
		if i := p.recordIndex(p.records, id); i >= 0 {
			r := cloneRecord(p.records[i])
			p.selectedRecord = &r
		}
	}
	p.mu.Unlock()

	p.loaded(collectionRecords, len(records))
	return nil
}

// LoadSchedules replaces the schedules collection with the source's.
func (p *Provider) LoadSchedules(ctx context.Context) (err error) {
	defer p.track(ctx, opLoadSchedules)(&err)
	if err = p.wait(ctx); err != nil {
		return err
	}
	schedules, err := p.source.Schedules(ctx)
	if err != nil {
		return fmt.Errorf("load schedules: %w", err)
	}

	p.mu.Lock()
	p.schedules = cloneAll(schedules, cloneSchedule)
	if p.selectedSchedule != nil {
		id := p.selectedSchedule.ID
		p.selectedSchedule = nil
		if i := p.scheduleIndex(id); i >= 0 {
			s := cloneSchedule(p.schedules[i])
			p.selectedSchedule = &s
		}
	}
	p.mu.Unlock()

	p.loaded(collectionSchedules, len(schedules))
	return nil
}

// LoadReminders recomputes the reminders collection from the source.
func (p *Provider) LoadReminders(ctx context.Context) (err error) {
	defer p.track(ctx, opLoadReminders)(&err)
	if err = p.wait(ctx); err != nil {
		return err
	}
	reminders, err := p.source.Reminders(ctx)
	if err != nil {
		return fmt.Errorf("load reminders: %w", err)
	}

	p.mu.Lock()
	p.reminders = cloneAll(reminders, cloneReminder)
	p.mu.Unlock()

	p.loaded(collectionReminders, len(reminders))
	return nil
}

// LoadHistory replaces the history collection, limited to vehicleID when non-empty.
func (p *Provider) LoadHistory(ctx context.Context, vehicleID string) (err error) {
	defer p.track(ctx, opLoadHistory)(&err)
	if err = p.wait(ctx); err != nil {
		return err
	}
	history, err := p.source.History(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	p.mu.Lock()
	p.history = cloneAll(history, cloneHistory)
	p.mu.Unlock()

	p.loaded(collectionHistory, len(history))
	return nil
}

// LoadAll loads every collection concurrently. The first failure cancels the rest.
func (p *Provider) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.LoadRecords(gctx) })
	g.Go(func() error { return p.LoadSchedules(gctx) })
	g.Go(func() error { return p.LoadReminders(gctx) })
	g.Go(func() error { return p.LoadHistory(gctx, "") })
	return g.Wait()
}

func (p *Provider) loaded(collection string, n int) {
	metrics.SetCollectionSize(collection, n)
	p.log.WithFields(log.Fields{"collection": collection, "count": n}).Info("Loaded maintenance data")
}

func (p *Provider) recordIndex(records []models.MaintenanceRecord, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// scheduleIndex finds a schedule by id. Callers hold p.mu.
func (p *Provider) scheduleIndex(id string) int {
	for i, s := range p.schedules {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CreateRecord stores a new record under a fresh id.
func (p *Provider) CreateRecord(ctx context.Context, in models.MaintenanceRecord) (rec models.MaintenanceRecord, err error) {
	defer p.track(ctx, opCreateRecord)(&err)
	if in.VehicleID == "" {
		return rec, fmt.Errorf("vehicle id is required: %w", ErrInvalidInput)
	}
	if in.ServiceType != "" && !models.IsValidType(in.ServiceType) {
		return rec, fmt.Errorf("service type %q: %w", in.ServiceType, ErrInvalidInput)
	}
	if err = p.wait(ctx); err != nil {
		return rec, err
	}

	now := p.clock()
	rec = cloneRecord(in)
	rec.ID = p.newID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = models.StatusScheduled
	}
	if rec.Priority == "" {
		rec.Priority = models.PriorityMedium
	}

	p.mu.Lock()
	p.records = append(p.records, cloneRecord(rec))
	n := len(p.records)
	p.mu.Unlock()

	metrics.SetCollectionSize(collectionRecords, n)
	return rec, nil
}

// UpdateRecord merges patch into the record with id.
func (p *Provider) UpdateRecord(ctx context.Context, id string, patch RecordPatch) (rec models.MaintenanceRecord, err error) {
	defer p.track(ctx, opUpdateRecord)(&err)
	if err = patch.validate(); err != nil {
		return rec, err
	}
	if err = p.wait(ctx); err != nil {
		return rec, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.recordIndex(p.records, id)
	if i < 0 {
		return rec, fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	rec = cloneRecord(p.records[i])
	patch.apply(&rec)
	rec.UpdatedAt = p.clock()
	p.records[i] = rec
	if p.selectedRecord != nil && p.selectedRecord.ID == id {
		sel := cloneRecord(rec)
		p.selectedRecord = &sel
	}
	return cloneRecord(rec), nil
}

// DeleteRecord removes the record with id. It reports false instead of failing.
func (p *Provider) DeleteRecord(ctx context.Context, id string) bool {
	var err error
	defer p.track(ctx, opDeleteRecord)(&err)
	if err = p.wait(ctx); err != nil {
		return false
	}

	p.mu.Lock()
	i := p.recordIndex(p.records, id)
	if i < 0 {
		p.mu.Unlock()
		err = fmt.Errorf("record %s: %w", id, ErrNotFound)
		return false
	}
	p.records = append(p.records[:i:i], p.records[i+1:]...)
	if p.selectedRecord != nil && p.selectedRecord.ID == id {
		p.selectedRecord = nil
	}
	n := len(p.records)
	p.mu.Unlock()

	metrics.SetCollectionSize(collectionRecords, n)
	return true
}

// CreateSchedule stores a new schedule. Its estimated cost is rolled up from
// the tasks once, here.
func (p *Provider) CreateSchedule(ctx context.Context, in ScheduleInput) (s models.MaintenanceSchedule, err error) {
	defer p.track(ctx, opCreateSchedule)(&err)
	if errs := in.Validate(); len(errs) > 0 {
		return s, fmt.Errorf("%d invalid fields: %w", len(errs), ErrInvalidInput)
	}
	if err = p.wait(ctx); err != nil {
		return s, err
	}

	now := p.clock()
	s = models.MaintenanceSchedule{
		ID:            p.newID(),
		VehicleID:     in.VehicleID,
		VehicleName:   in.VehicleName,
		VehicleType:   in.VehicleType,
		ScheduledDate: in.ScheduledDate,
		Status:        in.Status,
		Priority:      in.Priority,
		Notes:         in.Notes,
		AssigneeID:    in.AssigneeID,
		AssigneeName:  in.AssigneeName,
		Mileage:       clonePtr(in.Mileage),
		Location:      in.Location,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if s.Status == "" {
		s.Status = models.StatusScheduled
	}
	if s.Priority == "" {
		s.Priority = models.PriorityMedium
	}
	s.Tasks = make([]models.MaintenanceTask, 0, len(in.Tasks))
	for _, t := range in.Tasks {
		s.Tasks = append(s.Tasks, p.prepareTask(cloneTask(t), s, now))
	}
	s.EstimatedCost = CalculateCost(s.Tasks).Total

	p.mu.Lock()
	p.schedules = append(p.schedules, cloneSchedule(s))
	n := len(p.schedules)
	p.mu.Unlock()

	metrics.SetCollectionSize(collectionSchedules, n)
	p.log.WithFields(log.Fields{"schedule_id": s.ID, "vehicle_id": s.VehicleID, "tasks": len(s.Tasks)}).Info("Created maintenance schedule")
	return s, nil
}

// prepareTask fills the fields a new task inherits from its schedule.
func (p *Provider) prepareTask(t models.MaintenanceTask, s models.MaintenanceSchedule, now time.Time) models.MaintenanceTask {
	if t.ID == "" {
		t.ID = p.newID()
	}
	for i := range t.Parts {
		if t.Parts[i].ID == "" {
			t.Parts[i].ID = p.newID()
		}
	}
	t.VehicleID = s.VehicleID
	if t.ScheduledDate.IsZero() {
		t.ScheduledDate = s.ScheduledDate
	}
	if t.Status == "" {
		t.Status = s.Status
		if t.Completed {
			t.Status = models.StatusCompleted
		}
	}
	if t.Priority == "" {
		t.Priority = s.Priority
	}
	if t.Type == "" {
		t.Type = models.TypeRoutine
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return t
}

// UpdateSchedule merges patch into the schedule with id. A missing id fails
// with ErrNotFound and leaves the collection untouched.
func (p *Provider) UpdateSchedule(ctx context.Context, id string, patch SchedulePatch) (s models.MaintenanceSchedule, err error) {
	defer p.track(ctx, opUpdateSchedule)(&err)
	if err = patch.validate(); err != nil {
		return s, err
	}
	if err = p.wait(ctx); err != nil {
		return s, err
	}
	return p.mutateSchedule(id, func(s *models.MaintenanceSchedule, now time.Time) error {
		patch.apply(s)
		if patch.Tasks != nil || patch.VehicleID != nil {
			for i := range s.Tasks {
				s.Tasks[i] = p.prepareTask(s.Tasks[i], *s, now)
			}
		}
		return nil
	})
}

// CompleteTask marks one task done. Once every task of the schedule is done
// the schedule itself becomes completed. Both changes land together.
func (p *Provider) CompleteTask(ctx context.Context, scheduleID, taskID string, actualHours float64, notes string) (err error) {
	defer p.track(ctx, opCompleteTask)(&err)
	if actualHours < 0 {
		return fmt.Errorf("actual hours %v: %w", actualHours, ErrInvalidInput)
	}
	if err = p.wait(ctx); err != nil {
		return err
	}
	_, err = p.mutateSchedule(scheduleID, func(s *models.MaintenanceSchedule, now time.Time) error {
		ti := -1
		for i := range s.Tasks {
			if s.Tasks[i].ID == taskID {
				ti = i
				break
			}
		}
		if ti < 0 {
			return fmt.Errorf("task %s in schedule %s: %w", taskID, scheduleID, ErrNotFound)
		}

		t := &s.Tasks[ti]
		hours := actualHours
		done := now
		t.Completed = true
		t.Status = models.StatusCompleted
		t.ActualHours = &hours
		t.CompletionDate = &done
		t.Notes = notes
		t.UpdatedAt = now

		if allCompleted(s.Tasks) && !s.Status.IsTerminal() {
			s.Status = models.StatusCompleted
		}
		return nil
	})
	return err
}

func allCompleted(tasks []models.MaintenanceTask) bool {
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return len(tasks) > 0
}

// RecomputeEstimatedCost refreshes the cached estimate from the current tasks.
func (p *Provider) RecomputeEstimatedCost(ctx context.Context, id string) (s models.MaintenanceSchedule, err error) {
	defer p.track(ctx, opRecomputeCost)(&err)
	if err = p.wait(ctx); err != nil {
		return s, err
	}
	return p.mutateSchedule(id, func(s *models.MaintenanceSchedule, now time.Time) error {
		s.EstimatedCost = CalculateCost(s.Tasks).Total
		return nil
	})
}

// mutateSchedule applies fn to a copy of the schedule and swaps it in under
// one lock acquisition. It also stamps completion and records history when
// fn moves the schedule into completed, and keeps the selection mirror in sync.
func (p *Provider) mutateSchedule(id string, fn func(s *models.MaintenanceSchedule, now time.Time) error) (models.MaintenanceSchedule, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.scheduleIndex(id)
	if i < 0 {
		return models.MaintenanceSchedule{}, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}
	now := p.clock()
	s := cloneSchedule(p.schedules[i])
	prev := s.Status
	if err := fn(&s, now); err != nil {
		return models.MaintenanceSchedule{}, err
	}
	s.UpdatedAt = now

	if prev == models.StatusCompleted && s.Status != models.StatusCompleted {
		s.CompletionDate = nil
	}
	if prev != models.StatusCompleted && s.Status == models.StatusCompleted {
		if s.CompletionDate == nil {
			done := now
			s.CompletionDate = &done
		}
		p.history = append(p.history, HistoryFromSchedule(p.newID(), s, now))
		metrics.SetCollectionSize(collectionHistory, len(p.history))
		p.log.WithFields(log.Fields{"schedule_id": s.ID, "vehicle_id": s.VehicleID}).Info("Maintenance schedule completed")
	}

	p.schedules[i] = s
	if p.selectedSchedule != nil && p.selectedSchedule.ID == id {
		sel := cloneSchedule(s)
		p.selectedSchedule = &sel
	}
	return cloneSchedule(s), nil
}

// DeleteSchedule removes the schedule with id. It reports false instead of failing.
func (p *Provider) DeleteSchedule(ctx context.Context, id string) bool {
	var err error
	defer p.track(ctx, opDeleteSchedule)(&err)
	if err = p.wait(ctx); err != nil {
		return false
	}

	p.mu.Lock()
	i := p.scheduleIndex(id)
	if i < 0 {
		p.mu.Unlock()
		err = fmt.Errorf("schedule %s: %w", id, ErrNotFound)
		return false
	}
	p.schedules = append(p.schedules[:i:i], p.schedules[i+1:]...)
	if p.selectedSchedule != nil && p.selectedSchedule.ID == id {
		p.selectedSchedule = nil
	}
	n := len(p.schedules)
	p.mu.Unlock()

	metrics.SetCollectionSize(collectionSchedules, n)
	return true
}

// GetSchedule returns the schedule with id and its derived values.
// Absence is reported through ok, not as an error.
func (p *Provider) GetSchedule(ctx context.Context, id string) (detail models.ScheduleDetail, ok bool) {
	start := time.Now()
	err := p.wait(ctx)
	metrics.RecordOperation(opGetSchedule, err, time.Since(start))
	if err != nil {
		return detail, false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	i := p.scheduleIndex(id)
	if i < 0 {
		return detail, false
	}
	return Detail(cloneSchedule(p.schedules[i]), p.clock()), true
}

// SelectSchedule points the schedule mirror at id.
func (p *Provider) SelectSchedule(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.scheduleIndex(id)
	if i < 0 {
		return fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}
	s := cloneSchedule(p.schedules[i])
	p.selectedSchedule = &s
	return nil
}

// SelectRecord points the record mirror at id.
func (p *Provider) SelectRecord(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.recordIndex(p.records, id)
	if i < 0 {
		return fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	r := cloneRecord(p.records[i])
	p.selectedRecord = &r
	return nil
}

// ClearSelection empties both selection mirrors.
func (p *Provider) ClearSelection() {
	p.mu.Lock()
	p.selectedRecord = nil
	p.selectedSchedule = nil
	p.mu.Unlock()
}

// SelectedSchedule returns the schedule currently open in a detail view.
func (p *Provider) SelectedSchedule() (models.MaintenanceSchedule, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.selectedSchedule == nil {
		return models.MaintenanceSchedule{}, false
	}
	return cloneSchedule(*p.selectedSchedule), true
}

// SelectedRecord returns the record currently open in a detail view.
func (p *Provider) SelectedRecord() (models.MaintenanceRecord, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.selectedRecord == nil {
		return models.MaintenanceRecord{}, false
	}
	return cloneRecord(*p.selectedRecord), true
}
