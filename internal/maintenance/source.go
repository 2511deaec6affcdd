package maintenance

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Source supplies fresh collections to the Provider on every load.
type Source interface {
	Records(ctx context.Context) ([]models.MaintenanceRecord, error)
	Schedules(ctx context.Context) ([]models.MaintenanceSchedule, error)
	Reminders(ctx context.Context) ([]models.MaintenanceReminder, error)
	History(ctx context.Context, vehicleID string) ([]models.MaintenanceHistory, error)
}

// Counts sets how many entities a MockSource produces per load.
type Counts struct {
	Records   int `yaml:"records"`
	Schedules int `yaml:"schedules"`
	Reminders int `yaml:"reminders"`
	History   int `yaml:"history"`
}

// DefaultCounts are the collection sizes used when none are configured.
var DefaultCounts = Counts{Records: 20, Schedules: 15, Reminders: 10, History: 25}

// MockSource is the simulated backend: every call regenerates its collection.
type MockSource struct {
	mu     sync.Mutex
	gen    *Generator
	counts Counts
}

// NewMockSource creates a simulated backend seeded with seed.
func NewMockSource(seed int64, counts Counts, clock func() time.Time) *MockSource {
	return &MockSource{
		gen:    NewGenerator(rand.New(rand.NewSource(seed)), clock),
		counts: counts,
	}
}

func (s *MockSource) Records(ctx context.Context) ([]models.MaintenanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Records(s.counts.Records), nil
}

func (s *MockSource) Schedules(ctx context.Context) ([]models.MaintenanceSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Schedules(s.counts.Schedules), nil
}

func (s *MockSource) Reminders(ctx context.Context) ([]models.MaintenanceReminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Reminders(s.counts.Reminders), nil
}

func (s *MockSource) History(ctx context.Context, vehicleID string) ([]models.MaintenanceHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.History(vehicleID, s.counts.History), nil
}
