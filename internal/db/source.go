package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Collection names in the maintenance database.
const (
	RecordsCollection   = "maintenance_records"
	SchedulesCollection = "maintenance_schedules"
	HistoryCollection   = "maintenance_history"
)

// MongoSource reads maintenance collections from MongoDB. Reminders are not
// stored; they are projected from the open schedules on every load.
type MongoSource struct {
	RecordColl   Collection
	ScheduleColl Collection
	HistoryColl  Collection
	Clock        func() time.Time
}

// NewMongoSource reads from the standard collections of database.
func NewMongoSource(database *mongo.Database) *MongoSource {
	return &MongoSource{
		RecordColl:   &MongoCollection{Collection: database.Collection(RecordsCollection)},
		ScheduleColl: &MongoCollection{Collection: database.Collection(SchedulesCollection)},
		HistoryColl:  &MongoCollection{Collection: database.Collection(HistoryCollection)},
		Clock:        time.Now,
	}
}

var _ maintenance.Source = (*MongoSource)(nil)

func findAll[T any](ctx context.Context, c Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoSource) Records(ctx context.Context) ([]models.MaintenanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "service_date", Value: -1}})
	records, err := findAll[models.MaintenanceRecord](ctx, s.RecordColl, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	return records, nil
}

func (s *MongoSource) Schedules(ctx context.Context) ([]models.MaintenanceSchedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}})
	schedules, err := findAll[models.MaintenanceSchedule](ctx, s.ScheduleColl, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find schedules: %w", err)
	}
	return schedules, nil
}

func (s *MongoSource) Reminders(ctx context.Context) ([]models.MaintenanceReminder, error) {
	filter := bson.M{"status": bson.M{"$nin": []models.MaintenanceStatus{models.StatusCompleted, models.StatusCancelled}}}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}})
	open, err := findAll[models.MaintenanceSchedule](ctx, s.ScheduleColl, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find open schedules: %w", err)
	}
	return maintenance.RemindersFromSchedules(open, s.Clock()), nil
}

func (s *MongoSource) History(ctx context.Context, vehicleID string) ([]models.MaintenanceHistory, error) {
	filter := bson.M{}
	if vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	history, err := findAll[models.MaintenanceHistory](ctx, s.HistoryColl, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	return history, nil
}
