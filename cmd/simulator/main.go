package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

var priorities = []models.MaintenancePriority{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityMedium,
	models.PriorityHigh,
	models.PriorityCritical,
}

// apiClient talks to the maintenance API with a bearer token.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL, token string) *apiClient {
	return &apiClient{baseURL: baseURL, token: token, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s failed with status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *apiClient) createSchedule(ctx context.Context, in maintenance.ScheduleInput) (models.MaintenanceSchedule, error) {
	var s models.MaintenanceSchedule
	err := c.do(ctx, http.MethodPost, "/maintenance/schedules", in, &s)
	return s, err
}

func (c *apiClient) completeTask(ctx context.Context, scheduleID, taskID string, hours float64, notes string) (models.ScheduleDetail, error) {
	var detail models.ScheduleDetail
	body := map[string]interface{}{"actual_hours": hours, "notes": notes}
	err := c.do(ctx, http.MethodPost, "/maintenance/schedules/"+scheduleID+"/tasks/"+taskID+"/complete", body, &detail)
	return detail, err
}

// buildSchedule drafts a visit for v with one to three catalog tasks.
func buildSchedule(rng *rand.Rand, v models.Vehicle, now time.Time) maintenance.ScheduleInput {
	priority := priorities[rng.Intn(len(priorities))]
	date := now.Add(time.Duration(1+rng.Intn(14)) * 24 * time.Hour)
	tech := maintenance.Technicians[rng.Intn(len(maintenance.Technicians))]

	draft := maintenance.ScheduleDraft{ScheduleInput: maintenance.ScheduleInput{
		VehicleID:     v.ID,
		VehicleName:   v.Name,
		VehicleType:   v.Type,
		ScheduledDate: date,
		Priority:      priority,
		AssigneeID:    tech.ID,
		AssigneeName:  tech.Name,
		Location:      maintenance.ServiceLocations[rng.Intn(len(maintenance.ServiceLocations))],
	}}
	for _, i := range rng.Perm(len(maintenance.TaskTemplates))[:1+rng.Intn(3)] {
		tpl := maintenance.TaskTemplates[i]
		draft.AddTask(models.MaintenanceTask{
			Name:           tpl.Name,
			Description:    tpl.Description,
			Type:           tpl.Type,
			EstimatedHours: tpl.Hours,
			Parts:          append([]models.PartRequirement(nil), tpl.Parts...),
		})
	}
	draft.Notes = fmt.Sprintf("Simulated visit, estimate $%.2f", draft.EstimatedCost)
	return draft.ScheduleInput
}

// workshop works through one vehicle's schedules a task per tick.
type workshop struct {
	api      *apiClient
	vehicle  models.Vehicle
	rng      *rand.Rand
	clock    func() time.Time
	schedule *models.MaintenanceSchedule
}

func nextOpenTask(s *models.MaintenanceSchedule) int {
	for i, t := range s.Tasks {
		if !t.Completed {
			return i
		}
	}
	return -1
}

func (w *workshop) step(ctx context.Context) error {
	if w.schedule == nil {
		s, err := w.api.createSchedule(ctx, buildSchedule(w.rng, w.vehicle, w.clock()))
		if err != nil {
			return err
		}
		w.schedule = &s
		log.WithFields(log.Fields{
			"vehicle_id":     s.VehicleID,
			"schedule_id":    s.ID,
			"tasks":          len(s.Tasks),
			"estimated_cost": s.EstimatedCost,
		}).Info("Created schedule")
		return nil
	}

	i := nextOpenTask(w.schedule)
	if i < 0 {
		w.schedule = nil
		return nil
	}
	task := w.schedule.Tasks[i]
	hours := task.EstimatedHours * (0.8 + w.rng.Float64()*0.5)
	detail, err := w.api.completeTask(ctx, w.schedule.ID, task.ID, hours, "completed by simulator")
	if err != nil {
		w.schedule = nil
		return err
	}

	log.WithFields(log.Fields{
		"vehicle_id":   w.vehicle.ID,
		"schedule_id":  detail.Schedule.ID,
		"task":         task.Name,
		"actual_hours": hours,
	}).Info("Completed task")

	if detail.Schedule.Status == models.StatusCompleted {
		log.WithFields(log.Fields{
			"vehicle_id":  w.vehicle.ID,
			"schedule_id": detail.Schedule.ID,
			"total_cost":  detail.Cost.Total,
		}).Info("Schedule completed")
		w.schedule = nil
		return nil
	}
	s := detail.Schedule
	w.schedule = &s
	return nil
}

func (w *workshop) run(ctx context.Context, interval time.Duration) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		if err := w.step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).WithField("vehicle_id", w.vehicle.ID).Error("Simulation step failed")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}

// resolveToken prefers SIM_AUTH_TOKEN and otherwise mints a manager token
// from JWT_SECRET.
func resolveToken() (string, error) {
	if token := os.Getenv("SIM_AUTH_TOKEN"); token != "" {
		return token, nil
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("SIM_AUTH_TOKEN or JWT_SECRET is required")
	}
	svc, err := auth.NewService(secret, 24*time.Hour)
	if err != nil {
		return "", err
	}
	return svc.GenerateToken("simulator", "simulator", models.RoleManager)
}

func main() {
	token, err := resolveToken()
	if err != nil {
		log.WithError(err).Fatal("No credentials for the maintenance API")
	}

	fleetSize := len(maintenance.Fleet)
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 && n <= fleetSize {
			fleetSize = n
		}
	}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	interval := 2 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	seed := time.Now().UnixNano()
	if v := os.Getenv("GENERATOR_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = n
		}
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"api_url":    apiURL,
		"interval":   interval,
		"seed":       seed,
	}).Info("Starting maintenance simulation")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := newAPIClient(apiURL, token)
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range maintenance.Fleet[:fleetSize] {
		w := &workshop{
			api:     api,
			vehicle: v,
			rng:     rand.New(rand.NewSource(seed + int64(i))),
			clock:   time.Now,
		}
		g.Go(func() error { return w.run(ctx, interval) })
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Simulation stopped")
	}
	log.Info("Simulation finished")
}
