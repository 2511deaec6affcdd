package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

const maxBodyBytes = 1 << 20

// MaintenanceHandler exposes the maintenance provider over HTTP.
type MaintenanceHandler struct {
	provider *maintenance.Provider
}

// NewMaintenanceHandler creates a handler serving provider.
func NewMaintenanceHandler(provider *maintenance.Provider) *MaintenanceHandler {
	return &MaintenanceHandler{provider: provider}
}

// Register mounts the maintenance routes on mux, each behind its permission.
func (h *MaintenanceHandler) Register(mux *http.ServeMux, auth *middleware.AuthMiddleware) {
	route := func(pattern, action string, fn http.HandlerFunc) {
		mux.Handle(pattern, auth.RequirePermission(action)(fn))
	}
	view := models.ActionViewMaintenance
	create := models.ActionCreateMaintenance
	update := models.ActionUpdateMaintenance
	remove := models.ActionDeleteMaintenance

	route("GET /api/maintenance/schedules", view, h.ListSchedules)
	route("POST /api/maintenance/schedules", create, h.CreateSchedule)
	route("GET /api/maintenance/schedules/{id}", view, h.GetSchedule)
	route("PATCH /api/maintenance/schedules/{id}", update, h.UpdateSchedule)
	route("DELETE /api/maintenance/schedules/{id}", remove, h.DeleteSchedule)
	route("POST /api/maintenance/schedules/{id}/recompute-cost", update, h.RecomputeCost)
	route("POST /api/maintenance/schedules/{id}/tasks/{taskID}/complete", update, h.CompleteTask)

	route("GET /api/maintenance/records", view, h.ListRecords)
	route("POST /api/maintenance/records", create, h.CreateRecord)
	route("PATCH /api/maintenance/records/{id}", update, h.UpdateRecord)
	route("DELETE /api/maintenance/records/{id}", remove, h.DeleteRecord)

	route("GET /api/maintenance/reminders", view, h.ListReminders)
	route("GET /api/maintenance/history", view, h.ListHistory)
	route("POST /api/maintenance/reload", view, h.Reload)
	route("GET /api/maintenance/state", view, h.State)
	route("PUT /api/maintenance/selection", view, h.Select)
	route("DELETE /api/maintenance/selection", view, h.ClearSelection)
}

// ListSchedules returns every schedule, optionally limited to ?vehicle_id=.
func (h *MaintenanceHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules := h.provider.Schedules()
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		schedules = filter(schedules, func(s models.MaintenanceSchedule) bool { return s.VehicleID == vehicleID })
	}
	writeJSON(w, http.StatusOK, schedules)
}

// CreateSchedule validates the draft and stores it. Field problems come back
// as a 400 with an "errors" object keyed by field.
func (h *MaintenanceHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var in maintenance.ScheduleInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := in.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}
	s, err := h.provider.CreateSchedule(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *MaintenanceHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.provider.GetSchedule(r.Context(), r.PathValue("id"))
	if !ok {
		if err := r.Context().Err(); err != nil {
			writeError(w, err)
			return
		}
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *MaintenanceHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var patch maintenance.SchedulePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	s, err := h.provider.UpdateSchedule(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *MaintenanceHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if !h.provider.DeleteSchedule(r.Context(), r.PathValue("id")) {
		deleteFailed(w, r, h.provider.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MaintenanceHandler) RecomputeCost(w http.ResponseWriter, r *http.Request) {
	s, err := h.provider.RecomputeEstimatedCost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type completeTaskRequest struct {
	ActualHours float64 `json:"actual_hours"`
	Notes       string  `json:"notes"`
}

func (h *MaintenanceHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	var req completeTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	if err := h.provider.CompleteTask(r.Context(), id, r.PathValue("taskID"), req.ActualHours, req.Notes); err != nil {
		writeError(w, err)
		return
	}
	detail, ok := h.provider.GetSchedule(r.Context(), id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *MaintenanceHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.provider.Records()
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		records = filter(records, func(rec models.MaintenanceRecord) bool { return rec.VehicleID == vehicleID })
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *MaintenanceHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var in models.MaintenanceRecord
	if !decodeJSON(w, r, &in) {
		return
	}
	rec, err := h.provider.CreateRecord(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *MaintenanceHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var patch maintenance.RecordPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	rec, err := h.provider.UpdateRecord(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *MaintenanceHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if !h.provider.DeleteRecord(r.Context(), r.PathValue("id")) {
		deleteFailed(w, r, h.provider.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MaintenanceHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	reminders := h.provider.Reminders()
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		reminders = filter(reminders, func(rem models.MaintenanceReminder) bool { return rem.VehicleID == vehicleID })
	}
	writeJSON(w, http.StatusOK, reminders)
}

// ListHistory returns history newest first, or grouped by month with ?group=month.
func (h *MaintenanceHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	history := h.provider.History()
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		history = filter(history, func(e models.MaintenanceHistory) bool { return e.VehicleID == vehicleID })
	}
	switch r.URL.Query().Get("group") {
	case "":
		writeJSON(w, http.StatusOK, history)
	case "month":
		writeJSON(w, http.StatusOK, maintenance.GroupHistoryByMonth(history))
	default:
		http.Error(w, "Unknown grouping", http.StatusBadRequest)
	}
}

// Reload refetches every collection, or only one vehicle's history when
// ?vehicle_id= is given.
func (h *MaintenanceHandler) Reload(w http.ResponseWriter, r *http.Request) {
	var err error
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		err = h.provider.LoadHistory(r.Context(), vehicleID)
	} else {
		err = h.provider.LoadAll(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.State())
}

func (h *MaintenanceHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.provider.State())
}

type selectionRequest struct {
	ScheduleID string `json:"schedule_id"`
	RecordID   string `json:"record_id"`
}

// Select opens a schedule and/or record in the detail mirrors.
func (h *MaintenanceHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ScheduleID == "" && req.RecordID == "" {
		http.Error(w, "schedule_id or record_id is required", http.StatusBadRequest)
		return
	}
	if req.ScheduleID != "" {
		if err := h.provider.SelectSchedule(req.ScheduleID); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.RecordID != "" {
		if err := h.provider.SelectRecord(req.RecordID); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.provider.State())
}

func (h *MaintenanceHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.provider.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, maintenance.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, maintenance.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "Request cancelled", http.StatusServiceUnavailable)
	default:
		log.WithError(err).Error("Maintenance request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// deleteFailed reports a delete that returned false. The provider only
// exposes the message, so anything but a cancelled request is a missing id.
func deleteFailed(w http.ResponseWriter, r *http.Request, msg string) {
	if err := r.Context().Err(); err != nil {
		writeError(w, err)
		return
	}
	http.Error(w, msg, http.StatusNotFound)
}
