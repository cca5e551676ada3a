package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// listNotifications handles GET /notifications
func (s *server) listNotifications(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Notifications.List(r.Context(), s.now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	items := make([]notificationJSON, 0, len(resp.Items))
	for _, n := range resp.Items {
		items = append(items, notificationJSON{
			ID:        n.ID,
			SessionID: n.SessionID,
			Reason:    string(n.Reason),
			Severity:  string(n.Severity),
			Title:     n.Title,
			Message:   n.Message,
			DueAt:     n.DueAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"generated_at":  resp.GeneratedAt,
		"notifications": items,
	})
}

// dismissNotification handles POST /notifications/{id}/dismiss
func (s *server) dismissNotification(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Notifications.Dismiss(r.Context(), chi.URLParam(r, "id"), s.now()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// snoozeBody takes either an absolute time or a number of minutes from now.
type snoozeBody struct {
	Until   *time.Time `json:"until,omitempty"`
	Minutes int        `json:"minutes,omitempty"`
}

// snoozeNotification handles POST /notifications/{id}/snooze
func (s *server) snoozeNotification(w http.ResponseWriter, r *http.Request) {
	var body snoozeBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := s.now()
	var until time.Time
	switch {
	case body.Until != nil:
		until = *body.Until
	case body.Minutes > 0:
		until = now.Add(time.Duration(body.Minutes) * time.Minute)
	default:
		writeError(w, http.StatusBadRequest, "until or a positive minutes value is required")
		return
	}
	if !until.After(now) {
		writeError(w, http.StatusBadRequest, "snooze must end in the future")
		return
	}

	if err := s.svc.Notifications.Snooze(r.Context(), chi.URLParam(r, "id"), until); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// weekly handles GET /weekly
func (s *server) weekly(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Progress.Weekly(r.Context(), s.now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	weeks := make([]weekJSON, 0, len(resp.Weeks))
	for _, wk := range resp.Weeks {
		weeks = append(weeks, weekJSON{
			Week:           wk.WeekLabel,
			StartDate:      formatDay(wk.StartDate),
			EndDate:        formatDay(wk.EndDate),
			PlannedHours:   wk.PlannedHours,
			CompletedHours: wk.CompletedHours,
			Status:         string(wk.Status),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"weeks": weeks})
}
