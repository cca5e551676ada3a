package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
)

type planRequestBody struct {
	Start       string                  `json:"start,omitempty"`
	FreshIDs    bool                    `json:"fresh_ids,omitempty"`
	Preferences domain.PreferencesInput `json:"preferences"`
}

type planResponseBody struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Applied     bool           `json:"applied"`
	Replaced    int            `json:"replaced"`
	Result      planResultJSON `json:"result"`
}

type rescheduleResponseBody struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Mode        string         `json:"mode"`
	Moved       int            `json:"moved"`
	Result      planResultJSON `json:"result"`
}

// health handles GET /health
func (s *server) health(w http.ResponseWriter, r *http.Request) {
	if s.svc.Ping != nil {
		if err := s.svc.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// planPreview handles POST /plan/preview
func (s *server) planPreview(w http.ResponseWriter, r *http.Request) {
	s.plan(w, r, s.svc.Plan.Preview)
}

// planApply handles POST /plan/apply
func (s *server) planApply(w http.ResponseWriter, r *http.Request) {
	s.plan(w, r, s.svc.Plan.Apply)
}

func (s *server) plan(w http.ResponseWriter, r *http.Request, run func(context.Context, app.PlanRequest) (*app.PlanResponse, error)) {
	var body planRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now()
	req := app.NewPlanRequest()
	req.Now = &now
	req.FreshIDs = body.FreshIDs
	req.Preferences = body.Preferences
	if body.Start != "" {
		start, err := time.ParseInLocation(domain.DateLayout, body.Start, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		req.Start = &start
	}

	resp, err := run(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponseBody{
		GeneratedAt: resp.GeneratedAt,
		Applied:     resp.Applied,
		Replaced:    resp.Replaced,
		Result:      toPlanResultJSON(resp.Result),
	})
}

// reschedule handles POST /reschedule/{mode}
func (s *server) reschedule(w http.ResponseWriter, r *http.Request) {
	mode, err := app.ParseRescheduleMode(chi.URLParam(r, "mode"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	now := s.now()
	resp, err := s.svc.Reschedule.Reschedule(r.Context(), app.RescheduleRequest{Mode: mode, Now: &now})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rescheduleResponseBody{
		GeneratedAt: resp.GeneratedAt,
		Mode:        string(resp.Mode),
		Moved:       resp.Moved,
		Result:      toPlanResultJSON(resp.Result),
	})
}
