package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
)

// listSessions handles GET /sessions?from=YYYY-MM-DD&to=YYYY-MM-DD&status=a,b
func (s *server) listSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var req app.SessionListRequest

	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &req.From}, {"to", &req.To}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		d, err := time.ParseInLocation(domain.DateLayout, v, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, p.key+" must be YYYY-MM-DD")
			return
		}
		*p.dst = &d
	}

	if v := q.Get("status"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			st, err := domain.ParseSessionStatus(raw)
			if err != nil || strings.TrimSpace(raw) == "" {
				writeError(w, http.StatusBadRequest, "unknown status "+raw)
				return
			}
			req.Statuses = append(req.Statuses, st)
		}
	}

	sessions, err := s.svc.Sessions.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": toSessionsJSON(sessions)})
}

type statusBody struct {
	Status string `json:"status"`
}

// setSessionStatus handles PATCH /sessions/{id}/status
func (s *server) setSessionStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(body.Status) == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	status, err := domain.ParseSessionStatus(body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	sess, err := s.svc.Sessions.SetStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(*sess))
}

// listMilestones handles GET /milestones
func (s *server) listMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := s.svc.Milestones.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]milestoneJSON, 0, len(milestones))
	for _, m := range milestones {
		mj := milestoneJSON{
			ID:              m.ID,
			AssessmentTitle: m.AssessmentTitle,
			Title:           m.Title,
			EstimateHours:   m.EstimateHours,
		}
		if m.TargetDate != nil {
			mj.TargetDate = formatDay(*m.TargetDate)
		}
		out = append(out, mj)
	}
	writeJSON(w, http.StatusOK, map[string]any{"milestones": out})
}

// deleteMilestone handles DELETE /milestones/{id}
func (s *server) deleteMilestone(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.Milestones.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"sessions_removed": removed})
}
