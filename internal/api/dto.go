package api

import (
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

type sessionJSON struct {
	ID                string     `json:"id"`
	AssessmentTitle   string     `json:"assessment_title"`
	AssessmentDueDate string     `json:"assessment_due_date,omitempty"`
	MilestoneTitle    string     `json:"milestone_title"`
	SubtaskTitle      string     `json:"subtask_title"`
	Notes             string     `json:"notes,omitempty"`
	Date              string     `json:"date"`
	Start             time.Time  `json:"start"`
	End               time.Time  `json:"end"`
	DurationMin       int        `json:"duration_min"`
	Status            string     `json:"status"`
	RiskLevel         string     `json:"risk_level"`
	Version           int64      `json:"version"`
	BlockedBy         string     `json:"blocked_by,omitempty"`
	RolledFromDate    string     `json:"rolled_from_date,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

func toSessionJSON(s domain.PlannedSession) sessionJSON {
	out := sessionJSON{
		ID:              s.ID,
		AssessmentTitle: s.AssessmentTitle,
		MilestoneTitle:  s.MilestoneTitle,
		SubtaskTitle:    s.SubtaskTitle,
		Notes:           s.Notes,
		Date:            formatDay(s.Date),
		Start:           s.Start,
		End:             s.End,
		DurationMin:     s.DurationMin,
		Status:          string(s.Status),
		RiskLevel:       string(s.RiskLevel),
		Version:         s.Version,
		BlockedBy:       s.BlockedBy,
	}
	out.AssessmentDueDate = formatDay(s.AssessmentDueDate)
	if s.RolledFromDate != nil {
		out.RolledFromDate = formatDay(*s.RolledFromDate)
	}
	if !s.UpdatedAt.IsZero() {
		out.UpdatedAt = &s.UpdatedAt
	}
	return out
}

func toSessionsJSON(sessions []domain.PlannedSession) []sessionJSON {
	out := make([]sessionJSON, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionJSON(s))
	}
	return out
}

type daySummaryJSON struct {
	Date        string   `json:"date"`
	IsWeekend   bool     `json:"is_weekend"`
	CapacityHrs float64  `json:"capacity_hours"`
	TotalHrs    float64  `json:"total_hours"`
	SessionIDs  []string `json:"session_ids"`
}

type warningJSON struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type planResultJSON struct {
	Version  int64            `json:"version"`
	Sessions []sessionJSON    `json:"sessions"`
	Unplaced []sessionJSON    `json:"unplaced"`
	Days     []daySummaryJSON `json:"days"`
	Warnings []warningJSON    `json:"warnings"`
}

func toPlanResultJSON(r domain.PlanResult) planResultJSON {
	out := planResultJSON{
		Version:  r.Version,
		Sessions: toSessionsJSON(r.Sessions),
		Unplaced: toSessionsJSON(r.Unplaced),
		Days:     make([]daySummaryJSON, 0, len(r.Days)),
		Warnings: make([]warningJSON, 0, len(r.Warnings)),
	}
	for i := range r.Days {
		d := &r.Days[i]
		ids := make([]string, 0, len(d.Sessions))
		for _, s := range d.Sessions {
			ids = append(ids, s.ID)
		}
		out.Days = append(out.Days, daySummaryJSON{
			Date:        formatDay(d.Date),
			IsWeekend:   d.IsWeekend,
			CapacityHrs: d.Capacity(),
			TotalHrs:    d.TotalHours(),
			SessionIDs:  ids,
		})
	}
	for _, w := range r.Warnings {
		out.Warnings = append(out.Warnings, warningJSON{
			Type:      string(w.Type),
			Message:   w.Message,
			Detail:    w.Detail,
			SessionID: w.SessionID,
		})
	}
	return out
}

type notificationJSON struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Reason    string    `json:"reason"`
	Severity  string    `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	DueAt     time.Time `json:"due_at"`
}

type weekJSON struct {
	Week           string  `json:"week"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	PlannedHours   float64 `json:"planned_hours"`
	CompletedHours float64 `json:"completed_hours"`
	Status         string  `json:"status"`
}

type milestoneJSON struct {
	ID              string  `json:"id"`
	AssessmentTitle string  `json:"assessment_title"`
	Title           string  `json:"title"`
	EstimateHours   float64 `json:"estimate_hours"`
	TargetDate      string  `json:"target_date,omitempty"`
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
