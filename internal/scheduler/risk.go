package scheduler

import (
	"fmt"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

// ClassifyRisk labels a placement by how its day relates to the due date.
// found is false when no day could host the subtask.
func ClassifyRisk(found bool, placement, due time.Time) domain.RiskLevel {
	if !found {
		return domain.RiskAtRisk
	}
	if due.IsZero() {
		return domain.RiskOnTrack
	}
	days := domain.DaysBetween(placement, due)
	switch {
	case days < 0:
		return domain.RiskAtRisk
	case days <= 1:
		return domain.RiskWarning
	default:
		return domain.RiskOnTrack
	}
}

// riskWarning returns the warning that accompanies a non on-track placement,
// or nil.
func riskWarning(risk domain.RiskLevel, s *domain.PlannedSession, due time.Time) *domain.PlanWarning {
	switch risk {
	case domain.RiskWarning:
		return &domain.PlanWarning{
			Type:      domain.WarningDeadline,
			Message:   fmt.Sprintf("%s lands right on its deadline", s.SubtaskTitle),
			Detail:    fmt.Sprintf("Scheduled %s, due %s. No buffer left for review.", s.Date.Format(domain.DateLayout), due.Format(domain.DateLayout)),
			SessionID: s.ID,
		}
	case domain.RiskAtRisk, domain.RiskLate:
		return &domain.PlanWarning{
			Type:      domain.WarningCapacity,
			Message:   fmt.Sprintf("%s is scheduled after its due date", s.SubtaskTitle),
			Detail:    fmt.Sprintf("Scheduled %s, due %s. Not enough capacity before the deadline.", s.Date.Format(domain.DateLayout), due.Format(domain.DateLayout)),
			SessionID: s.ID,
		}
	}
	return nil
}
