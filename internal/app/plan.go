package app

import (
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

type PlanRequest struct {
	Now   *time.Time
	Start *time.Time // first day to plan; defaults to today

	// Preferences are merged over the stored preferences for this run only.
	Preferences domain.PreferencesInput

	// FreshIDs gives every session a new random id instead of one derived
	// from its milestone and chunk order.
	FreshIDs bool
}

func NewPlanRequest() PlanRequest {
	return PlanRequest{}
}

type PlanResponse struct {
	GeneratedAt time.Time
	Result      domain.PlanResult
	Applied     bool
	// Replaced counts the stored sessions the apply removed.
	Replaced int
}

type PlanErrorCode string

const (
	PlanErrNoMilestones  PlanErrorCode = "NO_MILESTONES"
	PlanErrInvalidRange  PlanErrorCode = "INVALID_RANGE"
	PlanErrDataIntegrity PlanErrorCode = "DATA_INTEGRITY"
	PlanErrInternal      PlanErrorCode = "INTERNAL_ERROR"
)

// PlanError is a use-case failure the caller can act on.
type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
