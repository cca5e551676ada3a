package app

import (
	"fmt"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

type RescheduleMode string

const (
	// RescheduleOverdue moves unfinished sessions whose end has passed to
	// the earliest free time from now on.
	RescheduleOverdue RescheduleMode = "overdue"
	// RescheduleRollover moves this week's unfinished sessions into next week.
	RescheduleRollover RescheduleMode = "rollover"
)

func ParseRescheduleMode(s string) (RescheduleMode, error) {
	switch RescheduleMode(s) {
	case RescheduleOverdue, RescheduleRollover:
		return RescheduleMode(s), nil
	}
	return "", &PlanError{Code: PlanErrInvalidRange, Message: fmt.Sprintf("unknown reschedule mode %q", s)}
}

type RescheduleRequest struct {
	Mode RescheduleMode
	Now  *time.Time
}

type RescheduleResponse struct {
	GeneratedAt time.Time
	Mode        RescheduleMode
	// Moved counts sessions written back with new times.
	Moved  int
	Result domain.PlanResult
}
