package domain

import (
	"fmt"
	"time"
)

type PlannedSession struct {
	ID                string
	AssessmentTitle   string
	AssessmentDueDate time.Time
	MilestoneTitle    string
	SubtaskTitle      string
	Notes             string

	// Date is local midnight of the scheduled day; Start/End are instants on it.
	Date        time.Time
	Start       time.Time
	End         time.Time
	DurationMin int

	Status    SessionStatus
	RiskLevel RiskLevel
	Version   int64

	BlockedBy      string
	RolledFromDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationHours returns the session length in decimal hours.
func (s *PlannedSession) DurationHours() float64 {
	return float64(s.DurationMin) / 60
}

// IsCompleted reports whether the session has been finished.
func (s *PlannedSession) IsCompleted() bool {
	return s.Status == SessionCompleted
}

// MarkCompleted finishes the session. Completing twice is a no-op.
func (s *PlannedSession) MarkCompleted(now time.Time) error {
	if s.Status == SessionCompleted {
		return nil
	}
	s.Status = SessionCompleted
	s.UpdatedAt = now
	return nil
}

// MarkInProgress starts the session. Completed sessions must be reopened first.
func (s *PlannedSession) MarkInProgress(now time.Time) error {
	switch s.Status {
	case SessionInProgress:
		return nil
	case SessionCompleted:
		return fmt.Errorf("cannot start completed session %s: %w", s.ID, ErrInvalidTransition)
	}
	s.Status = SessionInProgress
	s.UpdatedAt = now
	return nil
}

// Reopen returns a completed or started session to planned.
func (s *PlannedSession) Reopen(now time.Time) error {
	if s.Status == SessionPlanned || s.Status == SessionTodo {
		return nil
	}
	s.Status = SessionPlanned
	s.UpdatedAt = now
	return nil
}

// ApplyStatus routes a requested status to the matching toggle.
func (s *PlannedSession) ApplyStatus(status SessionStatus, now time.Time) error {
	switch status {
	case SessionCompleted:
		return s.MarkCompleted(now)
	case SessionInProgress:
		return s.MarkInProgress(now)
	case SessionPlanned:
		return s.Reopen(now)
	case SessionTodo:
		if s.Status == SessionCompleted {
			return fmt.Errorf("cannot mark completed session %s as todo: %w", s.ID, ErrInvalidTransition)
		}
		s.Status = SessionTodo
		s.UpdatedAt = now
		return nil
	}
	return fmt.Errorf("session status %q: %w", status, ErrUnknownEnum)
}

type DaySummary struct {
	Date        time.Time
	IsWeekend   bool
	CapacityMin int
	TotalMin    int
	Sessions    []PlannedSession
}

// Capacity returns the day's available hours.
func (d *DaySummary) Capacity() float64 { return float64(d.CapacityMin) / 60 }

// TotalHours returns the hours actually scheduled on the day.
func (d *DaySummary) TotalHours() float64 { return float64(d.TotalMin) / 60 }

type PlanWarning struct {
	Type      WarningType
	Message   string
	Detail    string
	SessionID string
}

type PlanResult struct {
	Sessions []PlannedSession
	Days     []DaySummary
	Warnings []PlanWarning
	Unplaced []PlannedSession
	Version  int64
}
