package app

import (
	"context"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

type PlanUseCase interface {
	Preview(ctx context.Context, req PlanRequest) (*PlanResponse, error)
	Apply(ctx context.Context, req PlanRequest) (*PlanResponse, error)
}

type RescheduleUseCase interface {
	Reschedule(ctx context.Context, req RescheduleRequest) (*RescheduleResponse, error)
	AutoCatchUp(ctx context.Context, now time.Time) (*RescheduleResponse, error)
}

type SessionUseCase interface {
	List(ctx context.Context, req SessionListRequest) ([]domain.PlannedSession, error)
	SetStatus(ctx context.Context, id string, status domain.SessionStatus) (*domain.PlannedSession, error)
}

type MilestoneUseCase interface {
	List(ctx context.Context) ([]domain.Milestone, error)
	Delete(ctx context.Context, id string) (removedSessions int64, err error)
}

type NotificationUseCase interface {
	List(ctx context.Context, now time.Time) (*NotificationsResponse, error)
	Dismiss(ctx context.Context, id string, now time.Time) error
	Snooze(ctx context.Context, id string, until time.Time) error
}

type ProgressUseCase interface {
	Weekly(ctx context.Context, now time.Time) (*WeeklyResponse, error)
}

type ImportUseCase interface {
	Import(ctx context.Context, path string) (*ImportResult, error)
}
