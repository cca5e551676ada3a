package repository

import (
	"context"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

// SessionFilter narrows PlannedSessionRepo.List. Zero fields match everything.
type SessionFilter struct {
	From     time.Time
	To       time.Time
	Statuses []domain.SessionStatus
}

type AssessmentRepo interface {
	Upsert(ctx context.Context, a *domain.Assessment) error
	GetByTitle(ctx context.Context, title string) (*domain.Assessment, error)
	List(ctx context.Context) ([]domain.Assessment, error)
	Delete(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	Upsert(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context) ([]domain.Milestone, error)
	Delete(ctx context.Context, id string) error
}

type BusyBlockRepo interface {
	Upsert(ctx context.Context, b *domain.BusyBlock) error
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.BusyBlock, error)
	Delete(ctx context.Context, id string) error
}

type PreferencesRepo interface {
	Get(ctx context.Context) (domain.PreferencesInput, error)
	Save(ctx context.Context, p domain.PreferencesInput) error
}

type PlannedSessionRepo interface {
	// ReplaceAll deletes every stored session and inserts the given set.
	ReplaceAll(ctx context.Context, sessions []domain.PlannedSession) error
	// UpsertMany writes sessions by id, leaving others untouched.
	UpsertMany(ctx context.Context, sessions []domain.PlannedSession) error
	List(ctx context.Context, filter SessionFilter) ([]domain.PlannedSession, error)
	GetByID(ctx context.Context, id string) (*domain.PlannedSession, error)
	Update(ctx context.Context, s *domain.PlannedSession) error
	DeleteByMilestone(ctx context.Context, assessmentTitle, milestoneTitle string) (int64, error)
}
