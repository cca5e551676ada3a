package repository

//go:generate mockgen -source=notification_state.go -destination=notification_state_mock.go -package=repository

import (
	"context"

	"github.com/simibol/planpoint/internal/domain"
)

// NotificationStateRepo stores dismiss and snooze marks keyed by notification id.
// Implementations live in SQLite or Redis and never join a database transaction.
type NotificationStateRepo interface {
	Get(ctx context.Context, id string) (*domain.NotificationState, error)
	List(ctx context.Context) ([]domain.NotificationState, error)
	Upsert(ctx context.Context, st domain.NotificationState) error
}
