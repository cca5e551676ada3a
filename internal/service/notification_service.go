package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/repository"
	"github.com/simibol/planpoint/internal/scheduler"
)

// ErrInvalidNotificationID is returned for ids not shaped "session:reason".
var ErrInvalidNotificationID = errors.New("invalid notification id")

type notificationService struct {
	sessions repository.PlannedSessionRepo
	states   repository.NotificationStateRepo
	settings Settings
	observer UseCaseObserver
}

func NewNotificationService(
	sessions repository.PlannedSessionRepo,
	states repository.NotificationStateRepo,
	settings Settings,
	observers ...UseCaseObserver,
) app.NotificationUseCase {
	return &notificationService{
		sessions: sessions,
		states:   states,
		settings: settings.normalized(),
		observer: useCaseObserverOrNoop(observers),
	}
}

var openStatuses = []domain.SessionStatus{domain.SessionPlanned, domain.SessionInProgress, domain.SessionTodo}

func (s *notificationService) List(ctx context.Context, now time.Time) (*app.NotificationsResponse, error) {
	sessions, err := s.sessions.List(ctx, repository.SessionFilter{Statuses: openStatuses})
	if err != nil {
		return nil, dataIntegrity("listing sessions", err)
	}
	states, err := s.states.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading notification states: %w", err)
	}
	return &app.NotificationsResponse{
		GeneratedAt: now,
		Items:       scheduler.GenerateNotifications(sessions, states, now),
	}, nil
}

func (s *notificationService) Dismiss(ctx context.Context, id string, now time.Time) (err error) {
	done := track(ctx, s.observer, "dismiss-notification", map[string]any{"notification": id})
	defer func() { done(err) }()

	return s.mark(ctx, id, func(st *domain.NotificationState) {
		st.DismissedAt = &now
	})
}

func (s *notificationService) Snooze(ctx context.Context, id string, until time.Time) (err error) {
	done := track(ctx, s.observer, "snooze-notification", map[string]any{"notification": id, "until": until})
	defer func() { done(err) }()

	return s.mark(ctx, id, func(st *domain.NotificationState) {
		st.SnoozedUntil = &until
	})
}

func (s *notificationService) mark(ctx context.Context, id string, apply func(*domain.NotificationState)) error {
	if err := validateNotificationID(id); err != nil {
		return err
	}
	st, err := s.states.Get(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		st = &domain.NotificationState{ID: id}
	case err != nil:
		return fmt.Errorf("loading notification state: %w", err)
	}
	apply(st)
	return s.states.Upsert(ctx, *st)
}

func validateNotificationID(id string) error {
	i := strings.LastIndex(id, ":")
	if i <= 0 {
		return fmt.Errorf("%q: %w", id, ErrInvalidNotificationID)
	}
	switch domain.NotificationReason(id[i+1:]) {
	case domain.ReasonOverdue, domain.ReasonDueNow, domain.ReasonDueSoon, domain.ReasonHeadsUp:
		return nil
	}
	return fmt.Errorf("%q: unknown reason: %w", id, ErrInvalidNotificationID)
}
