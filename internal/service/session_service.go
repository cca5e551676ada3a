package service

import (
	"context"
	"fmt"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/repository"
)

type sessionService struct {
	sessions repository.PlannedSessionRepo
	uow      db.UnitOfWork
	settings Settings
	observer UseCaseObserver
}

func NewSessionService(sessions repository.PlannedSessionRepo, uow db.UnitOfWork, settings Settings, observers ...UseCaseObserver) app.SessionUseCase {
	return &sessionService{
		sessions: sessions,
		uow:      uow,
		settings: settings.normalized(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) List(ctx context.Context, req app.SessionListRequest) ([]domain.PlannedSession, error) {
	f := repository.SessionFilter{Statuses: req.Statuses}
	if req.From != nil {
		f.From = domain.DayOf(*req.From, s.settings.Location)
	}
	if req.To != nil {
		f.To = domain.DayOf(*req.To, s.settings.Location)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return nil, &app.PlanError{Code: app.PlanErrInvalidRange, Message: "session range ends before it starts"}
	}
	sessions, err := s.sessions.List(ctx, f)
	if err != nil {
		return nil, dataIntegrity("listing sessions", err)
	}
	return sessions, nil
}

// SetStatus applies a status toggle. Completed sessions must be reopened
// before they can be started again.
func (s *sessionService) SetStatus(ctx context.Context, id string, status domain.SessionStatus) (out *domain.PlannedSession, err error) {
	fields := map[string]any{"session": id, "status": string(status)}
	done := track(ctx, s.observer, "set-session-status", fields)
	defer func() { done(err) }()

	now := s.settings.now(nil)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := NewSQLiteStores(tx, s.settings.Location).Sessions
		sess, err := sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields["from"] = string(sess.Status)
		if err := sess.ApplyStatus(status, now); err != nil {
			return err
		}
		if err := sessions.Update(ctx, sess); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		out = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
