package service

import (
	"context"
	"fmt"
	"time"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/repository"
	"github.com/simibol/planpoint/internal/scheduler"
)

type rescheduleService struct {
	stores   Stores
	uow      db.UnitOfWork
	settings Settings
	observer UseCaseObserver
}

func NewRescheduleService(stores Stores, uow db.UnitOfWork, settings Settings, observers ...UseCaseObserver) app.RescheduleUseCase {
	return &rescheduleService{
		stores:   stores,
		uow:      uow,
		settings: settings.normalized(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Reschedule re-places overdue sessions from now, or this week's unfinished
// sessions from next Monday, and merges the moved sessions back by id.
// Sessions that cannot be placed keep their stored times and are reported
// in Result.Unplaced.
func (s *rescheduleService) Reschedule(ctx context.Context, req app.RescheduleRequest) (resp *app.RescheduleResponse, err error) {
	fields := map[string]any{"mode": string(req.Mode)}
	done := track(ctx, s.observer, "reschedule", fields)
	defer func() { done(err) }()

	return s.run(ctx, req.Mode, s.settings.now(req.Now), fields)
}

// AutoCatchUp is the check run when a plan is loaded. It is a no-op that
// writes nothing when no session is overdue.
func (s *rescheduleService) AutoCatchUp(ctx context.Context, now time.Time) (resp *app.RescheduleResponse, err error) {
	fields := map[string]any{"mode": string(app.RescheduleOverdue)}
	done := track(ctx, s.observer, "auto-catch-up", fields)
	defer func() { done(err) }()

	return s.run(ctx, app.RescheduleOverdue, now.In(s.settings.Location), fields)
}

func (s *rescheduleService) run(ctx context.Context, mode app.RescheduleMode, now time.Time, fields map[string]any) (*app.RescheduleResponse, error) {
	loc := s.settings.Location
	resp := &app.RescheduleResponse{GeneratedAt: now, Mode: mode}

	all, err := s.stores.Sessions.List(ctx, repository.SessionFilter{})
	if err != nil {
		return nil, dataIntegrity("loading sessions", err)
	}

	var moved []domain.PlannedSession
	opts := scheduler.RescheduleOptions{
		Now:      now,
		Weights:  &s.settings.Weights,
		Version:  now.UnixMilli(),
		Location: loc,
	}
	switch mode {
	case app.RescheduleOverdue:
		moved = scheduler.SelectOverdue(all, now)
		opts.Start = domain.DayOf(now, loc)
		opts.NotBefore = now
	case app.RescheduleRollover:
		moved = scheduler.SelectWeekRollover(all, now, loc)
		opts.Start = scheduler.NextWeekStart(now, loc)
	default:
		return nil, &app.PlanError{Code: app.PlanErrInvalidRange, Message: fmt.Sprintf("unknown reschedule mode %q", mode)}
	}
	fields["candidates"] = len(moved)

	resp.Result.Version = opts.Version
	if len(moved) == 0 {
		fields["moved"] = 0
		return resp, nil
	}

	prefs, err := loadPreferences(ctx, s.stores, s.settings)
	if err != nil {
		return nil, err
	}
	assessments, err := s.stores.Assessments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading assessments: %w", err)
	}
	busy, err := s.stores.BusyBlocks.ListBetween(ctx, opts.Start, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("loading busy blocks: %w", err)
	}
	opts.Assessments = assessments
	opts.BusyBlocks = busy
	opts.Reserved = scheduler.ExcludeSessions(all, moved)

	resp.Result = scheduler.RescheduleSessions(moved, prefs, opts)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteStores(tx, loc).Sessions.UpsertMany(ctx, resp.Result.Sessions)
	})
	if err != nil {
		return nil, fmt.Errorf("saving rescheduled sessions: %w", err)
	}

	resp.Moved = len(resp.Result.Sessions)
	fields["moved"] = resp.Moved
	fields["unplaced"] = len(resp.Result.Unplaced)
	return resp, nil
}
