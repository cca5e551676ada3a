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

type plannerService struct {
	stores   Stores
	uow      db.UnitOfWork
	settings Settings
	ids      scheduler.IDSource
	observer UseCaseObserver
}

func NewPlannerService(stores Stores, uow db.UnitOfWork, settings Settings, observers ...UseCaseObserver) app.PlanUseCase {
	return &plannerService{
		stores:   stores,
		uow:      uow,
		settings: settings.normalized(),
		ids:      scheduler.UUIDSource{},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *plannerService) Preview(ctx context.Context, req app.PlanRequest) (resp *app.PlanResponse, err error) {
	fields := map[string]any{"fresh_ids": req.FreshIDs}
	done := track(ctx, s.observer, "plan-preview", fields)
	defer func() { done(err) }()

	resp, err = s.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	recordPlanFields(fields, resp.Result)
	return resp, nil
}

// Apply plans and replaces the stored plan in one transaction. A failure
// leaves the previous plan untouched.
func (s *plannerService) Apply(ctx context.Context, req app.PlanRequest) (resp *app.PlanResponse, err error) {
	fields := map[string]any{"fresh_ids": req.FreshIDs}
	done := track(ctx, s.observer, "plan-apply", fields)
	defer func() { done(err) }()

	resp, err = s.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	recordPlanFields(fields, resp.Result)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := NewSQLiteStores(tx, s.settings.Location).Sessions
		existing, err := sessions.List(ctx, repository.SessionFilter{})
		if err != nil {
			return dataIntegrity("loading current plan", err)
		}
		resp.Replaced = len(existing)
		return sessions.ReplaceAll(ctx, resp.Result.Sessions)
	})
	if err != nil {
		return nil, err
	}
	resp.Applied = true
	fields["replaced"] = resp.Replaced
	return resp, nil
}

func (s *plannerService) plan(ctx context.Context, req app.PlanRequest) (*app.PlanResponse, error) {
	loc := s.settings.Location
	now := s.settings.now(req.Now)
	start := now
	if req.Start != nil {
		start = req.Start.In(loc)
	}
	today := domain.DayOf(now, loc)
	startDay := domain.DayOf(start, loc)
	if startDay.Before(today) {
		return nil, &app.PlanError{
			Code:    app.PlanErrInvalidRange,
			Message: fmt.Sprintf("plan start %s is before today %s", startDay.Format(domain.DateLayout), today.Format(domain.DateLayout)),
		}
	}

	milestones, err := s.stores.Milestones.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	if len(milestones) == 0 {
		return nil, &app.PlanError{Code: app.PlanErrNoMilestones, Message: "no milestones to plan; import some first"}
	}

	assessments, err := s.stores.Assessments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading assessments: %w", err)
	}
	prefs, err := loadPreferences(ctx, s.stores, s.settings)
	if err != nil {
		return nil, err
	}
	busy, err := s.stores.BusyBlocks.ListBetween(ctx, startDay, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("loading busy blocks: %w", err)
	}

	opts := scheduler.PlanOptions{
		Start:      startDay,
		Now:        now,
		BusyBlocks: busy,
		FreshIDs:   req.FreshIDs,
		IDs:        s.ids,
		Weights:    &s.settings.Weights,
		Location:   loc,
	}
	// Today's hours that already passed are not offered.
	if startDay.Equal(today) {
		opts.NotBefore = now
	}

	result := scheduler.PlanMilestones(milestones, assessments, prefs.Merge(req.Preferences), opts)
	return &app.PlanResponse{GeneratedAt: now, Result: result}, nil
}

// loadPreferences layers stored preferences over the configured ones.
func loadPreferences(ctx context.Context, stores Stores, settings Settings) (domain.PreferencesInput, error) {
	stored, err := stores.Preferences.Get(ctx)
	if err != nil {
		return domain.PreferencesInput{}, fmt.Errorf("loading preferences: %w", err)
	}
	return settings.Preferences.Merge(stored), nil
}

func recordPlanFields(fields map[string]any, r domain.PlanResult) {
	fields["sessions"] = len(r.Sessions)
	fields["unplaced"] = len(r.Unplaced)
	fields["warnings"] = len(r.Warnings)
	fields["version"] = r.Version
}
