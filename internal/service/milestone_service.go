package service

import (
	"context"
	"fmt"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/repository"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	uow        db.UnitOfWork
	settings   Settings
	observer   UseCaseObserver
}

func NewMilestoneService(milestones repository.MilestoneRepo, uow db.UnitOfWork, settings Settings, observers ...UseCaseObserver) app.MilestoneUseCase {
	return &milestoneService{
		milestones: milestones,
		uow:        uow,
		settings:   settings.normalized(),
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *milestoneService) List(ctx context.Context) ([]domain.Milestone, error) {
	return s.milestones.List(ctx)
}

// Delete removes the milestone and every planned session for it in one
// transaction, so no orphaned sessions survive until the next apply.
func (s *milestoneService) Delete(ctx context.Context, id string) (removed int64, err error) {
	fields := map[string]any{"milestone": id}
	done := track(ctx, s.observer, "delete-milestone", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stores := NewSQLiteStores(tx, s.settings.Location)
		m, err := stores.Milestones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		removed, err = stores.Sessions.DeleteByMilestone(ctx, m.AssessmentTitle, m.Title)
		if err != nil {
			return err
		}
		if err := stores.Milestones.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting milestone: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["sessions_removed"] = removed
	return removed, nil
}
