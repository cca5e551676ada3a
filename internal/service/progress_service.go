package service

import (
	"context"
	"time"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/repository"
	"github.com/simibol/planpoint/internal/scheduler"
)

type progressService struct {
	sessions repository.PlannedSessionRepo
	settings Settings
}

func NewProgressService(sessions repository.PlannedSessionRepo, settings Settings) app.ProgressUseCase {
	return &progressService{sessions: sessions, settings: settings.normalized()}
}

func (s *progressService) Weekly(ctx context.Context, now time.Time) (*app.WeeklyResponse, error) {
	sessions, err := s.sessions.List(ctx, repository.SessionFilter{})
	if err != nil {
		return nil, dataIntegrity("listing sessions", err)
	}
	return &app.WeeklyResponse{
		GeneratedAt: now,
		Weeks:       scheduler.BuildWeeklySummaries(sessions, now, s.settings.Location),
	}, nil
}
