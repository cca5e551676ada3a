package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/repository"
	"github.com/simibol/planpoint/internal/scheduler"
)

// Stores bundles the planner repositories that share one database.
type Stores struct {
	Assessments repository.AssessmentRepo
	Milestones  repository.MilestoneRepo
	BusyBlocks  repository.BusyBlockRepo
	Preferences repository.PreferencesRepo
	Sessions    repository.PlannedSessionRepo
}

// NewSQLiteStores builds every SQLite repository over conn. Services call it
// with a transaction to get tx-scoped repositories.
func NewSQLiteStores(conn db.DBTX, loc *time.Location) Stores {
	return Stores{
		Assessments: repository.NewSQLiteAssessmentRepo(conn, loc),
		Milestones:  repository.NewSQLiteMilestoneRepo(conn, loc),
		BusyBlocks:  repository.NewSQLiteBusyBlockRepo(conn, loc),
		Preferences: repository.NewSQLitePreferencesRepo(conn),
		Sessions:    repository.NewSQLitePlannedSessionRepo(conn, loc),
	}
}

// Settings carries the planner configuration shared by the services.
type Settings struct {
	Location *time.Location
	Weights  scheduler.ScoringWeights
	// Preferences sit underneath the stored preferences.
	Preferences domain.PreferencesInput
	Clock       func() time.Time
}

func (s Settings) normalized() Settings {
	if s.Location == nil {
		s.Location = time.UTC
	}
	if s.Weights == (scheduler.ScoringWeights{}) {
		s.Weights = scheduler.DefaultWeights()
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}
	return s
}

func (s Settings) now(override *time.Time) time.Time {
	if override != nil {
		return override.In(s.Location)
	}
	return s.Clock().In(s.Location)
}

// dataIntegrity turns unreadable stored values into a PlanError so callers
// can tell corrupt data apart from infrastructure failures.
func dataIntegrity(op string, err error) error {
	if errors.Is(err, domain.ErrUnknownEnum) {
		return &app.PlanError{Code: app.PlanErrDataIntegrity, Message: fmt.Sprintf("%s: %v", op, err)}
	}
	return fmt.Errorf("%s: %w", op, err)
}
