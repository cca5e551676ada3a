package service

import (
	"context"
	"fmt"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/importer"
)

// ImportService loads planner data files into the store.
type ImportService struct {
	uow      db.UnitOfWork
	settings Settings
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, settings Settings, observers ...UseCaseObserver) *ImportService {
	return &ImportService{
		uow:      uow,
		settings: settings.normalized(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *ImportService) Import(ctx context.Context, path string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates the whole file first and then writes every record
// in one transaction. Assessments and milestones are matched by title, so
// re-importing a file updates rows in place.
func (s *ImportService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "import", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(schema, s.settings.Location)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stores := NewSQLiteStores(tx, s.settings.Location)

		for i := range converted.Assessments {
			if err := stores.Assessments.Upsert(ctx, &converted.Assessments[i]); err != nil {
				return err
			}
		}
		for i := range converted.Milestones {
			if err := stores.Milestones.Upsert(ctx, &converted.Milestones[i]); err != nil {
				return err
			}
		}
		for i := range converted.BusyBlocks {
			if err := stores.BusyBlocks.Upsert(ctx, &converted.BusyBlocks[i]); err != nil {
				return err
			}
		}
		if converted.Preferences != nil {
			stored, err := stores.Preferences.Get(ctx)
			if err != nil {
				return fmt.Errorf("loading preferences: %w", err)
			}
			if err := stores.Preferences.Save(ctx, stored.Merge(*converted.Preferences)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		Assessments:        len(converted.Assessments),
		Milestones:         len(converted.Milestones),
		BusyBlocks:         len(converted.BusyBlocks),
		PreferencesUpdated: converted.Preferences != nil,
	}
	fields["assessments"] = result.Assessments
	fields["milestones"] = result.Milestones
	fields["busy_blocks"] = result.BusyBlocks
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
