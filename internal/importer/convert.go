package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simibol/planpoint/internal/domain"
)

// Converted holds domain records ready for persistence.
type Converted struct {
	Assessments []domain.Assessment
	Milestones  []domain.Milestone
	BusyBlocks  []domain.BusyBlock
	Preferences *domain.PreferencesInput
}

// busyBlockNamespace keys derived busy-block ids so re-importing the same
// file updates rows instead of duplicating them.
var busyBlockNamespace = uuid.MustParse("8b1f3a52-5d8e-4c0b-9f4e-3a1d2c7e9b60")

// Convert transforms a validated ImportSchema into domain records. Dates are
// calendar days in loc. Call ValidateImportSchema first; Convert assumes the
// schema is valid.
func Convert(schema *ImportSchema, loc *time.Location) (*Converted, error) {
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().UTC()
	out := &Converted{Preferences: schema.Preferences}

	dueByTitle := make(map[string]time.Time, len(schema.Assessments))
	for _, a := range schema.Assessments {
		due, err := time.ParseInLocation(domain.DateLayout, a.DueDate, loc)
		if err != nil {
			return nil, fmt.Errorf("parsing due_date for %q: %w", a.Title, err)
		}
		dueByTitle[a.Title] = due
		out.Assessments = append(out.Assessments, domain.Assessment{
			ID:        uuid.New().String(),
			Title:     a.Title,
			DueDate:   due,
			Weight:    domain.ValueOr(domain.DefaultAssessmentWeight, a.Weight),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	for _, m := range schema.Milestones {
		var target *time.Time
		if m.TargetDate != nil {
			t, err := time.ParseInLocation(domain.DateLayout, *m.TargetDate, loc)
			if err != nil {
				return nil, fmt.Errorf("parsing target_date for %q: %w", m.Title, err)
			}
			target = &t
		}
		out.Milestones = append(out.Milestones, domain.Milestone{
			ID:                uuid.New().String(),
			Title:             m.Title,
			EstimateHours:     m.EstimateHours,
			TargetDate:        target,
			AssessmentTitle:   m.AssessmentTitle,
			AssessmentDueDate: dueByTitle[m.AssessmentTitle],
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	for _, b := range schema.BusyBlocks {
		start, err := parseBlockTime(b.Start, loc)
		if err != nil {
			return nil, fmt.Errorf("parsing busy block start %q: %w", b.Start, err)
		}
		end, err := parseBlockTime(b.End, loc)
		if err != nil {
			return nil, fmt.Errorf("parsing busy block end %q: %w", b.End, err)
		}
		id := b.ID
		if id == "" {
			id = uuid.NewSHA1(busyBlockNamespace, []byte(b.Title+"|"+start.UTC().Format(time.RFC3339)+"|"+end.UTC().Format(time.RFC3339))).String()
		}
		out.BusyBlocks = append(out.BusyBlocks, domain.BusyBlock{
			ID:    id,
			Title: b.Title,
			Start: start,
			End:   end,
		})
	}

	return out, nil
}
