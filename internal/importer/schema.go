package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simibol/planpoint/internal/domain"
)

// ImportSchema is the top-level structure of a planner data file.
type ImportSchema struct {
	Assessments []AssessmentImport       `json:"assessments" yaml:"assessments"`
	Milestones  []MilestoneImport        `json:"milestones" yaml:"milestones"`
	BusyBlocks  []BusyBlockImport        `json:"busy_blocks,omitempty" yaml:"busy_blocks,omitempty"`
	Preferences *domain.PreferencesInput `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

type AssessmentImport struct {
	Title   string   `json:"title" yaml:"title"`
	DueDate string   `json:"due_date" yaml:"due_date"`
	Weight  *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

type MilestoneImport struct {
	AssessmentTitle string  `json:"assessment_title" yaml:"assessment_title"`
	Title           string  `json:"title" yaml:"title"`
	EstimateHours   float64 `json:"estimate_hours" yaml:"estimate_hours"`
	TargetDate      *string `json:"target_date,omitempty" yaml:"target_date,omitempty"`
}

// BusyBlockImport times are RFC3339, or "YYYY-MM-DDTHH:MM" in the planner's
// time zone.
type BusyBlockImport struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Title string `json:"title" yaml:"title"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// LoadImportSchema reads a data file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
