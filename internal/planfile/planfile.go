// Package planfile loads offline plans from YAML or JSON files.
package planfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/ledger"
	"github.com/osse101/QuestPlanner_Go/internal/validation"
)

// DateLayout is the format of the start field
const DateLayout = time.DateOnly

// File is an offline plan. Quests carry their own experience so no catalog is needed.
type File struct {
	Username        string         `json:"username"`
	CurrentXP       *float64       `json:"current_xp"`
	TargetLevel     int            `json:"target_level"`
	DailyChallenges float64        `json:"daily_challenges"`
	Start           string         `json:"start"`
	Quests          []domain.Quest `json:"quests"`
}

// Load reads, validates and decodes a plan file. Files ending in .json are read as JSON,
// everything else as YAML.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}
	return Parse(raw, strings.EqualFold(filepath.Ext(path), ".json"))
}

// Parse validates and decodes plan bytes
func Parse(raw []byte, isJSON bool) (*File, error) {
	data := raw
	if !isJSON {
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: invalid YAML: %v", domain.ErrInvalidInput, err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: unsupported YAML value: %v", domain.ErrInvalidInput, err)
		}
		data = converted
	}

	if err := validation.NewSchemaValidator().ValidateBytes(data, validation.PlanSchema); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return &f, nil
}

// Selection builds the ledger selection for the file's quests
func (f *File) Selection() ledger.Selection {
	return ledger.NewSelection(f.Quests...)
}

// StartDate parses the start field in loc. An empty field yields the zero time.
func (f *File) StartDate(loc *time.Location) (time.Time, error) {
	if f.Start == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, f.Start, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start: %v", domain.ErrInvalidInput, err)
	}
	return t, nil
}
