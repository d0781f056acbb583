package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

// filePlan is the import format: a plain JSON rendering of a plan with a
// date-only start field.
type filePlan struct {
	Kind          string          `json:"kind"`
	Title         string          `json:"title"`
	StartDate     string          `json:"start_date"` // 2006-01-02
	DurationWeeks int             `json:"duration_weeks"`
	Schedule      []store.DaySlot `json:"schedule"`
}

// LoadFile reads a plan from a JSON file, for plans produced elsewhere
// (e.g. an external generator) and dropped on disk.
func LoadFile(path string) (*store.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var fp filePlan
	if err := json.Unmarshal(data, &fp); err != nil {
		return nil, fmt.Errorf("decode plan file: %w", err)
	}
	if fp.Kind != store.KindWorkout && fp.Kind != store.KindDiet {
		return nil, fmt.Errorf("plan file: unknown kind %q", fp.Kind)
	}
	if len(fp.Schedule) != 7 {
		return nil, fmt.Errorf("plan file: schedule has %d days, want 7", len(fp.Schedule))
	}

	p := &store.Plan{
		Kind:          fp.Kind,
		Title:         fp.Title,
		DurationWeeks: fp.DurationWeeks,
		Schedule:      fp.Schedule,
	}
	if fp.StartDate != "" {
		start, err := time.Parse("2006-01-02", fp.StartDate)
		if err != nil {
			return nil, fmt.Errorf("plan file: bad start_date %q: %w", fp.StartDate, err)
		}
		p.StartDate = start
	}
	if p.Kind == store.KindWorkout && p.DurationWeeks < 1 {
		p.DurationWeeks = 1
	}
	return p, nil
}
