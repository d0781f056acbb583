package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Logs       []jsonLog `json:"logs"`
}

type jsonLog struct {
	ID          int64                  `json:"id"`
	Date        string                 `json:"date"`
	Title       string                 `json:"title"`
	Completed   int                    `json:"exercises_completed"`
	Total       int                    `json:"total_exercises"`
	DurationSec int64                  `json:"duration_seconds"`
	Duration    string                 `json:"duration"`
	VolumeKg    float64                `json:"volume_kg,omitempty"`
	Exercises   []store.ExerciseResult `json:"exercises,omitempty"`
}

func ToJSON(logs []store.WorkoutLog, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(logs),
	}

	for _, l := range logs {
		export.Logs = append(export.Logs, jsonLog{
			ID:          l.ID,
			Date:        l.Date.Local().Format(time.RFC3339),
			Title:       l.Title,
			Completed:   l.ExercisesCompleted,
			Total:       l.TotalExercises,
			DurationSec: l.DurationSeconds,
			Duration:    formatDuration(l.DurationSeconds),
			VolumeKg:    volume(l),
			Exercises:   l.Exercises,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
