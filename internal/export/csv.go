package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

func ToCSV(logs []store.WorkoutLog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Title", "Completed", "Total", "Duration (s)", "Duration", "Volume (kg)"}); err != nil {
		return err
	}

	for _, l := range logs {
		row := []string{
			fmt.Sprintf("%d", l.ID),
			l.Date.Local().Format(time.RFC3339),
			l.Title,
			fmt.Sprintf("%d", l.ExercisesCompleted),
			fmt.Sprintf("%d", l.TotalExercises),
			fmt.Sprintf("%d", l.DurationSeconds),
			formatDuration(l.DurationSeconds),
			fmt.Sprintf("%.1f", volume(l)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func volume(l store.WorkoutLog) float64 {
	var v float64
	for _, ex := range l.Exercises {
		for _, ps := range ex.Performed {
			v += ps.WeightKg * float64(ps.Reps)
		}
	}
	return v
}
