package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

func sampleLogs() []store.WorkoutLog {
	now := time.Now().UTC()

	return []store.WorkoutLog{
		{
			ID:                 1,
			UserID:             "local",
			Date:               now.Add(-48 * time.Hour),
			Title:              "Push day",
			ExercisesCompleted: 3,
			TotalExercises:     3,
			DurationSeconds:    3600,
			Exercises: []store.ExerciseResult{
				{
					Name: "Bench Press", MuscleGroup: "chest",
					SetsPlanned: 4, SetsDone: 4,
					Performed: []store.PerformedSet{
						{WeightKg: 80, Reps: 8},
						{WeightKg: 80, Reps: 7},
					},
				},
			},
			CreatedAt: now,
		},
		{
			ID:                 2,
			UserID:             "local",
			Date:               now.Add(-24 * time.Hour),
			Title:              `Legs, "heavy"`,
			ExercisesCompleted: 1,
			TotalExercises:     2,
			DurationSeconds:    1800,
			CreatedAt:          now,
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleLogs(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 data rows
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"ID", "Date", "Title", "Completed", "Total", "Duration (s)", "Duration", "Volume (kg)"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "1" {
		t.Fatalf("ID = %q, want 1", row[0])
	}
	if row[2] != "Push day" {
		t.Fatalf("Title = %q", row[2])
	}
	if row[5] != "3600" {
		t.Fatalf("Duration (s) = %q, want 3600", row[5])
	}
	if row[6] != "01:00:00" {
		t.Fatalf("Duration = %q, want 01:00:00", row[6])
	}
	if row[7] != "1200.0" { // 80*8 + 80*7
		t.Fatalf("Volume = %q, want 1200.0", row[7])
	}

	// Titles with quotes and commas must survive the round trip.
	if records[2][2] != `Legs, "heavy"` {
		t.Fatalf("title mangled: %q", records[2][2])
	}
	// No performed sets recorded: volume is zero.
	if records[2][7] != "0.0" {
		t.Fatalf("volume without performed sets = %q, want 0.0", records[2][7])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleLogs(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("count = %d, want 2", result.Count)
	}
	if len(result.Logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(result.Logs))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	l := result.Logs[0]
	if l.ID != 1 || l.Title != "Push day" {
		t.Fatalf("unexpected log: %+v", l)
	}
	if l.Completed != 3 || l.Total != 3 {
		t.Fatalf("completed %d/%d, want 3/3", l.Completed, l.Total)
	}
	if l.Duration != "01:00:00" || l.DurationSec != 3600 {
		t.Fatalf("duration %q / %d", l.Duration, l.DurationSec)
	}
	if l.VolumeKg != 1200 {
		t.Fatalf("volume = %v, want 1200", l.VolumeKg)
	}
	if len(l.Exercises) != 1 {
		t.Fatal("exercise detail should be included")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Logs != nil {
		t.Fatal("logs should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(sampleLogs(), path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	for _, l := range result.Logs {
		if _, err := time.Parse(time.RFC3339, l.Date); err != nil {
			t.Fatalf("date is not valid RFC3339: %q", l.Date)
		}
	}
}

// ============================================================
// formatDuration (internal helper)
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{60, "00:01:00"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.secs)
		if got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
