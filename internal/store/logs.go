package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// AppendLog inserts a finished workout log and fills in its ID.
func (s *Store) AppendLog(userID string, l *WorkoutLog) error {
	exercises, err := json.Marshal(l.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO workout_logs (user_id, date, title, exercises_completed, total_exercises, duration, exercises, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, l.Date.UTC().Format(time.RFC3339), l.Title,
		l.ExercisesCompleted, l.TotalExercises, l.DurationSeconds, string(exercises), now,
	)
	if err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	l.ID, _ = res.LastInsertId()
	l.UserID = userID
	return nil
}

// ListLogs returns the user's workout logs, newest first.
func (s *Store) ListLogs(userID string, f LogFilter) ([]WorkoutLog, error) {
	query := `SELECT id, user_id, date, title, exercises_completed, total_exercises, duration, exercises, created_at
	          FROM workout_logs WHERE user_id = ?`
	args := []any{userID}

	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND date < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []WorkoutLog
	for rows.Next() {
		var l WorkoutLog
		var date, exercises, createdAt string
		if err := rows.Scan(&l.ID, &l.UserID, &date, &l.Title,
			&l.ExercisesCompleted, &l.TotalExercises, &l.DurationSeconds,
			&exercises, &createdAt); err != nil {
			return nil, err
		}
		l.Date, _ = time.Parse(time.RFC3339, date)
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if err := json.Unmarshal([]byte(exercises), &l.Exercises); err != nil {
			// Corrupt exercise detail: keep the log's headline numbers.
			l.Exercises = nil
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// DeleteLog removes one log by id. Deleting a log that does not exist or
// belongs to another user is a no-op.
func (s *Store) DeleteLog(userID string, id int64) error {
	_, err := s.db.Exec(
		`DELETE FROM workout_logs WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete log %d: %w", id, err)
	}
	return nil
}
