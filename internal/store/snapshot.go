package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// LoadSnapshot returns the user's persisted session snapshot, or nil when
// none exists. A snapshot that fails to decode is discarded on the spot
// and reported as absent, so a corrupt row can never wedge session
// recovery.
func (s *Store) LoadSnapshot(userID string) (*SessionSnapshot, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT snapshot FROM session_snapshots WHERE user_id = ?`, userID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	snap := &SessionSnapshot{}
	if err := json.Unmarshal([]byte(raw), snap); err != nil {
		s.ClearSnapshot(userID)
		return nil, nil
	}
	if snap.CompletedSets == nil {
		snap.CompletedSets = make(map[string]bool)
	}
	return snap, nil
}

// SaveSnapshot writes the snapshot, replacing any previous one.
func (s *Store) SaveSnapshot(userID string, snap *SessionSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO session_snapshots (user_id, snapshot, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		userID, string(raw), now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// ClearSnapshot deletes the user's snapshot, if any.
func (s *Store) ClearSnapshot(userID string) error {
	_, err := s.db.Exec(`DELETE FROM session_snapshots WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// FinishSession appends the log and clears the snapshot in one
// transaction, so a finished session can never leave both a log and a
// resumable snapshot behind, nor neither.
func (s *Store) FinishSession(userID string, l *WorkoutLog) error {
	exercises, err := json.Marshal(l.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin finish session: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(
		`INSERT INTO workout_logs (user_id, date, title, exercises_completed, total_exercises, duration, exercises, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, l.Date.UTC().Format(time.RFC3339), l.Title,
		l.ExercisesCompleted, l.TotalExercises, l.DurationSeconds, string(exercises), now,
	)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM session_snapshots WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finish session: %w", err)
	}

	l.ID, _ = res.LastInsertId()
	l.UserID = userID
	return nil
}
