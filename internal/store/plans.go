package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SaveActivePlan stores p as the user's active plan of its kind,
// deactivating any predecessor. Replacing a diet plan also clears the
// meal completion map that referenced the old plan's day indices.
func (s *Store) SaveActivePlan(userID string, p *Plan) error {
	schedule, err := json.Marshal(p.Schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save plan: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE plans SET active = 0 WHERE user_id = ? AND kind = ? AND active = 1`,
		userID, p.Kind,
	); err != nil {
		return fmt.Errorf("deactivate old plan: %w", err)
	}
	if p.Kind == KindDiet {
		if _, err := tx.Exec(
			`DELETE FROM completed_meals WHERE user_id = ?`, userID,
		); err != nil {
			return fmt.Errorf("reset completed meals: %w", err)
		}
	}

	var startDate any
	if !p.StartDate.IsZero() {
		startDate = p.StartDate.UTC().Format(time.RFC3339)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(
		`INSERT INTO plans (user_id, kind, title, start_date, duration_weeks, schedule, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 1, ?)`,
		userID, p.Kind, p.Title, startDate, p.DurationWeeks, string(schedule), now,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save plan: %w", err)
	}

	p.ID, _ = res.LastInsertId()
	p.UserID = userID
	p.Active = true
	return nil
}

// GetActivePlan returns the user's active plan of the given kind, or nil
// when there is none. A plan whose stored schedule fails to decode comes
// back with an empty schedule rather than an error; plan data is
// best-effort.
func (s *Store) GetActivePlan(userID, kind string) (*Plan, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, kind, title, start_date, duration_weeks, schedule, active, created_at
		 FROM plans WHERE user_id = ? AND kind = ? AND active = 1
		 ORDER BY id DESC LIMIT 1`,
		userID, kind,
	)
	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active plan: %w", err)
	}
	return p, nil
}

// GetPlan returns the plan with the given id.
func (s *Store) GetPlan(id int64) (*Plan, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, kind, title, start_date, duration_weeks, schedule, active, created_at
		 FROM plans WHERE id = ?`, id,
	)
	p, err := scanPlan(row)
	if err != nil {
		return nil, fmt.Errorf("get plan %d: %w", id, err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*Plan, error) {
	p := &Plan{}
	var startDate sql.NullString
	var schedule, createdAt string
	var active int

	err := row.Scan(&p.ID, &p.UserID, &p.Kind, &p.Title, &startDate,
		&p.DurationWeeks, &schedule, &active, &createdAt)
	if err != nil {
		return nil, err
	}
	p.Active = active != 0
	if startDate.Valid {
		p.StartDate, _ = time.Parse(time.RFC3339, startDate.String)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if err := json.Unmarshal([]byte(schedule), &p.Schedule); err != nil {
		// Corrupt schedule: degrade to an empty one instead of failing.
		p.Schedule = nil
	}
	return p, nil
}
