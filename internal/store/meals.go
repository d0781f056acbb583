package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// LoadCompletedMeals returns the user's meal completion map for a diet
// plan. A missing or undecodable row yields an empty map.
func (s *Store) LoadCompletedMeals(userID string, planID int64) (map[string]bool, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT meals FROM completed_meals WHERE user_id = ? AND plan_id = ?`,
		userID, planID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load completed meals: %w", err)
	}

	m := map[string]bool{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]bool{}, nil
	}
	return m, nil
}

// SaveCompletedMeals writes the completion map, replacing any previous one.
func (s *Store) SaveCompletedMeals(userID string, planID int64, m map[string]bool) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal completed meals: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO completed_meals (user_id, plan_id, meals) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, plan_id) DO UPDATE SET meals = excluded.meals`,
		userID, planID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save completed meals: %w", err)
	}
	return nil
}

// ToggleMeal flips one "dayIndex-mealIndex" key and persists the map.
// It returns the new value of the flag.
func (s *Store) ToggleMeal(userID string, planID int64, key string) (bool, error) {
	m, err := s.LoadCompletedMeals(userID, planID)
	if err != nil {
		return false, err
	}
	if m[key] {
		delete(m, key)
	} else {
		m[key] = true
	}
	if err := s.SaveCompletedMeals(userID, planID, m); err != nil {
		return false, err
	}
	return m[key], nil
}
