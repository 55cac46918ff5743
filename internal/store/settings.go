package store

import (
	"encoding/json"
	"fmt"

	"github.com/sadopc/dpclog/internal/visit"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

const currentUserKey = "current_user"

// CurrentUser returns the persisted active user, or ok=false when none has
// been stored yet.
func (s *Store) CurrentUser() (visit.User, bool) {
	raw, err := s.GetSetting(currentUserKey)
	if err != nil {
		return visit.User{}, false
	}
	var u visit.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return visit.User{}, false
	}
	return u, true
}

// SetCurrentUser persists the active user across sessions.
func (s *Store) SetCurrentUser(u visit.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.SetSetting(currentUserKey, string(raw))
}
