package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// UserPreferences is stored as JSONB on the users table.
type UserPreferences struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Interests           []string `json:"interests"`
	ActivityTypes       []string `json:"activity_types"`
}

func (p UserPreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *UserPreferences) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}
