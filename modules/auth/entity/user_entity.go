package entity

import (
	"plansync/core/entity"
)

// User is an account holder. Preferences drive AI suggestion generation.
type User struct {
	entity.BaseEntity
	Username    string           `db:"username" json:"username"`
	Password    string           `db:"password" json:"-"`
	Location    *string          `db:"location" json:"location,omitempty"`
	Preferences *UserPreferences `db:"preferences" json:"preferences,omitempty"`
	IsActive    bool             `db:"is_active" json:"is_active"`
}
