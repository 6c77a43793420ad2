package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"plansync/core/entity"

	"github.com/google/uuid"
)

const (
	TypeInvite     = "invite"
	TypeResolution = "resolution"
	TypeProposal   = "proposal"
)

// NotificationData carries the structured payload of a notification, stored
// as JSONB.
type NotificationData map[string]any

func (d NotificationData) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *NotificationData) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for NotificationData: %T", value)
	}
	return json.Unmarshal(bytes, d)
}

type Notification struct {
	entity.BaseEntity
	UserID  uuid.UUID        `json:"user_id" db:"user_id"`
	Type    string           `json:"type" db:"type"`
	Title   string           `json:"title" db:"title"`
	Message string           `json:"message" db:"message"`
	Data    NotificationData `json:"data" db:"data"`
	IsRead  bool             `json:"is_read" db:"is_read"`
}
