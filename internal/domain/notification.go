package domain

import (
	"encoding/json"
	"time"
)

// NotificationCategory partitions dashboard notifications by the
// is_activity flag.
type NotificationCategory string

const (
	CategoryActivity NotificationCategory = "activity"
	CategoryPush     NotificationCategory = "push"
)

func (c NotificationCategory) IsActivity() bool {
	return c == CategoryActivity
}

func (c NotificationCategory) IsValid() bool {
	return c == CategoryActivity || c == CategoryPush
}

type Notification struct {
	ID                  int64     `json:"id" db:"id"`
	UserID              int64     `json:"user_id" db:"user_id"`
	NotificationName    int       `json:"notification_name" db:"notification_name"`
	NotificationCreated time.Time `json:"notification_created" db:"notification_created"`
}

type DashboardNotification struct {
	ID           int64           `json:"id" db:"id"`
	Viewed       bool            `json:"viewed" db:"viewed"`
	IsActivity   bool            `json:"is_activity" db:"is_activity"`
	String       string          `json:"string" db:"string"`
	Data         json.RawMessage `json:"data,omitempty" db:"data"`
	Notification Notification    `json:"notification" db:"notification"`

	// OwnerAddress is the public address of the notification's user.
	OwnerAddress string `json:"-" db:"owner_address"`
}
