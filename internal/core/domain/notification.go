package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// NotificationType identifies the producer category.
type NotificationType string

const (
	NotificationAchievement NotificationType = "achievement"
	NotificationWarning     NotificationType = "warning"
	NotificationDistraction NotificationType = "distraction"
	NotificationSystem      NotificationType = "system"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a single user-facing alert in the ledger.
type Notification struct {
	ID         string           `json:"id" bson:"_id"`
	UserID     string           `json:"user_id" bson:"user_id"`
	Type       NotificationType `json:"type" bson:"type"`
	Title      string           `json:"title" bson:"title"`
	Message    string           `json:"message" bson:"message"`
	Severity   Severity         `json:"severity" bson:"severity"`
	ActionURL  string           `json:"action_url,omitempty" bson:"action_url,omitempty"`
	Persistent bool             `json:"persistent" bson:"persistent"`
	Read       bool             `json:"read" bson:"read"`
	CreatedAt  time.Time        `json:"created_at" bson:"created_at"`
}

var notificationSeq atomic.Uint64

// NewNotificationID generates an ID unique within the process lifetime even
// under rapid consecutive calls: wall-clock millis alone can collide, so a
// monotonic counter and a random suffix are mixed in.
func NewNotificationID() string {
	seq := notificationSeq.Add(1)
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("ntf-%d-%d", time.Now().UnixMilli(), seq)
	}
	return fmt.Sprintf("ntf-%d-%d-%08X", time.Now().UnixMilli(), seq, b)
}

// NotificationSettings are the per-user toggles for the notification center.
// Stored blobs from older versions may miss newly introduced keys; loading
// merges them over these defaults so a missing key falls back rather than
// erroring.
type NotificationSettings struct {
	Enabled           bool   `json:"enabled" bson:"enabled"`
	Achievements      bool   `json:"achievements" bson:"achievements"`
	Warnings          bool   `json:"warnings" bson:"warnings"`
	DistractionAlerts bool   `json:"distraction_alerts" bson:"distraction_alerts"`
	Sound             bool   `json:"sound" bson:"sound"`
	LastAlertDay      string `json:"last_alert_day,omitempty" bson:"last_alert_day,omitempty"`
}

// DefaultNotificationSettings returns the settings applied to a user who has
// never saved any.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:           true,
		Achievements:      true,
		Warnings:          true,
		DistractionAlerts: true,
		Sound:             false,
	}
}

// AllowsType reports whether the settings permit posting a notification of
// the given type. The master switch wins over per-type toggles.
func (s NotificationSettings) AllowsType(t NotificationType) bool {
	if !s.Enabled {
		return false
	}
	switch t {
	case NotificationAchievement:
		return s.Achievements
	case NotificationWarning:
		return s.Warnings
	case NotificationDistraction:
		return s.DistractionAlerts
	default:
		return true
	}
}
