package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

const (
	collectionNotifications = "notifications"
	collectionSettings      = "notification_settings"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Notification
	for cur.Next(ctx) {
		var n domain.Notification
		if err := cur.Decode(&n); err != nil {
			return nil, fmt.Errorf("list notifications: decode: %w", err)
		}
		out = append(out, &n)
	}
	return out, cur.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// ClearAll removes the user's non-persistent notifications. Persistent
// entries survive an explicit clear.
func (r *NotificationRepository) ClearAll(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID, "persistent": false})
	if err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the notifications collection.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// SettingsRepository persists per-user notification settings.
type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

// settingsDoc wraps the settings with their owner. Settings fields are
// pointers so a stored blob from an older version that misses a newly
// introduced key leaves the default in place instead of zeroing it.
type settingsDoc struct {
	UserID            string  `bson:"_id"`
	Enabled           *bool   `bson:"enabled,omitempty"`
	Achievements      *bool   `bson:"achievements,omitempty"`
	Warnings          *bool   `bson:"warnings,omitempty"`
	DistractionAlerts *bool   `bson:"distraction_alerts,omitempty"`
	Sound             *bool   `bson:"sound,omitempty"`
	LastAlertDay      *string `bson:"last_alert_day,omitempty"`
}

// merge lays the stored fields over defaults. A nil pointer means the key
// was absent from the stored blob and the default stands.
func (d settingsDoc) merge(defaults domain.NotificationSettings) domain.NotificationSettings {
	merged := defaults
	if d.Enabled != nil {
		merged.Enabled = *d.Enabled
	}
	if d.Achievements != nil {
		merged.Achievements = *d.Achievements
	}
	if d.Warnings != nil {
		merged.Warnings = *d.Warnings
	}
	if d.DistractionAlerts != nil {
		merged.DistractionAlerts = *d.DistractionAlerts
	}
	if d.Sound != nil {
		merged.Sound = *d.Sound
	}
	if d.LastAlertDay != nil {
		merged.LastAlertDay = *d.LastAlertDay
	}
	return merged
}

// Load returns the stored settings merged over defaults. A user with no
// stored document gets the defaults; an undecodable document is treated the
// same way rather than propagated as a failure.
func (r *SettingsRepository) Load(ctx context.Context, userID string) (domain.NotificationSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	defaults := domain.DefaultNotificationSettings()

	var doc settingsDoc
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("load notification settings: %w", err)
	}

	return doc.merge(defaults), nil
}

func (r *SettingsRepository) Save(ctx context.Context, userID string, s domain.NotificationSettings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := settingsDoc{
		UserID:            userID,
		Enabled:           &s.Enabled,
		Achievements:      &s.Achievements,
		Warnings:          &s.Warnings,
		DistractionAlerts: &s.DistractionAlerts,
		Sound:             &s.Sound,
	}
	if s.LastAlertDay != "" {
		doc.LastAlertDay = &s.LastAlertDay
	}

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": userID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save notification settings: %w", err)
	}
	return nil
}
