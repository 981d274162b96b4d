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

const collectionSessions = "focus_sessions"

type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

// Create inserts a new focus session document.
func (r *SessionRepository) Create(ctx context.Context, s *domain.FocusSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FindByID retrieves a session by id. When userID is non-empty, an
// additional filter by user_id is applied so callers only see their own.
func (r *SessionRepository) FindByID(ctx context.Context, id string, userID string) (*domain.FocusSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if userID != "" {
		filter["user_id"] = userID
	}

	var s domain.FocusSession
	err := r.col.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

// Finish sets the terminal status, end time and actual duration.
func (r *SessionRepository) Finish(ctx context.Context, id string, status domain.SessionStatus, endedAt time.Time, actualMinutes int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":         status,
			"ended_at":       endedAt,
			"actual_minutes": actualMinutes,
		}},
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// ListByUser returns the user's sessions, most recent first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.FocusSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.FocusSession
	for cur.Next(ctx) {
		var s domain.FocusSession
		if err := cur.Decode(&s); err != nil {
			return nil, fmt.Errorf("list sessions: decode: %w", err)
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

// EnsureIndexes creates necessary indexes on the focus_sessions collection.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "started_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
