package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

const collectionDailyStats = "daily_stats"

type StatsRepository struct {
	col *mongo.Collection
	log zerolog.Logger
}

func NewStatsRepository(db *mongo.Database, log zerolog.Logger) *StatsRepository {
	return &StatsRepository{col: db.Collection(collectionDailyStats), log: log}
}

func (r *StatsRepository) FindByDay(ctx context.Context, userID, day string) (*domain.DailyStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.DailyStats
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "day": day}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStatsNotFound
		}
		return nil, fmt.Errorf("find daily stats: %w", err)
	}
	return &s, nil
}

// upsertInc applies atomic $inc updates, creating the day's record with the
// default goals when it does not exist yet.
func (r *StatsRepository) upsertInc(ctx context.Context, userID, day string, inc bson.M, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$inc": inc,
		"$setOnInsert": bson.M{
			"daily_goal":  domain.DefaultDailyGoal,
			"weekly_goal": domain.DefaultWeeklyGoal,
		},
	}
	if len(set) > 0 {
		update["$set"] = set
	}

	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID, "day": day},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *StatsRepository) RecordSessionStart(ctx context.Context, userID, day string) error {
	return r.upsertInc(ctx, userID, day, bson.M{"sessions_started": 1}, nil)
}

func (r *StatsRepository) RecordSessionComplete(ctx context.Context, userID, day string, focusMinutes int, productivity float64) error {
	return r.upsertInc(ctx, userID, day,
		bson.M{"sessions_completed": 1, "focus_minutes": focusMinutes},
		bson.M{"productivity_score": productivity},
	)
}

func (r *StatsRepository) RecordDistraction(ctx context.Context, userID, day string) error {
	return r.upsertInc(ctx, userID, day, bson.M{"distractions": 1}, nil)
}

// ListRecent returns up to days records for the user, newest first. A single
// undecodable document is skipped and logged rather than aborting the whole
// listing.
func (r *StatsRepository) ListRecent(ctx context.Context, userID string, days int) ([]*domain.DailyStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "day", Value: -1}}).
		SetLimit(int64(days))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.DailyStats
	for cur.Next(ctx) {
		var s domain.DailyStats
		if err := cur.Decode(&s); err != nil {
			r.log.Warn().Err(err).Str("user_id", userID).Msg("skipping undecodable daily stats record")
			continue
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

// EnsureIndexes creates necessary indexes on the daily_stats collection.
func (r *StatsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "day", Value: -1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
