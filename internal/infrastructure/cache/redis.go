package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

const scanBatch = 200

// NewRedisClient connects to redis, retrying the first ping with backoff
func NewRedisClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	ping := func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			if logger != nil {
				logger.Warn("Redis not ready, retrying", zap.String("addr", cfg.GetRedisAddr()), zap.Error(err))
			}
			return err
		}
		return nil
	}
	if err := backoff.Retry(ping, backoff.WithContext(bo, ctx)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisSuppressionStore persists alert suppressions as TTL keys so that
// expired entries disappear on their own. Permanent dismissals are kept in
// memory only and therefore end with the process.
type RedisSuppressionStore struct {
	client       redis.UniversalClient
	keys         suppressionKeys
	lastAlertTTL time.Duration
	clock        clock.Clock
	logger       *zap.Logger
}

// NewRedisSuppressionStore creates a new redis backed suppression store.
// lastAlertTTL should match the suppression duration; zero keeps keys forever.
func NewRedisSuppressionStore(client redis.UniversalClient, prefix string, lastAlertTTL time.Duration, clk clock.Clock, logger *zap.Logger) *RedisSuppressionStore {
	if prefix == "" {
		prefix = "voiceid"
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSuppressionStore{
		client:       client,
		keys:         suppressionKeys{prefix: prefix},
		lastAlertTTL: lastAlertTTL,
		clock:        clk,
		logger:       logger,
	}
}

// SetDismissal stores a time-boxed dismissal
func (s *RedisSuppressionStore) SetDismissal(ctx context.Context, speakerID string, d entities.Dismissal) error {
	key := s.keys.dismissal(speakerID)
	if d.Permanent {
		s.logger.Debug("Permanent dismissal not persisted", zap.String("speaker_id", speakerID))
		return nil
	}
	value, ttl, ok := encodeDismissal(d, s.clock.Now())
	if !ok {
		return s.del(ctx, key)
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store dismissal: %w", err)
	}
	return nil
}

// SetDeferral stores a deferral that expires at until
func (s *RedisSuppressionStore) SetDeferral(ctx context.Context, speakerID string, until time.Time) error {
	key := s.keys.deferral(speakerID)
	ttl := until.Sub(s.clock.Now())
	if ttl <= 0 {
		return s.del(ctx, key)
	}
	if err := s.client.Set(ctx, key, encodeTime(until), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store deferral: %w", err)
	}
	return nil
}

// SetLastAlert stores the last alert time of a speaker
func (s *RedisSuppressionStore) SetLastAlert(ctx context.Context, speakerID string, at time.Time) error {
	if err := s.client.Set(ctx, s.keys.lastAlert(speakerID), encodeTime(at), s.lastAlertTTL).Err(); err != nil {
		return fmt.Errorf("failed to store last alert: %w", err)
	}
	return nil
}

// Load scans every suppression key under the prefix
func (s *RedisSuppressionStore) Load(ctx context.Context, now time.Time) (entities.Suppressions, error) {
	out := entities.NewSuppressions()

	var keys []string
	iter := s.client.Scan(ctx, 0, s.keys.root()+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return out, fmt.Errorf("failed to scan suppressions: %w", err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		chunk := keys[start:min(start+scanBatch, len(keys))]
		values, err := s.client.MGet(ctx, chunk...).Result()
		if err != nil {
			return out, fmt.Errorf("failed to read suppressions: %w", err)
		}
		for i, v := range values {
			value, ok := v.(string)
			if !ok {
				// expired between SCAN and MGET
				continue
			}
			if err := s.keys.decodeInto(&out, chunk[i], value, now); err != nil {
				s.logger.Warn("Skipping unreadable suppression", zap.String("key", chunk[i]), zap.Error(err))
			}
		}
	}

	s.logger.Debug("Suppressions loaded",
		zap.Int("dismissals", len(out.Dismissals)),
		zap.Int("deferrals", len(out.Deferrals)),
		zap.Int("last_alerts", len(out.LastAlert)),
	)
	return out, nil
}

func (s *RedisSuppressionStore) del(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
