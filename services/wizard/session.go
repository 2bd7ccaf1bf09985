package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tutorhub/models"
	"tutorhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a wizard session has expired or never existed.
var ErrSessionNotFound = errors.New("registration session not found or expired")

// SessionStore persists wizard sessions for the duration of the flow.
type SessionStore interface {
	Save(ctx context.Context, sess *models.WizardSession) error
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Delete(ctx context.Context, sessionID string) error

	// AcquireSubmitLock guards against concurrent submissions of the same
	// draft. It reports false when another submission is already in flight.
	AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID string) error
}

const (
	sessionKeyPrefix    = "wizard:session:"
	submitLockKeyPrefix = "wizard:submit:"
	submitLockTTL       = 2 * time.Minute
)

// RedisSessionStore keeps wizard sessions in Redis with a TTL, so an abandoned
// draft simply expires with its browser session.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.WizardSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		utils.GetLogger().Error("Failed to marshal wizard session", zap.Error(err))
		return fmt.Errorf("failed to save registration session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+sess.SessionID, data, s.TTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to save wizard session", zap.String("sessionID", sess.SessionID), zap.Error(err))
		return fmt.Errorf("failed to save registration session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		utils.GetLogger().Error("Failed to get wizard session", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve registration session: %w", err)
	}
	var sess models.WizardSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		utils.GetLogger().Error("Failed to unmarshal wizard session", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve registration session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		utils.GetLogger().Error("Failed to delete wizard session", zap.String("sessionID", sessionID), zap.Error(err))
		return err
	}
	return nil
}

func (s *RedisSessionStore) AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, submitLockKeyPrefix+sessionID, "1", submitLockTTL).Result()
	if err != nil {
		utils.GetLogger().Error("Failed to acquire submit lock", zap.String("sessionID", sessionID), zap.Error(err))
		return false, err
	}
	return ok, nil
}

func (s *RedisSessionStore) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, submitLockKeyPrefix+sessionID).Err()
}
