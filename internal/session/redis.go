package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	model "github.com/inakado/aspy-bot/internal/models"
)

// sessionTTL bounds how long an abandoned conversation survives.
const sessionTTL = 24 * time.Hour

// RedisStore keeps sessions in Redis, JSON-marshalled with a TTL.
type RedisStore struct {
	cli *redis.Client
}

// NewRedisStore connects to Redis via a redis:// URL and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	cli := redis.NewClient(opt)
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{cli: cli}, nil
}

func (r *RedisStore) Close() error {
	return r.cli.Close()
}

func sessionKey(chatID int64) string {
	return "session:" + strconv.FormatInt(chatID, 10)
}

func (r *RedisStore) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	data, err := r.cli.Get(ctx, sessionKey(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session %d: %w", chatID, err)
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session %d: %w", chatID, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session %d: %w", s.ChatID, err)
	}
	if err := r.cli.Set(ctx, sessionKey(s.ChatID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session %d: %w", s.ChatID, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, chatID int64) error {
	if err := r.cli.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("delete session %d: %w", chatID, err)
	}
	return nil
}
