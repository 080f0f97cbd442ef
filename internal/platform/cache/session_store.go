package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix      = "session:"
	sessionChangesChannel = "session_changes"
)

// RedisSessionStore keeps live session ids with a TTL and fans session
// changes out to other instances over pub/sub.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("RedisSessionStore.Save: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	userID, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("RedisSessionStore.Get: %w", err)
	}
	return userID, true, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("RedisSessionStore.Delete: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Publish(ctx context.Context, change model.SessionChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("RedisSessionStore.Publish marshal: %w", err)
	}
	if err := s.rdb.Publish(ctx, sessionChangesChannel, payload).Err(); err != nil {
		return fmt.Errorf("RedisSessionStore.Publish: %w", err)
	}
	return nil
}

// Subscribe delivers session changes published by other instances. The
// returned channel closes when ctx is cancelled.
func (s *RedisSessionStore) Subscribe(ctx context.Context) <-chan model.SessionChange {
	out := make(chan model.SessionChange)
	sub := s.rdb.Subscribe(ctx, sessionChangesChannel)

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var change model.SessionChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					log.Printf("WARN: dropping malformed session change: %v", err)
					continue
				}
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
