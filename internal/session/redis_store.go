package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps session data server-side; the cookie only carries a
// random session id.
type RedisStore struct {
	client redis.Cmdable
	maxAge time.Duration
	secure bool
}

func NewRedisStore(client redis.Cmdable, maxAge time.Duration, secure bool) *RedisStore {
	return &RedisStore{
		client: client,
		maxAge: maxAge,
		secure: secure,
	}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return New(), nil
	}

	raw, err := s.client.Get(r.Context(), redisKey(cookie.Value)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		logger.Warn("Discarding corrupt session", map[string]interface{}{
			"error": err.Error(),
		})
		return New(), nil
	}

	return fromPayload(cookie.Value, p), nil
}

func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	ctx := r.Context()

	if sess.Empty() {
		if sess.id != "" {
			if err := s.client.Del(ctx, redisKey(sess.id)).Err(); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
		}
		expireCookie(w, s.secure)
		sess.markClean()
		return nil
	}

	if sess.id == "" {
		sess.id = uuid.NewString()
	}

	raw, err := json.Marshal(sess.toPayload())
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(sess.id), raw, s.maxAge).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	setCookie(w, sess.id, s.maxAge, s.secure)
	sess.markClean()
	return nil
}

