package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/edusync-platform/school-service/internal/models"
)

// ErrNotFound is returned for unknown or expired session tokens.
var ErrNotFound = errors.New("session not found")

// Session is the explicit login record: created at login, destroyed at logout,
// expired by TTL. The opaque token travels in a cookie.
type Session struct {
	Token         string          `json:"token"`
	UserID        uint            `json:"user_id"`
	Role          models.UserRole `json:"role"`
	InstitutionID uint            `json:"institution_id"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
}

// Store persists sessions. The Redis implementation is used when Redis is
// configured; the in-process store otherwise.
type Store interface {
	Create(ctx context.Context, userID uint, role models.UserRole, institutionID uint) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID uint, role models.UserRole, institutionID uint) (*Session, error) {
	sess := newSession(userID, role, institutionID, s.ttl)

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("session marshal error: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.Token, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session store error: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session fetch error: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("session unmarshal error: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

// MemoryStore keeps sessions in-process, for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Create(ctx context.Context, userID uint, role models.UserRole, institutionID uint) (*Session, error) {
	sess := newSession(userID, role, institutionID, s.ttl)

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func newSession(userID uint, role models.UserRole, institutionID uint, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:         uuid.New().String(),
		UserID:        userID,
		Role:          role,
		InstitutionID: institutionID,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
}
