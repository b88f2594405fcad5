// Package session keeps per-user browse state, the selected category
// and brand plus price/size filters, in Redis. The session replaces the
// global mutable per-user state of naive bot implementations: it is an
// explicit object keyed by user id, created on first interaction,
// expired by TTL and reset on back-navigation.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Session is one user's current browse context.
type Session struct {
	Category  string `json:"category,omitempty"`
	Brand     string `json:"brand,omitempty"`
	PriceMin  *int64 `json:"price_min,omitempty"`
	PriceMax  *int64 `json:"price_max,omitempty"`
	SizeQuery string `json:"size_query,omitempty"`
}

// ClearFilters drops the price and size filters, keeping navigation.
func (s *Session) ClearFilters() {
	s.PriceMin = nil
	s.PriceMax = nil
	s.SizeQuery = ""
}

// Manager stores sessions in Redis with a sliding TTL.
type Manager struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewManager connects to Redis and returns a session manager.
func NewManager(addr, password string, db int, ttl time.Duration) (*Manager, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Manager{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (m *Manager) Close() error {
	return m.rdb.Close()
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// Get loads the user's session, returning a fresh empty one when none
// exists yet.
func (m *Manager) Get(ctx context.Context, userID int64) (*Session, error) {
	raw, err := m.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err == redis.Nil {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// Corrupt session state is not worth failing a request over.
		return &Session{}, nil
	}
	return &s, nil
}

// Save persists the session and refreshes its TTL.
func (m *Manager) Save(ctx context.Context, userID int64, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return m.rdb.Set(ctx, sessionKey(userID), raw, m.ttl).Err()
}

// Reset deletes the session, the back-navigation behavior.
func (m *Manager) Reset(ctx context.Context, userID int64) error {
	return m.rdb.Del(ctx, sessionKey(userID)).Err()
}
