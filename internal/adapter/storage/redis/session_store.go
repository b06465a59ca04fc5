package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"muhasebe-api/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionStore implements ports.SessionStore on Redis hashes keyed
// session:<sid>. Expiry is left to Redis.
type SessionStore struct {
	client goredis.UniversalClient
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client goredis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(id string) string {
	return sessionPrefix + id
}

// Create writes the session hash and its TTL in one transaction.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	restrictions := session.Restrictions
	if restrictions == nil {
		restrictions = []string{}
	}
	encoded, err := json.Marshal(restrictions)
	if err != nil {
		return fmt.Errorf("encoding restrictions: %w", err)
	}

	key := sessionKey(session.ID)
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"id", session.UserID,
			"username", session.Username,
			"role", string(session.Role),
			"status", string(session.Status),
			"restrictions", string(encoded),
			"created_at", session.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis session create: %w", err)
	}
	return nil
}

// Get loads a session. Returns (nil, nil) if it is missing or expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis session get: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	session := &domain.Session{
		ID:       id,
		UserID:   fields["id"],
		Username: fields["username"],
		Role:     domain.Role(fields["role"]),
		Status:   domain.UserStatus(fields["status"]),
	}
	if raw := fields["restrictions"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &session.Restrictions); err != nil {
			return nil, fmt.Errorf("decoding session restrictions: %w", err)
		}
	}
	if raw := fields["created_at"]; raw != "" {
		if session.CreatedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return nil, fmt.Errorf("decoding session created_at: %w", err)
		}
	}
	return session, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}
