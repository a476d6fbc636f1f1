package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
)

const (
	sessionKeyPrefix  = "agency:sess:" // Session record: agency:sess:{session_id}
	identitySetPrefix = "agency:user:" // Set of session IDs per identity: agency:user:{identity_id}:sessions
)

// Store keeps sessions in Redis with a TTL so sign-out and expiry are
// enforced server side.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create persists a new session for the identity and returns it.
func (s *Store) Create(ctx context.Context, identityID, email string) (*domain.Session, error) {
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:         uuid.New().String(),
		IdentityID: identityID,
		Email:      email,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	setKey := s.identitySetKey(identityID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.sessionKey(sess.ID), data, s.ttl)
	pipe.SAdd(ctx, setKey, sess.ID)
	pipe.Expire(ctx, setKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sess, nil
}

// Get returns the live session with the given id.
func (s *Store) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete revokes a session. Deleting an unknown session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err == domain.ErrSessionNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.sessionKey(id))
	pipe.SRem(ctx, s.identitySetKey(sess.IdentityID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteAllForIdentity revokes every session the identity holds.
func (s *Store) DeleteAllForIdentity(ctx context.Context, identityID string) error {
	setKey := s.identitySetKey(identityID)

	ids, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, s.sessionKey(id))
	}
	pipe.Del(ctx, setKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

func (s *Store) sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *Store) identitySetKey(identityID string) string {
	return identitySetPrefix + identityID + ":sessions"
}
