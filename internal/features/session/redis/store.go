// Package redis backs bot sessions with redis for deployments that want
// conversations to survive process restarts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"election-tracker-backend/internal/features/session"
)

const keyPrefix = "session:"

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Store{client: client, ttl: ttl}, nil
}

func (s *Store) Get(ctx context.Context, userID string) (*session.Session, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get session %s: %w", userID, err)
	}
	sess := &session.Session{}
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, false, fmt.Errorf("decode session %s: %w", userID, err)
	}
	return sess, true, nil
}

func (s *Store) Put(ctx context.Context, sess *session.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.UserID, err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.UserID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", sess.UserID, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", userID, err)
	}
	return nil
}

func (s *Store) Each(ctx context.Context, fn func(*session.Session) bool) error {
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("scan sessions: %w", err)
		}
		sess := &session.Session{}
		if err := json.Unmarshal(raw, sess); err != nil {
			continue
		}
		if !fn(sess) {
			return nil
		}
	}
	return iter.Err()
}
