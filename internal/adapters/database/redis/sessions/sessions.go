package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Session is written by the identity provider when a user signs in.
type Session struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

// Get resolves a session token. Unknown and expired tokens yield errorz.ErrInvalidSession.
func (s *Storage) Get(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, errorz.ErrInvalidSession
	}

	data, err := s.redis.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, errorz.ErrInvalidSession
	}
	if err != nil {
		return Session{}, err
	}

	var session Session
	if err = json.Unmarshal(data, &session); err != nil {
		return Session{}, err
	}
	if session.UserID == "" || !session.ExpiresAt.After(time.Now()) {
		return Session{}, errorz.ErrInvalidSession
	}
	return session, nil
}

func (s *Storage) Set(ctx context.Context, token string, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, keyPrefix+token, data, time.Until(session.ExpiresAt)).Err()
}

func (s *Storage) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, keyPrefix+token).Err()
}
