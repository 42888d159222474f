package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "draft:"

// Storage keeps the partially filled registration form between steps.
type Storage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStorage(client *redis.Client, ttl time.Duration) *Storage {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Storage{
		redis: client,
		ttl:   ttl,
	}
}

func key(userID, eventID string) string {
	return keyPrefix + eventID + ":" + userID
}

// Get returns the saved draft, or found=false when there is none.
func (s *Storage) Get(ctx context.Context, userID, eventID string) (form dto.RegistrationForm, found bool, err error) {
	data, err := s.redis.Get(ctx, key(userID, eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return dto.RegistrationForm{}, false, nil
	}
	if err != nil {
		return dto.RegistrationForm{}, false, err
	}

	if err = json.Unmarshal(data, &form); err != nil {
		return dto.RegistrationForm{}, false, err
	}
	return form, true, nil
}

func (s *Storage) Set(ctx context.Context, userID, eventID string, form dto.RegistrationForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key(userID, eventID), data, s.ttl).Err()
}

func (s *Storage) Clear(ctx context.Context, userID, eventID string) error {
	return s.redis.Del(ctx, key(userID, eventID)).Err()
}
