package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/entity"
	"gorm.io/gorm"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

// Get is a function that gets an event from the database by id.
func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	return &event, err
}

// GetActive returns the event flagged active, or errorz.ErrNoActiveEvent.
func (s *EventStorage) GetActive(ctx context.Context) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("is_active = ?", true).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNoActiveEvent
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetAll is a function that gets all events from the database, newest year first.
func (s *EventStorage) GetAll(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Order("year DESC").Find(&events).Error
	return events, err
}

// Activate inserts event as the only active event.
//
// Everything happens in one transaction: the creatable rule is checked again, every active
// flag is cleared, the event is inserted and the state row is advanced with a compare-and-swap
// on its version. A concurrent activation that already advanced the version makes this one
// fail with errorz.ErrConcurrentEventUpdate and roll back.
func (s *EventStorage) Activate(ctx context.Context, event *entity.Event, now time.Time) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state entity.EventState
		if err := tx.FirstOrCreate(&state, entity.EventState{ID: entity.EventStateID}).Error; err != nil {
			return err
		}

		var active entity.Event
		err := tx.Where("is_active = ?", true).First(&active).Error
		switch {
		case err == nil:
			if !active.HasEnded(now) {
				return errorz.ErrActiveEventExists
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		err = tx.Model(&entity.Event{}).Where("is_active = ?", true).Update("is_active", false).Error
		if err != nil {
			return err
		}

		event.IsActive = true
		if err = tx.Create(event).Error; err != nil {
			return err
		}

		res := tx.Model(&entity.EventState{}).
			Where("id = ? AND version = ?", state.ID, state.Version).
			Updates(map[string]interface{}{
				"active_event_id": event.ID,
				"version":         state.Version + 1,
				"updated_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errorz.ErrConcurrentEventUpdate
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event that no registration references.
// Referenced events are kept and reported with errorz.EventHasRegistrationsError.
func (s *EventStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&entity.EventRegistration{}).Where("event_id = ?", id).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &errorz.EventHasRegistrationsError{Count: count}
		}

		if err = tx.Where("id = ?", id).Delete(&entity.Event{}).Error; err != nil {
			return err
		}

		return tx.Model(&entity.EventState{}).
			Where("active_event_id = ?", id).
			Updates(map[string]interface{}{
				"active_event_id": nil,
				"version":         gorm.Expr("version + 1"),
			}).Error
	})
}

// State returns the active event pointer row.
func (s *EventStorage) State(ctx context.Context) (*entity.EventState, error) {
	var state entity.EventState
	err := s.db.WithContext(ctx).Where("id = ?", entity.EventStateID).First(&state).Error
	return &state, err
}
