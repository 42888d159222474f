package service

import (
	"context"
	"testing"
	"time"

	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEventStorage struct {
	active    *entity.Event
	missing   map[string]bool
	activated []*entity.Event
	deleteErr error
	deleted   []string
}

func (f *fakeEventStorage) Get(_ context.Context, id string) (*entity.Event, error) {
	if f.missing[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &entity.Event{ID: id}, nil
}

func (f *fakeEventStorage) GetActive(context.Context) (*entity.Event, error) {
	if f.active == nil {
		return nil, errorz.ErrNoActiveEvent
	}
	return f.active, nil
}

func (f *fakeEventStorage) GetAll(context.Context) ([]entity.Event, error) {
	return nil, nil
}

func (f *fakeEventStorage) Activate(_ context.Context, event *entity.Event, _ time.Time) (*entity.Event, error) {
	event.ID = "new"
	event.IsActive = true
	f.activated = append(f.activated, event)
	f.active = event
	return event, nil
}

func (f *fakeEventStorage) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newEventService(storage EventStorage, now time.Time) *EventService {
	s := NewEventService(logger.Nop(), storage)
	s.now = func() time.Time { return now }
	return s
}

func endingOn(year int, month time.Month, day int) *entity.Event {
	return &entity.Event{
		ID:        "current",
		Name:      "PickHacks",
		Year:      year,
		StartDate: time.Date(year, month, day-1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func validEventInput() dto.CreateEvent {
	return dto.CreateEvent{
		Name:      "PickHacks 2026",
		Year:      2026,
		StartDate: "2026-04-10",
		EndDate:   "2026-04-11",
	}
}

func TestEventService_CanCreate(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		active *entity.Event
		want   bool
		reason string
	}{
		{name: "no active event", active: nil, want: true, reason: dto.CanCreateReasonNone},
		{name: "active event ended", active: endingOn(2025, time.April, 6), want: true, reason: dto.CanCreateReasonPreviousEnded},
		{name: "active event running", active: endingOn(2025, time.May, 20), want: false, reason: dto.CanCreateReasonActiveExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newEventService(&fakeEventStorage{active: tt.active}, now)

			result, err := s.CanCreate(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.CanCreate)
			assert.Equal(t, tt.reason, result.Reason)
			assert.Equal(t, tt.active, result.ActiveEvent)
		})
	}
}

func TestEventService_CreateRejectsWhileActive(t *testing.T) {
	storage := &fakeEventStorage{active: endingOn(2025, time.May, 20)}
	s := newEventService(storage, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	_, err := s.Create(context.Background(), validEventInput())
	assert.ErrorIs(t, err, errorz.ErrActiveEventExists)
	assert.Equal(t, "Cannot create event while an active event exists", err.Error())
	assert.Empty(t, storage.activated)
}

func TestEventService_CreateAfterPreviousEnded(t *testing.T) {
	storage := &fakeEventStorage{active: endingOn(2025, time.April, 6)}
	s := newEventService(storage, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	opens := "2026-01-01T00:00:00Z"
	input := validEventInput()
	input.RegistrationOpensAt = &opens

	event, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, event.IsActive)
	assert.Equal(t, 2026, event.Year)
	assert.Equal(t, time.April, event.StartDate.Month())
	require.NotNil(t, event.RegistrationOpensAt)
	assert.Nil(t, event.RegistrationClosesAt)
	require.Len(t, storage.activated, 1)
}

func TestEventService_CreateValidation(t *testing.T) {
	closes := "2026-01-01T00:00:00Z"
	opens := "2026-02-01T00:00:00Z"
	bad := "tomorrow"

	tests := []struct {
		name   string
		mutate func(*dto.CreateEvent)
		field  string
	}{
		{name: "blank name", mutate: func(in *dto.CreateEvent) { in.Name = "   " }, field: "name"},
		{name: "year too small", mutate: func(in *dto.CreateEvent) { in.Year = 1999 }, field: "year"},
		{name: "bad start date", mutate: func(in *dto.CreateEvent) { in.StartDate = "04/10/2026" }, field: "startDate"},
		{name: "end before start", mutate: func(in *dto.CreateEvent) { in.EndDate = "2026-04-09" }, field: "endDate"},
		{name: "bad window bound", mutate: func(in *dto.CreateEvent) { in.RegistrationOpensAt = &bad }, field: "registrationOpensAt"},
		{name: "window inverted", mutate: func(in *dto.CreateEvent) {
			in.RegistrationOpensAt = &opens
			in.RegistrationClosesAt = &closes
		}, field: "registrationClosesAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &fakeEventStorage{}
			s := newEventService(storage, time.Now())

			input := validEventInput()
			tt.mutate(&input)

			_, err := s.Create(context.Background(), input)
			require.ErrorIs(t, err, errorz.ErrInvalidInput)
			var invalid *errorz.ValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Empty(t, storage.activated)
		})
	}
}

func TestEventService_Delete(t *testing.T) {
	storage := &fakeEventStorage{deleteErr: &errorz.EventHasRegistrationsError{Count: 3}}
	s := newEventService(storage, time.Now())

	eventID := "6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5"
	err := s.Delete(context.Background(), eventID)
	var hasRegistrations *errorz.EventHasRegistrationsError
	require.ErrorAs(t, err, &hasRegistrations)
	assert.Equal(t, int64(3), hasRegistrations.Count)

	storage.deleteErr = nil
	require.NoError(t, s.Delete(context.Background(), eventID))
	assert.Equal(t, []string{eventID}, storage.deleted)

	err = s.Delete(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
	assert.Len(t, storage.deleted, 1)
}
