package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/internal/domain/utils/location"
	"github.com/pickhacks/portal/internal/domain/utils/validator"
	"github.com/pickhacks/portal/pkg/logger/types"
	"github.com/pickhacks/portal/pkg/metrics"
)

type EventStorage interface {
	GetActive(ctx context.Context) (*entity.Event, error)
	GetAll(ctx context.Context) ([]entity.Event, error)
	Activate(ctx context.Context, event *entity.Event, now time.Time) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
}

type EventService struct {
	logger       *types.Logger
	eventStorage EventStorage
	now          func() time.Time
}

func NewEventService(logger *types.Logger, eventStorage EventStorage) *EventService {
	return &EventService{
		logger:       logger,
		eventStorage: eventStorage,
		now:          time.Now,
	}
}

// CanCreate reports whether a new event may be created right now.
// It is allowed when no event is active or when the active one has already ended.
func (s *EventService) CanCreate(ctx context.Context) (dto.CanCreateEvent, error) {
	active, err := s.eventStorage.GetActive(ctx)
	if errors.Is(err, errorz.ErrNoActiveEvent) {
		return dto.CanCreateEvent{CanCreate: true, Reason: dto.CanCreateReasonNone}, nil
	}
	if err != nil {
		return dto.CanCreateEvent{}, err
	}

	if active.HasEnded(s.now()) {
		return dto.CanCreateEvent{CanCreate: true, Reason: dto.CanCreateReasonPreviousEnded, ActiveEvent: active}, nil
	}
	return dto.CanCreateEvent{CanCreate: false, Reason: dto.CanCreateReasonActiveExists, ActiveEvent: active}, nil
}

// Create validates input and stores it as the new active event, deactivating the previous one.
func (s *EventService) Create(ctx context.Context, input dto.CreateEvent) (*entity.Event, error) {
	event, err := parseEvent(input)
	if err != nil {
		return nil, err
	}

	canCreate, err := s.CanCreate(ctx)
	if err != nil {
		return nil, err
	}
	if !canCreate.CanCreate {
		return nil, errorz.ErrActiveEventExists
	}

	created, err := s.eventStorage.Activate(ctx, event, s.now())
	if err != nil {
		return nil, err
	}

	metrics.EventsCreated.Inc()
	s.logger.Infof("event %s (%d) created and activated", created.Name, created.Year)
	return created, nil
}

func parseEvent(input dto.CreateEvent) (*entity.Event, error) {
	name := strings.TrimSpace(input.Name)
	if !validator.EventName(name) {
		return nil, errorz.Invalid("name", "must be between 1 and 100 characters")
	}
	if !validator.EventYear(input.Year) {
		return nil, errorz.Invalid("year", "must be between 2000 and 2100")
	}

	start, err := time.ParseInLocation(validator.DateLayout, input.StartDate, location.Location())
	if err != nil {
		return nil, errorz.Invalid("startDate", "must be a YYYY-MM-DD date")
	}
	end, err := time.ParseInLocation(validator.DateLayout, input.EndDate, location.Location())
	if err != nil {
		return nil, errorz.Invalid("endDate", "must be a YYYY-MM-DD date")
	}
	if !validator.EventDates(start, end) {
		return nil, errorz.Invalid("endDate", "must not be before startDate")
	}

	opens, err := parseOptionalTime(input.RegistrationOpensAt)
	if err != nil {
		return nil, errorz.Invalid("registrationOpensAt", "must be an RFC 3339 timestamp")
	}
	closes, err := parseOptionalTime(input.RegistrationClosesAt)
	if err != nil {
		return nil, errorz.Invalid("registrationClosesAt", "must be an RFC 3339 timestamp")
	}
	if !validator.RegistrationWindow(opens, closes) {
		return nil, errorz.Invalid("registrationClosesAt", "must not be before registrationOpensAt")
	}

	return &entity.Event{
		Name:                 name,
		Year:                 input.Year,
		StartDate:            start,
		EndDate:              end,
		RegistrationOpensAt:  opens,
		RegistrationClosesAt: closes,
	}, nil
}

func parseOptionalTime(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes an event. Events referenced by registrations are refused.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return errorz.Invalid("id", "must be an event id")
	}
	if err := s.eventStorage.Delete(ctx, id); err != nil {
		return err
	}

	metrics.EventsDeleted.Inc()
	s.logger.Infof("event %s deleted", id)
	return nil
}

// Active returns the active event or errorz.ErrNoActiveEvent.
func (s *EventService) Active(ctx context.Context) (*entity.Event, error) {
	return s.eventStorage.GetActive(ctx)
}

func (s *EventService) All(ctx context.Context) ([]entity.Event, error) {
	events, err := s.eventStorage.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

// Now returns the service clock, used to render registration window state.
func (s *EventService) Now() time.Time {
	return s.now()
}
