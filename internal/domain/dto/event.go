package dto

import (
	"time"

	"github.com/pickhacks/portal/internal/domain/entity"
)

// CreateEvent is the admin input for a new event. Dates are YYYY-MM-DD, window bounds RFC 3339.
type CreateEvent struct {
	Name                 string  `json:"name" binding:"required"`
	Year                 int     `json:"year" binding:"required"`
	StartDate            string  `json:"startDate" binding:"required"`
	EndDate              string  `json:"endDate" binding:"required"`
	RegistrationOpensAt  *string `json:"registrationOpensAt"`
	RegistrationClosesAt *string `json:"registrationClosesAt"`
}

const (
	CanCreateReasonNone          = ""
	CanCreateReasonPreviousEnded = "previous_event_ended"
	CanCreateReasonActiveExists  = "active_event_exists"
)

type CanCreateEvent struct {
	CanCreate   bool          `json:"canCreate"`
	Reason      string        `json:"reason,omitempty"`
	ActiveEvent *entity.Event `json:"activeEvent,omitempty"`
}

type Event struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Year                 int        `json:"year"`
	StartDate            time.Time  `json:"startDate"`
	EndDate              time.Time  `json:"endDate"`
	IsActive             bool       `json:"isActive"`
	RegistrationOpensAt  *time.Time `json:"registrationOpensAt"`
	RegistrationClosesAt *time.Time `json:"registrationClosesAt"`
	RegistrationOpen     bool       `json:"registrationOpen"`
}

func NewEventFromEntity(event entity.Event, now time.Time) Event {
	return Event{
		ID:                   event.ID,
		Name:                 event.Name,
		Year:                 event.Year,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		IsActive:             event.IsActive,
		RegistrationOpensAt:  event.RegistrationOpensAt,
		RegistrationClosesAt: event.RegistrationClosesAt,
		RegistrationOpen:     event.IsActive && event.RegistrationOpen(now),
	}
}
