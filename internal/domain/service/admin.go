package service

import (
	"bytes"
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/internal/domain/utils/location"
	"github.com/pickhacks/portal/pkg/logger/types"
	"github.com/xuri/excelize/v2"
)

type RegistrationQueryStorage interface {
	GetByEventID(ctx context.Context, eventID, query string) ([]entity.EventRegistration, error)
	CountByEventID(ctx context.Context, eventID string) (total int64, complete int64, err error)
}

type adminEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetActive(ctx context.Context) (*entity.Event, error)
}

type AdminService struct {
	logger              *types.Logger
	registrationStorage RegistrationQueryStorage
	eventStorage        adminEventStorage
}

func NewAdminService(logger *types.Logger, registrationStorage RegistrationQueryStorage, eventStorage adminEventStorage) *AdminService {
	return &AdminService{
		logger:              logger,
		registrationStorage: registrationStorage,
		eventStorage:        eventStorage,
	}
}

// resolveEvent falls back to the active event when eventID is empty.
// An unknown eventID yields gorm.ErrRecordNotFound from storage.
func (s *AdminService) resolveEvent(ctx context.Context, eventID string) (string, error) {
	var (
		event *entity.Event
		err   error
	)
	if eventID != "" {
		if uuid.Validate(eventID) != nil {
			return "", errorz.Invalid("eventId", "must be an event id")
		}
		event, err = s.eventStorage.Get(ctx, eventID)
	} else {
		event, err = s.eventStorage.GetActive(ctx)
	}
	if err != nil {
		return "", err
	}
	return event.ID, nil
}

// Registrations lists the registrations of an event, newest first, optionally filtered by query.
func (s *AdminService) Registrations(ctx context.Context, eventID, query string) ([]entity.EventRegistration, error) {
	eventID, err := s.resolveEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.registrationStorage.GetByEventID(ctx, eventID, query)
}

func (s *AdminService) Stats(ctx context.Context, eventID string) (*dto.RegistrationStats, error) {
	eventID, err := s.resolveEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	total, complete, err := s.registrationStorage.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &dto.RegistrationStats{
		TotalRegistrations:    total,
		CompleteRegistrations: complete,
	}, nil
}

// Export renders every registration of an event as an .xlsx workbook.
func (s *AdminService) Export(ctx context.Context, eventID string) (*bytes.Buffer, error) {
	registrations, err := s.Registrations(ctx, eventID, "")
	if err != nil {
		return nil, err
	}

	buf, err := registrationsToXLSX(registrations)
	if err != nil {
		s.logger.Errorf("failed to export registrations of event %s: %v", eventID, err)
		return nil, err
	}
	return buf, nil
}

var exportHeader = []interface{}{
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Age",
	"School",
	"Level of Study",
	"Dietary Restrictions",
	"QR Code",
	"Registration Date",
}

func registrationsToXLSX(registrations []entity.EventRegistration) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, registration := range registrations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(registration)
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func exportRow(r entity.EventRegistration) []interface{} {
	var school, level string
	if r.Education != nil {
		school = r.Education.School.Name
		level = r.Education.LevelOfStudy
	}

	return []interface{}{
		r.HackerProfile.FirstName,
		r.HackerProfile.LastName,
		r.HackerProfile.User.Email,
		r.HackerProfile.PhoneNumber,
		r.AgeAtEvent,
		school,
		level,
		dietarySummary(r.DietaryRestrictions),
		r.QRCode,
		r.CreatedAt.In(location.Location()).Format("2006-01-02"),
	}
}

func dietarySummary(rows []entity.EventRegistrationDietaryRestriction) string {
	if len(rows) == 0 {
		return "None"
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		name := row.DietaryRestriction.Name
		if row.AllergyDetails != nil && row.DietaryRestrictionID == entity.DietaryRestrictionOtherID {
			name += " (" + *row.AllergyDetails + ")"
		}
		names = append(names, name)
	}
	return strings.Join(names, "; ")
}
