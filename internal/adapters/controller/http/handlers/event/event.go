package event

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/cmd/portal"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/respond"
	"github.com/pickhacks/portal/internal/adapters/database/postgres"
	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/internal/domain/service"
	"github.com/pickhacks/portal/internal/domain/utils/calendar"
	"github.com/pickhacks/portal/internal/domain/utils/location"
	"github.com/pickhacks/portal/pkg/logger/types"
)

type eventService interface {
	CanCreate(ctx context.Context) (dto.CanCreateEvent, error)
	Create(ctx context.Context, input dto.CreateEvent) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
	Active(ctx context.Context) (*entity.Event, error)
	All(ctx context.Context) ([]entity.Event, error)
	Now() time.Time
}

type Handler struct {
	logger       *types.Logger
	eventService eventService
}

func New(p *portal.Portal) *Handler {
	eventStorage := postgres.NewEventStorage(p.DB)

	return &Handler{
		logger:       p.Logger,
		eventService: service.NewEventService(p.Logger, eventStorage),
	}
}

// Active returns {"event": ...}, with a null event when none is active.
func (h Handler) Active(c *gin.Context) {
	event, err := h.eventService.Active(c.Request.Context())
	if errors.Is(err, errorz.ErrNoActiveEvent) {
		c.JSON(http.StatusOK, gin.H{"event": nil})
		return
	}
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to fetch active event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": dto.NewEventFromEntity(*event, h.eventService.Now())})
}

// Calendar serves the active event as an .ics file.
func (h Handler) Calendar(c *gin.Context) {
	event, err := h.eventService.Active(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to export calendar")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("pickhacks-%d.ics", event.Year)))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", calendar.ExportEventToICS(*event, location.Location(), h.eventService.Now()))
}

func (h Handler) List(c *gin.Context) {
	events, err := h.eventService.All(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to fetch events")
		return
	}

	now := h.eventService.Now()
	result := make([]dto.Event, 0, len(events))
	for _, event := range events {
		result = append(result, dto.NewEventFromEntity(event, now))
	}
	c.JSON(http.StatusOK, gin.H{"events": result})
}

func (h Handler) CanCreate(c *gin.Context) {
	result, err := h.eventService.CanCreate(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to check event status")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h Handler) Create(c *gin.Context) {
	var input dto.CreateEvent
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "event": dto.NewEventFromEntity(*event, h.eventService.Now())})
}

func (h Handler) Delete(c *gin.Context) {
	if err := h.eventService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, h.logger, err, "Failed to delete event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
