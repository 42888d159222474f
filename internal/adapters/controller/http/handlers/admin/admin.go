package admin

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/cmd/portal"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/respond"
	"github.com/pickhacks/portal/internal/adapters/database/postgres"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/internal/domain/service"
	"github.com/pickhacks/portal/pkg/logger/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type adminService interface {
	Registrations(ctx context.Context, eventID, query string) ([]entity.EventRegistration, error)
	Stats(ctx context.Context, eventID string) (*dto.RegistrationStats, error)
	Export(ctx context.Context, eventID string) (*bytes.Buffer, error)
}

type Handler struct {
	logger       *types.Logger
	adminService adminService
}

func New(p *portal.Portal) *Handler {
	return &Handler{
		logger: p.Logger,
		adminService: service.NewAdminService(
			p.Logger,
			postgres.NewRegistrationStorage(p.DB),
			postgres.NewEventStorage(p.DB),
		),
	}
}

// Registrations lists registrations of ?eventId (default: active event), filtered by ?q.
func (h Handler) Registrations(c *gin.Context) {
	registrations, err := h.adminService.Registrations(c.Request.Context(), c.Query("eventId"), c.Query("q"))
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to fetch registrations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": dto.NewAdminRegistrations(registrations)})
}

func (h Handler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to fetch registration stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h Handler) Export(c *gin.Context) {
	buf, err := h.adminService.Export(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to export registrations")
		return
	}

	filename := fmt.Sprintf("registrations-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
