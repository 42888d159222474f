package registration

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/cmd/portal"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/middlewares"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/respond"
	"github.com/pickhacks/portal/internal/adapters/database/postgres"
	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/service"
	"github.com/pickhacks/portal/pkg/logger/types"
	qr "github.com/pickhacks/portal/pkg/qrcode"
	"github.com/spf13/viper"
)

type registrationService interface {
	Submit(ctx context.Context, userID string, form dto.RegistrationForm) (*dto.SubmitResult, error)
	Status(ctx context.Context, userID string) (*dto.RegistrationStatus, error)
	QRCode(ctx context.Context, userID string) ([]byte, error)
	SaveDraft(ctx context.Context, userID string, form dto.RegistrationForm) error
	Draft(ctx context.Context, userID string) (dto.RegistrationForm, error)
}

type Handler struct {
	logger              *types.Logger
	registrationService registrationService
}

func New(p *portal.Portal) *Handler {
	qrConfig := qr.Portal
	qrConfig.LogoPath = viper.GetString("settings.qr.logo-path")

	return &Handler{
		logger: p.Logger,
		registrationService: service.NewRegistrationService(
			p.Logger,
			postgres.NewRegistrationStorage(p.DB),
			postgres.NewEventStorage(p.DB),
			postgres.NewLookupStorage(p.DB),
			p.Redis.Drafts,
			qrConfig,
			viper.GetString("settings.qr.prefix"),
		),
	}
}

func userID(c *gin.Context) (string, bool) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return "", false
	}
	return user.ID, true
}

func (h Handler) Submit(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}

	var form dto.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.registrationService.Submit(c.Request.Context(), id, form)
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to submit registration")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h Handler) Status(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}

	status, err := h.registrationService.Status(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to fetch registration status")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h Handler) QRCode(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}

	png, err := h.registrationService.QRCode(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to generate QR code")
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", png)
}

func (h Handler) Draft(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}

	form, err := h.registrationService.Draft(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to load draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": form})
}

func (h Handler) SaveDraft(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}

	var form dto.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registrationService.SaveDraft(c.Request.Context(), id, form); err != nil {
		respond.Error(c, h.logger, err, "Failed to save draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
