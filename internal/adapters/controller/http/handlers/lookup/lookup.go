package lookup

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/cmd/portal"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/respond"
	"github.com/pickhacks/portal/internal/adapters/database/postgres"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/internal/domain/service"
	"github.com/pickhacks/portal/pkg/logger/types"
)

type lookupService interface {
	Schools(ctx context.Context) ([]entity.School, error)
	Countries(ctx context.Context) ([]entity.Country, error)
	DietaryRestrictions(ctx context.Context) ([]entity.DietaryRestriction, error)
}

type Handler struct {
	logger        *types.Logger
	lookupService lookupService
}

func New(p *portal.Portal) *Handler {
	return &Handler{
		logger:        p.Logger,
		lookupService: service.NewLookupService(postgres.NewLookupStorage(p.DB)),
	}
}

func (h Handler) Schools(c *gin.Context) {
	schools, err := h.lookupService.Schools(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to fetch schools")
		return
	}
	c.JSON(http.StatusOK, gin.H{"schools": schools})
}

func (h Handler) Countries(c *gin.Context) {
	countries, err := h.lookupService.Countries(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to fetch countries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries})
}

func (h Handler) DietaryRestrictions(c *gin.Context) {
	restrictions, err := h.lookupService.DietaryRestrictions(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to fetch dietary restrictions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"dietaryRestrictions": restrictions})
}
