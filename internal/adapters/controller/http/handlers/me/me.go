package me

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/cmd/portal"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/middlewares"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/respond"
	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/pkg/logger/types"
)

type Handler struct {
	logger *types.Logger
}

func New(p *portal.Portal) *Handler {
	return &Handler{
		logger: p.Logger,
	}
}

// Get returns the authenticated user and its admin flag.
func (h Handler) Get(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"isAdmin": user.IsAdmin,
	})
}
