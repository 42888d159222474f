package middlewares

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/cmd/portal"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/respond"
	"github.com/pickhacks/portal/internal/adapters/database/postgres"
	"github.com/pickhacks/portal/internal/adapters/database/redis/sessions"
	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/internal/domain/service"
	"github.com/pickhacks/portal/pkg/logger/types"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const userKey = "user"

type sessionStorage interface {
	Get(ctx context.Context, token string) (sessions.Session, error)
}

type userService interface {
	Get(ctx context.Context, id string) (*entity.User, error)
}

type Handler struct {
	logger         *types.Logger
	sessionStorage sessionStorage
	userService    userService
	cookieName     string
}

func New(p *portal.Portal) *Handler {
	userStorage := postgres.NewUserStorage(p.DB)

	return &Handler{
		logger:         p.Logger,
		sessionStorage: p.Redis.Sessions,
		userService:    service.NewUserService(userStorage),
		cookieName:     viper.GetString("service.http.session-cookie"),
	}
}

// CurrentUser returns the user stored by Authorized.
func CurrentUser(c *gin.Context) *entity.User {
	user, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := user.(*entity.User)
	return u
}

func SetCurrentUser(c *gin.Context, user *entity.User) {
	c.Set(userKey, user)
}

func (h Handler) token(c *gin.Context) string {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// Authorized resolves the session token to a user and aborts with 401 otherwise.
func (h Handler) Authorized(c *gin.Context) {
	session, err := h.sessionStorage.Get(c.Request.Context(), h.token(c))
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to validate session")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), session.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to validate session")
		return
	}

	SetCurrentUser(c, user)
	c.Set(respond.UserIDKey, user.ID)
	c.Next()
}

func (h Handler) RequireVerifiedEmail(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}
	if !user.EmailVerified {
		respond.Error(c, h.logger, errorz.ErrEmailNotVerified, "")
		return
	}
	c.Next()
}

// RequireAdmin re-reads the user so a revoked admin flag takes effect on the next request.
func (h Handler) RequireAdmin(c *gin.Context) {
	current := CurrentUser(c)
	if current == nil {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), current.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respond.Error(c, h.logger, errorz.ErrNotAuthenticated, "")
		return
	}
	if err != nil {
		respond.Error(c, h.logger, err, "Failed to check admin status")
		return
	}
	if !user.IsAdmin {
		respond.Error(c, h.logger, errorz.ErrForbidden, "")
		return
	}

	SetCurrentUser(c, user)
	c.Next()
}

func (h Handler) AccessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	h.logger.Infow("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"ip", c.ClientIP(),
		"user", c.GetString(respond.UserIDKey),
	)
}
