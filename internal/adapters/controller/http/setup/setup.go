package setup

import (
	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/cmd/portal"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/admin"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/event"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/lookup"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/me"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/middlewares"
	"github.com/pickhacks/portal/internal/adapters/controller/http/handlers/registration"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(p *portal.Portal) {
	// Pre-setup and global middlewares
	middle := middlewares.New(p)
	eventHandler := event.New(p)
	registrationHandler := registration.New(p)
	adminHandler := admin.New(p)
	lookupHandler := lookup.New(p)
	meHandler := me.New(p)

	p.Use(middle.AccessLog)
	p.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := p.Group("/api")

	// Public:
	api.GET("/events/active", eventHandler.Active)
	api.GET("/events/active/calendar.ics", eventHandler.Calendar)

	// User:
	user := api.Group("", middle.Authorized)
	user.GET("/me", meHandler.Get)
	user.GET("/lookup/schools", lookupHandler.Schools)
	user.GET("/lookup/countries", lookupHandler.Countries)
	user.GET("/lookup/dietary-restrictions", lookupHandler.DietaryRestrictions)
	user.GET("/registration/status", registrationHandler.Status)
	user.GET("/registration/qr.png", registrationHandler.QRCode)
	user.GET("/registration/draft", registrationHandler.Draft)

	verified := user.Group("", middle.RequireVerifiedEmail)
	verified.POST("/registration", registrationHandler.Submit)
	verified.PUT("/registration/draft", registrationHandler.SaveDraft)

	// Admin:
	admins := user.Group("/admin", middle.RequireAdmin)
	admins.GET("/events", eventHandler.List)
	admins.GET("/events/can-create", eventHandler.CanCreate)
	admins.POST("/events", eventHandler.Create)
	admins.DELETE("/events/:id", eventHandler.Delete)
	admins.GET("/registrations", adminHandler.Registrations)
	admins.GET("/registrations/stats", adminHandler.Stats)
	admins.GET("/registrations/export", adminHandler.Export)
}
