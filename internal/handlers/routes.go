package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/middleware"
	"github.com/nmm-portal/nmm-api/internal/models"
)

// Handlers bundles every API handler
type Handlers struct {
	Auth         *AuthHandler
	Registration *RegistrationHandler
	Dashboard    *DashboardHandler
	Sessions     *SessionHandler
	Resources    *ResourceHandler
	Helpdesk     *HelpdeskHandler
	Preferences  *PreferencesHandler
	Meta         *MetaHandler
}

// RateLimits groups the per-endpoint limiters. Nil limiters are skipped.
type RateLimits struct {
	General      *middleware.RateLimiter
	Auth         *middleware.RateLimiter
	Registration *middleware.RateLimiter
}

func limit(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware()
}

// RegisterV1Routes registers the /api/v1 surface on group
func RegisterV1Routes(group *gin.RouterGroup, h Handlers, sessions middleware.SessionValidator, limits RateLimits) {
	requireSession := middleware.SessionMiddleware(sessions)
	general := limit(limits.General)

	group.GET("/meta", general, h.Meta.GetMeta)

	auth := group.Group("/auth")
	auth.POST("/login", limit(limits.Auth), h.Auth.Login)
	auth.POST("/otp", limit(limits.Auth), h.Auth.RequestOTP)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/session", requireSession, h.Auth.GetSession)

	group.POST("/register", limit(limits.Registration), h.Registration.Register)
	group.POST("/register/validate", general, h.Registration.Validate)

	group.GET("/dashboard", general, requireSession, h.Dashboard.GetDashboard)

	sessionsGroup := group.Group("/sessions", general, requireSession)
	sessionsGroup.GET("", h.Sessions.ListSessions)
	sessionsGroup.GET("/export", h.Sessions.ExportSessions)
	sessionsGroup.POST("", middleware.RequireRoles(models.RoleMentor), h.Sessions.CreateSession)
	sessionsGroup.POST("/:id/attend", middleware.RequireRoles(models.RoleMentee), h.Sessions.Attend)
	sessionsGroup.POST("/:id/feedback", h.Sessions.SubmitFeedback)

	group.GET("/resources", general, h.Resources.GetResources)
	group.POST("/resources", general, requireSession, h.Resources.UploadResource)
	group.GET("/files/*key", general, h.Resources.GetFile)

	helpdesk := group.Group("/helpdesk/tickets", general)
	helpdesk.GET("", h.Helpdesk.ListTickets)
	helpdesk.POST("", requireSession, h.Helpdesk.CreateTicket)
	helpdesk.POST("/:id/status", requireSession,
		middleware.RequireRoles(models.RoleReviewer, models.RoleStateAdmin, models.RoleMainAdmin),
		h.Helpdesk.UpdateTicketStatus)

	prefs := group.Group("/preferences", general, middleware.OptionalSessionMiddleware(sessions))
	prefs.GET("", h.Preferences.GetPreferences)
	prefs.PUT("", h.Preferences.UpdatePreferences)
}
