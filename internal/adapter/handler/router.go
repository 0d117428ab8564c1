package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg       *config.Config
	auth      echo.MiddlewareFunc
	alert     *Alert
	duplicate *Duplicate
	profile   *Profile
	workflow  *Workflow
	history   *History
	webhook   *WebhookHandler
}

// Handlers groups the handlers mounted by the router. A nil handler mounts
// 501 placeholders for its routes.
type Handlers struct {
	Alert     *Alert
	Duplicate *Duplicate
	Profile   *Profile
	Workflow  *Workflow
	History   *History
	Webhook   *WebhookHandler
}

// NewRouter creates a new router. auth guards every /v1 route except webhooks.
func NewRouter(cfg *config.Config, auth echo.MiddlewareFunc, h Handlers) *Router {
	return &Router{
		cfg:       cfg,
		auth:      auth,
		alert:     h.Alert,
		duplicate: h.Duplicate,
		profile:   h.Profile,
		workflow:  h.Workflow,
		history:   h.History,
		webhook:   h.Webhook,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	rt.setupWebhookRoutes(v1)

	api := v1.Group("")
	if rt.auth != nil {
		api.Use(rt.auth)
	}
	rt.setupAlertRoutes(api)
	rt.setupDuplicateRoutes(api)
	rt.setupProfileRoutes(api)
	rt.setupWorkflowRoutes(api)
	rt.setupHistoryRoutes(api)
}

func (rt *Router) setupAlertRoutes(g *echo.Group) {
	if rt.alert == nil {
		g.POST("/detections", rt.notImplemented)
		g.Any("/alerts*", rt.notImplemented)
		g.POST("/ingest/assemblyai/:transcript_id", rt.notImplemented)
		return
	}
	g.POST("/detections", rt.alert.Ingest)
	g.GET("/alerts", rt.alert.List)
	g.POST("/alerts/:key/dismiss", rt.alert.Dismiss)
	g.POST("/alerts/:key/defer", rt.alert.Defer)
	g.POST("/ingest/assemblyai/:transcript_id", rt.alert.IngestTranscript)
}

func (rt *Router) setupDuplicateRoutes(g *echo.Group) {
	dup := g.Group("/duplicates")
	if rt.duplicate == nil {
		dup.Any("*", rt.notImplemented)
		return
	}
	dup.GET("", rt.duplicate.Scan)
	dup.POST("/compare", rt.duplicate.Compare)
	dup.POST("/merge", rt.duplicate.Merge)
}

func (rt *Router) setupProfileRoutes(g *echo.Group) {
	profiles := g.Group("/profiles")
	if rt.profile == nil {
		profiles.Any("*", rt.notImplemented)
		return
	}
	profiles.GET("/:voice_id", rt.profile.Get)
	profiles.POST("/:voice_id/samples", rt.profile.UploadSample)
}

func (rt *Router) setupWorkflowRoutes(g *echo.Group) {
	sessions := g.Group("/workflow/sessions")
	if rt.workflow == nil {
		sessions.Any("*", rt.notImplemented)
		return
	}
	sessions.POST("", rt.workflow.Start)
	sessions.GET("/:id", rt.workflow.Get)
	sessions.PATCH("/:id/form", rt.workflow.UpdateForm)
	sessions.POST("/:id/next", rt.workflow.Next)
	sessions.POST("/:id/back", rt.workflow.Back)
	sessions.POST("/:id/skip", rt.workflow.Skip)
	sessions.POST("/:id/defer", rt.workflow.Defer)
	sessions.POST("/:id/submit", rt.workflow.Submit)
}

func (rt *Router) setupHistoryRoutes(g *echo.Group) {
	hist := g.Group("/history")
	if rt.history == nil {
		hist.Any("*", rt.notImplemented)
		return
	}
	hist.GET("", rt.history.List)
	hist.GET("/stats", rt.history.Stats)
	hist.GET("/export", rt.history.Export)
	hist.POST("/redo", rt.history.Redo)
	hist.POST("/:id/undo", rt.history.Undo)
}

// setupWebhookRoutes mounts webhooks outside the bearer auth; LiveKit
// signs its own requests
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	if rt.webhook == nil {
		g.POST("/webhooks/livekit", rt.notImplemented)
		return
	}
	g.POST("/webhooks/livekit", rt.webhook.HandleLiveKitWebhook)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not configured",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
