package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentwire/interview-orchestrator/internal/metrics"
	"github.com/talentwire/interview-orchestrator/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	sessionHandler    *Session
	captureWebhook    *CaptureWebhook
	transcriptWebhook *TranscriptWebhook
	signaling         *Signaling
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, sessionHandler *Session, captureWebhook *CaptureWebhook, transcriptWebhook *TranscriptWebhook, signaling *Signaling) *Router {
	return &Router{
		cfg:               cfg,
		sessionHandler:    sessionHandler,
		captureWebhook:    captureWebhook,
		transcriptWebhook: transcriptWebhook,
		signaling:         signaling,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupSessionRoutes(v1)
	rt.setupWebhookRoutes(v1)
	rt.setupSignalingRoutes(v1)
}

// setupSessionRoutes configures interview session routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessionGroup := g.Group("/sessions")
	sessionGroup.POST("", rt.sessionHandler.Start)
	sessionGroup.GET("/:id", rt.sessionHandler.Get)
	sessionGroup.GET("/:id/report", rt.sessionHandler.Report)
	sessionGroup.POST("/:id/ready", rt.sessionHandler.Ready)
	sessionGroup.POST("/:id/cancel", rt.sessionHandler.Cancel)

	g.GET("/candidates/:id/sessions", rt.sessionHandler.ListByCandidate)
}

// setupWebhookRoutes configures inbound webhook routes
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhookGroup := g.Group("/webhooks")
	webhookGroup.POST("/capture", rt.captureWebhook.Handle)
	webhookGroup.POST("/audio", rt.transcriptWebhook.SubmitAudio)
	webhookGroup.POST("/transcript", rt.transcriptWebhook.HandleCompleted)
}

// setupSignalingRoutes configures the peer signaling transport
func (rt *Router) setupSignalingRoutes(g *echo.Group) {
	g.GET("/signaling/ws", rt.signaling.Connect)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
