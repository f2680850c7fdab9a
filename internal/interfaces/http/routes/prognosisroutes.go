package routes

import (
	"github.com/gin-gonic/gin"

	prognosishandlers "prognosis/internal/interfaces/http/handlers/prognosis"
	"prognosis/internal/interfaces/http/middleware"
)

type PrognosisRouteConfig struct {
	TicketHandler  *prognosishandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter is optional, nil disables rate limiting on the read API.
	RateLimiter *middleware.RateLimiter
}

func SetupPrognosisRoutes(engine *gin.Engine, config *PrognosisRouteConfig) {
	// Ingest stays open, telematics gateways push batches without
	// credentials.
	engine.POST("/tickets", config.TicketHandler.IngestAlerts)

	read := engine.Group("")
	read.Use(config.AuthMiddleware.RequireAuth())
	if config.RateLimiter != nil {
		read.Use(config.RateLimiter.Limit())
	}
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts
		read.GET("/tickets", config.TicketHandler.ListTickets)
		read.GET("/tickets/stats", config.TicketHandler.GetTicketStats)
		read.GET("/tickets/:id", config.TicketHandler.GetTicketDetail)

		read.GET("/customers/:id/tickets", config.TicketHandler.ListCustomerTickets)
	}
}
