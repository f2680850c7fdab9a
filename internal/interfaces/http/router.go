package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"prognosis/internal/application/prognosis/usecases"
	"prognosis/internal/infrastructure/auth"
	"prognosis/internal/infrastructure/config"
	"prognosis/internal/infrastructure/repository"
	prognosishandlers "prognosis/internal/interfaces/http/handlers/prognosis"
	"prognosis/internal/interfaces/http/middleware"
	"prognosis/internal/interfaces/http/routes"
	shareddb "prognosis/internal/shared/db"
	"prognosis/internal/shared/logger"
)

// Router wires repositories, use cases and handlers onto a gin engine.
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	logger logger.Interface
}

func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	return &Router{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		logger: log,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestLogger(r.logger.Named("http")))
	r.engine.Use(middleware.ErrorHandler())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ticketRepo := repository.NewPrognosisTicketRepository(r.db)
	masterRepo := repository.NewMasterDataRepository(r.db)
	txManager := shareddb.NewTransactionManager(r.db)

	ucLogger := r.logger.Named("usecases")
	handler := prognosishandlers.NewTicketHandler(
		usecases.NewIngestAlertsUseCase(ticketRepo, masterRepo, txManager, ucLogger),
		usecases.NewListTicketsUseCase(ticketRepo, ucLogger),
		usecases.NewGetTicketDetailUseCase(ticketRepo, ucLogger),
		usecases.NewListCustomerTicketsUseCase(ticketRepo, ucLogger),
		usecases.NewGetTicketStatsUseCase(ticketRepo, ucLogger),
		r.logger.Named("handlers"),
	)

	jwtService := auth.NewJWTService(r.cfg.Auth.JWT.Secret, r.cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, r.logger.Named("auth"))

	routes.SetupPrognosisRoutes(r.engine, &routes.PrognosisRouteConfig{
		TicketHandler:  handler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    r.buildRateLimiter(),
	})
}

// buildRateLimiter returns nil when rate limiting is disabled.
func (r *Router) buildRateLimiter() *middleware.RateLimiter {
	if !r.cfg.RateLimit.Enabled {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     r.cfg.Redis.GetAddr(),
		Password: r.cfg.Redis.Password,
		DB:       r.cfg.Redis.DB,
	})

	window := time.Duration(r.cfg.RateLimit.WindowMinutes) * time.Minute
	return middleware.NewRateLimiter(redisClient, r.cfg.RateLimit.Requests, window)
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
