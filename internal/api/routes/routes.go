package routes

import (
	"time"

	"voting-service/internal/api/handlers"
	"voting-service/internal/api/middleware"
	"voting-service/internal/config"
	"voting-service/internal/events"
	"voting-service/internal/repositories/gormrepo"
	"voting-service/internal/services"
	"voting-service/internal/storage"
	"voting-service/internal/websocket"

	_ "voting-service/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies are the long lived collaborators the router wires together.
// RedisService, Images, Publisher and Hub are optional.
type Dependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisService *services.RedisService
	Images       storage.ImageStore
	Publisher    events.Publisher
	Hub          *websocket.Hub
	Clock        func() time.Time
}

type Router struct {
	engine           *gin.Engine
	cfg              *config.Config
	authHandler      *handlers.AuthHandler
	candidateHandler *handlers.CandidateHandler
	voteHandler      *handlers.VoteHandler
	resultHandler    *handlers.ResultHandler
	infoHandler      *handlers.InfoHandler
	wsHandler        *handlers.WSHandler
	rateLimitMW      *middleware.RateLimitMiddleware
	authMW           *middleware.AuthMiddleware
}

func NewRouter(deps Dependencies) *Router {
	cfg := deps.Config
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	// Add middlewares
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	engine.Use(middleware.LogApi())

	// Redis backed collaborators are only wired when redis is available
	var (
		cache   services.ResultsCache
		revoker services.TokenRevoker
		limiter middleware.RateLimiter
	)
	if deps.RedisService != nil {
		cache, revoker, limiter = deps.RedisService, deps.RedisService, deps.RedisService
	}

	// Initialize repositories
	userRepo := gormrepo.NewUserRepository(deps.DB)
	candidateRepo := gormrepo.NewCandidateRepository(deps.DB)
	voteRepo := gormrepo.NewVoteRepository(deps.DB)

	// Initialize services
	ledger := services.NewVotingLedger(voteRepo, deps.Publisher, cache, cfg.Results.CacheTTL)
	userService := services.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpirationTime, revoker)
	candidateService := services.NewCandidateService(candidateRepo, deps.Images, ledger, deps.Publisher)

	r := &Router{
		engine:           engine,
		cfg:              cfg,
		authHandler:      handlers.NewAuthHandler(userService),
		candidateHandler: handlers.NewCandidateHandler(candidateService),
		voteHandler:      handlers.NewVoteHandler(ledger, deps.Clock),
		resultHandler:    handlers.NewResultHandler(ledger),
		infoHandler:      handlers.NewInfoHandler(cfg.Database.Driver, cfg.Server.Environment),
		rateLimitMW:      middleware.NewRateLimitMiddleware(limiter),
		authMW:           middleware.NewAuthMiddleware(userService),
	}
	if deps.Hub != nil {
		r.wsHandler = handlers.NewWSHandler(deps.Hub, cfg.CORS.AllowedOrigins)
	}
	return r
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", r.infoHandler.Health)
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if r.cfg.Storage.Driver == config.StorageLocal {
		r.engine.Static(r.cfg.Storage.PublicBaseURL, r.cfg.Storage.LocalDir)
	}

	userLimit := r.cfg.RateLimit.UserPerMinute
	ipLimit := r.cfg.RateLimit.IPPerMinute

	api := r.engine.Group("/api/v1")
	api.GET("/", r.infoHandler.Root)

	// Public routes (no authentication required)
	public := api.Group("")
	{
		authRoutes := public.Group("/auth")
		authRoutes.Use(r.rateLimitMW.RateLimitIP(ipLimit, time.Minute))
		{
			authRoutes.POST("/register", r.authHandler.Register)
			authRoutes.POST("/login", r.authHandler.Login)
		}

		public.GET("/candidates", r.candidateHandler.List)
		public.GET("/results", r.resultHandler.Results)
		public.GET("/results/:id", r.resultHandler.CandidateResult)
		if r.wsHandler != nil {
			public.GET("/ws/results", r.wsHandler.ResultsFeed)
		}
	}

	// Authenticated routes
	auth := api.Group("")
	auth.Use(r.authMW.RequireAuth())
	auth.Use(r.rateLimitMW.RateLimit(userLimit, time.Minute))
	{
		auth.POST("/auth/logout", r.authHandler.Logout)
		auth.GET("/users/me", r.authHandler.Me)

		votes := auth.Group("/votes")
		{
			votes.POST("", r.voteHandler.CastVote)
			votes.POST("/purchase", r.voteHandler.PurchaseVotes)
			votes.GET("/can-vote", r.voteHandler.CanVote)
			votes.GET("/history", r.voteHandler.History)
		}

		admin := auth.Group("/admin")
		admin.Use(r.authMW.RequireAdmin())
		{
			admin.GET("/candidates", r.candidateHandler.List)
			admin.POST("/candidates", r.candidateHandler.Create)
			admin.GET("/candidates/:id", r.candidateHandler.Get)
			admin.PUT("/candidates/:id", r.candidateHandler.Update)
			admin.DELETE("/candidates/:id", r.candidateHandler.Delete)
			admin.POST("/candidates/:id/image", r.candidateHandler.UploadImage)
			admin.GET("/votes", r.voteHandler.AdminVotes)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
