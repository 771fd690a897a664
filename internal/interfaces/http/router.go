package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"beacon/internal/application/assistant"
	billingapp "beacon/internal/application/billing"
	campaignusecases "beacon/internal/application/campaign/usecases"
	identityusecases "beacon/internal/application/identity/usecases"
	messagingusecases "beacon/internal/application/messaging/usecases"
	"beacon/internal/infrastructure/auth"
	"beacon/internal/infrastructure/cache"
	"beacon/internal/infrastructure/config"
	"beacon/internal/infrastructure/discovery"
	"beacon/internal/infrastructure/llm"
	"beacon/internal/infrastructure/messaging"
	"beacon/internal/infrastructure/repository"
	"beacon/internal/interfaces/http/handlers"
	"beacon/internal/interfaces/http/middleware"
	"beacon/internal/shared/logger"
	"beacon/internal/shared/services/markdown"
)

const searchCacheTTL = 15 * time.Minute

// Router holds the Gin engine and the wired handlers.
type Router struct {
	engine           *gin.Engine
	assistantHandler *handlers.AssistantHandler
	campaignHandler  *handlers.CampaignHandler
	messagingHandler *handlers.MessagingHandler
	authMiddleware   *middleware.AuthMiddleware
	allowedOrigins   []string
	logger           logger.Interface
}

// NewRouter wires repositories, collaborator clients, use cases and handlers.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	profileRepo := repository.NewProfileRepository(db, log)
	bootstrapRepo := repository.NewBootstrapRepository(db, log)
	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	usageRepo := repository.NewUsageEventRepository(db, log)
	campaignRepo := repository.NewCampaignRepository(db, log)
	sessionRepo := repository.NewChatSessionRepository(db, log)

	searchCache := cache.NewSearchResultStore(redisClient, "beacon:search:", searchCacheTTL)

	modelClient := llm.NewClient(&cfg.LLM, log)
	discoveryClient := discovery.NewClient(&cfg.Discovery, log)
	messagingClient := messaging.NewClient(&cfg.Messaging, log)

	gate := billingapp.NewGate(subscriptionRepo, usageRepo, cfg.Billing.PeriodDays, time.Now, log)

	orchestrator := assistant.NewOrchestrator(
		modelClient,
		discoveryClient,
		campaignRepo,
		sessionRepo,
		searchCache,
		markdown.NewService(),
		log,
	)
	chatService := assistant.NewChatService(gate, orchestrator, log)

	ensureOrgContextUC := identityusecases.NewEnsureOrgContextUseCase(profileRepo, bootstrapRepo, log)
	searchUC := campaignusecases.NewSearchInfluencersUseCase(gate, campaignRepo, discoveryClient, searchCache, log)
	searchResultsUC := campaignusecases.NewGetSearchResultsUseCase(gate, campaignRepo, searchCache, log)
	sendOutreachUC := messagingusecases.NewSendOutreachUseCase(gate, messagingClient, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	return &Router{
		engine:           engine,
		assistantHandler: handlers.NewAssistantHandler(ensureOrgContextUC, chatService, modelClient),
		campaignHandler:  handlers.NewCampaignHandler(ensureOrgContextUC, searchUC, searchResultsUC),
		messagingHandler: handlers.NewMessagingHandler(ensureOrgContextUC, sendOutreachUC),
		authMiddleware:   middleware.NewAuthMiddleware(jwtService, log),
		allowedOrigins:   cfg.Server.AllowedOrigins,
		logger:           log,
	}
}

// SetupRoutes configures middleware and all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))
	r.engine.Use(middleware.ErrorHandler())

	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		v1.POST("/assistant/chat", r.assistantHandler.Chat)
		v1.POST("/campaigns/:id/search", r.campaignHandler.Search)
		v1.GET("/campaigns/:id/search", r.campaignHandler.GetSearchResults)
		v1.POST("/messages", r.messagingHandler.Send)
	}
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
