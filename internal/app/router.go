package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"tingling/internal/config"
	"tingling/internal/middleware"
	"tingling/internal/repository"
	"tingling/internal/service"
	"tingling/internal/store"
	"tingling/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the connected backends the engine is built on. Redis and
// RabbitMQ may be nil.
type Dependencies struct {
	DB       *gorm.DB
	Redis    *util.RedisClient
	RabbitMQ *util.RabbitMQClient
	Verifier service.IdentityVerifier
}

// Close releases the backend connections. Nil clients are skipped.
func (d Dependencies) Close() {
	if d.RabbitMQ != nil {
		if err := d.RabbitMQ.Close(); err != nil {
			log.Printf("Failed to close RabbitMQ: %v", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		}
	}
}

// NewRouter connects the backends and builds the engine. The caller closes
// the returned dependencies on shutdown.
func NewRouter(cfg *config.Config) (*gin.Engine, Dependencies) {
	// Initialize database
	db, err := store.OpenPostgres(cfg.PostgresDSN())
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	if err := store.Migrate(db); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	deps := Dependencies{DB: db}

	if cfg.RedisEnabled() {
		deps.Redis = initRedisWithRetry(cfg)
	} else {
		log.Println("Redis not configured. Sessions will not be revocable.")
	}

	if cfg.RabbitMQEnabled() {
		deps.RabbitMQ = initRabbitMQWithRetry(cfg)
	} else {
		log.Println("RabbitMQ not configured. Domain events will be dropped.")
	}

	deps.Verifier, err = newVerifier(cfg)
	if err != nil {
		panic("Failed to initialize identity verifier: " + err.Error())
	}

	return NewEngine(cfg, deps), deps
}

// NewEngine wires repositories, services and handlers onto a gin engine
func NewEngine(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware(cfg.ClientURL))

	if cfg.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(deps.DB)
	requestRepo := repository.NewFriendRequestRepository(deps.DB)
	friendshipRepo := repository.NewFriendshipRepository(deps.DB)
	blockRepo := repository.NewBlockRepository(deps.DB)
	chatRepo := repository.NewChatRepository(deps.DB)
	messageRepo := repository.NewMessageRepository(deps.DB)
	callLogRepo := repository.NewCallLogRepository(deps.DB)
	statusRepo := repository.NewStatusRepository(deps.DB)
	statusViewRepo := repository.NewStatusViewRepository(deps.DB)
	sessionRepo := repository.NewSessionRepository(deps.Redis)

	// Initialize services
	events := service.NewEventPublisher(deps.RabbitMQ)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(deps.Verifier, userService, sessionRepo, cfg.JWTSecret, cfg.AccessTokenTTL)
	friendshipService := service.NewFriendshipService(requestRepo, friendshipRepo, blockRepo, userRepo, events)
	chatService := service.NewChatService(chatRepo, messageRepo, events)
	callService := service.NewCallService(callLogRepo, events)
	statusService := service.NewStatusService(statusRepo, statusViewRepo, friendshipRepo, events)

	// Initialize handlers
	authHandler := NewAuthHandler(authService, userService)
	userHandler := NewUserHandler(userService)
	friendshipHandler := NewFriendshipHandler(friendshipService)
	chatHandler := NewChatHandler(chatService)
	callHandler := NewCallHandler(callService)
	statusHandler := NewStatusHandler(statusService)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/sign-in", authHandler.SignIn)

			// Protected routes
			auth.POST("/sign-out", authHandler.AuthMiddleware(), authHandler.SignOut)
			auth.GET("/me", authHandler.AuthMiddleware(), authHandler.GetMe)
		}

		users := api.Group("/users")
		{
			if cfg.AuthMode == "demo" {
				users.POST("", userHandler.CreateUser)
			}

			users.Use(authHandler.AuthMiddleware())
			{
				users.GET("/search", userHandler.SearchUsers)
				users.PATCH("/me", userHandler.UpdateMe)
				users.GET("/:id", userHandler.GetUser)
				users.GET("/:id/statuses", statusHandler.GetUserStatuses)
			}
		}

		protected := api.Group("")
		protected.Use(authHandler.AuthMiddleware())
		{
			protected.POST("/friend-requests", friendshipHandler.SendFriendRequest)
			protected.GET("/friend-requests", friendshipHandler.GetFriendRequests)
			protected.POST("/friend-requests/:id/respond", friendshipHandler.RespondToFriendRequest)
			protected.GET("/friends", friendshipHandler.GetFriends)

			protected.POST("/blocks", friendshipHandler.BlockUser)
			protected.GET("/blocks", friendshipHandler.GetBlockedUsers)
			protected.DELETE("/blocks/:userID", friendshipHandler.UnblockUser)

			protected.POST("/chats", chatHandler.GetOrCreateChat)
			protected.GET("/chats", chatHandler.GetUserChats)
			protected.GET("/chats/unread-count", chatHandler.GetUnreadCount)
			protected.GET("/chats/:id/messages", chatHandler.GetChatMessages)
			protected.POST("/chats/:id/messages", chatHandler.SendMessage)
			protected.POST("/chats/:id/read", chatHandler.MarkAsRead)
			protected.DELETE("/messages/:id", chatHandler.DeleteMessage)

			protected.POST("/calls", callHandler.LogCall)
			protected.GET("/calls", callHandler.GetCallLogs)

			protected.POST("/statuses", statusHandler.CreateStatus)
			protected.GET("/statuses/feed", statusHandler.GetFriendsStatuses)
			protected.POST("/statuses/:id/view", statusHandler.MarkStatusViewed)
			protected.GET("/statuses/:id/views", statusHandler.GetStatusViews)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err == nil && deps.Redis != nil {
			err = deps.Redis.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func newVerifier(cfg *config.Config) (service.IdentityVerifier, error) {
	if cfg.AuthMode == "demo" {
		log.Println("AUTH_MODE=demo: credentials are trusted without verification")
		return service.DemoVerifier{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return service.NewGoogleVerifier(ctx, cfg.GoogleIssuer, cfg.GoogleClientID)
}

// initRabbitMQWithRetry attempts to connect to RabbitMQ with exponential backoff retry
func initRabbitMQWithRetry(cfg *config.Config) *util.RabbitMQClient {
	client, err := withRetry("RabbitMQ", func() (*util.RabbitMQClient, error) {
		return util.NewRabbitMQClient(cfg)
	})
	if err != nil {
		log.Printf("Warning: Failed to connect to RabbitMQ: %v. Domain events will be dropped.", err)
		return nil
	}
	return client
}

// initRedisWithRetry attempts to connect to Redis with exponential backoff retry
func initRedisWithRetry(cfg *config.Config) *util.RedisClient {
	client, err := withRetry("Redis", func() (*util.RedisClient, error) {
		return util.NewRedisClient(cfg)
	})
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Sessions will not be revocable.", err)
		return nil
	}
	return client
}

const (
	maxConnectAttempts  = 10
	initialConnectDelay = 2 * time.Second
	maxConnectDelay     = 30 * time.Second
)

func withRetry[T any](name string, connect func() (T, error)) (T, error) {
	var (
		client T
		err    error
	)
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		client, err = connect()
		if err == nil {
			log.Printf("%s connected successfully on attempt %d", name, attempt)
			return client, nil
		}
		if attempt == maxConnectAttempts {
			break
		}

		delay := initialConnectDelay * time.Duration(1<<uint(attempt-1))
		if delay > maxConnectDelay {
			delay = maxConnectDelay
		}
		log.Printf("Failed to connect to %s (attempt %d/%d): %v. Retrying in %v...", name, attempt, maxConnectAttempts, err, delay)
		time.Sleep(delay)
	}
	return client, err
}

func corsMiddleware(clientURL string) gin.HandlerFunc {
	allowedOrigins := []string{
		clientURL,
		"http://localhost:3000",
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", clientURL)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
