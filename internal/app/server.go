// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"customer-service/internal/config"
	"customer-service/internal/db"
	authHandler "customer-service/internal/handlers/auth"
	customerHandler "customer-service/internal/handlers/customer"
	"customer-service/internal/middleware"
	"customer-service/internal/pkg/jwt"
	"customer-service/internal/pkg/session"
	"customer-service/internal/repository"
	"customer-service/internal/repository/memory"
	"customer-service/internal/repository/mongodb"
	"customer-service/internal/repository/postgres"
	authUsecase "customer-service/internal/service/auth"
	customersvc "customer-service/internal/service/customer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const customerCollection = "customer"

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- Record store -----
	store, err := s.buildStore(ctx)
	if err != nil {
		return err
	}

	// ----- Sessions -----
	tokens, err := jwt.NewManager(s.cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to build session token manager: %w", err)
	}

	var sessionStore session.Store
	var limiter authUsecase.LoginLimiter
	if s.cfg.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		sessionStore = session.NewRedisStore(redisClient)
		limiter = session.NewRateLimiter(redisClient)
	} else {
		logger.Warn("no redis configured, sessions are in-process only")
		sessionStore = session.NewMemoryStore()
	}
	sessionManager := session.NewManager(tokens, sessionStore)

	// ----- Services -----
	authService := authUsecase.NewAuthService(
		authUsecase.Credentials{
			Username:     s.cfg.AdminUsername,
			PasswordHash: s.cfg.AdminPasswordHash,
			Password:     s.cfg.AdminPassword,
		},
		sessionManager,
		limiter,
		logger,
	)
	customerService := customersvc.NewCustomerService(store, logger, s.cfg.PageSize, s.cfg.StoreTimeout)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:     authHandler.NewAuthHandler(authService),
		CustomerHandler: customerHandler.NewCustomerHandler(customerService),
		AuthMiddleware:  middleware.NewAuthMiddleware(authService),
	}

	s.engine.Use(gin.Logger())
	s.engine.Use(middleware.RecoveryMiddleware(logger))
	SetupRouter(s.engine, handlers)

	logger.Info("server starting",
		zap.String("addr", s.cfg.HTTPAddr),
		zap.String("store_backend", s.cfg.StoreBackend),
	)
	return s.engine.Run(s.cfg.HTTPAddr)
}

func (s *Server) buildStore(ctx context.Context) (repository.CustomerStore, error) {
	switch s.cfg.StoreBackend {
	case "mongo":
		client, err := db.NewMongoClient(s.cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		store := mongodb.NewCustomerStore(client.Database(s.cfg.MongoDB).Collection(customerCollection))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case "postgres":
		pool, err := db.NewPostgresPool(ctx, s.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return postgres.NewCustomerStore(pool), nil

	case "memory":
		return memory.NewCustomerStore(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", s.cfg.StoreBackend)
	}
}
