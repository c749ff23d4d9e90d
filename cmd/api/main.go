package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"creative-scribe/internal/config"
	"creative-scribe/internal/db"
	"creative-scribe/internal/events"
	apihttp "creative-scribe/internal/http"
	"creative-scribe/internal/llm"
	"creative-scribe/internal/repository"
	"creative-scribe/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	conversationRepo := repository.NewPgConversationRepository(pool)
	userRepo := repository.NewPgUserRepository(pool)

	// Un cliente por proveedor con credenciales; el router rechaza el resto.
	clients := map[string]llm.Client{}
	if cfg.OpenAIAPIKey != "" {
		clients[llm.ProviderOpenAI] = llm.NewOpenAICompatClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, nil, logger)
	}
	if cfg.AnthropicAPIKey != "" {
		clients[llm.ProviderAnthropic] = llm.NewAnthropicClient(cfg.AnthropicBaseURL, cfg.AnthropicAPIKey, logger)
	}
	if cfg.MistralAPIKey != "" {
		clients[llm.ProviderMistral] = llm.NewOpenAICompatClient(cfg.MistralBaseURL, cfg.MistralAPIKey, nil, logger)
	}
	if cfg.GroqAPIKey != "" {
		clients[llm.ProviderGroq] = llm.NewOpenAICompatClient(cfg.GroqBaseURL, cfg.GroqAPIKey, nil, logger)
	}
	if cfg.XAIAPIKey != "" {
		clients[llm.ProviderXAI] = llm.NewOpenAICompatClient(cfg.XAIBaseURL, cfg.XAIAPIKey, nil, logger)
	}
	if cfg.GoogleAPIKey != "" {
		clients[llm.ProviderGoogle] = llm.NewGeminiClient(cfg.GoogleBaseURL, cfg.GoogleAPIKey, logger)
	}
	if cfg.OpenRouterAPIKey != "" {
		clients[llm.ProviderOpenRouter] = llm.NewOpenAICompatClient(
			cfg.OpenRouterBaseURL,
			cfg.OpenRouterAPIKey,
			map[string]string{"HTTP-Referer": cfg.AppReferer, "X-Title": cfg.AppTitle},
			logger,
		)
	}
	router := llm.NewRouter(clients, logger)

	bus := events.NewBus(logger)
	defer bus.Close()

	conversationSvc := service.NewConversationService(conversationRepo)
	aggregator := service.NewSessionAggregator(conversationRepo)
	contextBld := service.NewContextBuilder(conversationRepo, logger)
	chatSvc := service.NewChatService(logger, conversationSvc, contextBld, router, bus)
	userSvc := service.NewUserService(logger, userRepo)

	var tokenStore service.RefreshTokenStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	authHandler := apihttp.NewAuthHandler(logger, userSvc, jwtSvc)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc, conversationSvc, aggregator)
	profileHandler := apihttp.NewProfileHandler(logger, userSvc, bus)
	eventsHandler := apihttp.NewEventsHandler(logger, bus)
	engine := apihttp.NewRouter(logger, jwtSvc, authHandler, chatHandler, profileHandler, eventsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
