package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"curator-llm/internal/config"
	"curator-llm/internal/db"
	apihttp "curator-llm/internal/http"
	"curator-llm/internal/llm"
	"curator-llm/internal/repository"
	"curator-llm/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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

	contentRepo := repository.NewPgContentRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbedModel, logger)
	if !llmClient.IsAvailable() {
		logger.Warn("llm api key not configured, pipeline will run on fallback only")
	}

	cache := service.NewMemoryBundleCache()
	var limiter service.AnalyzeRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory cache", zap.Error(err))
		} else {
			cache = service.NewRedisBundleCache(redisClient)
			limiter = service.NewRedisAnalyzeRateLimiter(
				redisClient,
				time.Duration(cfg.AnalyzeRateWindowMin)*time.Minute,
				cfg.AnalyzeRateMax,
			)
		}
		cancel()
	}

	fallback := service.NewFallbackSynthesizer(nil)
	stylist := service.NewCommentStylist(nil)
	curatorSvc := service.NewCuratorService(
		llmClient,
		cache,
		contentRepo,
		fallback,
		stylist,
		logger,
		cfg.PipelineVersion,
		time.Duration(cfg.LLMTimeoutSec)*time.Second,
	)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	curatorHandler := apihttp.NewCuratorHandler(logger, contentRepo, curatorSvc, limiter, cfg.ContentLimit)
	router := apihttp.NewRouter(logger, jwtSvc, curatorHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
