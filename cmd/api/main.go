package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/db"
	apihttp "fintrack/internal/http"
	"fintrack/internal/repository"
	"fintrack/internal/service"
	"fintrack/internal/storage"

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

	if err := db.Migrate(ctx, cfg); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	txRepo := repository.NewPgTransactionRepository(pool)

	var summaryCache service.SummaryCache
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
			summaryCache = service.NewRedisSummaryCache(redisClient)
		}
		cancel()
	}

	var imageStore storage.ImageStore
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3ImageStore(ctx, storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			logger.Fatal("s3 image store init", zap.Error(err))
		}
		imageStore = s3Store
	} else {
		diskStore, err := storage.NewDiskImageStore(cfg.UploadDir)
		if err != nil {
			logger.Fatal("upload dir init", zap.Error(err))
		}
		imageStore = diskStore
	}

	tokenSvc := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	hasher := service.NewBcryptHasher()
	authSvc := service.NewAuthService(logger, userRepo, hasher, tokenSvc)
	txSvc := service.NewTransactionService(logger, txRepo, summaryCache)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, imageStore)
	txHandler := apihttp.NewTransactionHandler(logger, txSvc)

	uploadDir := ""
	if cfg.S3Bucket == "" {
		uploadDir = cfg.UploadDir
	}
	router := apihttp.NewRouter(logger, pool, tokenSvc, authHandler, txHandler, uploadDir)

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
