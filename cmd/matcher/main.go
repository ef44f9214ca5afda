package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"opmatch/internal/config"
	"opmatch/internal/db"
	"opmatch/internal/repository"
	"opmatch/internal/service"
)

func main() {
	userFlag := flag.String("user", "", "profile/user id to recompute matches for (required)")
	flag.Parse()

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

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		logger.Fatal("invalid -user flag", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	guard := service.NewRedisRecomputeGuard(nil, 0)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, recompute guard disabled", zap.Error(err))
		} else {
			guard = service.NewRedisRecomputeGuard(redisClient, time.Duration(cfg.RecomputeLockTTLSeconds)*time.Second)
		}
		cancel()
	}

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	opportunityRepo := repository.NewPgOpportunityRepository(pool)
	matchRepo := repository.NewPgMatchRepository(pool)
	matchSvc := service.NewMatchService(logger, profileRepo, opportunityRepo, matchRepo)

	acquired, err := guard.Acquire(ctx, userID)
	if err != nil {
		logger.Fatal("acquire recompute lock", zap.Error(err))
	}
	if !acquired {
		logger.Info("recompute already in progress for user, skipping", zap.String("user_id", userID.String()))
		return
	}
	defer func() {
		if err := guard.Release(ctx, userID); err != nil {
			logger.Warn("release recompute lock", zap.Error(err))
		}
	}()

	results, err := matchSvc.ComputeMatches(ctx, userID, service.ComputeOptions{
		Limit:            cfg.MatchLimit,
		MinScore:         cfg.MatchMinScore,
		OnlyActive:       cfg.OnlyActive,
		ApplyHardFilters: cfg.ApplyHardFilters,
	})
	if err != nil {
		logger.Fatal("compute matches", zap.Error(err))
	}

	created, err := matchSvc.SaveMatches(ctx, userID, results)
	if err != nil {
		logger.Fatal("save matches", zap.Error(err))
	}

	logger.Info("recompute finished",
		zap.String("user_id", userID.String()),
		zap.Int("results", len(results)),
		zap.Int("created", created),
	)
}
