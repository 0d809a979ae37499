package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/cartchef/backend/config"
	"github.com/pageza/cartchef/backend/internal/database"
	"github.com/pageza/cartchef/backend/internal/llm"
	"github.com/pageza/cartchef/backend/internal/logging"
	"github.com/pageza/cartchef/backend/internal/service"
)

// app carries what every subcommand builds from configuration
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	redis *redis.Client
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logging.New(config.IsProduction(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log}, nil
}

func (a *app) openDB(ctx context.Context) error {
	db, err := database.New(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	a.db = db
	return nil
}

// openRedis connects when Redis is configured. Failure only costs caching and
// rate limiting, so it is logged rather than returned.
func (a *app) openRedis(ctx context.Context) {
	if !a.cfg.RedisEnabled() {
		a.log.Info("redis not configured; suggestion cache and rate limiting disabled")
		return
	}
	client, err := database.NewRedisClient(ctx, a.cfg, a.log)
	if err != nil {
		a.log.Warn("failed to connect to Redis; continuing without it", zap.Error(err))
		return
	}
	a.redis = client
}

func (a *app) suggestionService(ctx context.Context) *service.SuggestionService {
	gen, err := service.NewGenerator(ctx, a.cfg.LLM)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			a.log.Warn("no API key for LLM provider; suggestions will fall back", zap.String("provider", a.cfg.LLM.Provider))
		} else {
			a.log.Error("failed to create LLM client; suggestions will fall back", zap.Error(err))
		}
		gen = nil
	}

	var cache service.SuggestionCache
	if a.redis != nil {
		cache = service.NewRedisSuggestionCache(a.redis)
	}

	return service.NewSuggestionService(gen, cache, service.SuggestionOptions{
		PromptTemplate: a.cfg.LLM.PromptTemplate,
		Timeout:        a.cfg.LLM.Timeout,
		CacheTTL:       a.cfg.SuggestionCacheTTL,
	}, a.log)
}

func (a *app) imageSigner(ctx context.Context) service.ImageSigner {
	if !a.cfg.S3Enabled() {
		return nil
	}
	s3cfg, err := config.NewS3Config(ctx, a.cfg)
	if err != nil {
		a.log.Warn("failed to initialize S3; product images served as stored", zap.Error(err))
		return nil
	}
	return s3cfg
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
	_ = a.log.Sync()
}
