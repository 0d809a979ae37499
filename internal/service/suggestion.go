package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pageza/cartchef/backend/internal/llm"
	"github.com/pageza/cartchef/backend/internal/types"
)

const (
	DefaultSuggestionTTL     = 24 * time.Hour
	DefaultSuggestionTimeout = 30 * time.Second
)

// SuggestionOptions tunes a SuggestionService
type SuggestionOptions struct {
	PromptTemplate string
	Timeout        time.Duration
	CacheTTL       time.Duration
}

// SuggestionService asks the model what to cook with a product. It never
// fails: every error path ends in the fallback suggestion.
type SuggestionService struct {
	generator llm.Generator
	cache     SuggestionCache
	opts      SuggestionOptions
	logger    *zap.Logger
	group     singleflight.Group
}

// NewSuggestionService creates a SuggestionService. A nil generator makes every
// call fall back; a nil cache disables caching.
func NewSuggestionService(generator llm.Generator, cache SuggestionCache, opts SuggestionOptions, logger *zap.Logger) *SuggestionService {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultSuggestionTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultSuggestionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionService{
		generator: generator,
		cache:     cache,
		opts:      opts,
		logger:    logger,
	}
}

func (s *SuggestionService) Suggest(ctx context.Context, product string) *types.RecipeSuggestion {
	name := strings.TrimSpace(product)
	if name == "" {
		return fallback(name)
	}
	key := SuggestionKey(name)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("suggestion cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			out := *cached
			out.Product = name
			return &out
		}
	}

	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generate(ctx, name, key), nil
	})

	out := *v.(*types.RecipeSuggestion)
	out.Product = name
	return &out
}

func (s *SuggestionService) generate(ctx context.Context, name, key string) *types.RecipeSuggestion {
	if s.generator == nil {
		s.logger.Warn("AI suggestion error", zap.String("product", name), zap.Error(llm.ErrMissingAPIKey))
		return fallback(name)
	}

	// Shared by every caller waiting on this key, so one caller going away
	// must not cancel the rest.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.Timeout)
	defer cancel()

	text, err := s.generator.Generate(callCtx, llm.BuildPrompt(s.opts.PromptTemplate, name))
	if err != nil {
		s.logger.Error("AI suggestion error", zap.String("product", name), zap.Error(err))
		return fallback(name)
	}

	suggestion := llm.Extract(text)
	if suggestion.Text == "" {
		s.logger.Error("AI suggestion error", zap.String("product", name), zap.Error(llm.ErrEmptyResponse))
		return fallback(name)
	}
	suggestion.Product = name

	if s.cache != nil {
		if err := s.cache.Set(callCtx, key, &suggestion, s.opts.CacheTTL); err != nil {
			s.logger.Warn("suggestion cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return &suggestion
}

// SuggestionKey normalizes a product name into its cache key
func SuggestionKey(product string) string {
	return "recipe:suggestion:" + strings.ToLower(strings.Join(strings.Fields(product), " "))
}

func fallback(product string) *types.RecipeSuggestion {
	return &types.RecipeSuggestion{
		Product:             product,
		RequiredIngredients: []string{},
		Text:                llm.FallbackText,
		Fallback:            true,
	}
}
