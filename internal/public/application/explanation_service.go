package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sngm3741/ecorating-services/api/internal/metrics"
	"github.com/sngm3741/ecorating-services/api/internal/public/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

type explanationService struct {
	stores    StoreQueryService
	generator TextGenerator
	timeout   time.Duration
	logger    *zap.SugaredLogger
}

// NewExplanationService builds the explanation use-case. A nil generator always yields the fallback.
func NewExplanationService(stores StoreQueryService, generator TextGenerator, timeout time.Duration, logger *zap.SugaredLogger) ExplanationService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &explanationService{
		stores:    stores,
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Explain returns an error only when the store cannot be loaded. Generation problems are
// reported as the fallback text. There are no retries.
func (s *explanationService) Explain(ctx context.Context, storeID string) (*domain.Explanation, error) {
	detail, err := s.stores.Detail(ctx, storeID)
	if err != nil {
		return nil, err
	}

	fallback := &domain.Explanation{StoreID: detail.Store.ID, Text: sustainability.FallbackExplanation}
	if s.generator == nil {
		metrics.ExplanationRequests.WithLabelValues("disabled").Inc()
		return fallback, nil
	}

	var agg sustainability.RatingAggregate
	if detail.Community != nil {
		agg = *detail.Community
	}
	prompt := sustainability.ExplanationPrompt(detail.Store, agg)

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.GenerateText(genCtx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyGeneration
	}
	if err != nil {
		metrics.ExplanationRequests.WithLabelValues("fallback").Inc()
		s.logger.Warnw("explanation generation failed", "storeId", detail.Store.ID, "error", err)
		return fallback, nil
	}

	metrics.ExplanationRequests.WithLabelValues("generated").Inc()
	return &domain.Explanation{StoreID: detail.Store.ID, Text: text, Generated: true}, nil
}
