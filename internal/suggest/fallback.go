package suggest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskboard/internal/config"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/metrics"
)

// Fallback asks Primary first and answers from Secondary when Primary fails.
type Fallback struct {
	Primary   ports.PrioritySuggester
	Secondary ports.PrioritySuggester
	logger    *zap.Logger
}

func NewFallback(primary, secondary ports.PrioritySuggester, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{Primary: primary, Secondary: secondary, logger: logger}
}

func (f *Fallback) Suggest(ctx context.Context, description string) (domain.TaskPriority, error) {
	priority, err := f.Primary.Suggest(ctx, description)
	if err == nil {
		return priority, nil
	}
	f.logger.Warn("primary priority suggester failed, using fallback", zap.Error(err))
	return f.Secondary.Suggest(ctx, description)
}

// instrumented counts suggestions per backend and result.
type instrumented struct {
	backend string
	next    ports.PrioritySuggester
}

func (i instrumented) Suggest(ctx context.Context, description string) (domain.TaskPriority, error) {
	priority, err := i.next.Suggest(ctx, description)
	result := string(priority)
	if err != nil {
		result = metrics.StatusError
	}
	metrics.PrioritySuggestions.WithLabelValues(i.backend, result).Inc()
	return priority, err
}

// FromConfig builds the suggester selected by SUGGEST_BACKEND.
func FromConfig(cfg *config.Config, logger *zap.Logger) (ports.PrioritySuggester, error) {
	heuristic := instrumented{backend: config.SuggestHeuristic, next: NewHeuristic()}

	switch cfg.SuggestBackend {
	case config.SuggestHeuristic, "":
		return heuristic, nil
	case config.SuggestAnthropic, config.SuggestFallback:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("suggest backend %q: %w", cfg.SuggestBackend, ErrMissingAPIKey)
		}
		model := instrumented{
			backend: config.SuggestAnthropic,
			next:    NewAnthropic(cfg.AnthropicAPIKey, WithModel(cfg.AnthropicModel)),
		}
		if cfg.SuggestBackend == config.SuggestAnthropic {
			return model, nil
		}
		return NewFallback(model, heuristic, logger), nil
	default:
		return nil, fmt.Errorf("unknown suggest backend %q", cfg.SuggestBackend)
	}
}
