package service

import (
	"context"
	"sync/atomic"
	"time"

	"prospection-agent/domain"
	"prospection-agent/errs"
	"prospection-agent/logger"
	"prospection-agent/metrics"
	"prospection-agent/repository"
)

type ProspectionService struct {
	repo     repository.HistoryRepository
	insight  *InsightService
	defaults atomic.Pointer[domain.ProspectionInput]
	now      func() time.Time
}

// NewProspectionService creates a ProspectionService. insight may be nil.
func NewProspectionService(
	repo repository.HistoryRepository,
	insight *InsightService,
) *ProspectionService {
	s := &ProspectionService{repo: repo, insight: insight, now: time.Now}
	s.SetDefaults(DefaultInput())
	return s
}

// Defaults returns the current form defaults.
func (s *ProspectionService) Defaults() domain.ProspectionInput {
	return *s.defaults.Load()
}

// SetDefaults replaces the form defaults; safe to call while serving.
func (s *ProspectionService) SetDefaults(in domain.ProspectionInput) {
	s.defaults.Store(&in)
}

// Calculate runs one "calculate" action for a session: compute, append to
// the session history and build the dashboard payload.
func (s *ProspectionService) Calculate(
	ctx context.Context,
	sessionID string,
	input domain.ProspectionInput,
) (domain.Calculation, error) {

	result := ComputeAt(input, s.now())
	if err := CheckFinite(result); err != nil {
		return domain.Calculation{}, err
	}
	log := logger.C(ctx)

	// history problems are logged, the calculation itself still succeeds
	previous, err := s.repo.List(ctx, sessionID)
	if err != nil {
		metrics.HistoryErrors.WithLabelValues("list").Inc()
		log.Warn().Err(err).Msg("failed to load session history")
		previous = nil
	}

	history := Record(previous, result, input)

	if err := s.repo.Append(ctx, sessionID, history[len(history)-1]); err != nil {
		metrics.HistoryErrors.WithLabelValues("append").Inc()
		log.Warn().Err(err).Msg("failed to save prospection to history")
	}

	metrics.RecordCalculation(result.TotalValue)
	log.Debug().
		Str("product", input.ProductName).
		Float64("total_volume", result.TotalVolume).
		Float64("total_value", result.TotalValue).
		Float64("target_gap", result.TargetGap).
		Int("history_len", len(history)).
		Msg("prospection calculated")

	calc := domain.Calculation{
		Input:   input,
		Result:  result,
		Cards:   BuildCards(result),
		Charts:  BuildCharts(input, result),
		History: history,
	}
	if s.insight != nil {
		calc.Insight = s.insight.Explain(ctx, input, result)
	}
	return calc, nil
}

// History returns the session's calculations in the order they were made.
func (s *ProspectionService) History(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error) {
	entries, err := s.repo.List(ctx, sessionID)
	if err != nil {
		metrics.HistoryErrors.WithLabelValues("list").Inc()
		return nil, errs.WithOp(err, "history")
	}
	return entries, nil
}

// Export computes input and renders the download artifact.
func (s *ProspectionService) Export(input domain.ProspectionInput) (filename, body string, err error) {
	result := ComputeAt(input, s.now())
	if err := CheckFinite(result); err != nil {
		return "", "", err
	}
	metrics.Exports.Inc()
	return ExportFilename(input.ProductName), ExportText(input.ProductName, result.TotalVolume, result.TotalValue), nil
}
