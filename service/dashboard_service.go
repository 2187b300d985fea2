package service

import (
	"context"

	"prospection-agent/domain"
	"prospection-agent/repository"
)

type DashboardService struct {
	repo repository.HistoryRepository
}

func NewDashboardService(repo repository.HistoryRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Summary aggregates the session history. Products appear in the order they
// were first calculated.
func (s *DashboardService) Summary(ctx context.Context, sessionID string) (domain.Summary, error) {
	entries, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	return Summarize(entries), nil
}

func Summarize(entries []domain.HistoryEntry) domain.Summary {
	summary := domain.Summary{
		Simulations:    len(entries),
		ValueByProduct: []domain.ProductValue{},
	}

	index := make(map[string]int)
	for _, e := range entries {
		summary.TotalVolume += e.TotalVolume
		summary.TotalValue += e.TotalValue

		i, ok := index[e.ProductName]
		if !ok {
			i = len(summary.ValueByProduct)
			index[e.ProductName] = i
			summary.ValueByProduct = append(summary.ValueByProduct, domain.ProductValue{Product: e.ProductName})
		}
		summary.ValueByProduct[i].Value += e.TotalValue
	}

	chart := domain.Chart{
		Title:  ValueByProduct,
		Labels: make([]string, 0, len(summary.ValueByProduct)),
		Values: make([]float64, 0, len(summary.ValueByProduct)),
	}
	for _, pv := range summary.ValueByProduct {
		chart.Labels = append(chart.Labels, pv.Product)
		chart.Values = append(chart.Values, pv.Value)
	}
	summary.ValueChart = chart
	return summary
}

// Demo returns the fixed sample shown by the demo dashboard.
func (s *DashboardService) Demo() domain.DemoSnapshot {
	return domain.DemoSnapshot{
		TotalVolume: 1365,
		TotalValue:  5000,
		TargetGap:   211,
		Target:      4800,
		Categories: domain.Chart{
			Title:  ValueByCategory,
			Labels: []string{"Scoriflex", "Outro Produto A", "Outro Produto B"},
			Values: []float64{2000, 1800, 1200},
		},
	}
}
