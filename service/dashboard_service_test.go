package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospection-agent/domain"
	"prospection-agent/errs"
)

func TestSummarize(t *testing.T) {
	entries := []domain.HistoryEntry{
		{ProductName: "Scoriflex", TotalVolume: 100, TotalValue: 2500, ComputedAt: fixedTime},
		{ProductName: "Irrigafix", TotalVolume: 10, TotalValue: 100, ComputedAt: fixedTime},
		{ProductName: "Scoriflex", TotalVolume: 50, TotalValue: 1000, ComputedAt: fixedTime},
	}

	got := Summarize(entries)

	assert.Equal(t, 3, got.Simulations)
	assert.Equal(t, 160.0, got.TotalVolume)
	assert.Equal(t, 3600.0, got.TotalValue)
	assert.Equal(t, []domain.ProductValue{
		{Product: "Scoriflex", Value: 3500},
		{Product: "Irrigafix", Value: 100},
	}, got.ValueByProduct)
	assert.Equal(t, ValueByProduct, got.ValueChart.Title)
	assert.Equal(t, []string{"Scoriflex", "Irrigafix"}, got.ValueChart.Labels)
	assert.Equal(t, []float64{3500, 100}, got.ValueChart.Values)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	assert.Zero(t, got.Simulations)
	assert.NotNil(t, got.ValueByProduct)
	assert.Empty(t, got.ValueChart.Labels)
}

func TestDashboardSummary(t *testing.T) {
	mockRepo := &MockHistoryRepository{}
	ps := newTestService(mockRepo)
	ds := NewDashboardService(mockRepo)
	ctx := context.Background()

	_, err := ps.Calculate(ctx, "s1", DefaultInput())
	require.NoError(t, err)

	got, err := ds.Summary(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Simulations)
	assert.Equal(t, 2500.0, got.TotalValue)

	mockRepo.ForceError = true
	_, err = ds.Summary(ctx, "s1")
	assert.True(t, errs.IsCode(err, errs.CodeUnavailable))
}

func TestDemo(t *testing.T) {
	demo := NewDashboardService(&MockHistoryRepository{}).Demo()

	assert.Equal(t, 1365.0, demo.TotalVolume)
	assert.Equal(t, 5000.0, demo.TotalValue)
	assert.Equal(t, 211.0, demo.TargetGap)
	assert.Equal(t, 4800.0, demo.Target)
	assert.Equal(t, []float64{2000, 1800, 1200}, demo.Categories.Values)
	assert.Len(t, demo.Categories.Labels, 3)
}
