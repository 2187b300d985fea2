package service

import (
	"math"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospection-agent/domain"
)

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestComputeAt_Examples(t *testing.T) {
	tests := []struct {
		name       string
		input      domain.ProspectionInput
		wantVolume float64
		wantValue  float64
		wantGap    float64
	}{
		{
			name:       "default form values",
			input:      domain.ProspectionInput{ProductName: "Scoriflex", DosePerHectare: 2, Area: 50, PricePerLiter: 25, SalesTarget: 5000},
			wantVolume: 100,
			wantValue:  2500,
			wantGap:    -2500,
		},
		{
			name:       "zero dose",
			input:      domain.ProspectionInput{ProductName: "Scoriflex", DosePerHectare: 0, Area: 50, PricePerLiter: 25, SalesTarget: 0},
			wantVolume: 0,
			wantValue:  0,
			wantGap:    0,
		},
		{
			name:       "target exceeded",
			input:      domain.ProspectionInput{ProductName: "Irrigafix", DosePerHectare: 1.5, Area: 200, PricePerLiter: 40, SalesTarget: 10000},
			wantVolume: 300,
			wantValue:  12000,
			wantGap:    2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAt(tt.input, fixedTime)
			assert.Equal(t, tt.wantVolume, got.TotalVolume)
			assert.Equal(t, tt.wantValue, got.TotalValue)
			assert.Equal(t, tt.wantGap, got.TargetGap)
			assert.Equal(t, fixedTime, got.ComputedAt)
		})
	}
}

func TestComputeAt_Arithmetic(t *testing.T) {
	f := func(dose, area, price, target float64) bool {
		in := domain.ProspectionInput{
			DosePerHectare: math.Abs(dose),
			Area:           math.Abs(area),
			PricePerLiter:  math.Abs(price),
			SalesTarget:    math.Abs(target),
		}
		r := ComputeAt(in, fixedTime)

		volume := in.DosePerHectare * in.Area
		value := volume * in.PricePerLiter
		return r.TotalVolume == volume &&
			r.TotalValue == value &&
			r.TargetGap == value-in.SalesTarget
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestComputeAt_GapSign(t *testing.T) {
	below := ComputeAt(domain.ProspectionInput{DosePerHectare: 1, Area: 10, PricePerLiter: 10, SalesTarget: 101}, fixedTime)
	assert.Negative(t, below.TargetGap)

	equal := ComputeAt(domain.ProspectionInput{DosePerHectare: 1, Area: 10, PricePerLiter: 10, SalesTarget: 100}, fixedTime)
	assert.Zero(t, equal.TargetGap)

	above := ComputeAt(domain.ProspectionInput{DosePerHectare: 1, Area: 10, PricePerLiter: 10, SalesTarget: 99}, fixedTime)
	assert.Positive(t, above.TargetGap)
}

func TestCompute_Idempotent(t *testing.T) {
	in := DefaultInput()
	a := Compute(in)
	b := Compute(in)

	assert.Equal(t, a.TotalVolume, b.TotalVolume)
	assert.Equal(t, a.TotalValue, b.TotalValue)
	assert.Equal(t, a.TargetGap, b.TargetGap)
	assert.False(t, a.ComputedAt.IsZero())
}

func TestRecord_AppendsWithoutTouchingPrior(t *testing.T) {
	in := DefaultInput()
	history := []domain.HistoryEntry{}

	for i := 0; i < 3; i++ {
		before := make([]domain.HistoryEntry, len(history))
		copy(before, history)

		result := ComputeAt(in, fixedTime.Add(time.Duration(i)*time.Minute))
		next := Record(history, result, in)

		require.Len(t, next, len(before)+1)
		assert.Equal(t, before, next[:len(before)])
		assert.Equal(t, before, history, "argument must not change")

		last := next[len(next)-1]
		assert.Equal(t, in.ProductName, last.ProductName)
		assert.Equal(t, result.TotalVolume, last.TotalVolume)
		assert.Equal(t, result.TotalValue, last.TotalValue)
		assert.Equal(t, result.ComputedAt, last.ComputedAt)

		history = next
	}
}

func TestRecord_DoesNotAliasSpareCapacity(t *testing.T) {
	in := DefaultInput()
	base := make([]domain.HistoryEntry, 1, 8)
	base[0] = NewHistoryEntry(ComputeAt(in, fixedTime), in)

	a := Record(base, ComputeAt(in, fixedTime), domain.ProspectionInput{ProductName: "A"})
	b := Record(base, ComputeAt(in, fixedTime), domain.ProspectionInput{ProductName: "B"})

	assert.Equal(t, "A", a[1].ProductName)
	assert.Equal(t, "B", b[1].ProductName)
}

func TestExportText(t *testing.T) {
	got := ExportText("Scoriflex", 100, 2500)
	assert.Equal(t, "Produto: Scoriflex\nVolume Total: 100.00 L\nValor da Venda: R$ 2500.00", got)

	got = ExportText("X", 1.005, 0.125)
	assert.Equal(t, "Produto: X\nVolume Total: 1.00 L\nValor da Venda: R$ 0.12", got)
}

func TestExportFilename(t *testing.T) {
	tests := map[string]string{
		"Scoriflex":        "prospeccao_scoriflex.txt",
		"Scoriflex Plus":   "prospeccao_scoriflex_plus.txt",
		"Adubo  Foliar XL": "prospeccao_adubo__foliar_xl.txt",
		"ÓLEO Mineral":     "prospeccao_óleo_mineral.txt",
		"":                 "prospeccao_.txt",
	}
	for product, want := range tests {
		assert.Equal(t, want, ExportFilename(product), product)
	}
}

func TestBuildCharts(t *testing.T) {
	in := DefaultInput()
	charts := BuildCharts(in, ComputeAt(in, fixedTime))

	assert.Equal(t, []float64{50, 2}, charts.AreaDose.Values)
	assert.Equal(t, []string{AreaLabel, DoseLabel}, charts.AreaDose.Labels)
	assert.Equal(t, []float64{2500, 5000}, charts.ValueTarget.Values)
	assert.Equal(t, []string{SaleValueLabel, SalesTargetLabel}, charts.ValueTarget.Labels)
}

func TestBuildCards(t *testing.T) {
	in := DefaultInput()
	cards := BuildCards(ComputeAt(in, fixedTime))

	assert.Equal(t, "100.00 L", cards.Volume)
	assert.Equal(t, "R$ 2,500.00", cards.Value)
	assert.Equal(t, "R$ -2,500.00", cards.Gap)
	assert.Equal(t, "-2,500.00", cards.GapDelta)
	assert.False(t, cards.GoalMet)

	in.SalesTarget = 2500
	assert.True(t, BuildCards(ComputeAt(in, fixedTime)).GoalMet)
}

func TestHistoryRows(t *testing.T) {
	entries := []domain.HistoryEntry{
		{ProductName: "Scoriflex", TotalVolume: 100, TotalValue: 2500, ComputedAt: fixedTime},
		{ProductName: "Irrigafix", TotalVolume: 12345.678, TotalValue: 0, ComputedAt: fixedTime.Add(time.Hour)},
	}
	rows := HistoryRows(entries)

	require.Len(t, rows, 2)
	assert.Equal(t, domain.HistoryRow{Product: "Scoriflex", Volume: "100.00", Value: "R$ 2500.00", DateTime: "14/03/2025 09:30"}, rows[0])
	assert.Equal(t, domain.HistoryRow{Product: "Irrigafix", Volume: "12345.68", Value: "R$ 0.00", DateTime: "14/03/2025 10:30"}, rows[1])

	assert.Empty(t, HistoryRows(nil))
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, CheckFinite(ComputeAt(DefaultInput(), fixedTime)))

	huge := ComputeAt(domain.ProspectionInput{DosePerHectare: 1e200, Area: 1e200}, fixedTime)
	assert.Error(t, CheckFinite(huge))

	// value overflows even though volume does not
	pricey := ComputeAt(domain.ProspectionInput{DosePerHectare: 1e160, Area: 1, PricePerLiter: 1e160}, fixedTime)
	assert.Error(t, CheckFinite(pricey))
}
