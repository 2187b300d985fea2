package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"prospection-agent/domain"
	"prospection-agent/errs"
)

// Compute derives volume, sale value and target gap from input, stamped
// with the current time.
func Compute(input domain.ProspectionInput) domain.ProspectionResult {
	return ComputeAt(input, time.Now())
}

// ComputeAt is Compute with an explicit timestamp. No rounding happens here;
// any non-negative input, zero included, has a defined result.
func ComputeAt(input domain.ProspectionInput, at time.Time) domain.ProspectionResult {
	volume := input.DosePerHectare * input.Area
	value := volume * input.PricePerLiter
	return domain.ProspectionResult{
		TotalVolume: volume,
		TotalValue:  value,
		TargetGap:   value - input.SalesTarget,
		ComputedAt:  at,
	}
}

// CheckFinite rejects results whose volume, value or gap overflowed float64.
// Such results cannot be encoded as JSON or stored.
func CheckFinite(result domain.ProspectionResult) error {
	for _, v := range []float64{result.TotalVolume, result.TotalValue, result.TargetGap} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return errs.Validationf("inputs produce a result too large to represent")
		}
	}
	return nil
}

// Record returns history with one entry for result appended. history itself
// is never written to.
func Record(
	history []domain.HistoryEntry,
	result domain.ProspectionResult,
	input domain.ProspectionInput,
) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(history), len(history)+1)
	copy(out, history)
	return append(out, NewHistoryEntry(result, input))
}

func NewHistoryEntry(result domain.ProspectionResult, input domain.ProspectionInput) domain.HistoryEntry {
	return domain.HistoryEntry{
		ProductName: input.ProductName,
		TotalVolume: result.TotalVolume,
		TotalValue:  result.TotalValue,
		ComputedAt:  result.ComputedAt,
	}
}

// ExportText renders the downloadable result summary.
func ExportText(productName string, totalVolume, totalValue float64) string {
	return fmt.Sprintf("Produto: %s\nVolume Total: %.2f L\nValor da Venda: R$ %.2f",
		productName, totalVolume, totalValue)
}

// ExportFilename is prospeccao_<product lowercased, spaces as underscores>.txt
func ExportFilename(productName string) string {
	slug := strings.ReplaceAll(cases.Lower(language.Und).String(productName), " ", "_")
	return ExportPrefix + slug + ExportExtension
}

// BuildCharts returns the two dashboard series: [area, dose] and
// [total value, sales target].
func BuildCharts(input domain.ProspectionInput, result domain.ProspectionResult) domain.Charts {
	return domain.Charts{
		AreaDose: domain.Chart{
			Title:  AreaDoseTitle,
			Labels: []string{AreaLabel, DoseLabel},
			Values: []float64{input.Area, input.DosePerHectare},
		},
		ValueTarget: domain.Chart{
			Title:  ValueTargetTitle,
			Labels: []string{SaleValueLabel, SalesTargetLabel},
			Values: []float64{result.TotalValue, input.SalesTarget},
		},
	}
}

// BuildCards formats the three metric cards.
func BuildCards(result domain.ProspectionResult) domain.Cards {
	return domain.Cards{
		Volume:   groupedf("%.2f L", result.TotalVolume),
		Value:    groupedf("R$ %.2f", result.TotalValue),
		Gap:      groupedf("R$ %.2f", result.TargetGap),
		GapDelta: groupedf("%.2f", result.TargetGap),
		GoalMet:  result.TargetGap >= 0,
	}
}

// HistoryRows formats entries for tabular display, preserving order.
func HistoryRows(entries []domain.HistoryEntry) []domain.HistoryRow {
	rows := make([]domain.HistoryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, domain.HistoryRow{
			Product:  e.ProductName,
			Volume:   fmt.Sprintf("%.2f", e.TotalVolume),
			Value:    fmt.Sprintf("R$ %.2f", e.TotalValue),
			DateTime: e.ComputedAt.Format(HistoryDateLayout),
		})
	}
	return rows
}
