package domain

import "time"

// ProspectionInput is one set of form values. Numeric fields are expected to
// be non-negative; that is checked where the input enters the system.
type ProspectionInput struct {
	ProductName    string  `json:"product_name" yaml:"product_name" validate:"max=120"`
	DosePerHectare float64 `json:"dose_per_hectare" yaml:"dose_per_hectare" validate:"gte=0"`
	Area           float64 `json:"area" yaml:"area" validate:"gte=0"`
	PricePerLiter  float64 `json:"price_per_liter" yaml:"price_per_liter" validate:"gte=0"`
	SalesTarget    float64 `json:"sales_target" yaml:"sales_target" validate:"gte=0"`
}

type ProspectionResult struct {
	TotalVolume float64   `json:"total_volume"`
	TotalValue  float64   `json:"total_value"`
	TargetGap   float64   `json:"target_gap"`
	ComputedAt  time.Time `json:"computed_at"`
}

// HistoryEntry is one recorded calculation of a session.
type HistoryEntry struct {
	ProductName string    `json:"product_name"`
	TotalVolume float64   `json:"total_volume"`
	TotalValue  float64   `json:"total_value"`
	ComputedAt  time.Time `json:"computed_at"`
}
