package service

import (
	"time"

	"prospection-agent/domain"
)

// Form defaults, as first shown on the dashboard sidebar
const (
	DefaultProductName    = "Scoriflex"
	DefaultDosePerHectare = 2.0
	DefaultArea           = 50.0
	DefaultPricePerLiter  = 25.0
	DefaultSalesTarget    = 5000.0
)

const (
	HistoryDateLayout = "02/01/2006 15:04"
	ExportPrefix      = "prospeccao_"
	ExportExtension   = ".txt"

	// Chart titles and labels
	AreaDoseTitle    = "Relação Área × Dose"
	AreaLabel        = "Área (ha)"
	DoseLabel        = "Dose (L/ha)"
	ValueTargetTitle = "Comparação entre Valor de Venda e Meta"
	SaleValueLabel   = "Valor da Venda"
	SalesTargetLabel = "Meta de Venda"
	ValueByProduct   = "Valor por Produto"
	ValueByCategory  = "Valor por Categoria"
)

const (
	InsightCacheSize = 1024
	InsightMaxTokens = 300

	// DefaultInsightTimeout must stay below the server write timeout.
	DefaultInsightTimeout = 10 * time.Second
)

// DefaultInput returns the form defaults
func DefaultInput() domain.ProspectionInput {
	return domain.ProspectionInput{
		ProductName:    DefaultProductName,
		DosePerHectare: DefaultDosePerHectare,
		Area:           DefaultArea,
		PricePerLiter:  DefaultPricePerLiter,
		SalesTarget:    DefaultSalesTarget,
	}
}
