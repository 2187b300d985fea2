package domain

type Cards struct {
	Volume   string `json:"volume"`
	Value    string `json:"value"`
	Gap      string `json:"gap"`
	GapDelta string `json:"gap_delta"`
	GoalMet  bool   `json:"goal_met"`
}

type Chart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type Charts struct {
	AreaDose    Chart `json:"area_dose"`
	ValueTarget Chart `json:"value_target"`
}

// HistoryRow is the tabular form of a HistoryEntry.
type HistoryRow struct {
	Product  string `json:"Produto"`
	Volume   string `json:"Volume (L)"`
	Value    string `json:"Valor (R$)"`
	DateTime string `json:"Data/Hora"`
}

type Calculation struct {
	Input   ProspectionInput  `json:"input"`
	Result  ProspectionResult `json:"result"`
	Cards   Cards             `json:"cards"`
	Charts  Charts            `json:"charts"`
	History []HistoryEntry    `json:"history"`
	Insight string            `json:"insight,omitempty"`
}

type ProductValue struct {
	Product string  `json:"product"`
	Value   float64 `json:"value"`
}

type Summary struct {
	Simulations    int            `json:"simulations"`
	TotalVolume    float64        `json:"total_volume"`
	TotalValue     float64        `json:"total_value"`
	ValueByProduct []ProductValue `json:"value_by_product"`
	ValueChart     Chart          `json:"value_chart"`
}

// DemoSnapshot is the fixed data set shown by the demo dashboard.
type DemoSnapshot struct {
	TotalVolume float64 `json:"total_volume"`
	TotalValue  float64 `json:"total_value"`
	TargetGap   float64 `json:"target_gap"`
	Target      float64 `json:"target"`
	Categories  Chart   `json:"categories"`
}
