package analysis

// Severity enum
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Impact enum
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
)

// RedFlag value object
type RedFlag struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// PositiveIndicator value object
type PositiveIndicator struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Keyword value object
type Keyword struct {
	Term   string  `json:"term"`
	Impact Impact  `json:"impact"`
	Weight float64 `json:"weight"`
}

// Aggregate Root: Result
// List fields are always non-nil so they encode as [] instead of null.
type Result struct {
	Score              int                 `json:"score"`
	Overview           string              `json:"overview"`
	RedFlags           []RedFlag           `json:"red_flags"`
	PositiveIndicators []PositiveIndicator `json:"positive_indicators"`
	Keywords           []Keyword           `json:"keywords"`
}
