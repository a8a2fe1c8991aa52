package analysis

// Engine port (interface untuk pipeline analisis)
type Engine interface {
	AnalyzeContent(text string) *Result
}
