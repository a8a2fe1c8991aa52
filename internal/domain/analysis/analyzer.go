package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Analyzer runs the heuristic credibility pipeline: pattern detection,
// keyword weighting, score aggregation and the overview sentence.
// It holds no state and is safe for concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// AnalyzeContent scores a piece of text and returns the full analysis.
// Every well-formed string yields a complete result; there is no error
// path here.
func (a *Analyzer) AnalyzeContent(text string) *Result {
	redFlags := findRedFlags(text)
	indicators := findPositiveIndicators(text)
	keywords := extractKeywords(text)

	score := calculateScore(redFlags, indicators, keywords)

	return &Result{
		Score:              score,
		Overview:           generateOverview(score, redFlags, indicators),
		RedFlags:           redFlags,
		PositiveIndicators: indicators,
		Keywords:           keywords,
	}
}

// generateID buat id pendek untuk komponen hasil analisis
func generateID() string {
	return uuid.New().String()[:8]
}

// findRedFlags runs the red-flag table against the text as given.
// Each rule contributes at most one flag, in table order.
func findRedFlags(text string) []RedFlag {
	flags := make([]RedFlag, 0, len(redFlagRules))
	for _, rule := range redFlagRules {
		if rule.re.MatchString(text) {
			flags = append(flags, RedFlag{
				ID:          "rf-" + generateID(),
				Description: rule.description,
				Severity:    rule.severity,
			})
		}
	}
	return flags
}

// findPositiveIndicators runs the indicator table against the text as
// given, one indicator per rule at most.
func findPositiveIndicators(text string) []PositiveIndicator {
	indicators := make([]PositiveIndicator, 0, len(positiveIndicatorRules))
	for _, rule := range positiveIndicatorRules {
		if rule.re.MatchString(text) {
			indicators = append(indicators, PositiveIndicator{
				ID:          "pi-" + generateID(),
				Description: rule.description,
				Icon:        rule.icon,
			})
		}
	}
	return indicators
}

var wordRe = regexp.MustCompile(`\b[a-z]+\b`)

// extractKeywords tokenizes the lowercased text and scores vocabulary
// terms by frequency. Positive terms come first, then negative, and the
// combined list is cut at 10 entries.
func extractKeywords(text string) []Keyword {
	freq := make(map[string]int)
	for _, word := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(word) > 3 {
			freq[word]++
		}
	}

	keywords := make([]Keyword, 0, 10)
	for _, term := range positiveKeywords {
		if n, ok := freq[term]; ok {
			keywords = append(keywords, Keyword{Term: term, Impact: ImpactPositive, Weight: keywordWeight(n)})
		}
	}
	for _, term := range negativeKeywords {
		if n, ok := freq[term]; ok {
			keywords = append(keywords, Keyword{Term: term, Impact: ImpactNegative, Weight: keywordWeight(n)})
		}
	}

	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	return keywords
}

// keywordWeight grows with frequency, capped at 1.0, rounded to two
// decimals.
func keywordWeight(freq int) float64 {
	w := 0.3 + 0.1*float64(freq)
	if w > 1.0 {
		w = 1.0
	}
	return math.Round(w*100) / 100
}

// calculateScore aggregates all components into the final 0-100 score.
// The running total is truncated to an integer before clamping.
func calculateScore(redFlags []RedFlag, indicators []PositiveIndicator, keywords []Keyword) int {
	score := 50.0

	for _, flag := range redFlags {
		switch flag.Severity {
		case SeverityLow:
			score -= 5
		case SeverityMedium:
			score -= 10
		case SeverityHigh:
			score -= 15
		default:
			score -= 5
		}
	}

	score += float64(len(indicators)) * 8

	for _, kw := range keywords {
		if kw.Impact == ImpactPositive {
			score += kw.Weight * 5
		} else {
			score -= kw.Weight * 5
		}
	}

	n := int(score)
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n
}

// generateOverview composes the human-readable summary for a score
// band, plus a detail clause when anything was detected.
func generateOverview(score int, redFlags []RedFlag, indicators []PositiveIndicator) string {
	var assessment string
	switch {
	case score >= 80:
		assessment = "This content appears to be highly credible."
	case score >= 60:
		assessment = "This content shows moderate credibility."
	case score >= 40:
		assessment = "This content has mixed credibility signals."
	case score >= 20:
		assessment = "This content shows low credibility."
	default:
		assessment = "This content appears to have very low credibility."
	}

	details := make([]string, 0, 2)
	if len(indicators) > 0 {
		details = append(details, fmt.Sprintf("Found %d positive indicator(s)", len(indicators)))
	}
	if len(redFlags) > 0 {
		details = append(details, fmt.Sprintf("identified %d red flag(s)", len(redFlags)))
	}
	if len(details) == 0 {
		return assessment
	}

	return assessment + " " + capitalize(strings.Join(details, " and ")) + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
