package analysis

import "regexp"

// Detector tables. Order matters: flags, indicators and keywords are
// emitted in table order. Patterns compile once at package init and the
// tables are read-only after that.
//
// Word-phrase rules carry (?i). The capital-letters rule matches runs
// of uppercase only and the exclamation rule is literal, so neither is
// case-folded.

var redFlagRules = []struct {
	re          *regexp.Regexp
	description string
	severity    Severity
}{
	{regexp.MustCompile(`(?i)\b(shocking|unbelievable|you won't believe)\b`), "Uses sensationalist language", SeverityMedium},
	{regexp.MustCompile(`(?i)\b(they don't want you to know|secret|hidden truth)\b`), "Conspiracy-style language", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(miracle|cure[- ]all|guaranteed)\b`), "Makes unrealistic claims", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(click here|share now|act fast)\b`), "Uses urgency tactics", SeverityLow},
	{regexp.MustCompile(`[A-Z]{5,}`), "Excessive use of capital letters", SeverityLow},
	{regexp.MustCompile(`!{2,}`), "Excessive exclamation marks", SeverityLow},
	{regexp.MustCompile(`(?i)\b(fake news|mainstream media lies)\b`), "Attacks credible sources", SeverityMedium},
	{regexp.MustCompile(`(?i)\b(100% proven|absolutely certain)\b`), "Uses absolute claims", SeverityMedium},
}

var positiveIndicatorRules = []struct {
	re          *regexp.Regexp
	description string
	icon        string
}{
	{regexp.MustCompile(`(?i)\b(study|studies|research)\b`), "References scientific research", "science"},
	{regexp.MustCompile(`(?i)\b(according to|cited|source)\b`), "Cites sources", "verified"},
	{regexp.MustCompile(`(?i)\b(expert|professor|doctor|dr\.)\b`), "References expert opinions", "expert"},
	{regexp.MustCompile(`(?i)\b(peer[- ]reviewed|journal|published)\b`), "References peer-reviewed content", "academic"},
	{regexp.MustCompile(`(?i)\b(data|statistics|percent|%)\b`), "Uses data and statistics", "chart"},
	{regexp.MustCompile(`(?i)\b(university|institution|organization)\b`), "References institutions", "institution"},
}

// Keyword vocabularies. A term scores only when it survives the
// tokenizer, so hyphenated entries like "peer-reviewed" stay inert;
// they are kept for vocabulary completeness.
var positiveKeywords = []string{
	"research", "study", "evidence", "analysis", "data", "report",
	"expert", "scientist", "professor", "peer-reviewed", "journal",
	"verified", "confirmed", "documented", "official", "factual",
}

var negativeKeywords = []string{
	"shocking", "unbelievable", "secret", "conspiracy", "hoax",
	"miracle", "guaranteed", "exclusive", "urgent", "breaking",
	"viral", "exposed", "banned", "censored", "suppressed",
}
