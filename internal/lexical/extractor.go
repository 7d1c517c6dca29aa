package lexical

import (
	"regexp"
	"strings"
)

// Extractor scores intensity, specificity, and evidence quality of a
// single insight's text using keyword and regex dictionaries. All three
// scores are deterministic pure functions of the text; empty text yields
// the documented floor, never zero or an error.
type Extractor struct {
	highIntensity   []string
	mediumIntensity []string
	lowIntensity    []string

	detailPatterns []*regexp.Regexp
	vagueMarkers   []string

	strongEvidence []string
	weakEvidence   []string
}

// NewExtractor compiles the pattern tables once.
func NewExtractor() *Extractor {
	return &Extractor{
		highIntensity: []string{
			"extremely", "absolutely", "nightmare", "must have", "desperate",
			"critical", "hate", "love", "can't stand", "killing me",
			"huge problem", "every single", "impossible",
		},
		mediumIntensity: []string{
			"really", "very", "frustrating", "annoying", "important",
			"need", "struggle", "difficult", "painful", "often",
		},
		lowIntensity: []string{
			"occasionally", "maybe", "sometimes", "somewhat", "a bit",
			"slightly", "mildly", "kind of", "sort of",
		},
		detailPatterns: []*regexp.Regexp{
			regexp.MustCompile(`[$€£]\s?\d+(?:[.,]\d+)?`),
			regexp.MustCompile(`\d+(?:\.\d+)?\s?%`),
			regexp.MustCompile(`\b\d+\s+(?:times?|hours?|minutes?|days?|weeks?|months?|years?|people|customers?|users?)\b`),
			regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
			regexp.MustCompile(`(?i)\b(?:twice|thrice)\b`),
		},
		vagueMarkers: []string{
			"i think", "maybe", "probably", "i guess", "not sure",
			"possibly", "perhaps", "i suppose",
		},
		strongEvidence: []string{
			"for example", "last time", "i tried", "last week", "last month",
			"yesterday", "when i", "i remember", "specifically", "in my case",
		},
		weakEvidence: []string{
			"i heard", "i assume", "people say", "apparently", "supposedly",
			"i imagine", "someone told me",
		},
	}
}

// IntensityScore is the weighted count of emotionally charged keywords,
// 3 per high hit, 2 per medium, 1 per low, normalized against an assumed
// maximum of three high-intensity hits and clamped to [3,10].
func (e *Extractor) IntensityScore(text string) float64 {
	lower := strings.ToLower(text)
	weighted := 3*countOccurrences(lower, e.highIntensity) +
		2*countOccurrences(lower, e.mediumIntensity) +
		1*countOccurrences(lower, e.lowIntensity)
	// assumed maximum: 3 high-intensity hits = weight 9
	score := float64(weighted) / 9.0 * 10.0
	return clamp(score, 3, 10)
}

// SpecificityScore rewards concrete details (amounts, percentages,
// counts, named days) and penalizes vague language, clamped to [2,10].
func (e *Extractor) SpecificityScore(text string) float64 {
	lower := strings.ToLower(text)
	details := 0
	for _, p := range e.detailPatterns {
		details += len(p.FindAllString(text, -1))
	}
	vague := countOccurrences(lower, e.vagueMarkers)
	score := 2.0 + 2.0*float64(details) - 1.0*float64(vague)
	return clamp(score, 2, 10)
}

// EvidenceScore rewards concrete-story phrases over hearsay, weighted
// sum doubled, floored at 3 and capped at 10.
func (e *Extractor) EvidenceScore(text string) float64 {
	lower := strings.ToLower(text)
	net := 2*countOccurrences(lower, e.strongEvidence) -
		countOccurrences(lower, e.weakEvidence)
	score := float64(net) * 2.0
	return clamp(score, 3, 10)
}

func countOccurrences(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		n += strings.Count(lower, p)
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
