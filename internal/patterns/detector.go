package patterns

import (
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/logger"
	"discovery-insights-go/internal/types"
)

const (
	topThemes        = 10
	minTokenLen      = 4
	minCorrelationN  = 3
	minOutlierCorpus = 5
)

// Detector finds recurring themes, trends, distributions, correlations,
// and statistical outliers across a corpus of insights. Every
// sub-analysis runs and degrades independently; a failure becomes that
// section's error field, never a panic out of Detect.
type Detector struct {
	highImpact float64
	log        *logrus.Entry
}

func NewDetector(cfg config.Config) *Detector {
	return &Detector{
		highImpact: cfg.Thresholds.HighImpact,
		log:        logger.New().WithField("component", "patterns"),
	}
}

// Detect runs every sub-analysis over the same immutable snapshot. The
// result is a pure function of the input: identical corpora yield
// identical results, including ordering.
func (d *Detector) Detect(insights []types.Insight) types.PatternAnalysisResult {
	result := types.PatternAnalysisResult{TotalInsights: len(insights)}

	runSection("themes", &result.Themes.Err, func() {
		result.Themes = d.frequentThemes(insights)
	})
	runSection("sentiment", &result.Sentiment.Err, func() {
		result.Sentiment = d.sentimentTrend(insights)
	})
	runSection("confidence_distribution", &result.Confidence.Err, func() {
		result.Confidence = confidenceDistribution(insights)
	})
	runSection("type_distribution", &result.Kinds.Err, func() {
		result.Kinds = kindDistribution(insights)
	})
	runSection("temporal", &result.Temporal.Err, func() {
		result.Temporal = temporalPattern(insights)
	})
	runSection("correlations", &result.Correlations.Err, func() {
		result.Correlations = correlations(insights)
	})
	runSection("outliers", &result.Outliers.Err, func() {
		result.Outliers = outliers(insights)
	})

	d.log.WithFields(logrus.Fields{
		"insights": len(insights),
		"themes":   len(result.Themes.Themes),
		"outliers": len(result.Outliers.Outliers),
	}).Debug("pattern detection complete")

	return result
}

// runSection isolates one sub-analysis so a panic surfaces as that
// section's error field.
func runSection(name string, errField *string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			*errField = fmt.Sprintf("%s analysis failed: %v", name, r)
		}
	}()
	fn()
}

// frequentThemes counts distinct insights mentioning each content token
// (tokens over three characters) and returns the top ten. Ties break
// alphabetically so the ordering is stable.
func (d *Detector) frequentThemes(insights []types.Insight) types.ThemeAnalysis {
	if len(insights) == 0 {
		return types.ThemeAnalysis{Note: "insufficient data: no insights"}
	}

	counts := make(map[string]int)
	for _, ins := range insights {
		seen := make(map[string]struct{})
		for _, tok := range strings.Fields(strings.ToLower(ins.Content)) {
			tok = strings.Trim(tok, ".,!?;:\"'()[]")
			if len(tok) < minTokenLen {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			counts[tok]++
		}
	}

	themes := make([]types.Theme, 0, len(counts))
	for tok, n := range counts {
		themes = append(themes, types.Theme{
			Theme:      tok,
			Frequency:  n,
			Percentage: float64(n) / float64(len(insights)) * 100,
		})
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Frequency != themes[j].Frequency {
			return themes[i].Frequency > themes[j].Frequency
		}
		return themes[i].Theme < themes[j].Theme
	})
	if len(themes) > topThemes {
		themes = themes[:topThemes]
	}
	return types.ThemeAnalysis{Themes: themes}
}

// sentimentTrend weighs high-impact validation points against
// high-impact pain points. Either side must outnumber the other by 1.5x
// to move the needle off neutral.
func (d *Detector) sentimentTrend(insights []types.Insight) types.SentimentTrend {
	if len(insights) == 0 {
		return types.SentimentTrend{Trend: "neutral", Note: "insufficient data: no insights"}
	}

	positive, negative := 0, 0
	for _, ins := range insights {
		if ins.ImpactScore < d.highImpact {
			continue
		}
		switch ins.Kind {
		case types.KindValidationPoint:
			positive++
		case types.KindPainPoint:
			negative++
		}
	}

	trend := "neutral"
	switch {
	case float64(positive) > 1.5*float64(negative) && positive > 0:
		trend = "positive"
	case float64(negative) > 1.5*float64(positive) && negative > 0:
		trend = "negative"
	}
	return types.SentimentTrend{Trend: trend, PositiveCount: positive, NegativeCount: negative}
}

func confidenceDistribution(insights []types.Insight) types.ConfidenceDistribution {
	dist := types.ConfidenceDistribution{
		Counts:      make(map[types.ConfidenceLabel]int),
		Percentages: make(map[types.ConfidenceLabel]float64),
	}
	if len(insights) == 0 {
		return dist
	}
	total := 0.0
	for _, ins := range insights {
		dist.Counts[ins.Confidence]++
		total += ins.Confidence.Numeric()
	}
	for label, n := range dist.Counts {
		dist.Percentages[label] = float64(n) / float64(len(insights)) * 100
	}
	dist.NumericAverage = total / float64(len(insights))
	return dist
}

func kindDistribution(insights []types.Insight) types.KindDistribution {
	dist := types.KindDistribution{
		Counts:      make(map[types.InsightKind]int),
		Percentages: make(map[types.InsightKind]float64),
	}
	if len(insights) == 0 {
		return dist
	}
	for _, ins := range insights {
		dist.Counts[ins.Kind]++
	}
	for kind, n := range dist.Counts {
		dist.Percentages[kind] = float64(n) / float64(len(insights)) * 100
	}
	return dist
}

// temporalPattern buckets creation times by UTC calendar day. The
// extractor's timezone is unknown, so UTC keeps bucketing reproducible.
func temporalPattern(insights []types.Insight) types.TemporalPattern {
	if len(insights) == 0 {
		return types.TemporalPattern{DailyCounts: map[string]int{}, Note: "insufficient data: no insights"}
	}
	buckets := make(map[string]int)
	for _, ins := range insights {
		buckets[ins.CreatedAt.UTC().Format("2006-01-02")]++
	}
	return types.TemporalPattern{
		DailyCounts:  buckets,
		DailyAverage: float64(len(insights)) / float64(len(buckets)),
	}
}

// correlations computes Pearson correlation between numeric-encoded
// extraction confidence and impact score. Degenerate inputs (under
// three insights, or a constant side) return an empty list with a note.
func correlations(insights []types.Insight) types.CorrelationAnalysis {
	if len(insights) < minCorrelationN {
		return types.CorrelationAnalysis{
			Note: fmt.Sprintf("insufficient data: %d insights, %d required for correlation", len(insights), minCorrelationN),
		}
	}

	conf := make(stats.Float64Data, len(insights))
	impact := make(stats.Float64Data, len(insights))
	for i, ins := range insights {
		conf[i] = ins.Confidence.Numeric()
		impact[i] = clampImpact(ins.ImpactScore)
	}
	if distinct(conf) < 2 || distinct(impact) < 2 {
		return types.CorrelationAnalysis{Note: "degenerate data: a factor has a single distinct value"}
	}

	r, err := stats.Pearson(conf, impact)
	if err != nil {
		return types.CorrelationAnalysis{Note: fmt.Sprintf("correlation unavailable: %v", err)}
	}
	return types.CorrelationAnalysis{
		Pairs: []types.FactorCorrelation{{
			FactorA:     "confidence",
			FactorB:     "impact_score",
			Coefficient: r,
			SampleSize:  len(insights),
		}},
	}
}

// outliers applies the IQR fence test to impact scores. Corpora under
// five insights cannot support quartiles worth trusting.
func outliers(insights []types.Insight) types.OutlierAnalysis {
	if len(insights) < minOutlierCorpus {
		return types.OutlierAnalysis{
			Note: fmt.Sprintf("insufficient data: %d insights, %d required for outlier detection", len(insights), minOutlierCorpus),
		}
	}

	impacts := make(stats.Float64Data, len(insights))
	for i, ins := range insights {
		impacts[i] = clampImpact(ins.ImpactScore)
	}
	q, err := stats.Quartile(impacts)
	if err != nil {
		return types.OutlierAnalysis{Err: fmt.Sprintf("quartile computation failed: %v", err)}
	}
	iqr := q.Q3 - q.Q1
	lower := q.Q1 - 1.5*iqr
	upper := q.Q3 + 1.5*iqr

	var flagged []types.Outlier
	for _, ins := range insights {
		v := clampImpact(ins.ImpactScore)
		switch {
		case v < lower:
			flagged = append(flagged, types.Outlier{
				InsightID:   ins.ID,
				Kind:        ins.Kind,
				ImpactScore: v,
				Reason:      fmt.Sprintf("impact score %.2f below lower fence %.2f", v, lower),
			})
		case v > upper:
			flagged = append(flagged, types.Outlier{
				InsightID:   ins.ID,
				Kind:        ins.Kind,
				ImpactScore: v,
				Reason:      fmt.Sprintf("impact score %.2f above upper fence %.2f", v, upper),
			})
		}
	}
	return types.OutlierAnalysis{Outliers: flagged, LowerFence: lower, UpperFence: upper}
}

func distinct(values stats.Float64Data) int {
	set := make(map[float64]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return len(set)
}

func clampImpact(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
