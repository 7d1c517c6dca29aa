package confidence

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/logger"
	"discovery-insights-go/internal/types"
)

// Calculator turns a scored corpus plus its interview count into a
// go/no-go confidence verdict with actionable recommendations.
type Calculator struct {
	significanceCutoff float64
	log                *logrus.Entry
}

func NewCalculator(cfg config.Config) *Calculator {
	return &Calculator{
		significanceCutoff: cfg.Thresholds.SignificanceCutoff,
		log:                logger.New().WithField("component", "confidence"),
	}
}

// Calculate averages four equally weighted [0,1] sub-scores into the
// overall confidence score. segmentSize is optional context (0 =
// unknown) and only shapes recommendations, never the score.
func (c *Calculator) Calculate(insights []types.Insight, totalInterviews, segmentSize int) types.ValidationConfidenceResult {
	if len(insights) == 0 || totalInterviews <= 0 {
		return types.ValidationConfidenceResult{
			ConfidenceLevel:    types.VerdictVeryLow,
			ConfidenceScore:    0.0,
			SampleSizeAdequacy: types.AdequacyInsufficient,
			Recommendations: []string{
				"No insight data available yet. Conduct and analyze customer interviews before drawing conclusions.",
			},
		}
	}

	adequacy, adequacyLabel := sampleAdequacy(totalInterviews)
	factors := types.ConfidenceFactors{
		SampleAdequacy:          adequacy,
		PatternConsistency:      patternConsistency(insights),
		InsightQuality:          insightQuality(insights),
		StatisticalSignificance: statisticalSignificance(insights, totalInterviews),
	}

	score := (factors.SampleAdequacy + factors.PatternConsistency +
		factors.InsightQuality + factors.StatisticalSignificance) / 4.0

	level := verdictFor(score)
	// fewer than 5 interviews can never support a usable verdict
	if totalInterviews < 5 {
		level = types.VerdictVeryLow
	}

	result := types.ValidationConfidenceResult{
		ConfidenceLevel:          level,
		ConfidenceScore:          score,
		StatisticallySignificant: factors.StatisticalSignificance >= c.significanceCutoff,
		SampleSizeAdequacy:       adequacyLabel,
		Factors:                  factors,
		Recommendations:          recommendations(factors, totalInterviews, segmentSize, c.significanceCutoff),
	}

	c.log.WithFields(logrus.Fields{
		"insights":   len(insights),
		"interviews": totalInterviews,
		"score":      fmt.Sprintf("%.3f", score),
		"level":      level,
	}).Debug("confidence calculated")

	return result
}

// sampleAdequacy grades the interview count on fixed thresholds.
func sampleAdequacy(totalInterviews int) (float64, types.SampleAdequacy) {
	switch {
	case totalInterviews >= 30:
		return 1.0, types.AdequacyExcellent
	case totalInterviews >= 15:
		return 0.8, types.AdequacyGood
	case totalInterviews >= 8:
		return 0.6, types.AdequacyAdequate
	case totalInterviews >= 5:
		return 0.4, types.AdequacyMinimal
	default:
		return 0.2, types.AdequacyInsufficient
	}
}

// patternConsistency groups insights by kind and rewards tight impact
// score spreads within groups of two or more. No qualifying group means
// nothing can be said either way: 0.5.
func patternConsistency(insights []types.Insight) float64 {
	groups := make(map[types.InsightKind]stats.Float64Data)
	for _, ins := range insights {
		groups[ins.Kind] = append(groups[ins.Kind], clampImpact(ins.ImpactScore))
	}

	sum := 0.0
	qualified := 0
	for _, kind := range types.AllKinds {
		impacts := groups[kind]
		if len(impacts) < 2 {
			continue
		}
		sd, err := stats.StandardDeviation(impacts)
		if err != nil {
			continue
		}
		v := 1.0 - sd/10.0
		if v < 0 {
			v = 0
		}
		sum += v
		qualified++
	}
	if qualified == 0 {
		return 0.5
	}
	return sum / float64(qualified)
}

// insightQuality is the mean impact score scaled to [0,1].
func insightQuality(insights []types.Insight) float64 {
	total := 0.0
	for _, ins := range insights {
		total += clampImpact(ins.ImpactScore)
	}
	return total / float64(len(insights)) / 10.0
}

// statisticalSignificance scales the high-confidence fraction by how
// close the interview count is to a minimally powered sample of 15.
func statisticalSignificance(insights []types.Insight, totalInterviews int) float64 {
	high := 0
	for _, ins := range insights {
		if ins.Confidence == types.ConfidenceHigh || ins.Confidence == types.ConfidenceVeryHigh {
			high++
		}
	}
	fraction := float64(high) / float64(len(insights))
	scale := float64(totalInterviews) / 15.0
	if scale > 1 {
		scale = 1
	}
	return fraction * scale
}

func verdictFor(score float64) types.ConfidenceVerdict {
	switch {
	case score >= 0.8:
		return types.VerdictVeryHigh
	case score >= 0.65:
		return types.VerdictHigh
	case score >= 0.45:
		return types.VerdictMedium
	case score >= 0.25:
		return types.VerdictLow
	default:
		return types.VerdictVeryLow
	}
}

// recommendations derives data-collection guidance from the weakest
// sub-scores. The engine exists to steer the next round of interviews,
// so this is a required output.
func recommendations(f types.ConfidenceFactors, totalInterviews, segmentSize int, significanceCutoff float64) []string {
	var recs []string
	if f.SampleAdequacy < 0.6 {
		recs = append(recs, fmt.Sprintf(
			"Collect more interviews: %d completed, 8 is the minimum for an adequate sample and 15+ for statistical weight.",
			totalInterviews))
	}
	if f.PatternConsistency < 0.5 {
		recs = append(recs, "Impact scores within insight types diverge widely. Probe the same topics across interviews to confirm whether the disagreement is real.")
	}
	if f.InsightQuality < 0.5 {
		recs = append(recs, "Average insight impact is low. Steer conversations toward concrete problems and willingness-to-pay rather than general opinions.")
	}
	if f.StatisticalSignificance < significanceCutoff {
		recs = append(recs, "Too few high-confidence insights for statistical weight. Ask for specific examples and verbatim stories to raise extraction confidence.")
	}
	if segmentSize > 0 && segmentSize < 5 {
		recs = append(recs, fmt.Sprintf("Only %d interviews in the target segment. Segment-level conclusions need at least 5.", segmentSize))
	}
	if len(recs) == 0 {
		recs = append(recs, "Sample size and signal quality are adequate. Improve evidence specificity to push confidence higher.")
	}
	return recs
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
