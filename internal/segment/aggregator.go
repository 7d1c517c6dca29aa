package segment

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/logger"
	"discovery-insights-go/internal/types"
)

// Aggregator rolls per-interview category scores up into per-segment
// statistics so segments can be compared on the same footing.
type Aggregator struct {
	intervalConfidence float64
	log                *logrus.Entry
}

func NewAggregator(cfg config.Config) *Aggregator {
	return &Aggregator{
		intervalConfidence: cfg.Thresholds.IntervalConfidence,
		log:                logger.New().WithField("component", "segment"),
	}
}

// Aggregate filters interviews to one segment and computes descriptive
// statistics per score category. A segment with no interviews is a
// normal result (sample size 0, insufficient data), never an error.
func (a *Aggregator) Aggregate(interviews []types.Interview, seg types.CustomerSegment) types.SegmentScoreResult {
	var matched []types.Interview
	for _, iv := range interviews {
		if iv.CustomerSeg == seg {
			matched = append(matched, iv)
		}
	}

	if len(matched) == 0 {
		return types.SegmentScoreResult{
			Segment:         seg,
			SampleSize:      0,
			Categories:      map[types.ScoreCategory]types.CategoryStats{},
			ConfidenceLevel: types.VerdictInsufficientData,
			Recommendations: []string{fmt.Sprintf("No interviews recorded for segment %q yet.", seg)},
		}
	}

	byCategory := make(map[types.ScoreCategory]stats.Float64Data)
	for _, iv := range matched {
		for cat, score := range iv.CategoryScores {
			byCategory[cat] = append(byCategory[cat], clampScore(score))
		}
	}

	categories := make(map[types.ScoreCategory]types.CategoryStats, len(byCategory))
	meanSum := 0.0
	for cat, values := range byCategory {
		cs := a.describe(values)
		categories[cat] = cs
		meanSum += cs.Mean
	}

	overall := 0.0
	if len(categories) > 0 {
		overall = meanSum / float64(len(categories))
	}

	level := confidenceLadder(len(matched))
	result := types.SegmentScoreResult{
		Segment:         seg,
		SampleSize:      len(matched),
		OverallScore:    overall,
		Categories:      categories,
		ConfidenceLevel: level,
		Recommendations: ladderRecommendations(seg, len(matched), level),
	}

	a.log.WithFields(logrus.Fields{
		"segment":     seg,
		"sample_size": len(matched),
		"categories":  len(categories),
	}).Debug("segment aggregated")

	return result
}

// AggregateAll runs every known segment over the same snapshot.
func (a *Aggregator) AggregateAll(interviews []types.Interview) map[types.CustomerSegment]types.SegmentScoreResult {
	out := make(map[types.CustomerSegment]types.SegmentScoreResult, len(types.AllSegments))
	for _, seg := range types.AllSegments {
		out[seg] = a.Aggregate(interviews, seg)
	}
	return out
}

// describe computes the per-category statistics. The confidence interval
// uses the two-sided Student-t distribution on the sample standard
// deviation; with fewer than two samples it stays (0,0).
func (a *Aggregator) describe(values stats.Float64Data) types.CategoryStats {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	cs := types.CategoryStats{
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
		Count:  len(values),
	}

	if len(values) < 2 {
		return cs
	}

	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return cs
	}
	cs.StdDev = sd

	n := float64(len(values))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	alpha := 1 - a.intervalConfidence
	margin := t.Quantile(1-alpha/2) * sd / math.Sqrt(n)
	cs.Interval = types.ConfidenceInterval{Lower: mean - margin, Upper: mean + margin}
	return cs
}

// confidenceLadder is deliberately cruder than the corpus-level
// calculator: segment comparison is a small-sample operation and false
// precision would mislead.
func confidenceLadder(sampleSize int) types.ConfidenceVerdict {
	switch {
	case sampleSize < 3:
		return types.VerdictVeryLow
	case sampleSize < 5:
		return types.VerdictLow
	case sampleSize < 8:
		return types.VerdictMedium
	case sampleSize < 12:
		return types.VerdictHigh
	default:
		return types.VerdictVeryHigh
	}
}

func ladderRecommendations(seg types.CustomerSegment, sampleSize int, level types.ConfidenceVerdict) []string {
	if level == types.VerdictHigh || level == types.VerdictVeryHigh {
		return []string{fmt.Sprintf("Segment %q is well covered with %d interviews.", seg, sampleSize)}
	}
	return []string{fmt.Sprintf(
		"Segment %q has %d interviews; schedule more before comparing it against other segments.", seg, sampleSize)}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
