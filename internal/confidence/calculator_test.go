package confidence_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-insights-go/internal/confidence"
	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/types"
)

func corpusOf(n int, kind types.InsightKind, label types.ConfidenceLabel, impacts func(i int) float64) []types.Insight {
	out := make([]types.Insight, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.Insight{
			ID:          fmt.Sprintf("ins-%02d", i),
			Kind:        kind,
			Content:     "customers lose hours to manual scheduling",
			Quote:       "scheduling is a nightmare",
			Confidence:  label,
			ImpactScore: impacts(i),
		})
	}
	return out
}

func TestEmptyInputIsDefinedNotAnError(t *testing.T) {
	c := confidence.NewCalculator(config.Default())

	first := c.Calculate(nil, 0, 0)
	second := c.Calculate(nil, 0, 0)

	assert.Equal(t, types.VerdictVeryLow, first.ConfidenceLevel)
	assert.Equal(t, 0.0, first.ConfidenceScore)
	assert.False(t, first.StatisticallySignificant)
	assert.Equal(t, types.AdequacyInsufficient, first.SampleSizeAdequacy)
	require.NotEmpty(t, first.Recommendations)

	// idempotent, no hidden state between calls
	assert.Equal(t, first, second)
}

func TestZeroInterviewsWithInsightsIsVeryLow(t *testing.T) {
	c := confidence.NewCalculator(config.Default())
	insights := corpusOf(5, types.KindPainPoint, types.ConfidenceHigh, func(int) float64 { return 8 })

	res := c.Calculate(insights, 0, 0)
	assert.Equal(t, types.VerdictVeryLow, res.ConfidenceLevel)
	assert.Equal(t, 0.0, res.ConfidenceScore)
}

func TestStrongCorpusReachesHighAndSignificant(t *testing.T) {
	c := confidence.NewCalculator(config.Default())

	// 20 near-identical pain points with impact 8-9 from 10 interviews
	insights := corpusOf(20, types.KindPainPoint, types.ConfidenceHigh, func(i int) float64 {
		if i%2 == 0 {
			return 8.5
		}
		return 8.0
	})

	res := c.Calculate(insights, 10, 0)

	assert.Contains(t, []types.ConfidenceVerdict{types.VerdictHigh, types.VerdictVeryHigh}, res.ConfidenceLevel)
	assert.True(t, res.StatisticallySignificant)
	assert.Equal(t, types.AdequacyAdequate, res.SampleSizeAdequacy)
	require.NotEmpty(t, res.Recommendations)
}

func TestConfidenceScoreMonotonicInInterviewCount(t *testing.T) {
	c := confidence.NewCalculator(config.Default())
	insights := corpusOf(12, types.KindValidationPoint, types.ConfidenceMedium, func(i int) float64 {
		return 5 + float64(i%3)
	})

	prev := -1.0
	for n := 4; n <= 30; n++ {
		res := c.Calculate(insights, n, 0)
		assert.GreaterOrEqual(t, res.ConfidenceScore, prev, "interviews=%d", n)
		prev = res.ConfidenceScore
	}
}

func TestBelowFiveInterviewsForcesVeryLow(t *testing.T) {
	c := confidence.NewCalculator(config.Default())
	insights := corpusOf(20, types.KindPainPoint, types.ConfidenceVeryHigh, func(int) float64 { return 9 })

	res := c.Calculate(insights, 4, 0)
	assert.Equal(t, types.VerdictVeryLow, res.ConfidenceLevel)
	// the numeric score still reflects the sub-factors
	assert.Greater(t, res.ConfidenceScore, 0.0)
}

func TestSampleAdequacyThresholds(t *testing.T) {
	c := confidence.NewCalculator(config.Default())
	insights := corpusOf(3, types.KindPainPoint, types.ConfidenceMedium, func(int) float64 { return 5 })

	tests := []struct {
		interviews int
		want       types.SampleAdequacy
	}{
		{30, types.AdequacyExcellent},
		{15, types.AdequacyGood},
		{8, types.AdequacyAdequate},
		{5, types.AdequacyMinimal},
		{4, types.AdequacyInsufficient},
	}

	for _, tt := range tests {
		res := c.Calculate(insights, tt.interviews, 0)
		assert.Equal(t, tt.want, res.SampleSizeAdequacy, "interviews=%d", tt.interviews)
	}
}

func TestSignificanceCutoffIsTunable(t *testing.T) {
	// 20 fully high-confidence insights from 10 interviews reach a
	// significance sub-score of 10/15 = 0.667
	insights := corpusOf(20, types.KindPainPoint, types.ConfidenceHigh, func(int) float64 { return 8 })

	strict := config.Default()
	strict.Thresholds.SignificanceCutoff = 0.9

	assert.True(t, confidence.NewCalculator(config.Default()).Calculate(insights, 10, 0).StatisticallySignificant)
	assert.False(t, confidence.NewCalculator(strict).Calculate(insights, 10, 0).StatisticallySignificant)
}

func TestWeakCorpusGetsCollectionRecommendations(t *testing.T) {
	c := confidence.NewCalculator(config.Default())
	insights := corpusOf(4, types.KindPainPoint, types.ConfidenceLow, func(int) float64 { return 3 })

	res := c.Calculate(insights, 5, 3)
	require.NotEmpty(t, res.Recommendations)

	joined := ""
	for _, r := range res.Recommendations {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "Collect more interviews")
	assert.Contains(t, joined, "segment")
}
