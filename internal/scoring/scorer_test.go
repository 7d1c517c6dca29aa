package scoring_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/scoring"
	"discovery-insights-go/internal/types"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func insight(id string, kind types.InsightKind, content string, impact float64) types.Insight {
	return types.Insight{
		ID:          id,
		InterviewID: "iv-" + id,
		Kind:        kind,
		Content:     content,
		Quote:       content,
		Confidence:  types.ConfidenceMedium,
		ImpactScore: impact,
		CreatedAt:   testNow,
	}
}

func TestWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, config.Default().Weights.Sum(), 1e-9)
	require.NoError(t, config.Default().Validate())
}

func TestScoreStaysInBounds(t *testing.T) {
	s := scoring.NewScorer(config.Default())

	insights := []types.Insight{
		insight("a", types.KindPainPoint, "", 0),
		insight("b", types.KindPainPoint, "scheduling takes forever", 10),
		insight("c", types.KindPricingFeedback, "I would pay $20 monthly", 15), // malformed impact, must clamp
		insight("d", types.KindFeatureRequest, "export to spreadsheet please", -3),
	}

	for _, ins := range insights {
		b := s.Score(ins, insights, nil, testNow)
		assert.Empty(t, b.Err)
		assert.GreaterOrEqual(t, b.OverallScore, 0.0)
		assert.LessOrEqual(t, b.OverallScore, 10.0)
		assert.GreaterOrEqual(t, b.Factors.Intensity, 3.0)
		assert.LessOrEqual(t, b.Factors.Intensity, 10.0)
		assert.GreaterOrEqual(t, b.Factors.Specificity, 2.0)
		assert.GreaterOrEqual(t, b.Factors.Evidence, 3.0)
	}
}

func TestDivergentCorpusScoresConservatively(t *testing.T) {
	s := scoring.NewScorer(config.Default())

	// same kind, no shared keywords, wildly divergent impact
	corpus := []types.Insight{
		insight("a", types.KindPainPoint, "onboarding paperwork overwhelming", 1),
		insight("b", types.KindPainPoint, "invoices disappear randomly", 9),
		insight("c", types.KindPainPoint, "support tickets ignored", 5),
	}

	for _, ins := range corpus {
		b := s.Score(ins, corpus, nil, testNow)
		assert.LessOrEqual(t, b.Factors.Consistency, 5.0, "insight %s", ins.ID)
		assert.LessOrEqual(t, b.Factors.Frequency, 6.0, "insight %s", ins.ID)
	}
}

func TestRepeatedComplaintsBoostFrequencyAndConsistency(t *testing.T) {
	s := scoring.NewScorer(config.Default())

	corpus := make([]types.Insight, 0, 20)
	for i := 0; i < 20; i++ {
		impact := 8.0
		if i%2 == 0 {
			impact = 8.5
		}
		corpus = append(corpus, insight(
			fmt.Sprintf("ins-%02d", i),
			types.KindPainPoint,
			"manual scheduling process wastes hours every week",
			impact,
		))
	}

	b := s.Score(corpus[0], corpus, nil, testNow)
	assert.Equal(t, 10.0, b.Factors.Frequency)
	assert.Greater(t, b.Factors.Consistency, 8.0)
	assert.Empty(t, b.Err)
}

func TestFrequencyBands(t *testing.T) {
	s := scoring.NewScorer(config.Default())

	// 20 insights, 3 of them near-duplicates of the target: 3/20 = 0.15
	corpus := []types.Insight{
		insight("t", types.KindPainPoint, "manual data entry wastes hours", 5),
		insight("d1", types.KindPainPoint, "manual data entry wastes hours", 5),
		insight("d2", types.KindPainPoint, "manual data entry wastes hours", 5),
		insight("d3", types.KindPainPoint, "manual data entry wastes hours", 5),
	}
	for i := 0; i < 16; i++ {
		corpus = append(corpus, insight(
			fmt.Sprintf("u-%02d", i),
			types.KindFeatureRequest,
			fmt.Sprintf("unrelated request number %d about something else", i),
			5,
		))
	}

	b := s.Score(corpus[0], corpus, nil, testNow)
	// fraction 3/20 = 0.15 lands in the [0.1, 0.2) band
	assert.Equal(t, 6.0, b.Factors.Frequency)
}

func TestRecencyBuckets(t *testing.T) {
	s := scoring.NewScorer(config.Default())
	ins := insight("a", types.KindPainPoint, "slow exports", 5)

	daysAgo := func(d int) *time.Time {
		ts := testNow.AddDate(0, 0, -d)
		return &ts
	}

	tests := []struct {
		name      string
		interview *types.Interview
		want      float64
	}{
		{"no interview is neutral", nil, 7.0},
		{"no completion date is neutral", &types.Interview{ID: "iv"}, 7.0},
		{"within a week", &types.Interview{ID: "iv", CompletedAt: daysAgo(3)}, 10.0},
		{"within a month", &types.Interview{ID: "iv", CompletedAt: daysAgo(20)}, 8.0},
		{"within a quarter", &types.Interview{ID: "iv", CompletedAt: daysAgo(60)}, 6.0},
		{"within half a year", &types.Interview{ID: "iv", CompletedAt: daysAgo(120)}, 4.0},
		{"stale", &types.Interview{ID: "iv", CompletedAt: daysAgo(400)}, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := s.Score(ins, nil, tt.interview, testNow)
			assert.InDelta(t, tt.want, b.Factors.Recency, 1e-9)
		})
	}
}

func TestFactorFloorMovesOverallByAtMostItsWeight(t *testing.T) {
	s := scoring.NewScorer(config.Default())

	// identical insight scored with and without a fresh interview:
	// only recency changes, so the overall delta is bounded by
	// weight * (10 - 2) < weight * 10
	ins := insight("a", types.KindPainPoint, "slow exports", 5)
	fresh := testNow.AddDate(0, 0, -1)
	old := testNow.AddDate(0, 0, -400)

	freshScore := s.Score(ins, nil, &types.Interview{ID: "iv", CompletedAt: &fresh}, testNow)
	oldScore := s.Score(ins, nil, &types.Interview{ID: "iv", CompletedAt: &old}, testNow)

	delta := freshScore.OverallScore - oldScore.OverallScore
	assert.Greater(t, delta, 0.0)
	assert.LessOrEqual(t, delta, config.Default().Weights.Recency*10+1e-9)
}
