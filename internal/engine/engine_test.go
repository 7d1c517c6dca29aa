package engine_test

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/engine"
	"discovery-insights-go/internal/types"
)

func fixture(insightCount, interviewCount int) ([]types.Insight, []types.Interview) {
	completed := time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC)

	interviews := make([]types.Interview, 0, interviewCount)
	for i := 0; i < interviewCount; i++ {
		seg := types.AllSegments[i%len(types.AllSegments)]
		interviews = append(interviews, types.Interview{
			ID:          fmt.Sprintf("iv-%02d", i),
			CustomerSeg: seg,
			CompletedAt: &completed,
			CategoryScores: map[types.ScoreCategory]float64{
				types.CategoryProblemConfirmation: float64(4 + i%5),
				types.CategoryWillingnessToPay:    float64(3 + i%4),
			},
		})
	}

	insights := make([]types.Insight, 0, insightCount)
	for i := 0; i < insightCount; i++ {
		insights = append(insights, types.Insight{
			ID:          fmt.Sprintf("ins-%02d", i),
			InterviewID: fmt.Sprintf("iv-%02d", i%interviewCount),
			Kind:        types.AllKinds[i%len(types.AllKinds)],
			Content:     fmt.Sprintf("insight content number %d about scheduling", i),
			Quote:       "it takes 3 hours every week, a real nightmare",
			Confidence:  types.ConfidenceHigh,
			ImpactScore: float64(5 + i%4),
			CreatedAt:   completed,
		})
	}
	return insights, interviews
}

func TestScoreCorpusScoresEveryInsightSortedByID(t *testing.T) {
	e := engine.New(config.Default())
	insights, interviews := fixture(50, 10)

	breakdowns := e.ScoreCorpus(insights, interviews)

	require.Len(t, breakdowns, 50)
	assert.True(t, sort.SliceIsSorted(breakdowns, func(i, j int) bool {
		return breakdowns[i].InsightID < breakdowns[j].InsightID
	}))

	seen := make(map[string]struct{})
	for _, b := range breakdowns {
		seen[b.InsightID] = struct{}{}
		assert.GreaterOrEqual(t, b.OverallScore, 0.0)
		assert.LessOrEqual(t, b.OverallScore, 10.0)
		assert.Empty(t, b.Err)
	}
	assert.Len(t, seen, 50)
}

func TestAnalyzeAssemblesFullReport(t *testing.T) {
	e := engine.New(config.Default())
	insights, interviews := fixture(24, 12)

	report := e.Analyze(insights, interviews)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 24, report.TotalInsights)
	assert.Equal(t, 12, report.TotalInterviews)
	assert.Len(t, report.Scores, 24)
	assert.Len(t, report.Segments, len(types.AllSegments))
	assert.NotEmpty(t, report.Confidence.Recommendations)
	assert.Equal(t, 24, report.Patterns.TotalInsights)
	assert.GreaterOrEqual(t, report.DurationMs, int64(0))
}

func TestAnalyzeEmptyCorpusDegradesGracefully(t *testing.T) {
	e := engine.New(config.Default())

	report := e.Analyze(nil, nil)

	assert.Empty(t, report.Scores)
	assert.Equal(t, types.VerdictVeryLow, report.Confidence.ConfidenceLevel)
	assert.False(t, report.Confidence.StatisticallySignificant)
	for _, seg := range types.AllSegments {
		assert.Equal(t, types.VerdictInsufficientData, report.Segments[seg].ConfidenceLevel)
	}
}

func TestAnalyzeRunsAreIndependent(t *testing.T) {
	e := engine.New(config.Default())
	insights, interviews := fixture(10, 5)

	first := e.Analyze(insights, interviews)
	second := e.Analyze(insights, interviews)

	assert.NotEqual(t, first.RunID, second.RunID)
	// everything derived from the snapshot is reproducible
	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Segments, second.Segments)
	assert.Equal(t, first.Patterns, second.Patterns)
}
