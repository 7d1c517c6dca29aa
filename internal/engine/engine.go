package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"discovery-insights-go/internal/confidence"
	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/logger"
	"discovery-insights-go/internal/patterns"
	"discovery-insights-go/internal/scoring"
	"discovery-insights-go/internal/segment"
	"discovery-insights-go/internal/types"
)

// AnalysisReport is the full engine output over one corpus snapshot:
// per-insight score breakdowns plus the three corpus-level analyses.
type AnalysisReport struct {
	RunID           string                                               `json:"run_id"`
	GeneratedAt     time.Time                                            `json:"generated_at"`
	TotalInsights   int                                                  `json:"total_insights"`
	TotalInterviews int                                                  `json:"total_interviews"`
	Scores          []types.ScoreBreakdown                               `json:"scores"`
	Confidence      types.ValidationConfidenceResult                     `json:"validation_confidence"`
	Segments        map[types.CustomerSegment]types.SegmentScoreResult   `json:"segments"`
	Patterns        types.PatternAnalysisResult                          `json:"patterns"`
	DurationMs      int64                                                `json:"duration_ms"`
}

// Engine wires the scorer, confidence calculator, segment aggregator,
// and pattern detector over one immutable corpus snapshot. It holds no
// corpus state of its own and is safe for concurrent use.
type Engine struct {
	cfg    config.Config
	scorer *scoring.Scorer
	calc   *confidence.Calculator
	agg    *segment.Aggregator
	det    *patterns.Detector
	log    *logger.Logger
}

func New(cfg config.Config) *Engine {
	return &Engine{
		cfg:    cfg,
		scorer: scoring.NewScorer(cfg),
		calc:   confidence.NewCalculator(cfg),
		agg:    segment.NewAggregator(cfg),
		det:    patterns.NewDetector(cfg),
		log:    logger.New(),
	}
}

// Score computes the breakdown for a single insight. interview may be
// nil when the originating interview is unknown.
func (e *Engine) Score(insight types.Insight, corpus []types.Insight, interview *types.Interview) types.ScoreBreakdown {
	return e.scorer.Score(insight, corpus, interview, time.Now().UTC())
}

// ScoreCorpus scores every insight against the rest of the corpus,
// one goroutine per insight. Items never mutate shared state, so the
// fan-out is purely a throughput optimization; results come back sorted
// by insight id, not arrival order.
func (e *Engine) ScoreCorpus(insights []types.Insight, interviews []types.Interview) []types.ScoreBreakdown {
	now := time.Now().UTC()
	byInterview := make(map[string]*types.Interview, len(interviews))
	for i := range interviews {
		byInterview[interviews[i].ID] = &interviews[i]
	}

	breakdowns := make([]types.ScoreBreakdown, len(insights))
	var wg sync.WaitGroup
	for i := range insights {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ins := insights[idx]
			breakdowns[idx] = e.scorer.Score(ins, insights, byInterview[ins.InterviewID], now)
		}(i)
	}
	wg.Wait()

	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].InsightID < breakdowns[j].InsightID
	})
	return breakdowns
}

// Analyze runs the whole engine over one snapshot: corpus scoring, the
// validation confidence verdict, per-segment rollups, and pattern
// detection. The caller owns persistence of the report.
func (e *Engine) Analyze(insights []types.Insight, interviews []types.Interview) AnalysisReport {
	runID := uuid.New().String()
	start := time.Now()
	log := e.log.WithRun(runID).WithFields(logrus.Fields{
		"insights":   len(insights),
		"interviews": len(interviews),
	})
	log.Info("analysis started")

	report := AnalysisReport{
		RunID:           runID,
		GeneratedAt:     start.UTC(),
		TotalInsights:   len(insights),
		TotalInterviews: len(interviews),
		Scores:          e.ScoreCorpus(insights, interviews),
		Confidence:      e.calc.Calculate(insights, len(interviews), 0),
		Segments:        e.agg.AggregateAll(interviews),
		Patterns:        e.det.Detect(insights),
	}
	report.DurationMs = time.Since(start).Milliseconds()

	failed := 0
	for _, b := range report.Scores {
		if b.Err != "" {
			failed++
		}
	}
	log.WithFields(logrus.Fields{
		"duration_ms":      report.DurationMs,
		"confidence_level": report.Confidence.ConfidenceLevel,
		"degraded_scores":  failed,
	}).Info("analysis finished")

	return report
}
