package types

// --------------------------------------------
// Insight scoring output
// --------------------------------------------

// FactorScores holds the six weighted factors behind an overall score.
// Each factor lives in [0,10]; the lexical factors additionally carry
// floors (intensity >=3, specificity >=2, evidence >=3).
type FactorScores struct {
	Frequency   float64 `json:"frequency"`
	Intensity   float64 `json:"intensity"`
	Specificity float64 `json:"specificity"`
	Consistency float64 `json:"consistency"`
	Evidence    float64 `json:"evidence"`
	Recency     float64 `json:"recency"`
}

// ScoreBreakdown is the computed score for one insight. Err is set when
// scoring fell back to the neutral overall score instead of computing
// real factors.
type ScoreBreakdown struct {
	InsightID    string       `json:"insight_id"`
	OverallScore float64      `json:"overall_score"`
	Factors      FactorScores `json:"factors"`
	Err          string       `json:"error,omitempty"`
}

// --------------------------------------------
// Validation confidence output
// --------------------------------------------

// ConfidenceVerdict is the engine's five-step go/no-go ladder.
// VerdictInsufficientData is used only by segment aggregation when a
// segment has no interviews at all.
type ConfidenceVerdict string

const (
	VerdictVeryLow          ConfidenceVerdict = "very_low"
	VerdictLow              ConfidenceVerdict = "low"
	VerdictMedium           ConfidenceVerdict = "medium"
	VerdictHigh             ConfidenceVerdict = "high"
	VerdictVeryHigh         ConfidenceVerdict = "very_high"
	VerdictInsufficientData ConfidenceVerdict = "insufficient_data"
)

// SampleAdequacy grades the interview count backing an analysis.
type SampleAdequacy string

const (
	AdequacyInsufficient SampleAdequacy = "insufficient"
	AdequacyMinimal      SampleAdequacy = "minimal"
	AdequacyAdequate     SampleAdequacy = "adequate"
	AdequacyGood         SampleAdequacy = "good"
	AdequacyExcellent    SampleAdequacy = "excellent"
)

// ConfidenceFactors are the four equally weighted [0,1] sub-scores that
// average into the overall confidence score.
type ConfidenceFactors struct {
	SampleAdequacy          float64 `json:"sample_adequacy"`
	PatternConsistency      float64 `json:"pattern_consistency"`
	InsightQuality          float64 `json:"insight_quality"`
	StatisticalSignificance float64 `json:"statistical_significance"`
}

// ValidationConfidenceResult is the corpus-level confidence verdict.
type ValidationConfidenceResult struct {
	ConfidenceLevel          ConfidenceVerdict `json:"confidence_level"`
	ConfidenceScore          float64           `json:"confidence_score"`
	StatisticallySignificant bool              `json:"statistically_significant"`
	SampleSizeAdequacy       SampleAdequacy    `json:"sample_size_adequacy"`
	Factors                  ConfidenceFactors `json:"factors"`
	Recommendations          []string          `json:"recommendations"`
}

// --------------------------------------------
// Segment aggregation output
// --------------------------------------------

// ConfidenceInterval is a two-sided interval around a category mean.
// Zero-valued when fewer than two samples exist.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// CategoryStats are the descriptive statistics for one score category
// within a segment.
type CategoryStats struct {
	Mean     float64            `json:"mean"`
	Median   float64            `json:"median"`
	StdDev   float64            `json:"std_dev"`
	Min      float64            `json:"min"`
	Max      float64            `json:"max"`
	Count    int                `json:"count"`
	Interval ConfidenceInterval `json:"confidence_interval"`
}

// SegmentScoreResult rolls up one customer segment.
type SegmentScoreResult struct {
	Segment         CustomerSegment                 `json:"segment"`
	SampleSize      int                             `json:"sample_size"`
	OverallScore    float64                         `json:"overall_score"`
	Categories      map[ScoreCategory]CategoryStats `json:"categories"`
	ConfidenceLevel ConfidenceVerdict               `json:"confidence_level"`
	Recommendations []string                        `json:"recommendations,omitempty"`
}

// --------------------------------------------
// Pattern detection output
// --------------------------------------------

// Theme is one recurring content token with its corpus coverage.
type Theme struct {
	Theme      string  `json:"theme"`
	Frequency  int     `json:"frequency"`
	Percentage float64 `json:"percentage"`
}

// ThemeAnalysis lists the top recurring themes. Err is set when the
// sub-analysis failed; Note flags degraded-but-valid states.
type ThemeAnalysis struct {
	Themes []Theme `json:"themes"`
	Note   string  `json:"note,omitempty"`
	Err    string  `json:"error,omitempty"`
}

// SentimentTrend compares high-impact validation points against
// high-impact pain points.
type SentimentTrend struct {
	Trend         string `json:"trend"` // positive, negative, neutral
	PositiveCount int    `json:"positive_count"`
	NegativeCount int    `json:"negative_count"`
	Note          string `json:"note,omitempty"`
	Err           string `json:"error,omitempty"`
}

// ConfidenceDistribution counts insights per ordinal confidence label
// and reduces the ordinals to one numeric average for trend comparison.
type ConfidenceDistribution struct {
	Counts         map[ConfidenceLabel]int     `json:"counts"`
	Percentages    map[ConfidenceLabel]float64 `json:"percentages"`
	NumericAverage float64                     `json:"numeric_average"`
	Err            string                      `json:"error,omitempty"`
}

// KindDistribution counts insights per kind.
type KindDistribution struct {
	Counts      map[InsightKind]int     `json:"counts"`
	Percentages map[InsightKind]float64 `json:"percentages"`
	Err         string                  `json:"error,omitempty"`
}

// TemporalPattern buckets insight creation times by UTC calendar day.
type TemporalPattern struct {
	DailyCounts  map[string]int `json:"daily_counts"` // key: 2006-01-02
	DailyAverage float64        `json:"daily_average"`
	Note         string         `json:"note,omitempty"`
	Err          string         `json:"error,omitempty"`
}

// FactorCorrelation is one Pearson coefficient between two numeric
// encodings of insight attributes.
type FactorCorrelation struct {
	FactorA     string  `json:"factor_a"`
	FactorB     string  `json:"factor_b"`
	Coefficient float64 `json:"coefficient"`
	SampleSize  int     `json:"sample_size"`
}

// CorrelationAnalysis holds the cross-factor correlations. Empty with a
// note when the corpus is too small or degenerate.
type CorrelationAnalysis struct {
	Pairs []FactorCorrelation `json:"pairs"`
	Note  string              `json:"note,omitempty"`
	Err   string              `json:"error,omitempty"`
}

// Outlier is one insight flagged by the IQR fence test on impact score.
type Outlier struct {
	InsightID   string      `json:"insight_id"`
	Kind        InsightKind `json:"type"`
	ImpactScore float64     `json:"impact_score"`
	Reason      string      `json:"reason"`
}

// OutlierAnalysis lists flagged insights plus the fences used.
type OutlierAnalysis struct {
	Outliers   []Outlier `json:"outliers"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Note       string    `json:"note,omitempty"`
	Err        string    `json:"error,omitempty"`
}

// PatternAnalysisResult bundles every sub-analysis over a corpus. Each
// section degrades independently; a failed section carries its own
// error instead of aborting the pass.
type PatternAnalysisResult struct {
	TotalInsights int                    `json:"total_insights"`
	Themes        ThemeAnalysis          `json:"frequent_themes"`
	Sentiment     SentimentTrend         `json:"sentiment_trend"`
	Confidence    ConfidenceDistribution `json:"confidence_distribution"`
	Kinds         KindDistribution       `json:"type_distribution"`
	Temporal      TemporalPattern        `json:"temporal_pattern"`
	Correlations  CorrelationAnalysis    `json:"correlations"`
	Outliers      OutlierAnalysis        `json:"outliers"`
}
