package types

import "time"

// InsightKind classifies what an extracted insight is evidence of.
type InsightKind string

const (
	KindPainPoint           InsightKind = "pain_point"
	KindValidationPoint     InsightKind = "validation_point"
	KindFeatureRequest      InsightKind = "feature_request"
	KindPricingFeedback     InsightKind = "pricing_feedback"
	KindCompetitiveMention  InsightKind = "competitive_mention"
	KindMarketSizeIndicator InsightKind = "market_size_indicator"
	KindPersonaTrait        InsightKind = "persona_characteristic"
	KindBMCUpdate           InsightKind = "bmc_update"
)

// AllKinds lists every valid insight kind, in a fixed order.
var AllKinds = []InsightKind{
	KindPainPoint,
	KindValidationPoint,
	KindFeatureRequest,
	KindPricingFeedback,
	KindCompetitiveMention,
	KindMarketSizeIndicator,
	KindPersonaTrait,
	KindBMCUpdate,
}

// Valid reports whether k is a member of the closed kind set.
func (k InsightKind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ConfidenceLabel is the extraction-time certainty attached to an insight.
// It is an input signal, not the engine's computed confidence.
type ConfidenceLabel string

const (
	ConfidenceLow      ConfidenceLabel = "low"
	ConfidenceMedium   ConfidenceLabel = "medium"
	ConfidenceHigh     ConfidenceLabel = "high"
	ConfidenceVeryHigh ConfidenceLabel = "very_high"
)

// Numeric maps the ordinal label onto 1..4 for trend and correlation math.
// Unknown labels map to 0 so malformed records drag the average down
// instead of crashing it.
func (c ConfidenceLabel) Numeric() float64 {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	case ConfidenceVeryHigh:
		return 4
	}
	return 0
}

// CustomerSegment buckets interviews for segment-level comparison.
type CustomerSegment string

const (
	SegmentBusyParents   CustomerSegment = "busy_parents"
	SegmentRemoteWorkers CustomerSegment = "remote_workers"
	SegmentStudents      CustomerSegment = "students"
	SegmentSeniors       CustomerSegment = "seniors"
	SegmentEntrepreneurs CustomerSegment = "entrepreneurs"
	SegmentOther         CustomerSegment = "other"
)

// AllSegments lists every customer segment, in a fixed order.
var AllSegments = []CustomerSegment{
	SegmentBusyParents,
	SegmentRemoteWorkers,
	SegmentStudents,
	SegmentSeniors,
	SegmentEntrepreneurs,
	SegmentOther,
}

// ScoreCategory labels the per-interview category scores assigned upstream.
type ScoreCategory string

const (
	CategoryProblemConfirmation  ScoreCategory = "problem_confirmation"
	CategorySolutionInterest     ScoreCategory = "solution_interest"
	CategoryWillingnessToPay     ScoreCategory = "willingness_to_pay"
	CategoryUrgency              ScoreCategory = "urgency"
	CategoryFrequency            ScoreCategory = "frequency"
	CategoryIntensity            ScoreCategory = "intensity"
	CategoryMarketSize           ScoreCategory = "market_size"
	CategoryCompetitiveAdvantage ScoreCategory = "competitive_advantage"
)

// Insight is one extracted signal from an interview. All fields are
// populated by the upstream extraction step; the engine treats them as
// untrusted input and clamps rather than rejects.
type Insight struct {
	ID          string          `json:"id"`
	InterviewID string          `json:"interview_id"`
	Kind        InsightKind     `json:"type"`
	Content     string          `json:"content"`
	Quote       string          `json:"quote"`
	Context     string          `json:"context,omitempty"`
	Confidence  ConfidenceLabel `json:"confidence"`
	ImpactScore float64         `json:"impact_score"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Interview carries the interview context the engine needs: which segment
// it belongs to, when it finished, and the category scores assigned by
// the upstream analysis.
type Interview struct {
	ID             string                    `json:"id"`
	CustomerSeg    CustomerSegment           `json:"customer_segment"`
	CompletedAt    *time.Time                `json:"completed_at,omitempty"`
	CategoryScores map[ScoreCategory]float64 `json:"category_scores,omitempty"`
}
