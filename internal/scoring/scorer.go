package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/lexical"
	"discovery-insights-go/internal/logger"
	"discovery-insights-go/internal/types"
)

// neutralScore is returned when a scoring pass panics: downstream
// decisions tolerate a neutral score with a caveat, not an aborted batch.
const neutralScore = 5.0

// signalExtractor supplies the three lexical factor scores. The
// production implementation is lexical.Extractor.
type signalExtractor interface {
	IntensityScore(text string) float64
	SpecificityScore(text string) float64
	EvidenceScore(text string) float64
}

// Scorer combines per-insight signals into one 0-10 score with a
// visible factor breakdown. It is stateless between calls and safe for
// concurrent use on independent inputs.
type Scorer struct {
	cfg config.Config
	lex signalExtractor
	log *logrus.Entry
}

func NewScorer(cfg config.Config) *Scorer {
	return &Scorer{
		cfg: cfg,
		lex: lexical.NewExtractor(),
		log: logger.New().WithField("component", "scorer"),
	}
}

// Score computes the six-factor breakdown for one insight against the
// rest of its corpus. interview may be nil; it only supplies recency.
// now anchors the recency buckets so results stay reproducible.
func (s *Scorer) Score(insight types.Insight, corpus []types.Insight, interview *types.Interview, now time.Time) (breakdown types.ScoreBreakdown) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("insight_id", insight.ID).
				WithField("panic", fmt.Sprint(r)).
				Warn("scoring fell back to neutral score")
			breakdown = types.ScoreBreakdown{
				InsightID:    insight.ID,
				OverallScore: neutralScore,
				Err:          fmt.Sprintf("scoring failed: %v", r),
			}
		}
	}()

	insight.ImpactScore = clamp(insight.ImpactScore, 0, 10)
	similar := s.similarInsights(insight, corpus)

	factors := types.FactorScores{
		Frequency:   frequencyScore(len(similar), len(corpus)),
		Intensity:   s.lex.IntensityScore(insight.Quote + " " + insight.Content),
		Specificity: s.lex.SpecificityScore(insight.Quote + " " + insight.Content),
		Consistency: consistencyScore(insight, similar),
		Evidence:    s.lex.EvidenceScore(insight.Quote + " " + insight.Context),
		Recency:     recencyScore(interview, now),
	}

	w := s.cfg.Weights
	overall := w.Frequency*factors.Frequency +
		w.Intensity*factors.Intensity +
		w.Specificity*factors.Specificity +
		w.Consistency*factors.Consistency +
		w.Evidence*factors.Evidence +
		w.Recency*factors.Recency

	return types.ScoreBreakdown{
		InsightID:    insight.ID,
		OverallScore: clamp(overall, 0, 10),
		Factors:      factors,
	}
}

// similarInsights returns corpus members of the same kind whose content
// token sets overlap past the similarity threshold. The insight itself
// is excluded by id.
func (s *Scorer) similarInsights(insight types.Insight, corpus []types.Insight) []types.Insight {
	own := tokenSet(insight.Content)
	var similar []types.Insight
	for _, other := range corpus {
		if other.ID == insight.ID || other.Kind != insight.Kind {
			continue
		}
		if jaccard(own, tokenSet(other.Content)) > s.cfg.Thresholds.Similarity {
			similar = append(similar, other)
		}
	}
	return similar
}

// frequencyScore maps the similar-insight fraction through coarse bands:
// frequency matters in steps, not linearly, so one stray near-duplicate
// cannot inflate the score.
func frequencyScore(similarCount, corpusSize int) float64 {
	if corpusSize == 0 || similarCount == 0 {
		return 2.0
	}
	fraction := float64(similarCount) / float64(corpusSize)
	switch {
	case fraction < 0.1:
		return 4.0
	case fraction < 0.2:
		return 6.0
	case fraction < 0.4:
		return 8.0
	default:
		return 10.0
	}
}

// consistencyScore maps the coefficient of variation of impact scores
// across the similar group (own score included) to 10-10*CV. Fewer than
// two similar insights cannot support a consistency claim, so the score
// is a conservative 3.0 rather than neutral.
func consistencyScore(insight types.Insight, similar []types.Insight) float64 {
	if len(similar) < 2 {
		return 3.0
	}
	impacts := make(stats.Float64Data, 0, len(similar)+1)
	impacts = append(impacts, clamp(insight.ImpactScore, 0, 10))
	for _, ins := range similar {
		impacts = append(impacts, clamp(ins.ImpactScore, 0, 10))
	}
	mean, err := stats.Mean(impacts)
	if err != nil || mean == 0 {
		return 3.0
	}
	sd, err := stats.StandardDeviation(impacts)
	if err != nil {
		return 3.0
	}
	cv := sd / mean
	return clamp(10.0-10.0*cv, 0, 10)
}

// recencyScore buckets the age of the originating interview in days.
// Missing interview or completion date is neutral, not penalized.
func recencyScore(interview *types.Interview, now time.Time) float64 {
	if interview == nil || interview.CompletedAt == nil {
		return 7.0
	}
	days := now.Sub(*interview.CompletedAt).Hours() / 24
	switch {
	case days <= 7:
		return 10.0
	case days <= 30:
		return 8.0
	case days <= 90:
		return 6.0
	case days <= 180:
		return 4.0
	default:
		return 2.0
	}
}

// tokenSet lowercases and splits content into a word set.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?;:\"'()[]")
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// jaccard is |a∩b| / |a∪b|; empty sets are maximally dissimilar.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
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
