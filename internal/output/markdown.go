package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"discovery-insights-go/internal/engine"
	"discovery-insights-go/internal/types"
)

// Writer renders an AnalysisReport as markdown for human review.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteFile renders the report to path.
func (w *Writer) WriteFile(report engine.AnalysisReport, path string) error {
	content := w.Render(report)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Render builds the full markdown document.
func (w *Writer) Render(report engine.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Insight Validation Report\n\n")
	fmt.Fprintf(&b, "**Run:** %s  \n", report.RunID)
	fmt.Fprintf(&b, "**Generated:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Insights:** %d across %d interviews  \n\n", report.TotalInsights, report.TotalInterviews)

	w.renderConfidence(&b, report.Confidence)
	w.renderScores(&b, report.Scores)
	w.renderSegments(&b, report.Segments)
	w.renderPatterns(&b, report.Patterns)

	return b.String()
}

func (w *Writer) renderConfidence(b *strings.Builder, c types.ValidationConfidenceResult) {
	fmt.Fprintf(b, "## Validation Confidence\n\n")
	fmt.Fprintf(b, "- Level: **%s** (score %.2f)\n", c.ConfidenceLevel, c.ConfidenceScore)
	fmt.Fprintf(b, "- Statistically significant: %v\n", c.StatisticallySignificant)
	fmt.Fprintf(b, "- Sample size: %s\n", c.SampleSizeAdequacy)
	fmt.Fprintf(b, "- Factors: adequacy %.2f, consistency %.2f, quality %.2f, significance %.2f\n\n",
		c.Factors.SampleAdequacy, c.Factors.PatternConsistency,
		c.Factors.InsightQuality, c.Factors.StatisticalSignificance)
	fmt.Fprintf(b, "### Recommendations\n\n")
	for _, rec := range c.Recommendations {
		fmt.Fprintf(b, "- %s\n", rec)
	}
	fmt.Fprintln(b)
}

func (w *Writer) renderScores(b *strings.Builder, scores []types.ScoreBreakdown) {
	fmt.Fprintf(b, "## Insight Scores\n\n")
	if len(scores) == 0 {
		fmt.Fprintf(b, "No insights scored.\n\n")
		return
	}
	fmt.Fprintf(b, "| Insight | Overall | Freq | Inten | Spec | Cons | Evid | Rec | Error |\n")
	fmt.Fprintf(b, "|---|---|---|---|---|---|---|---|---|\n")
	for _, s := range scores {
		f := s.Factors
		fmt.Fprintf(b, "| %s | %.2f | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f | %s |\n",
			s.InsightID, s.OverallScore, f.Frequency, f.Intensity, f.Specificity,
			f.Consistency, f.Evidence, f.Recency, s.Err)
	}
	fmt.Fprintln(b)
}

func (w *Writer) renderSegments(b *strings.Builder, segments map[types.CustomerSegment]types.SegmentScoreResult) {
	fmt.Fprintf(b, "## Segments\n\n")
	for _, seg := range types.AllSegments {
		res, ok := segments[seg]
		if !ok || res.SampleSize == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", seg)
		fmt.Fprintf(b, "- Interviews: %d, overall score %.2f, confidence %s\n", res.SampleSize, res.OverallScore, res.ConfidenceLevel)
		cats := make([]types.ScoreCategory, 0, len(res.Categories))
		for cat := range res.Categories {
			cats = append(cats, cat)
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
		for _, cat := range cats {
			cs := res.Categories[cat]
			fmt.Fprintf(b, "- %s: mean %.2f, median %.2f, sd %.2f, CI [%.2f, %.2f] (n=%d)\n",
				cat, cs.Mean, cs.Median, cs.StdDev, cs.Interval.Lower, cs.Interval.Upper, cs.Count)
		}
		fmt.Fprintln(b)
	}
}

func (w *Writer) renderPatterns(b *strings.Builder, p types.PatternAnalysisResult) {
	fmt.Fprintf(b, "## Patterns\n\n")

	fmt.Fprintf(b, "### Frequent themes\n\n")
	if note := firstNonEmpty(p.Themes.Err, p.Themes.Note); note != "" {
		fmt.Fprintf(b, "%s\n\n", note)
	}
	for _, t := range p.Themes.Themes {
		fmt.Fprintf(b, "- %s: %d insights (%.0f%%)\n", t.Theme, t.Frequency, t.Percentage)
	}
	fmt.Fprintln(b)

	fmt.Fprintf(b, "### Sentiment\n\n")
	fmt.Fprintf(b, "Trend **%s** (%d high-impact validations vs %d high-impact pains)\n\n",
		p.Sentiment.Trend, p.Sentiment.PositiveCount, p.Sentiment.NegativeCount)

	fmt.Fprintf(b, "### Outliers\n\n")
	if note := firstNonEmpty(p.Outliers.Err, p.Outliers.Note); note != "" {
		fmt.Fprintf(b, "%s\n\n", note)
	}
	for _, o := range p.Outliers.Outliers {
		fmt.Fprintf(b, "- %s (%s): %s\n", o.InsightID, o.Kind, o.Reason)
	}
	fmt.Fprintln(b)

	fmt.Fprintf(b, "### Correlations\n\n")
	if note := firstNonEmpty(p.Correlations.Err, p.Correlations.Note); note != "" {
		fmt.Fprintf(b, "%s\n\n", note)
	}
	for _, c := range p.Correlations.Pairs {
		fmt.Fprintf(b, "- %s vs %s: r=%.3f (n=%d)\n", c.FactorA, c.FactorB, c.Coefficient, c.SampleSize)
	}
	fmt.Fprintln(b)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
