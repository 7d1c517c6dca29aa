package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"discovery-insights-go/internal/types"
)

// Corpus is one immutable snapshot of extracted insights and their
// interviews, as exported by the surrounding SaaS. The loader only
// reads; persistence stays with the caller.
type Corpus struct {
	Insights   []types.Insight   `json:"insights"`
	Interviews []types.Interview `json:"interviews"`
}

// Load reads a corpus from a local path, dispatching on extension
// (.xlsx workbook or .json export).
func Load(path string) (Corpus, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".xlsx"):
		return LoadWorkbook(path)
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		data, err := os.ReadFile(path)
		if err != nil {
			return Corpus{}, fmt.Errorf("read corpus: %w", err)
		}
		return ParseJSON(data)
	default:
		return Corpus{}, fmt.Errorf("unsupported corpus format: %s", path)
	}
}

// ParseJSON decodes a JSON corpus export.
func ParseJSON(data []byte) (Corpus, error) {
	var c Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return Corpus{}, fmt.Errorf("parse corpus: %w", err)
	}
	return c, nil
}

// LoadWorkbook reads insights and interviews from a workbook with
// "insights" and "interviews" sheets, auto-detecting columns by header
// heuristics.
func LoadWorkbook(path string) (Corpus, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var c Corpus
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Corpus{}, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(rows) <= 1 {
			continue
		}
		switch {
		case strings.Contains(strings.ToLower(sheet), "insight"):
			c.Insights = append(c.Insights, parseInsightRows(rows)...)
		case strings.Contains(strings.ToLower(sheet), "interview"):
			c.Interviews = append(c.Interviews, parseInterviewRows(rows)...)
		}
	}
	if len(c.Insights) == 0 && len(c.Interviews) == 0 {
		return Corpus{}, fmt.Errorf("no insight or interview sheets found in %s", path)
	}
	return c, nil
}

func parseInsightRows(rows [][]string) []types.Insight {
	idx := headerIndex(rows[0], map[string][]string{
		"id":        {"insight id", "insight_id", "id"},
		"interview": {"interview"},
		"kind":      {"type", "kind"},
		"content":   {"content", "summary"},
		"quote":     {"quote"},
		"context":   {"context"},
		"conf":      {"confidence"},
		"impact":    {"impact"},
		"tags":      {"tags"},
		"created":   {"created", "date"},
	})

	var out []types.Insight
	for i, r := range rows {
		if i == 0 {
			continue
		}
		ins := types.Insight{
			ID:          cell(r, idx["id"]),
			InterviewID: cell(r, idx["interview"]),
			Kind:        types.InsightKind(cell(r, idx["kind"])),
			Content:     cell(r, idx["content"]),
			Quote:       cell(r, idx["quote"]),
			Context:     cell(r, idx["context"]),
			Confidence:  types.ConfidenceLabel(cell(r, idx["conf"])),
		}
		if ins.ID == "" {
			continue
		}
		ins.ImpactScore, _ = strconv.ParseFloat(strings.TrimSpace(cell(r, idx["impact"])), 64)
		if tags := cell(r, idx["tags"]); tags != "" {
			for _, t := range strings.Split(tags, ",") {
				if t = strings.TrimSpace(t); t != "" {
					ins.Tags = append(ins.Tags, t)
				}
			}
		}
		if ts := parseTime(cell(r, idx["created"])); ts != nil {
			ins.CreatedAt = *ts
		}
		out = append(out, ins)
	}
	return out
}

func parseInterviewRows(rows [][]string) []types.Interview {
	idx := headerIndex(rows[0], map[string][]string{
		"id":        {"interview id", "interview_id", "id"},
		"segment":   {"segment"},
		"completed": {"completed", "date"},
	})

	// category score columns match the known category names directly
	catIdx := make(map[types.ScoreCategory]int)
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, cat := range []types.ScoreCategory{
			types.CategoryProblemConfirmation, types.CategorySolutionInterest,
			types.CategoryWillingnessToPay, types.CategoryUrgency,
			types.CategoryFrequency, types.CategoryIntensity,
			types.CategoryMarketSize, types.CategoryCompetitiveAdvantage,
		} {
			if name == string(cat) {
				catIdx[cat] = i
			}
		}
	}

	var out []types.Interview
	for i, r := range rows {
		if i == 0 {
			continue
		}
		iv := types.Interview{
			ID:          cell(r, idx["id"]),
			CustomerSeg: types.CustomerSegment(cell(r, idx["segment"])),
		}
		if iv.ID == "" {
			continue
		}
		iv.CompletedAt = parseTime(cell(r, idx["completed"]))
		for cat, col := range catIdx {
			if v, err := strconv.ParseFloat(strings.TrimSpace(cell(r, col)), 64); err == nil {
				if iv.CategoryScores == nil {
					iv.CategoryScores = make(map[types.ScoreCategory]float64)
				}
				iv.CategoryScores[cat] = v
			}
		}
		out = append(out, iv)
	}
	return out
}

// headerIndex maps logical fields to column positions, first hit wins.
// Short needles like "id" require an exact header match so that an
// earlier "interview_id" column cannot capture them; longer needles
// match by substring.
func headerIndex(header []string, wanted map[string][]string) map[string]int {
	idx := make(map[string]int, len(wanted))
	for key := range wanted {
		idx[key] = -1
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for key, needles := range wanted {
			if idx[key] != -1 {
				continue
			}
			for _, needle := range needles {
				if name == needle || (len(needle) > 2 && strings.Contains(name, needle)) {
					idx[key] = i
					break
				}
			}
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
