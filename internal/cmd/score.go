package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"discovery-insights-go/internal/config"
	"discovery-insights-go/internal/dataset"
	"discovery-insights-go/internal/engine"
	"discovery-insights-go/internal/types"
)

var (
	scoreInput  string
	scoreURL    string
	scoreConfig string
	scoreID     string
	scoreJSON   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single insight against the rest of its corpus",
	Long: `Score loads a corpus, picks one insight by id, and prints its factor
breakdown. The rest of the corpus provides the frequency and consistency
context, so the result matches what analyze would report for the same
insight.`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVarP(&scoreInput, "input", "i", "", "Path to corpus file (.xlsx or .json)")
	scoreCmd.Flags().StringVar(&scoreURL, "url", "", "URL of a JSON corpus export")
	scoreCmd.Flags().StringVarP(&scoreConfig, "config", "c", "", "Path to YAML config overriding default weights/thresholds")
	scoreCmd.Flags().StringVar(&scoreID, "id", "", "Insight id to score (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Emit the breakdown as JSON instead of text")
	scoreCmd.MarkFlagRequired("id")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(scoreConfig)
	if err != nil {
		return err
	}

	var corpus dataset.Corpus
	switch {
	case scoreURL != "":
		corpus, err = dataset.FetchRemote(scoreURL, 30*time.Second)
	case scoreInput != "":
		corpus, err = dataset.Load(scoreInput)
	default:
		return fmt.Errorf("either --input or --url is required")
	}
	if err != nil {
		return err
	}

	breakdown, err := scoreInsight(corpus, cfg, scoreID)
	if err != nil {
		return err
	}

	if scoreJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(breakdown)
	}

	fmt.Printf("Insight %s: %.2f / 10\n", breakdown.InsightID, breakdown.OverallScore)
	fmt.Printf("  frequency    %.2f\n", breakdown.Factors.Frequency)
	fmt.Printf("  intensity    %.2f\n", breakdown.Factors.Intensity)
	fmt.Printf("  specificity  %.2f\n", breakdown.Factors.Specificity)
	fmt.Printf("  consistency  %.2f\n", breakdown.Factors.Consistency)
	fmt.Printf("  evidence     %.2f\n", breakdown.Factors.Evidence)
	fmt.Printf("  recency      %.2f\n", breakdown.Factors.Recency)
	if breakdown.Err != "" {
		fmt.Printf("  degraded: %s\n", breakdown.Err)
	}
	return nil
}

// scoreInsight resolves the insight and its interview inside the corpus
// and delegates to the engine.
func scoreInsight(corpus dataset.Corpus, cfg config.Config, id string) (types.ScoreBreakdown, error) {
	var target *types.Insight
	for i := range corpus.Insights {
		if corpus.Insights[i].ID == id {
			target = &corpus.Insights[i]
			break
		}
	}
	if target == nil {
		return types.ScoreBreakdown{}, fmt.Errorf("insight %q not found in corpus", id)
	}

	var interview *types.Interview
	for i := range corpus.Interviews {
		if corpus.Interviews[i].ID == target.InterviewID {
			interview = &corpus.Interviews[i]
			break
		}
	}

	return engine.New(cfg).Score(*target, corpus.Insights, interview), nil
}
