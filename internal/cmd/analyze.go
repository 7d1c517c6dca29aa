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
	"discovery-insights-go/internal/output"
)

var (
	analyzeInput  string
	analyzeURL    string
	analyzeConfig string
	analyzeOut    string
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a corpus and report confidence, segments, and patterns",
	Long: `Analyze loads an insight/interview corpus (xlsx workbook or JSON
export, local file or URL), scores every insight, and reports validation
confidence, per-segment statistics, and detected patterns.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to corpus file (.xlsx or .json)")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "URL of a JSON corpus export")
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "Path to YAML config overriding default weights/thresholds")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write markdown report to this path (default: stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit the raw report as JSON instead of markdown")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(analyzeConfig)
	if err != nil {
		return err
	}

	var corpus dataset.Corpus
	switch {
	case analyzeURL != "":
		corpus, err = dataset.FetchRemote(analyzeURL, 30*time.Second)
	case analyzeInput != "":
		corpus, err = dataset.Load(analyzeInput)
	default:
		return fmt.Errorf("either --input or --url is required")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Loaded %d insights, %d interviews\n", len(corpus.Insights), len(corpus.Interviews))

	report := engine.New(cfg).Analyze(corpus.Insights, corpus.Interviews)

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	writer := output.NewWriter()
	if analyzeOut != "" {
		if err := writer.WriteFile(report, analyzeOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", analyzeOut)
		return nil
	}
	fmt.Print(writer.Render(report))
	return nil
}
