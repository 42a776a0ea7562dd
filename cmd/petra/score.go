package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thepetra/petra/internal/observability"
	"github.com/thepetra/petra/internal/readiness"
	"github.com/thepetra/petra/internal/recommend"
	"github.com/thepetra/petra/internal/schemas"
)

var (
	scoreInputFile  string
	scoreOutputFile string
	scoreRecommend  bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a questionnaire submission",
	Long:  "Score a readiness questionnaire answers JSON file and print the score card.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreInputFile, "in", "i", "", "Path to answers JSON file")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to write the result JSON")
	scoreCmd.Flags().BoolVar(&scoreRecommend, "recommend", false, "Also print rule-based breed recommendations")
	_ = scoreCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(scoreInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	answers, err := readiness.ParseAnswers(data)
	if err != nil {
		return fmt.Errorf("failed to parse answers: %w", err)
	}
	// Mistyped answers still score; they just earn nothing.
	if err := schemas.Validate(schemas.Answers, data); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v", err)
	}

	result := readiness.Score(answers)

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintReadiness(&result)
	if scoreRecommend {
		printer.PrintRecommendations(recommend.RuleBased(recommend.ProfileFromAnswers(answers)), "rules")
	}

	if scoreOutputFile != "" {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		if err := os.WriteFile(scoreOutputFile, out, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	return nil
}
