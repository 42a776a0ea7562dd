package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thepetra/petra/internal/config"
	"github.com/thepetra/petra/internal/guide"
	"github.com/thepetra/petra/internal/llm"
	"github.com/thepetra/petra/internal/logging"
	"github.com/thepetra/petra/internal/observability"
)

var (
	guideBreed      string
	guideAgeWeeks   int
	guideSituation  string
	guideExperience string
	guideConcern    string
	guideJSON       bool
	guideAPIKey     string
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Generate a pet-parent guide",
	Long: `Generate a pet-parent guide. Pass --breed (and optionally --age-weeks) for a
breed guide, or the quiz answers --situation, --experience and --concern.
Without a model API key the template guide is produced.`,
	RunE: runGuide,
}

func init() {
	guideCmd.Flags().StringVar(&guideBreed, "breed", "", "Breed for a direct guide")
	guideCmd.Flags().IntVar(&guideAgeWeeks, "age-weeks", 0, "Pet age in weeks")
	guideCmd.Flags().StringVar(&guideSituation, "situation", "", "Quiz situation, e.g. new-parent")
	guideCmd.Flags().StringVar(&guideExperience, "experience", "", "Quiz experience level, e.g. first-time")
	guideCmd.Flags().StringVar(&guideConcern, "concern", "", "Comma-separated concerns, e.g. health,behavior")
	guideCmd.Flags().BoolVar(&guideJSON, "json", false, "Print the guide as JSON")
	guideCmd.Flags().StringVar(&guideAPIKey, "api-key", "", "Model API key (overrides GEMINI_API_KEY env var)")
	guideCmd.MarkFlagsMutuallyExclusive("breed", "situation")
	rootCmd.AddCommand(guideCmd)
}

func runGuide(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level, "console")
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	apiKey := guideAPIKey
	if apiKey == "" {
		apiKey = cfg.LLM.APIKey
	}
	var client llm.Client
	if apiKey != "" {
		llmCfg := llm.DefaultConfig()
		llmCfg.Timeout = cfg.LLM.Timeout
		gemini, err := llm.NewGeminiClient(ctx, llmCfg, apiKey)
		if err != nil {
			return err
		}
		defer gemini.Close()
		client = gemini
	}

	entry := guide.EntryQuiz
	if guideBreed != "" {
		entry = guide.EntryDirect
	}
	profile := guide.Profile{
		Situation:       guideSituation,
		ExperienceLevel: guideExperience,
		Concern:         guideConcern,
		Breed:           guideBreed,
		AgeInWeeks:      guideAgeWeeks,
	}

	g, err := guide.NewGenerator(client, nil, 0, logger).Generate(ctx, profile, entry)
	if err != nil {
		return fmt.Errorf("failed to generate guide: %w", err)
	}

	if guideJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintGuide(g)
	return nil
}
