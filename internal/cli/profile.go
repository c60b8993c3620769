package cli

import (
	"context"
	"fmt"

	"skillmatch/internal/common"
	"skillmatch/internal/types"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile [candidate-file]",
	Short: "Build a skill proficiency profile from a candidate's history",
	Long: `Build a skill proficiency profile from a candidate JSON file.

For every declared skill the timeline of professional usage is reconstructed
from the employment history, the total years of hands-on experience are
computed, and a proficiency tier (beginner, intermediate, advanced, expert)
is assigned together with a confidence score and reasoning.

Skills that never appear in the employment history fall back to the
candidate's total career length with reduced confidence.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if profileConfig.OutputFormat == "" {
			profileConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(profileConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runProfile,
}

var profileConfig common.CommandConfig

func init() {
	profileCmd.Flags().StringVarP(&profileConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	profileCmd.Flags().StringVar(&profileConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = profileCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzerFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	buildInput := func(contents []string) (types.ProfileInput, error) {
		candidate, err := common.DecodeJSON[types.CandidateProfile](contents[0], "candidate profile")
		if err != nil {
			return types.ProfileInput{}, err
		}
		return types.ProfileInput{Candidate: candidate}, nil
	}

	logDetails := func(input types.ProfileInput, cmdCfg common.CommandConfig) {
		logger.Info("Starting skill proficiency profiling",
			"candidate", input.Candidate.Name,
			"skills", len(input.Candidate.Skills),
			"employment_records", len(input.Candidate.Employment),
			"output_format", cmdCfg.OutputFormat)
	}

	profileOperation := func(ctx context.Context, input types.ProfileInput) (types.ProfileOutput, error) {
		return analyzer.AnalyzeProfile(ctx, input.Candidate), nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		profileConfig,
		args,
		buildInput,
		profileOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to build skill profile: %w", err)
	}
	logger.Info("Skill proficiency profiling completed successfully")
	return nil
}
