package cli

import (
	"context"
	"fmt"

	"skillmatch/internal/common"
	"skillmatch/internal/evaluation"
	"skillmatch/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [candidate-file] [requisition-file]",
	Short: "Evaluate a candidate against a job requisition",
	Long: `Evaluate a candidate JSON file against a requisition JSON file using
weighted multi-criteria scoring.

Each configured criterion (skills, experience, education, certifications,
location, salary, expectations) is scored 0-100 and weighted into an overall
score. Failing a required criterion disqualifies the candidate regardless of
the overall score. The result carries a hiring recommendation from strong_yes
down to strong_no, with per-criterion gaps and strengths.

Use --policy to select a named scoring policy from the configured policy
file, or --division to pick the policy mapped to a business division.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var (
	matchConfig      common.CommandConfig
	matchPolicyID    string
	matchDivision    string
	matchWithProfile bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	matchCmd.Flags().StringVar(&matchPolicyID, "policy", "", "Evaluation policy id from the policy file")
	matchCmd.Flags().StringVar(&matchDivision, "division", "", "Business division to select the evaluation policy for")
	matchCmd.Flags().BoolVar(&matchWithProfile, "with-profile", false, "Include per-skill proficiency assessments in the output")

	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	policy, err := resolvePolicy(cfg, logger, matchPolicyID, matchDivision)
	if err != nil {
		return err
	}

	evaluator := evaluation.NewEvaluator(logger)

	buildInput := func(contents []string) (types.MatchInput, error) {
		candidate, err := common.DecodeJSON[types.CandidateProfile](contents[0], "candidate profile")
		if err != nil {
			return types.MatchInput{}, err
		}
		requisition, err := common.DecodeJSON[types.Requisition](contents[1], "job requisition")
		if err != nil {
			return types.MatchInput{}, err
		}
		return types.MatchInput{Candidate: candidate, Requisition: requisition}, nil
	}

	logDetails := func(input types.MatchInput, cmdCfg common.CommandConfig) {
		logger.Info("Starting candidate match evaluation",
			"candidate", input.Candidate.Name,
			"requisition", input.Requisition.Title,
			"policy", policy.ID,
			"criteria", len(policy.Criteria),
			"output_format", cmdCfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input types.MatchInput) (types.MatchOutput, error) {
		candidate := input.Candidate
		var result types.MatchOutput
		if matchWithProfile {
			analyzer, err := newAnalyzerFromConfig(cfg, logger)
			if err != nil {
				return types.MatchOutput{}, err
			}
			// Evaluate against the enriched skill entities so criterion
			// evidence carries the assessed confidence and years
			profile := analyzer.AnalyzeProfile(ctx, candidate)
			candidate.Skills = profile.Skills
			result.Profile = profile.Assessments
		}
		result.Evaluation = evaluator.Evaluate(candidate, input.Requisition, policy)
		return result, nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		buildInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to evaluate candidate match: %w", err)
	}
	logger.Info("Candidate match evaluation completed successfully")
	return nil
}
