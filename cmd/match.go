package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/matching"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a single resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

type matchOptions struct {
	JobFile    string
	ResumeFile string
	Experience float64
	Skills     []string
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("job", "", "file with the job description")
	matchCmd.Flags().String("resume", "", "file with the candidate resume")
	matchCmd.Flags().Float64("experience", 0, "years of professional experience")
	matchCmd.Flags().StringSlice("skill", nil, "candidate skill, may be repeated")

	matchCmd.MarkFlagRequired("job")
	matchCmd.MarkFlagRequired("resume")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	experience, _ := cmd.Flags().GetFloat64("experience")
	skills, _ := cmd.Flags().GetStringSlice("skill")
	opts := matchOptions{
		JobFile:    cmd.Flag("job").Value.String(),
		ResumeFile: cmd.Flag("resume").Value.String(),
		Experience: experience,
		Skills:     skills,
	}

	if err := runMatch(ctx, config, opts, logger, cmd.OutOrStdout()); err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}
}

func runMatch(ctx context.Context, config *Config, opts matchOptions, logger *zap.Logger, out io.Writer) error {
	job, err := os.ReadFile(opts.JobFile)
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}
	resume, err := os.ReadFile(opts.ResumeFile)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}

	eng, err := newEngine(ctx, config, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	jobProfile, err := eng.builder.BuildJobProfile(ctx, string(job))
	if err != nil {
		return fmt.Errorf("building job profile: %w", err)
	}

	candidate, err := eng.builder.BuildCandidateProfile(ctx, string(resume), opts.Experience, opts.Skills)
	if err != nil {
		return fmt.Errorf("building candidate profile: %w", err)
	}

	result, err := eng.scorer.Score(ctx, jobProfile, candidate, config.Weights)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	logger.Info("match computed",
		zap.Float64("overall_score", result.OverallScore),
		zap.Strings("requirements", jobProfile.Requirements()),
	)

	return writeJSON(out, matchReport{
		Requirements: jobProfile.Requirements(),
		MatchResult:  result,
	})
}

type matchReport struct {
	Requirements []string `json:"requirements"`
	matching.MatchResult
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
