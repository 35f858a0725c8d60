package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/talent-matcher/internal/candidates"
	"github.com/spigell/talent-matcher/internal/filtering"
	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/matching"
	"github.com/spigell/talent-matcher/internal/utils"
)

const (
	PromptShowRanking   = "Show ranking"
	PromptShowDetails   = "Show score breakdowns"
	PromptRankingToFile = "Dump ranking to file"
	PromptExit          = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowRanking, PromptShowDetails, PromptRankingToFile, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a batch of candidates against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

type rankOptions struct {
	JobFile        string
	CandidatesFile string
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "file with the job description (overrides the job in the candidates file)")
	rankCmd.Flags().StringP("candidates", "c", "", "YAML or JSON file with candidates")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "print the ranking and exit without the interactive menu")
	rankCmd.Flags().Bool("best-effort", false, "skip candidates that fail instead of aborting")
	rankCmd.Flags().Int("workers", 0, "number of candidates processed concurrently (default is the number of CPUs)")
	rankCmd.Flags().Float64("minimum-score", 0, "drop candidates scoring below this value")
	rankCmd.Flags().Int("top", 0, "keep only the first N candidates")

	rankCmd.MarkFlagRequired("candidates")

	viper.BindPFlag("ranking.best-effort", rankCmd.Flags().Lookup("best-effort"))
	viper.BindPFlag("ranking.workers", rankCmd.Flags().Lookup("workers"))
	viper.BindPFlag("ranking.minimum-score", rankCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("ranking.top", rankCmd.Flags().Lookup("top"))
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talent-matcher", zap.String("version", version))

	opts := rankOptions{
		JobFile:        cmd.Flag("job").Value.String(),
		CandidatesFile: cmd.Flag("candidates").Value.String(),
	}

	report, err := runRank(ctx, config, opts, logger)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	if len(report.Entries) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	out := cmd.OutOrStdout()
	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := writeJSON(out, report); err != nil {
			logger.Fatal("writing ranking", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, report, logger, out); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, report *rankReport, logger *zap.Logger, out io.Writer) error {
	switch action {
	case PromptShowRanking:
		return writeJSON(out, report)
	case PromptShowDetails:
		return report.WriteTable(out)
	case PromptRankingToFile:
		filename, err := utils.DumpJSONToTmpFile("ranking_*.json", report)
		if err != nil {
			return fmt.Errorf("dump ranking to file: %w", err)
		}
		logger.Info("dumping ranking to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// runRank loads the batch, builds profiles, ranks them and applies the filters.
func runRank(ctx context.Context, config *Config, opts rankOptions, logger *zap.Logger) (*rankReport, error) {
	batch, err := candidates.Load(opts.CandidatesFile)
	if err != nil {
		return nil, err
	}

	jobText, err := jobDescription(batch, opts.JobFile)
	if err != nil {
		return nil, err
	}

	eng, err := newEngine(ctx, config, logger)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	job, err := eng.builder.BuildJobProfile(ctx, jobText)
	if err != nil {
		return nil, fmt.Errorf("building job profile: %w", err)
	}

	logger.Info("job profile built",
		zap.Strings("requirements", job.Requirements()),
		zap.Int("candidates", batch.Len()),
	)

	profiles, failures, err := buildCandidates(ctx, eng.builder, batch, config.Ranking, logger)
	if err != nil {
		return nil, err
	}

	ranking, err := eng.ranker.Rank(ctx, job, profiles, matching.RankOptions{
		Weights:    config.Weights,
		BestEffort: config.Ranking.BestEffort,
		Workers:    config.Ranking.Workers,
	})
	if err != nil {
		return nil, err
	}
	failures = append(failures, ranking.Failures...)

	steps := []filtering.Filter{filtering.NewMinimumScore(), filtering.NewTopN()}
	entries, err := filtering.Run(ctx, &config.Ranking.Config, filtering.Deps{Logger: logger}, steps, ranking.Entries)
	if err != nil {
		return nil, fmt.Errorf("filtering failed: %w", err)
	}

	return newRankReport(job, batch, entries, failures, filtering.Describe(steps)), nil
}

func jobDescription(batch *candidates.Batch, jobFile string) (string, error) {
	if jobFile != "" {
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		return string(data), nil
	}

	text, err := batch.JobText()
	if err != nil {
		return "", fmt.Errorf("reading job description: %w", err)
	}
	if text == "" {
		return "", errors.New("job description is required (use --job or set job/job-file in the candidates file)")
	}
	return text, nil
}

// buildCandidates builds the profiles of every batch entry concurrently. The
// first failing entry in batch order aborts the run unless best effort is set.
func buildCandidates(ctx context.Context, builder *matching.Builder, batch *candidates.Batch, cfg RankingConfig, logger *zap.Logger) ([]matching.Candidate, []matching.CandidateError, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	profiles := make([]matching.CandidateProfile, batch.Len())
	errs := make([]error, batch.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, entry := range batch.Candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			resume, err := batch.ResumeText(entry)
			if err != nil {
				errs[i] = err
				return nil
			}

			profiles[i], errs[i] = builder.BuildCandidateProfile(gctx, resume, entry.Experience, entry.Skills)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		result   = make([]matching.Candidate, 0, batch.Len())
		failures []matching.CandidateError
	)
	for i, entry := range batch.Candidates {
		if errs[i] == nil {
			result = append(result, matching.Candidate{ID: entry.ID, Profile: profiles[i]})
			continue
		}

		failure := matching.CandidateError{CandidateID: entry.ID, Err: errs[i]}
		if !cfg.BestEffort {
			return nil, nil, &failure
		}

		logger.Warn("candidate profile failed",
			zap.String("candidate_id", entry.ID),
			zap.Error(errs[i]),
		)
		failures = append(failures, failure)
	}

	return result, failures, nil
}
