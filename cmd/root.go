package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/talent-matcher/internal/embedding"
	"github.com/spigell/talent-matcher/internal/extraction"
	"github.com/spigell/talent-matcher/internal/filtering"
	"github.com/spigell/talent-matcher/internal/matching"
)

const (
	app = "talent-matcher"
)

type Config struct {
	Weights    matching.Weights  `mapstructure:"weights"`
	Embedding  embedding.Config  `mapstructure:"embedding"`
	Extraction extraction.Config `mapstructure:"extraction"`
	Ranking    RankingConfig     `mapstructure:"ranking"`
}

type RankingConfig struct {
	Workers    int  `mapstructure:"workers"`
	BestEffort bool `mapstructure:"best-effort"`

	filtering.Config `mapstructure:",squash"`
}

var (
	// Used for flags.
	cfgFile string
	weights map[string]string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-matcher scores and ranks candidates against a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("embedding.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	defaults := matching.DefaultWeights()
	viper.SetDefault("weights.text-similarity", defaults.TextSimilarity)
	viper.SetDefault("weights.skills-match", defaults.SkillsMatch)
	viper.SetDefault("weights.experience", defaults.Experience)
	viper.SetDefault("embedding.provider", embedding.ProviderHashing)
	viper.SetDefault("extraction.provider", extraction.ProviderKeywords)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringToStringVarP(&weights, "weight", "w", nil, "override a factor weight, e.g. --weight experience=0.3")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional unless it was requested explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	err := viper.Unmarshal(config)
	if err != nil {
		return config, err
	}

	if err := applyWeightOverrides(&config.Weights, weights); err != nil {
		return config, err
	}

	return config, nil
}
