// Package cli implements the compwatch command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	configfile "github.com/compwatch-labs/compwatch-cli/internal/adapters/driven/config/file"
	"github.com/compwatch-labs/compwatch-cli/internal/adapters/driven/forum/leetcode"
	"github.com/compwatch-labs/compwatch-cli/internal/adapters/driven/llm/openai"
	filestore "github.com/compwatch-labs/compwatch-cli/internal/adapters/driven/storage/file"
	"github.com/compwatch-labs/compwatch-cli/internal/adapters/driven/storage/sqlite"
	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/services"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// TokenEnvVar is the environment variable holding the extraction service
// access token. It is never read from the config file.
const TokenEnvVar = "COMPWATCH_LLM_TOKEN"

// Persistent flags.
var (
	cfgFile     string
	dataDirFlag string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "compwatch",
	Short: "Curate a compensation dataset from forum posts",
	Long: `compwatch maintains a curated compensation dataset from public forum
posts. Each run fetches new posts, extracts structured compensation fields,
normalizes company, role and location labels against curated alias tables,
and merges validated records into the durable dataset.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "config.toml", "path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(
		&dataDirFlag, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings loads the config file and applies flag overrides.
func loadSettings() (domain.Settings, error) {
	settings, err := configfile.LoadSettings(cfgFile)
	if err != nil {
		return settings, err
	}
	if dataDirFlag != "" {
		settings.App.DataDir = dataDirFlag
	}
	return settings, nil
}

// buildPipeline wires adapters into a pipeline. When needLLM is set the
// extraction token must be present in the environment; commands that never
// extract can run without it.
func buildPipeline(settings domain.Settings, needLLM bool) (*services.Pipeline, func(), error) {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	var llm *openai.LLMService
	if needLLM {
		token := os.Getenv(TokenEnvVar)
		if token == "" {
			return nil, nil, fmt.Errorf("%w: set %s", domain.ErrMissingToken, TokenEnvVar)
		}
		var err error
		llm, err = openai.NewLLMService(openai.LLMConfig{
			APIKey:     token,
			BaseURL:    settings.LLM.BaseURL,
			Model:      settings.LLM.Model,
			Timeout:    settings.LLMTimeout(),
			MaxRetries: settings.App.NAPIRetries,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	if err := os.MkdirAll(settings.App.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	forum := leetcode.NewClient(leetcode.Config{
		BaseURL:        settings.Forum.BaseURL,
		Timeout:        settings.ForumTimeout(),
		RequestsPerSec: settings.Forum.RequestsPerSec,
		MaxRetries:     settings.App.NAPIRetries,
	})

	raw := filestore.NewRawPostStore(filepath.Join(settings.App.DataDir, "raw_posts.jsonl"))
	dataset := filestore.NewDatasetStore(filepath.Join(settings.App.DataDir, "dataset.json"))
	aliases := filestore.NewAliasStore(settings.App.DataDir)

	store, err := sqlite.NewStore(settings.App.DataDir)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing state store: %v", err)
		}
	}

	pipeline := services.NewPipeline(
		settings, forum, llm, raw, dataset, aliases, store.StateStore(), nil)
	return pipeline, cleanup, nil
}
