package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one full pipeline pass",
	Long: `Runs one full pipeline pass: fetch new posts, extract compensation
fields, normalize labels, merge validated records into the dataset and prune
the raw intake store.

The extraction token must be available as ` + TokenEnvVar + ` in the
environment (a .env file in the working directory is read if present).`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	pipeline, cleanup, err := buildPipeline(settings, true)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := pipeline.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	cmd.Print(report.String())
	return nil
}
