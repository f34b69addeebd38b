package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cleanRefresh bool
	cleanDataset bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [post-ids]",
	Short: "Remove specific posts from the stores",
	Long: `Removes the given posts (comma-separated ids) from the raw intake
store. Processing states are kept, so removed posts are not re-fetched and
re-processed later.

With --dataset, the matching canonical records are also removed from the
dataset. With --refresh, a full pipeline pass runs after the removal.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDataset, "dataset", false, "also remove matching dataset records")
	cleanCmd.Flags().BoolVar(&cleanRefresh, "refresh", false, "run a full pipeline pass afterwards")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ids := parseIDList(args[0])
	if len(ids) == 0 {
		return fmt.Errorf("no post ids given")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	pipeline, cleanup, err := buildPipeline(settings, cleanRefresh)
	if err != nil {
		return err
	}
	defer cleanup()

	rawRemoved, datasetRemoved, err := pipeline.RemovePosts(cmd.Context(), ids, cleanDataset)
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	cmd.Printf("removed %d raw posts", rawRemoved)
	if cleanDataset {
		cmd.Printf(", %d dataset records", datasetRemoved)
	}
	cmd.Println()

	if cleanRefresh {
		report, err := pipeline.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		cmd.Print(report.String())
	}
	return nil
}

// parseIDList splits a comma-separated id list, trimming whitespace and
// dropping empties and duplicates while keeping first-seen order.
func parseIDList(raw string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
