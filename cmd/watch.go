package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/readmegen/pkg/project"
)

var (
	watchOptions project.WatchOptions

	watchCmd = &cobra.Command{
		Use:   "watch [repo]",
		Short: "Regenerate on file changes",
		Long: strings.TrimSpace(`
readmegen watch runs generate once and again every time files of the repository change.
Changes are debounced; ignored paths and the generated README itself do not trigger a run.

Examples:
  readmegen watch
  readmegen watch ../shop --debounce 2s
  readmegen watch --rank-only
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return project.ExecuteWatchCommand(rctx, watchOptions, args, cmd.OutOrStdout())
		},
		Aliases: []string{"w"},
	}
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchOptions.Debounce, "debounce", 0, "debounce interval (default from watch.debounce)")
	watchCmd.Flags().BoolVar(&watchOptions.RankOnly, "rank-only", false, "only re-rank, do not call the text-generation service")
	watchCmd.Flags().StringVarP(&watchOptions.Output, "output", "o", "", "output path, relative to the repository")
	watchCmd.Flags().StringVar(&watchOptions.Overrides.Provider, "provider", "", "text-generation provider (openai|gemini)")
	watchCmd.Flags().StringVarP(&watchOptions.Overrides.Model, "model", "m", "", "model name")
}
