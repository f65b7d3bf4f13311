package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/readmegen/pkg/project"
)

var (
	rankOptions project.RankOptions

	rankCmd = &cobra.Command{
		Use:   "rank [repo]",
		Short: "Rank the core files of a repository",
		Long: strings.TrimSpace(`
readmegen rank scores every eligible file of a repository and shows the core files with
their score breakdown. No text-generation service is called.

Examples:
  # 1. Show the core files of the current directory
  readmegen rank

  # 2. Show every eligible file
  readmegen rank --all

  # 3. Fuzzy-filter paths
  readmegen rank --all --filter handler

  # 4. JSON output
  readmegen rank ../shop --json
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := rankOptions
			opts.Format = structuredFormat(cmd)
			opts.Colored = colored(cmd)
			return project.ExecuteRankCommand(rctx, opts, args, cmd.OutOrStdout())
		},
		Aliases: []string{"r"},
	}
)

func init() {
	rootCmd.AddCommand(rankCmd)

	addFormatFlags(rankCmd)
	rankCmd.Flags().BoolVarP(&rankOptions.All, "all", "a", false, "show every eligible file, not only core files")
	rankCmd.Flags().StringVar(&rankOptions.Filter, "filter", "", "fuzzy-filter file paths")
}
