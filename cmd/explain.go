package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/readmegen/pkg/project"
)

var (
	explainOptions project.ExplainOptions

	explainCmd = &cobra.Command{
		Use:   "explain [repo] [file]",
		Short: "Explain the score of one file",
		Long: strings.TrimSpace(`
readmegen explain prints how a file's significance score is composed, its rank among
eligible files and whether it was selected as a core file. Files that are not ranked
show the reason they were excluded.

Examples:
  # 1. Explain a file of the current repository
  readmegen explain . cmd/root.go

  # 2. Suffix and fuzzy matches are accepted when unique
  readmegen explain . root.go

  # 3. Pick a file interactively
  readmegen explain
`),
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := explainOptions
			opts.Format = structuredFormat(cmd)
			opts.Colored = colored(cmd)
			opts.Interactive = len(args) < 2
			return project.ExecuteExplainCommand(rctx, opts, args, cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.AddCommand(explainCmd)

	addFormatFlags(explainCmd)
}
