package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/readmegen/pkg/project"
)

var (
	treeOptions project.TreeOptions

	treeCmd = &cobra.Command{
		Use:   "tree [repo]",
		Short: "Show the repository tree after ignore rules",
		Long: strings.TrimSpace(`
readmegen tree prints the directory tree the analyzer sees, after built-in ignore rules
and .gitignore are applied. Core files are marked with ★.

Examples:
  readmegen tree
  readmegen tree ../shop --depth 2
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return project.ExecuteTreeCommand(rctx, treeOptions, args, cmd.OutOrStdout())
		},
		Aliases: []string{"t"},
	}
)

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().IntVarP(&treeOptions.Depth, "depth", "d", 0, "maximum depth to expand (0 for unlimited)")
	treeCmd.Flags().BoolVar(&treeOptions.NoHighlight, "no-highlight", false, "do not mark core files")
}
