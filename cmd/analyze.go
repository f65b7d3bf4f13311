package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/readmegen/pkg/configs"
	"github.com/yeisme/readmegen/pkg/project"
)

var (
	analyzeOptions project.AnalyzeOptions

	analyzeCmd = &cobra.Command{
		Use:   "analyze [repo]",
		Short: "Analyze a repository and print the synthesized view",
		Long: strings.TrimSpace(`
readmegen analyze runs the full pipeline (walk, import graph, ranking, per-file analysis
and synthesis) and prints the synthesized view as structured data.

Examples:
  # 1. Analyze the current directory, YAML output
  readmegen analyze

  # 2. Analyze another repository as JSON
  readmegen analyze ../shop --json

  # 3. Write the result to a file
  readmegen analyze --format toml --out analysis.toml

  # 4. Skip per-file analysis (no API key needed)
  readmegen analyze --offline

Notes:
  - Per-file analysis calls the configured text-generation service once per core file.
  - Files that cannot be read or analyzed are reported inline and never abort the run.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := analyzeOptions
			opts.Format = string(configs.GetOutputFormatFromFlags(cmd))
			opts.Colored = colored(cmd) && opts.Out == ""
			opts.Progress = cmd.ErrOrStderr()
			return project.ExecuteAnalyzeCommand(rctx, opts, args, cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addFormatFlags(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeOptions.Out, "out", "o", "", "write the result to `file` instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeOptions.Offline, "offline", false, "skip per-file analysis")
	analyzeCmd.Flags().StringVar(&analyzeOptions.Overrides.Provider, "provider", "", "text-generation provider (openai|gemini)")
	analyzeCmd.Flags().StringVarP(&analyzeOptions.Overrides.Model, "model", "m", "", "model name")
}
