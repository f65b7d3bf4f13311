package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/readmegen/pkg/project"
)

var (
	generateOptions project.GenerateOptions

	generateCmd = &cobra.Command{
		Use:   "generate [repo]",
		Short: "Generate the README of a repository",
		Long: strings.TrimSpace(`
readmegen generate analyzes a repository and asks the text-generation service to write
its README. The result is written to <repo>/README.md unless --output is given.

Examples:
  # 1. Generate README.md for the current directory
  readmegen generate

  # 2. Use another provider and model
  readmegen generate ../shop --provider gemini --model gemini-2.5-pro

  # 3. Write somewhere else and preview in the terminal
  readmegen generate --output docs/README.md --preview

  # 4. Print without writing
  readmegen generate --dry-run

Notes:
  - The API key is read from llm.api_key, OPENAI_API_KEY or GEMINI_API_KEY.
  - An existing README is passed to the service as context and then overwritten.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generateOptions
			opts.Progress = cmd.ErrOrStderr()
			return project.ExecuteGenerateCommand(rctx, opts, args, cmd.OutOrStdout())
		},
		Aliases: []string{"gen", "g"},
	}
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOptions.Output, "output", "o", "", "output path, relative to the repository (default README.md)")
	generateCmd.Flags().StringVar(&generateOptions.Overrides.Provider, "provider", "", "text-generation provider (openai|gemini)")
	generateCmd.Flags().StringVarP(&generateOptions.Overrides.Model, "model", "m", "", "model name")
	generateCmd.Flags().BoolVarP(&generateOptions.Preview, "preview", "p", false, "render the generated README in the terminal")
	generateCmd.Flags().BoolVarP(&generateOptions.DryRun, "dry-run", "n", false, "print the README instead of writing it")
}
