// Package cmd provides command-line interface commands for readmegen
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	gctx "github.com/yeisme/readmegen/pkg/context"
	log2 "github.com/yeisme/readmegen/pkg/utils/log"
	"github.com/yeisme/readmegen/pkg/utils/version"
)

var (
	rctx *gctx.ReadmegenContext
	log  log2.Logger

	// Global flags
	globalFlags = gctx.GlobalFlags{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "readmegen",
	Short: "readmegen analyzes a repository and generates its README",
	Long: `readmegen walks a code repository, ranks its most significant files, asks a
text-generation service to describe them and writes a README.md from the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if globalFlags.VersionEnable {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return
		}
		if len(args) == 0 {
			_ = cmd.Help()
		}
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		ctx, err := gctx.InitReadmegenContext(cmd.Context(), globalFlags)
		if err != nil {
			return err
		}
		rctx = ctx
		log = ctx.Logger

		log.Debug().Msgf("Execute Command: %s %s", "readmegen", strings.Join(os.Args[1:], " "))
		return nil
	},
}

// Execute adds all child commands to the root command and runs it with ctx.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger := log
		if logger == nil {
			logger = log2.GetLogger()
		}
		logger.Error().Err(err).Msg("command failed")
		if logger.GetLevel() == zerolog.Disabled {
			_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&globalFlags.EnvFile, "env-file", "", "load environment variables from `file` (default .env when present)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "suppress all output except results")
	rootCmd.Flags().BoolVarP(&globalFlags.VersionEnable, "version", "v", false, "show version information")
}
