package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/readmegen/pkg/configs"
)

var (
	noColor bool

	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage readmegen configuration",
		Long:    `readmegen config allows you to view and manage your readmegen configuration settings.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate readmegen configuration",
		Long:  `readmegen config validate checks the validity of your configuration file and environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileUsed := rctx.Viper.ConfigFileUsed()
			if fileUsed == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No config file found, using defaults and environment variables")
				return err
			}
			// 检查配置文件加载
			if err := rctx.Viper.ReadInConfig(); err != nil {
				return fmt.Errorf("config file error: %w", err)
			}
			if _, err := configs.Load(rctx.Viper); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Config file is valid: %s\n", fileUsed)
			return err
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List readmegen configuration",
		Long: `readmegen config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings
  - llm: Text-generation service settings
  - analyzer: Walk, ranking and synthesis settings
  - watch: Watch mode settings

Examples:
  readmegen config list                    # Show all configuration (viper raw data)
  readmegen config list --all              # Show all configuration with defaults
  readmegen config list app                # Show only app settings
  readmegen config list --format yaml      # Output in YAML format
  readmegen config list --format json      # Output in JSON format
  readmegen config list --yaml             # Output in YAML format (shorthand)
  readmegen config list app --all --json   # Show app config with defaults in JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			// 确定输出格式
			format := configs.GetOutputFormatFromFlags(cmd)

			// 检查是否显示完整配置（包含默认值）
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(rctx.Viper, section, showAll)
			if err != nil {
				return fmt.Errorf("get config section: %w", err)
			}
			return configs.OutputData(data, format, cmd.OutOrStdout(), !noColor)
		},
		Aliases: []string{"ls"},
	}
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize readmegen configuration",
		Long: `readmegen config init creates a new configuration file with default settings.

Examples:
  readmegen config init                    # Create .readmegen.yaml in current directory
  readmegen config init --path ~/.readmegen/config.yaml  # Specify custom path
  readmegen config init --format json      # Create JSON format config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}

			// 如果没有指定路径，使用默认路径
			if path == "" {
				switch format {
				case configs.FormatYAML:
					path = ".readmegen.yaml"
				case configs.FormatJSON:
					path = ".readmegen.json"
				case configs.FormatTOML:
					path = ".readmegen.toml"
				}
			}

			// 创建配置文件
			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return fmt.Errorf("create config file: %w", err)
			}

			log.Info().Msgf("Config file created successfully: %s", path)
			return nil
		},
		Args: cobra.NoArgs,
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
	)

	// 添加 config list 标志
	configListCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	// 添加 config init 标志
	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
