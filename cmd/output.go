package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/readmegen/pkg/configs"
)

// addFormatFlags 注册结构化输出相关标志
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	cmd.Flags().Bool("yaml", false, "Output in YAML format")
	cmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	cmd.Flags().Bool("toml", false, "Output in TOML format")
	cmd.Flags().Bool("no-color", false, "Disable color output")
}

// structuredFormat 用户显式选择了格式时返回格式名，否则返回空字符串
func structuredFormat(cmd *cobra.Command) string {
	for _, name := range []string{"format", "yaml", "json", "toml"} {
		if cmd.Flags().Changed(name) {
			return string(configs.GetOutputFormatFromFlags(cmd))
		}
	}
	return ""
}

// colored 是否对结构化输出着色
func colored(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor
}
