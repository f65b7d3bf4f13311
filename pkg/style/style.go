// Package style 提供终端样式化输出：表格、目录树、高亮的结构化数据与 Markdown 预览
package style

import "github.com/charmbracelet/lipgloss"

// 定义一套颜色，方便管理和修改
const (
	// 主题强调色，用于标题背景与核心文件标记
	ColorAccentPrimary = lipgloss.Color("#33A1FF")

	// 强调背景上的文本颜色
	ColorAccentText = lipgloss.Color("#FFFFFF")

	// 主要文本颜色
	ColorText = lipgloss.Color("#E4E4E4")

	// 边框与树形连接符颜色
	ColorBorder = lipgloss.Color("#444444")

	// 错误与排除项
	ColorDanger = lipgloss.Color("#FF5555")

	// 成功与入口文件
	ColorSuccess = lipgloss.Color("#22C55E")

	// 结构化数据高亮颜色
	ColorKey     = lipgloss.Color("#55bcf4")
	ColorNumber  = lipgloss.Color("#d4ec19")
	ColorBool    = lipgloss.Color("#dfab49")
	ColorNull    = lipgloss.Color("#6272A4")
	ColorPunct   = lipgloss.Color("#6B7280")
	ColorComment = lipgloss.Color("#6B7280")
)
