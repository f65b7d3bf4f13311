// Package models 定义仓库分析流水线中各阶段传递的数据结构
package models

import "strings"

// UnknownLanguage 无法识别扩展名时使用的语言标签
const UnknownLanguage = "Unknown"

// FileRecord 仓库遍历阶段发现的单个文件，创建后不再修改
type FileRecord struct {
	Path     string `json:"path" yaml:"path"`         // 相对仓库根目录的路径，使用 / 分隔
	AbsPath  string `json:"abs_path" yaml:"abs_path"` // 绝对路径
	Ext      string `json:"ext" yaml:"ext"`           // 小写扩展名（包含点）
	Language string `json:"language" yaml:"language"` // 语言标签，未知时为 Unknown
	Size     int64  `json:"size" yaml:"size"`         // 文件大小（字节）
}

// Depth 返回路径深度：分隔符数量加一，根目录下的文件深度为 1
func (f FileRecord) Depth() int {
	return strings.Count(f.Path, "/") + 1
}

// KnownLanguage 判断文件语言是否可识别
func (f FileRecord) KnownLanguage() bool {
	return f.Language != "" && f.Language != UnknownLanguage
}

// ImportReference 一条解析到仓库内文件的导入/包含语句，依赖图构建阶段由 worker 交给归约者
type ImportReference struct {
	From   string `json:"from" yaml:"from"`
	Target string `json:"target" yaml:"target"`
}

// ImportCounts 被引用文件路径到入度的映射
// 每次分析构建一次，交给排序器后只读
type ImportCounts map[string]int

// Get 返回路径的入度，nil 映射返回 0
func (c ImportCounts) Get(path string) int {
	if c == nil {
		return 0
	}
	return c[path]
}

// NodeType 目录树节点类型
type NodeType string

const (
	// NodeDirectory 目录节点
	NodeDirectory NodeType = "directory"
	// NodeFile 文件节点
	NodeFile NodeType = "file"
)

// TreeNode 仓库目录树的节点，子节点按名称字典序排列
type TreeNode struct {
	Name     string     `json:"name" yaml:"name"`
	Type     NodeType   `json:"type" yaml:"type"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// CountFiles 统计树中文件节点的数量
func (n TreeNode) CountFiles() int {
	if n.Type == NodeFile {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.CountFiles()
	}
	return total
}

// FileScore 单个文件的得分及各项因子，仅用于选择和展示
type FileScore struct {
	Path       string  `json:"path" yaml:"path"`
	Size       float64 `json:"size" yaml:"size"`
	Depth      float64 `json:"depth" yaml:"depth"`
	Imports    float64 `json:"imports" yaml:"imports"`
	Comment    float64 `json:"comment" yaml:"comment"`
	EntryPoint float64 `json:"entry_point" yaml:"entry_point"`
	Total      float64 `json:"total" yaml:"total"`

	InboundImports int  `json:"inbound_imports" yaml:"inbound_imports"`
	IsEntryPoint   bool `json:"is_entry_point" yaml:"is_entry_point"`
}
