// Package lang 提供语言识别、导入语句解析、注释提取与导入路径解析
package lang

import (
	"path"
	"strings"

	"github.com/yeisme/readmegen/pkg/models"
)

var (
	// ExtToLang 扩展名到语言标签的映射
	ExtToLang = map[string]string{
		".py":  "Python",
		".pyi": "Python",
		".js":  "JavaScript",
		".mjs": "JavaScript",
		".cjs": "JavaScript",
		".ts":  "TypeScript",
		".mts": "TypeScript",
		".jsx": "React",
		".tsx": "React TypeScript",
		".vue": "Vue",

		".svelte": "Svelte",
		".html":   "HTML",
		".htm":    "HTML",
		".css":    "CSS",
		".scss":   "SCSS",
		".sass":   "SASS",
		".less":   "LESS",

		".java":  "Java",
		".kt":    "Kotlin",
		".scala": "Scala",
		".go":    "Go",
		".rs":    "Rust",
		".rb":    "Ruby",
		".php":   "PHP",
		".swift": "Swift",
		".m":     "Objective-C",
		".cs":    "C#",
		".lua":   "Lua",
		".dart":  "Dart",

		// C/C++ 系列
		".c":   "C",
		".cc":  "C++",
		".cxx": "C++",
		".cpp": "C++",
		".h":   "C/C++ Header",
		".hpp": "C/C++ Header",

		".sh":   "Shell",
		".bash": "Shell",
		".zsh":  "Shell",
		".ps1":  "PowerShell",
		".sql":  "SQL",

		".md":   "Markdown",
		".json": "JSON",
		".yaml": "YAML",
		".yml":  "YAML",
		".xml":  "XML",
		".toml": "TOML",
	}

	// dataLanguages 标记、数据与配置格式，不计入项目的编程语言列表
	dataLanguages = map[string]struct{}{
		"Markdown": {},
		"JSON":     {},
		"YAML":     {},
		"XML":      {},
		"TOML":     {},
		"HTML":     {},
	}
)

// IdentifyLanguage 根据扩展名识别语言，未知扩展名返回 Unknown
func IdentifyLanguage(p string) string {
	if l, ok := ExtToLang[strings.ToLower(path.Ext(p))]; ok {
		return l
	}
	return models.UnknownLanguage
}

// IsProgramming 判断语言标签是否为编程语言（而非标记/数据格式）
func IsProgramming(language string) bool {
	if language == "" || language == models.UnknownLanguage {
		return false
	}
	_, data := dataLanguages[language]
	return !data
}

// SplitLines 按换行切分内容，兼容 \r\n，末尾换行不产生空行
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
