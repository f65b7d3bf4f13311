package lang

import "strings"

// commentStyle 描述一种语言的注释语法
type commentStyle struct {
	single     []string
	blockStart string
	blockEnd   string
}

func (c commentStyle) isNone() bool {
	return len(c.single) == 0 && c.blockStart == ""
}

var (
	cStyle    = commentStyle{single: []string{"//"}, blockStart: "/*", blockEnd: "*/"}
	hashStyle = commentStyle{single: []string{"#"}}
	htmlStyle = commentStyle{blockStart: "<!--", blockEnd: "-->"}

	// LangToComment 语言到注释风格的映射
	LangToComment = map[string]commentStyle{
		"Python":           {single: []string{"#"}, blockStart: `"""`, blockEnd: `"""`},
		"JavaScript":       cStyle,
		"TypeScript":       cStyle,
		"React":            cStyle,
		"React TypeScript": cStyle,
		"Java":             cStyle,
		"Kotlin":           cStyle,
		"Scala":            cStyle,
		"Go":               cStyle,
		"Rust":             cStyle,
		"Swift":            cStyle,
		"Objective-C":      cStyle,
		"C#":               cStyle,
		"Dart":             cStyle,
		"C":                cStyle,
		"C++":              cStyle,
		"C/C++ Header":     cStyle,
		"PHP":              {single: []string{"//", "#"}, blockStart: "/*", blockEnd: "*/"},
		"CSS":              {blockStart: "/*", blockEnd: "*/"},
		"SCSS":             cStyle,
		"SASS":             cStyle,
		"LESS":             cStyle,
		"Ruby":             {single: []string{"#"}, blockStart: "=begin", blockEnd: "=end"},
		"Shell":            hashStyle,
		"PowerShell":       {single: []string{"#"}, blockStart: "<#", blockEnd: "#>"},
		"YAML":             hashStyle,
		"TOML":             hashStyle,
		"SQL":              {single: []string{"--"}, blockStart: "/*", blockEnd: "*/"},
		"Lua":              {single: []string{"--"}, blockStart: "--[[", blockEnd: "]]"},
		"HTML":             htmlStyle,
		"XML":              htmlStyle,
		"Markdown":         htmlStyle,
		"Vue":              {single: []string{"//"}, blockStart: "<!--", blockEnd: "-->"},
		"Svelte":           {single: []string{"//"}, blockStart: "<!--", blockEnd: "-->"},
	}
)

// ExtractComments 提取内容中的注释行（去除首尾空白）
// 单行注释要求去空白后以注释符开头，避免把 URL 等误判为注释
// 没有注释规则的语言返回空
func ExtractComments(content, language string) []string {
	style, ok := LangToComment[language]
	if !ok || style.isNone() {
		return nil
	}

	var comments []string
	inBlock := false
	for _, raw := range SplitLines(content) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if inBlock {
			comments = append(comments, line)
			if strings.Contains(line, style.blockEnd) {
				inBlock = false
			}
			continue
		}

		if hasSingleLineCommentPrefix(line, style.single) {
			comments = append(comments, line)
			continue
		}

		if style.blockStart != "" && strings.HasPrefix(line, style.blockStart) {
			comments = append(comments, line)
			rest := line[len(style.blockStart):]
			if !strings.Contains(rest, style.blockEnd) {
				inBlock = true
			}
		}
	}
	return comments
}

// CommentDensity 注释行数 / 总行数，空内容返回 0
func CommentDensity(content, language string) float64 {
	total := len(SplitLines(content))
	if total == 0 {
		return 0
	}
	return float64(len(ExtractComments(content, language))) / float64(total)
}

func hasSingleLineCommentPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
