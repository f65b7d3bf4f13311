package lang

import (
	"regexp"
	"strings"
)

var (
	pyImportRe = regexp.MustCompile(`^import\s+(.+)$`)
	pyFromRe   = regexp.MustCompile(`^from\s+(\.*[\w.]*)\s+import\s+(.+)$`)

	jsFromRe    = regexp.MustCompile(`^(?:import|export)\b.*?\bfrom\s*['"]([^'"]+)['"]`)
	jsBareRe    = regexp.MustCompile(`^import\s*['"]([^'"]+)['"]`)
	jsCloseRe   = regexp.MustCompile(`^\}?\s*from\s*['"]([^'"]+)['"]`)
	jsRequireRe = regexp.MustCompile(`\b(?:require|import)\s*\(\s*['"]([^'"]+)['"]\s*\)`)

	goSingleRe = regexp.MustCompile(`^import\s+(?:[\w.]+\s+)?"([^"]+)"`)
	goSpecRe   = regexp.MustCompile(`^(?:[\w.]+\s+)?"([^"]+)"`)

	cIncludeRe   = regexp.MustCompile(`^#\s*include\s*"([^"]+)"`)
	javaImportRe = regexp.MustCompile(`^import\s+(?:static\s+)?([\w.]+)\s*;?`)
	rustModRe    = regexp.MustCompile(`^(?:pub(?:\([\w:]+\))?\s+)?mod\s+(\w+)\s*;`)
	rubyRe       = regexp.MustCompile(`^(require_relative|require|load)\s*\(?\s*['"]([^'"]+)['"]`)
	phpRe        = regexp.MustCompile(`\b(?:require|include)(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`)
	cssImportRe  = regexp.MustCompile(`^@(?:import|use|forward)\s+(?:url\()?\s*['"]([^'"]+)['"]`)
	shellRe      = regexp.MustCompile(`^(?:source|\.)\s+['"]?([^'"\s;]+)`)
)

// relativePrefix 标记需要相对导入文件目录解析的目标
const relativePrefix = "./"

// ParseImports 按语言提取导入语句的原始目标
// 没有定义规则的语言返回空，这是已知的覆盖缺口而非错误
func ParseImports(content, language string) []string {
	switch language {
	case "Python":
		return parsePython(content)
	case "JavaScript", "TypeScript", "React", "React TypeScript", "Vue", "Svelte":
		return parseLines(content, jsFromRe, jsBareRe, jsCloseRe, jsRequireRe)
	case "Go":
		return parseGo(content)
	case "C", "C++", "C/C++ Header", "Objective-C":
		return parseLines(content, cIncludeRe)
	case "Java", "Kotlin", "Scala":
		return parseLines(content, javaImportRe)
	case "Rust":
		return parseLines(content, rustModRe)
	case "Ruby":
		return parseRuby(content)
	case "PHP":
		return parseLines(content, phpRe)
	case "CSS", "SCSS", "SASS", "LESS":
		return parseLines(content, cssImportRe)
	case "Shell":
		return parseLines(content, shellRe)
	default:
		return nil
	}
}

// parseLines 对每一行依次应用正则，收集第一个捕获组
func parseLines(content string, patterns ...*regexp.Regexp) []string {
	var out []string
	for _, raw := range SplitLines(content) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, re := range patterns {
			if m := re.FindStringSubmatch(line); m != nil {
				out = append(out, m[1])
				break
			}
		}
	}
	return out
}

func parsePython(content string) []string {
	var out []string
	for _, raw := range SplitLines(content) {
		line := strings.TrimSpace(raw)
		if m := pyFromRe.FindStringSubmatch(line); m != nil {
			module := m[1]
			if strings.Trim(module, ".") == "" {
				// from . import a, b  =>  .a, .b
				for _, name := range splitNames(m[2]) {
					out = append(out, module+name)
				}
				continue
			}
			out = append(out, module)
			continue
		}
		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			out = append(out, splitNames(m[1])...)
		}
	}
	return out
}

// splitNames 解析 "a as b, c" 形式的名称列表
func splitNames(s string) []string {
	s = strings.Trim(strings.TrimSpace(s), "()")
	if i := strings.Index(s, "#"); i >= 0 {
		s = s[:i]
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 || fields[0] == "*" {
			continue
		}
		out = append(out, fields[0])
	}
	return out
}

func parseGo(content string) []string {
	var out []string
	inGroup := false
	for _, raw := range SplitLines(content) {
		line := strings.TrimSpace(raw)
		switch {
		case inGroup && strings.HasPrefix(line, ")"):
			inGroup = false
		case inGroup:
			if m := goSpecRe.FindStringSubmatch(line); m != nil {
				out = append(out, m[1])
			}
		case strings.HasPrefix(line, "import ("):
			inGroup = true
		default:
			if m := goSingleRe.FindStringSubmatch(line); m != nil {
				out = append(out, m[1])
			}
		}
	}
	return out
}

func parseRuby(content string) []string {
	var out []string
	for _, raw := range SplitLines(content) {
		m := rubyRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		target := m[2]
		if m[1] == "require_relative" && !strings.HasPrefix(target, ".") {
			target = relativePrefix + target
		}
		out = append(out, target)
	}
	return out
}
