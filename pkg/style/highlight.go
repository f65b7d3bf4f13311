package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// 支持高亮的文本格式
const (
	SyntaxJSON = "json"
	SyntaxYAML = "yaml"
	SyntaxTOML = "toml"
)

// FormatJSON 返回缩进两格、以换行结尾的 JSON 文本
func FormatJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// FormatYAML 返回缩进两格的 YAML 文本
func FormatYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatTOML 返回 TOML 文本
func FormatTOML(v any) (string, error) {
	b, err := toml.Marshal(v)
	if err != nil {
		return "", err
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return string(b), nil
}

// PrintJSON 以高亮的 JSON 输出任意值
func PrintJSON(w io.Writer, v any) error {
	return printFormatted(w, v, SyntaxJSON, FormatJSON)
}

// PrintYAML 以高亮的 YAML 输出任意值
func PrintYAML(w io.Writer, v any) error {
	return printFormatted(w, v, SyntaxYAML, FormatYAML)
}

// PrintTOML 以高亮的 TOML 输出任意值
func PrintTOML(w io.Writer, v any) error {
	return printFormatted(w, v, SyntaxTOML, FormatTOML)
}

func printFormatted(w io.Writer, v any, syntax string, format func(any) (string, error)) error {
	text, err := format(v)
	if err != nil {
		return fmt.Errorf("format %s: %w", syntax, err)
	}
	_, err = io.WriteString(w, Highlight(lipgloss.NewRenderer(w), text, syntax))
	return err
}

type palette struct {
	key, str, num, boolean, null, punct, comment, table lipgloss.Style
}

func newPalette(re *lipgloss.Renderer) palette {
	return palette{
		key:     re.NewStyle().Foreground(ColorKey).Bold(true),
		str:     re.NewStyle().Foreground(ColorText),
		num:     re.NewStyle().Foreground(ColorNumber),
		boolean: re.NewStyle().Foreground(ColorBool),
		null:    re.NewStyle().Foreground(ColorNull),
		punct:   re.NewStyle().Foreground(ColorPunct),
		comment: re.NewStyle().Foreground(ColorComment).Italic(true),
		table:   re.NewStyle().Foreground(ColorAccentPrimary).Bold(true),
	}
}

// Highlight 逐行为已序列化的 JSON/YAML/TOML 文本着色
// 输出不是终端时 renderer 不产生转义序列，文本保持原样
func Highlight(re *lipgloss.Renderer, text, syntax string) string {
	p := newPalette(re)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = p.line(line, syntax)
	}
	return strings.Join(lines, "\n")
}

func (p palette) line(line, syntax string) string {
	body := strings.TrimLeft(line, " \t")
	if body == "" {
		return line
	}
	indent := line[:len(line)-len(body)]

	if syntax != SyntaxJSON && strings.HasPrefix(body, "#") {
		return indent + p.comment.Render(body)
	}
	if syntax == SyntaxTOML && strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]") {
		return indent + p.table.Render(body)
	}

	var b strings.Builder
	b.WriteString(indent)
	if syntax == SyntaxYAML && strings.HasPrefix(body, "- ") {
		b.WriteString(p.punct.Render("-"))
		b.WriteByte(' ')
		body = body[2:]
	}
	key, sep, value := splitKey(body, syntax)
	if sep != "" {
		b.WriteString(p.key.Render(key))
		b.WriteString(p.punct.Render(sep))
	}
	b.WriteString(p.value(value))
	return b.String()
}

// splitKey 拆分出一行中的键、分隔符与值，没有键时 sep 为空
func splitKey(body, syntax string) (key, sep, value string) {
	switch syntax {
	case SyntaxJSON:
		if !strings.HasPrefix(body, `"`) {
			break
		}
		end := closingQuote(body)
		if end > 0 && strings.HasPrefix(body[end+1:], ":") {
			return body[:end+1], ":", body[end+2:]
		}
	case SyntaxYAML:
		if strings.HasPrefix(body, `"`) || strings.HasPrefix(body, "'") {
			break
		}
		if i := strings.Index(body, ": "); i > 0 {
			return body[:i], ":", body[i+1:]
		}
		if strings.HasSuffix(body, ":") {
			return body[:len(body)-1], ":", ""
		}
	case SyntaxTOML:
		if i := strings.Index(body, " = "); i > 0 && !strings.ContainsAny(body[:i], `"[`) {
			return body[:i], " = ", body[i+3:]
		}
	}
	return "", "", body
}

// closingQuote 返回以双引号开头的字符串中匹配的结束引号位置
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

func (p palette) value(v string) string {
	core := strings.TrimSpace(v)
	if core == "" {
		return v
	}
	lead := v[:strings.Index(v, core)]
	trail := ""
	if strings.HasSuffix(core, ",") {
		core, trail = core[:len(core)-1], ","
	}

	var out string
	switch {
	case strings.Trim(core, "{}[]") == "":
		out = p.punct.Render(core)
	case core == "true" || core == "false":
		out = p.boolean.Render(core)
	case core == "null" || core == "~":
		out = p.null.Render(core)
	case isNumber(core):
		out = p.num.Render(core)
	case strings.HasSuffix(core, "{") || strings.HasSuffix(core, "["):
		out = p.punct.Render(core)
	default:
		out = p.str.Render(core)
	}
	if trail != "" {
		out += p.punct.Render(trail)
	}
	return lead + out
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
