package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yeisme/readmegen/pkg/models"
)

// StripFence 去掉包裹整个文本的 markdown 代码块（``` 或 ```json 等）
func StripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return strings.Trim(s, "`")
	}
	s = s[nl+1:]
	s = strings.TrimRight(s, " \t\r\n")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseResult 解析模型对单个文件的分析回复
// 能解析为包含分析字段的 JSON 对象时返回结构化结果，否则原样保留文本，不会失败
func ParseResult(text string) models.AnalysisResult {
	var obj map[string]any
	if err := json.Unmarshal([]byte(StripFence(text)), &obj); err != nil || obj == nil {
		return models.NewRaw(text)
	}

	fields := map[string]*string{}
	var s models.StructuredAnalysis
	fields["purpose"] = &s.Purpose
	fields["components"] = &s.Components
	fields["dependencies"] = &s.Dependencies
	fields["logic"] = &s.Logic
	fields["configuration"] = &s.Configuration
	fields["quality"] = &s.Quality

	found := 0
	for key, dst := range fields {
		v, ok := lookup(obj, key)
		if !ok {
			continue
		}
		found++
		*dst = flatten(v)
	}
	if found == 0 {
		return models.NewRaw(text)
	}
	return models.NewStructured(s)
}

// lookup 不区分大小写查找键
func lookup(obj map[string]any, key string) (any, bool) {
	if v, ok := obj[key]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// flatten 把字符串、列表或其他 JSON 值转为单个字符串，列表以 ", " 连接
func flatten(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
