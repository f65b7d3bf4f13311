// Package readme 根据汇总视图调用文本生成服务生成 README 文档
package readme

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/yeisme/readmegen/pkg/content"
	"github.com/yeisme/readmegen/pkg/llm"
	"github.com/yeisme/readmegen/pkg/models"
)

//go:embed templates/*
var templateFS embed.FS

var readmeTmpl = template.Must(template.ParseFS(templateFS, "templates/readme.tmpl"))

// DefaultFileName 默认输出文件名
const DefaultFileName = "README.md"

// Options 文档生成配置
type Options struct {
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// OptionsFromConfig 从文本生成服务配置派生文档生成配置
func OptionsFromConfig(cfg llm.Config) Options {
	return Options{
		SystemPrompt: cfg.SystemPrompt,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
	}
}

// Generator README 生成器
type Generator struct {
	client llm.Client
	opts   Options
}

// NewGenerator 创建生成器
func NewGenerator(client llm.Client, opts Options) *Generator {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = llm.DefaultSystemPrompt
	}
	return &Generator{client: client, opts: opts}
}

// BuildPrompt 渲染包含 JSON 格式汇总视图的生成提示词
func BuildPrompt(view *models.SynthesizedView) (string, error) {
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode synthesized view: %w", err)
	}
	var buf bytes.Buffer
	err = readmeTmpl.Execute(&buf, map[string]any{
		"Analysis":    string(data),
		"Summary":     view.ArchitectureSummary,
		"ProjectType": view.ProjectType,
		"HasReadme":   view.ExistingReadme != "",
	})
	if err != nil {
		return "", fmt.Errorf("render readme prompt: %w", err)
	}
	return buf.String(), nil
}

// Generate 生成 README 文本，服务调用失败时返回包装了 llm.ErrExternalService 的错误
func (g *Generator) Generate(ctx context.Context, view *models.SynthesizedView) (string, error) {
	prompt, err := BuildPrompt(view)
	if err != nil {
		return "", err
	}
	text, err := g.client.Complete(ctx, llm.Request{
		System:      g.opts.SystemPrompt,
		User:        prompt,
		Temperature: g.opts.Temperature,
		MaxTokens:   g.opts.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, llm.ErrExternalService) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("generate readme: %w", err)
		}
		return "", fmt.Errorf("generate readme: %w: %w", llm.ErrExternalService, err)
	}
	return StripFences(text), nil
}

// StripFences 回复整体被 ```markdown（或 ```）包裹时去掉开头与结尾的围栏
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	fenced := false
	for _, open := range []string{"```markdown", "```md", "```"} {
		if strings.HasPrefix(s, open) {
			rest := s[len(open):]
			if nl := strings.IndexByte(rest, '\n'); nl >= 0 && strings.TrimSpace(rest[:nl]) == "" {
				s = rest[nl+1:]
				fenced = true
				break
			}
		}
	}
	if fenced {
		s = strings.TrimSuffix(strings.TrimRight(s, " \t\r\n"), "```")
	}
	return strings.TrimSpace(s) + "\n"
}

// Save 写入生成的文档，自动创建父目录
func Save(store *content.Store, path, text string) error {
	if store == nil {
		store = content.NewStore(1)
	}
	return store.Write(path, text)
}
