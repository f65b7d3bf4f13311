// Package project 实现各命令的业务逻辑：扫描仓库、输出排序与分析结果、生成 README
package project

import (
	"context"
	"path/filepath"
	"strings"

	gctx "github.com/yeisme/readmegen/pkg/context"
	"github.com/yeisme/readmegen/pkg/engine"
	"github.com/yeisme/readmegen/pkg/llm"
)

// ResolveRoot 解析仓库根路径参数，为空时使用当前目录
func ResolveRoot(args []string) string {
	root := "."
	if len(args) > 0 && args[0] != "" {
		root = args[0]
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// ClientOverrides 命令行对文本生成服务配置的覆盖
type ClientOverrides struct {
	Provider string
	Model    string
}

// Apply 返回应用覆盖后的配置；切换 provider 时清空不再适用的模型与地址
func (o ClientOverrides) Apply(cfg llm.Config) llm.Config {
	if o.Provider != "" && !strings.EqualFold(o.Provider, cfg.Provider) {
		cfg.Provider = strings.ToLower(o.Provider)
		cfg.Model = ""
		if cfg.Provider != llm.ProviderOpenAI {
			cfg.BaseURL = ""
		}
	}
	if o.Model != "" {
		cfg.Model = o.Model
	}
	return cfg
}

// NewClient 按配置创建文本生成客户端
func NewClient(ctx context.Context, cfg llm.Config, o ClientOverrides) (llm.Client, error) {
	return llm.New(ctx, o.Apply(cfg))
}

// newEngine 使用上下文中的配置创建分析引擎
func newEngine(rctx *gctx.ReadmegenContext, client llm.Client) *engine.Engine {
	return engine.New(client, engine.OptionsFromConfig(rctx.Config), rctx.Logger)
}
