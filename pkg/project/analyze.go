package project

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yeisme/readmegen/pkg/configs"
	gctx "github.com/yeisme/readmegen/pkg/context"
	"github.com/yeisme/readmegen/pkg/llm"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/style"
)

// AnalyzeOptions analyze 命令选项
type AnalyzeOptions struct {
	Format  string
	Colored bool
	// Out 非空时把结果写入文件而不是 w
	Out string
	// Offline 跳过单文件分析，只输出不依赖文本生成服务的部分
	Offline   bool
	Overrides ClientOverrides
	// Client 非空时直接使用，不再按配置创建
	Client   llm.Client
	Progress io.Writer
}

// ExecuteAnalyzeCommand 运行完整分析与汇总并输出结构化结果
func ExecuteAnalyzeCommand(rctx *gctx.ReadmegenContext, opts AnalyzeOptions, args []string, w io.Writer) error {
	root := ResolveRoot(args)
	format := configs.FormatYAML
	if opts.Format != "" {
		f, err := configs.ParseOutputFormat(opts.Format)
		if err != nil {
			return err
		}
		format = f
	}

	client, err := resolveClient(rctx, opts.Client, opts.Offline, opts.Overrides)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	spin := style.NewSpinner(progressWriter(opts.Progress), "Analyzing "+root, opts.Progress != nil && !rctx.Config.App.Quiet)
	spin.Start()
	view, err := newEngine(rctx, client).Synthesize(rctx, root)
	spin.Stop()
	if err != nil {
		return err
	}

	data, err := models.Generic(view)
	if err != nil {
		return err
	}
	if opts.Out == "" {
		return configs.OutputData(data, format, w, opts.Colored)
	}

	var buf bytes.Buffer
	if err := configs.OutputData(data, format, &buf, false); err != nil {
		return err
	}
	if err := newEngine(rctx, nil).Store().Write(opts.Out, buf.String()); err != nil {
		return err
	}
	rctx.Logger.Info().Str("file", opts.Out).Msg("analysis written")
	return nil
}

// resolveClient 返回要使用的客户端；offline 时返回 nil
func resolveClient(rctx *gctx.ReadmegenContext, client llm.Client, offline bool, o ClientOverrides) (llm.Client, error) {
	if offline {
		return nil, nil
	}
	if client != nil {
		return client, nil
	}
	c, err := NewClient(rctx, rctx.Config.LLM, o)
	if err != nil {
		return nil, fmt.Errorf("create text-generation client: %w", err)
	}
	return c, nil
}

func progressWriter(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
