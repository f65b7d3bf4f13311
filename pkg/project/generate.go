package project

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	gctx "github.com/yeisme/readmegen/pkg/context"
	"github.com/yeisme/readmegen/pkg/engine"
	"github.com/yeisme/readmegen/pkg/llm"
	"github.com/yeisme/readmegen/pkg/readme"
	"github.com/yeisme/readmegen/pkg/style"
)

// GenerateOptions generate 命令选项
type GenerateOptions struct {
	// Output 输出路径，相对路径基于仓库根目录，默认 README.md
	Output string
	// DryRun 只打印生成结果，不写文件
	DryRun bool
	// Preview 写入后在终端渲染预览
	Preview   bool
	Overrides ClientOverrides
	// Client 非空时直接使用，不再按配置创建
	Client   llm.Client
	Progress io.Writer
}

// GenerateResult 一次生成的结果
type GenerateResult struct {
	Path string
	Text string
	Core int
}

// OutputPath 返回 README 的目标路径
func OutputPath(root, output string) string {
	if output == "" {
		output = readme.DefaultFileName
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(root, output)
}

// ExecuteGenerateCommand 分析仓库并生成 README
func ExecuteGenerateCommand(rctx *gctx.ReadmegenContext, opts GenerateOptions, args []string, w io.Writer) error {
	root := ResolveRoot(args)
	client, err := resolveClient(rctx, opts.Client, false, opts.Overrides)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if rctx.Config.App.Quiet {
		opts.Progress = nil
	}
	gopts := readme.OptionsFromConfig(rctx.Config.LLM)
	res, err := Generate(rctx, newEngine(rctx, client), readme.NewGenerator(client, gopts), root, opts)
	if err != nil {
		return err
	}

	if opts.DryRun {
		_, err := io.WriteString(w, res.Text)
		return err
	}
	_, _ = fmt.Fprintf(w, "README written to %s (%d core files analyzed)\n", res.Path, res.Core)
	if opts.Preview {
		return style.RenderMarkdown(w, res.Text, 0, "")
	}
	return nil
}

// Generate 对仓库运行完整流水线并生成 README，DryRun 时不写文件
func Generate(ctx context.Context, eng *engine.Engine, gen *readme.Generator, root string, opts GenerateOptions) (*GenerateResult, error) {
	progress := progressWriter(opts.Progress)

	spin := style.NewSpinner(progress, "Analyzing repository", opts.Progress != nil)
	spin.Start()
	view, err := eng.Synthesize(ctx, root)
	spin.Stop()
	if err != nil {
		return nil, err
	}

	spin = style.NewSpinner(progress, "Generating README", opts.Progress != nil)
	spin.Start()
	text, err := gen.Generate(ctx, view)
	spin.Stop()
	if err != nil {
		return nil, err
	}

	res := &GenerateResult{
		Path: OutputPath(root, opts.Output),
		Text: text,
		Core: len(view.CoreFiles),
	}
	if opts.DryRun {
		return res, nil
	}
	if err := readme.Save(eng.Store(), res.Path, text); err != nil {
		return nil, err
	}
	return res, nil
}
