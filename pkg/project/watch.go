package project

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	gctx "github.com/yeisme/readmegen/pkg/context"
	"github.com/yeisme/readmegen/pkg/engine"
	"github.com/yeisme/readmegen/pkg/llm"
	"github.com/yeisme/readmegen/pkg/readme"
	"github.com/yeisme/readmegen/pkg/utils/ignore"
	"github.com/yeisme/readmegen/pkg/utils/watch"
)

// WatchOptions watch 命令选项，零值字段使用配置文件中的 watch 段
type WatchOptions struct {
	Debounce  time.Duration
	RankOnly  bool
	Output    string
	Overrides ClientOverrides
	Client    llm.Client
}

// ExecuteWatchCommand 先运行一次，然后在仓库文件变化后重新排序或重新生成 README，直到 ctx 结束
func ExecuteWatchCommand(rctx *gctx.ReadmegenContext, opts WatchOptions, args []string, w io.Writer) error {
	root := ResolveRoot(args)
	opts = mergeWatchOptions(rctx, opts)

	var client llm.Client
	if !opts.RankOnly {
		c, err := resolveClient(rctx, opts.Client, false, opts.Overrides)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		client = c
	}
	eng := newEngine(rctx, client)
	hook := watchHook(rctx, eng, client, root, opts, w)

	if err := hook(rctx); err != nil {
		rctx.Logger.Error().Err(err).Msg("initial run failed")
	}

	cfg := rctx.Config.Analyzer
	policy, err := ignore.ForRepository(root, cfg.Ignore)
	if err != nil {
		rctx.Logger.Warn().Err(err).Msg("load .gitignore failed, using built-in ignore rules")
		policy = ignore.NewPolicy(cfg.Ignore)
	}
	exclude := []string{}
	if rel, err := filepath.Rel(root, OutputPath(root, opts.Output)); err == nil {
		exclude = append(exclude, rel)
	}
	watcher, err := watch.New(root, watch.Options{
		Debounce: opts.Debounce,
		Policy:   policy,
		Exclude:  exclude,
		Logger:   rctx.Logger,
	})
	if err != nil {
		return err
	}
	return watcher.Run(rctx, hook)
}

// mergeWatchOptions 用配置补齐命令行未指定的选项
func mergeWatchOptions(rctx *gctx.ReadmegenContext, opts WatchOptions) WatchOptions {
	cfg := rctx.Config.Watch
	if opts.Debounce <= 0 {
		opts.Debounce = cfg.Debounce
	}
	if !opts.RankOnly {
		opts.RankOnly = cfg.RankOnly
	}
	if opts.Output == "" {
		opts.Output = cfg.Output
	}
	return opts
}

// watchHook 每次触发时清空内容缓存后重新运行
func watchHook(rctx *gctx.ReadmegenContext, eng *engine.Engine, client llm.Client, root string, opts WatchOptions, w io.Writer) watch.Hook {
	return func(ctx context.Context) error {
		eng.Reset()
		if opts.RankOnly {
			snap, err := eng.Scan(ctx, root)
			if err != nil {
				return err
			}
			res := buildRankResult(snap, eng.Ranker().Options(), RankOptions{})
			return printRankTable(w, res, snap)
		}
		gen := readme.NewGenerator(client, readme.OptionsFromConfig(rctx.Config.LLM))
		res, err := Generate(ctx, eng, gen, root, GenerateOptions{Output: opts.Output})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s README written to %s\n", time.Now().Format(time.TimeOnly), res.Path)
		return err
	}
}
