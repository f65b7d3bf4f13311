// Package graph 构建仓库内部的导入依赖图，统计每个文件被引用的次数
package graph

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/content"
	"github.com/yeisme/readmegen/pkg/lang"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/utils/log"
)

// Options 依赖图构建选项
type Options struct {
	Root          string          // 仓库根目录，用于文件系统回退判断
	GoModule      string          // go.mod 中声明的模块路径，可为空
	Concurrency   int             // worker 数量，<= 0 时使用 CPU 核心数
	CandidateExts []string        // 覆盖默认的扩展名候选列表
	Logger        *zerolog.Logger // 为空时使用全局日志记录器
}

// BuildImportCounts 解析每个文件的导入语句并统计被引用文件的入度
//
// 工作流程:
//  1. 分发协程把文件依次发送到 inCh
//  2. conc 个 worker 读取内容、解析并解析导入目标，将每个文件的 ImportReference 写入 outCh
//  3. 调用方所在的协程作为唯一的归约者累加计数
//
// 读取失败的文件不贡献任何边；自引用被忽略
// 唯一的错误来源是上下文取消，此时返回已累加的部分结果
func BuildImportCounts(ctx context.Context, files []models.FileRecord, store *content.Store, opts Options) (models.ImportCounts, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	if store == nil {
		store = content.NewStore(0)
	}

	resolver := lang.NewResolver(opts.Root, files).
		WithGoModule(opts.GoModule).
		WithCandidateExts(opts.CandidateExts)

	conc := prepareConcurrency(opts.Concurrency)
	inCh := make(chan models.FileRecord)
	outCh := make(chan []models.ImportReference)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for f := range inCh {
			if ctx.Err() != nil {
				continue
			}
			refs := FileEdges(store, resolver, f, logger)
			if len(refs) == 0 {
				continue
			}
			outCh <- refs
		}
	}

	wg.Add(conc)
	for range conc {
		go worker()
	}

	go func() {
		defer close(outCh)
		for _, f := range files {
			if ctx.Err() != nil {
				break
			}
			inCh <- f
		}
		close(inCh)
		wg.Wait()
	}()

	counts := make(models.ImportCounts)
	edges := 0
	for refs := range outCh {
		for _, ref := range refs {
			counts[ref.Target]++
			edges++
		}
	}

	if err := ctx.Err(); err != nil {
		return counts, err
	}
	logger.Debug().Int("files", len(files)).Int("edges", edges).Int("targets", len(counts)).Msg("import graph built")
	return counts, nil
}

// FileEdges 返回文件 f 中每条导入语句解析到的仓库内引用，不含自引用
func FileEdges(store *content.Store, resolver *lang.Resolver, f models.FileRecord, logger *zerolog.Logger) []models.ImportReference {
	if !lang.IsProgramming(f.Language) {
		return nil
	}
	text, err := store.Read(f.AbsPath)
	if err != nil {
		logger.Debug().Err(err).Str("path", f.Path).Msg("skip unreadable file")
		return nil
	}
	var out []models.ImportReference
	for _, target := range lang.ParseImports(text, f.Language) {
		for _, hit := range resolver.Resolve(f.Path, target) {
			if hit == f.Path {
				continue
			}
			out = append(out, models.ImportReference{From: f.Path, Target: hit})
		}
	}
	return out
}

// prepareConcurrency 确定 worker 数量：指定正数时使用该值，否则使用 CPU 核心数
func prepareConcurrency(c int) int {
	if c > 0 {
		return c
	}
	return max(runtime.NumCPU(), 1)
}
