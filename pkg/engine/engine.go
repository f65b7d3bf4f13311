// Package engine 串联仓库分析流水线：遍历、依赖图、排序、分析与汇总
package engine

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/analyzer"
	"github.com/yeisme/readmegen/pkg/configs"
	"github.com/yeisme/readmegen/pkg/content"
	"github.com/yeisme/readmegen/pkg/graph"
	"github.com/yeisme/readmegen/pkg/lang"
	"github.com/yeisme/readmegen/pkg/llm"
	"github.com/yeisme/readmegen/pkg/manifest"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/rank"
	"github.com/yeisme/readmegen/pkg/repo"
	"github.com/yeisme/readmegen/pkg/synth"
	"github.com/yeisme/readmegen/pkg/utils/ignore"
	"github.com/yeisme/readmegen/pkg/utils/log"
)

// DefaultKeyFiles 默认的关键配置文件名
var DefaultKeyFiles = configs.DefaultKeyFiles

// Options 流水线配置
type Options struct {
	Ignore          ignore.Options
	MaxFileBytes    int64
	KeyFiles        []string
	KeyFileMaxBytes int
	Concurrency     int
	CacheSize       int
	Ranking         rank.Options
	Synthesis       synth.Options
	Analysis        analyzer.Options
}

// DefaultOptions 默认流水线配置
func DefaultOptions() Options {
	return Options{
		Ignore:          ignore.DefaultOptions(),
		KeyFiles:        DefaultKeyFiles,
		KeyFileMaxBytes: 8192,
		Ranking:         rank.DefaultOptions(),
		Synthesis:       synth.DefaultOptions(),
	}
}

// OptionsFromConfig 从应用配置派生流水线配置
func OptionsFromConfig(cfg *configs.Config) Options {
	a := cfg.Analyzer
	return Options{
		Ignore:          a.Ignore,
		MaxFileBytes:    a.MaxFileBytes,
		KeyFiles:        a.KeyFiles,
		KeyFileMaxBytes: a.KeyFileMaxBytes,
		Concurrency:     a.Concurrency,
		CacheSize:       a.CacheSize,
		Ranking:         a.Ranking,
		Synthesis:       a.Synthesis,
		Analysis:        analyzer.OptionsFromConfig(cfg.LLM),
	}
}

// Snapshot 不依赖文本生成服务的扫描结果，供 rank、explain 等命令直接使用
type Snapshot struct {
	Root           string
	RepoName       string
	Files          []models.FileRecord
	Tree           models.TreeNode
	Dependencies   map[string]models.Manifest
	KeyFiles       map[string]string
	ExistingReadme string
	Counts         models.ImportCounts
	// Scores 所有可参与排序文件的得分，保持遍历顺序
	Scores []models.FileScore
	// Core 选出的核心文件，按得分降序
	Core []models.FileScore
}

// CorePaths 返回核心文件路径
func (s *Snapshot) CorePaths() []string {
	out := make([]string, 0, len(s.Core))
	for _, c := range s.Core {
		out = append(out, c.Path)
	}
	return out
}

// CoreRecords 返回核心文件的遍历记录，顺序与 Core 一致
func (s *Snapshot) CoreRecords() []models.FileRecord {
	byPath := make(map[string]models.FileRecord, len(s.Files))
	for _, f := range s.Files {
		byPath[f.Path] = f
	}
	out := make([]models.FileRecord, 0, len(s.Core))
	for _, c := range s.Core {
		if f, ok := byPath[c.Path]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Score 查找单个文件的得分，文件不可参与排序时返回 false
func (s *Snapshot) Score(p string) (models.FileScore, bool) {
	for _, sc := range s.Scores {
		if sc.Path == p {
			return sc, true
		}
	}
	return models.FileScore{}, false
}

// Engine 仓库分析引擎，可重复对不同仓库运行
type Engine struct {
	opts   Options
	client llm.Client
	store  *content.Store
	logger *zerolog.Logger
}

// New 创建引擎，client 为空时跳过单文件分析
func New(client llm.Client, opts Options, logger *zerolog.Logger) *Engine {
	if logger == nil {
		logger = log.GetLogger()
	}
	if opts.KeyFiles == nil {
		opts.KeyFiles = DefaultKeyFiles
	}
	if opts.KeyFileMaxBytes <= 0 {
		opts.KeyFileMaxBytes = 8192
	}
	if opts.Analysis.Logger == nil {
		opts.Analysis.Logger = logger
	}
	return &Engine{
		opts:   opts,
		client: client,
		store:  content.NewStore(opts.CacheSize),
		logger: logger,
	}
}

// Store 返回引擎使用的内容存取
func (e *Engine) Store() *content.Store { return e.store }

// Ranker 返回与 Scan 使用相同配置的排序器，关键配置文件不参与排序
func (e *Engine) Ranker() *rank.Ranker {
	return rank.NewRanker(e.opts.Ranking, e.store).WithExcluded(e.opts.KeyFiles...)
}

// Reset 清空内容缓存，仓库内容变化后调用
func (e *Engine) Reset() { e.store.Purge() }

// Scan 执行不依赖文本生成服务的阶段：存在性检查、遍历、清单、关键文件、依赖图与排序
func (e *Engine) Scan(ctx context.Context, root string) (*Snapshot, error) {
	start := time.Now()
	if err := repo.CheckRoot(root); err != nil {
		return nil, err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve repository path: %w", err)
	}

	policy, err := ignore.ForRepository(absRoot, e.opts.Ignore)
	if err != nil {
		e.logger.Warn().Err(err).Msg("load .gitignore failed, using built-in ignore rules")
		policy = ignore.NewPolicy(e.opts.Ignore)
	}

	walkOpts := repo.Options{MaxFileBytes: e.opts.MaxFileBytes, Logger: e.logger}
	files, err := repo.ListFiles(ctx, absRoot, policy, walkOpts)
	if err != nil {
		return nil, err
	}
	tree, err := repo.BuildTree(absRoot, policy, walkOpts)
	if err != nil {
		return nil, err
	}
	e.logger.Info().Str("repo", absRoot).Int("files", len(files)).Msg("repository scanned")

	snap := &Snapshot{
		Root:         absRoot,
		RepoName:     filepath.Base(absRoot),
		Files:        files,
		Tree:         tree,
		Dependencies: manifest.NewIdentifier(e.store, e.logger).Identify(absRoot),
	}
	snap.KeyFiles, snap.ExistingReadme = e.keyFiles(files)

	counts, err := graph.BuildImportCounts(ctx, files, e.store, graph.Options{
		Root:        absRoot,
		GoModule:    manifest.ModulePath(absRoot),
		Concurrency: e.opts.Concurrency,
		Logger:      e.logger,
	})
	if err != nil {
		return nil, err
	}
	snap.Counts = counts

	ranker := e.Ranker()
	snap.Scores = ranker.ScoreAll(files, counts)
	snap.Core = ranker.Select(snap.Scores)

	e.logger.Info().
		Int("eligible", len(snap.Scores)).
		Int("core", len(snap.Core)).
		Dur("elapsed", time.Since(start)).
		Msg("core files ranked")
	return snap, nil
}

// Analyze 执行完整分析，返回分析报告
// 结构性错误（仓库不存在）直接返回；单文件读取或分析失败以内联结果记录
func (e *Engine) Analyze(ctx context.Context, root string) (*models.AnalysisReport, error) {
	snap, err := e.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	return e.Report(ctx, snap)
}

// Report 在扫描结果上运行单文件分析并组装报告
func (e *Engine) Report(ctx context.Context, snap *Snapshot) (*models.AnalysisReport, error) {
	core := snap.CorePaths()
	report := &models.AnalysisReport{
		RepoName:       snap.RepoName,
		Structure:      snap.Tree,
		Files:          repo.Paths(snap.Files),
		Dependencies:   snap.Dependencies,
		Languages:      Languages(snap.Files),
		KeyFiles:       snap.KeyFiles,
		ExistingReadme: snap.ExistingReadme,
		CoreFiles:      core,
		FileAnalyses:   map[string]models.FileAnalysis{},
	}

	if e.client == nil {
		e.logger.Warn().Msg("no text-generation client configured, skipping per-file analysis")
		return report, nil
	}
	analyses, err := analyzer.NewDispatcher(e.client, e.store, e.opts.Analysis).AnalyzeAll(ctx, snap.CoreRecords())
	report.FileAnalyses = analyses
	if err != nil {
		return report, err
	}
	e.logger.Info().Int("analyzed", len(analyses)).Msg("core files analyzed")
	return report, nil
}

// Synthesize 完整分析后生成汇总视图
func (e *Engine) Synthesize(ctx context.Context, root string) (*models.SynthesizedView, error) {
	report, err := e.Analyze(ctx, root)
	if err != nil {
		return nil, err
	}
	view := synth.Synthesize(*report, e.opts.Synthesis)
	e.logger.Debug().Str("project_type", view.ProjectType).Int("groups", len(view.CoreFilesByDirectory)).Msg("synthesis built")
	return &view, nil
}

// keyFiles 读取关键配置文件（按上限截断），并返回根目录 README 的内容
func (e *Engine) keyFiles(files []models.FileRecord) (map[string]string, string) {
	names := make(map[string]struct{}, len(e.opts.KeyFiles))
	for _, n := range e.opts.KeyFiles {
		names[n] = struct{}{}
	}
	out := make(map[string]string)
	readme := ""
	for _, f := range files {
		base := path.Base(f.Path)
		if _, ok := names[base]; !ok {
			continue
		}
		text, err := e.store.ReadLimited(f.AbsPath, e.opts.KeyFileMaxBytes)
		if err != nil {
			e.logger.Warn().Err(err).Str("file", f.Path).Msg("read key file failed")
			text = content.Placeholder(err)
		}
		out[f.Path] = text
		if f.Path == base && strings.EqualFold(base, "readme.md") {
			readme = text
		}
	}
	return out, readme
}

// Languages 返回仓库中出现的编程语言，按文件数量降序、名称升序排列
func Languages(files []models.FileRecord) []string {
	counts := make(map[string]int)
	for _, f := range files {
		if lang.IsProgramming(f.Language) {
			counts[f.Language]++
		}
	}
	out := make([]string, 0, len(counts))
	for l := range counts {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
