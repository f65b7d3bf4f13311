// Package analyzer 把核心文件交给文本生成服务分析，并解析回复
package analyzer

import (
	"bytes"
	"context"
	"embed"
	"runtime"
	"sync"
	"text/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/content"
	"github.com/yeisme/readmegen/pkg/lang"
	"github.com/yeisme/readmegen/pkg/llm"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/utils/log"
)

//go:embed templates/*
var templateFS embed.FS

var fileAnalysisTmpl = template.Must(template.ParseFS(templateFS, "templates/file_analysis.tmpl"))

// SystemPrompt 单文件分析使用的系统提示词
const SystemPrompt = "You are a code analysis expert. Analyze the following source file and extract its key information."

// Options 分析调度配置
type Options struct {
	MaxFileChars int             // 提示词中文件内容的最大字符数，<= 0 时为 10000
	Temperature  float64         // 分析温度
	MaxTokens    int             // 每次回复的最大 token 数
	Concurrency  int             // 同时进行的分析请求数，<= 0 时为 1
	Timeout      time.Duration   // 单次请求超时，<= 0 表示不额外限制
	Logger       *zerolog.Logger // 为空时使用全局日志记录器
}

// OptionsFromConfig 从文本生成服务配置派生调度配置
func OptionsFromConfig(cfg llm.Config) Options {
	return Options{
		MaxFileChars: cfg.MaxFileChars,
		Temperature:  cfg.AnalysisTemperature,
		MaxTokens:    cfg.MaxTokens,
		Concurrency:  cfg.Concurrency,
		Timeout:      cfg.Timeout,
	}
}

// Dispatcher 核心文件分析调度器
type Dispatcher struct {
	client llm.Client
	store  *content.Store
	opts   Options
	logger *zerolog.Logger
}

// NewDispatcher 创建调度器
func NewDispatcher(client llm.Client, store *content.Store, opts Options) *Dispatcher {
	if store == nil {
		store = content.NewStore(0)
	}
	if opts.MaxFileChars <= 0 {
		opts.MaxFileChars = 10000
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Dispatcher{client: client, store: store, opts: opts, logger: logger}
}

// BuildPrompt 生成单文件分析提示词，内容超过上限时截断并追加省略标记
func BuildPrompt(path, text string, maxChars int) (string, error) {
	runes := []rune(text)
	truncated := maxChars > 0 && len(runes) > maxChars
	if truncated {
		text = string(runes[:maxChars])
	}
	var buf bytes.Buffer
	err := fileAnalysisTmpl.Execute(&buf, map[string]any{
		"Path":      path,
		"Language":  lang.IdentifyLanguage(path),
		"Content":   text,
		"Truncated": truncated,
	})
	return buf.String(), err
}

// AnalyzeCoreFile 分析单个核心文件，调用失败时返回 Failed 结果而不是错误
// 结果中的大小取自遍历记录，而不是读到的文本长度
func (d *Dispatcher) AnalyzeCoreFile(ctx context.Context, f models.FileRecord, text string) models.FileAnalysis {
	path := f.Path
	fa := models.FileAnalysis{
		Language: lang.IdentifyLanguage(path),
		Size:     f.Size,
		IsCore:   true,
	}

	prompt, err := BuildPrompt(path, text, d.opts.MaxFileChars)
	if err != nil {
		fa.Result = models.NewFailed(err.Error())
		return fa
	}

	callCtx := ctx
	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	d.logger.Debug().Str("file", path).Int("prompt_chars", len(prompt)).Msg("analyze core file")
	reply, err := d.client.Complete(callCtx, llm.Request{
		System:      SystemPrompt,
		User:        prompt,
		Temperature: d.opts.Temperature,
		MaxTokens:   d.opts.MaxTokens,
	})
	if err != nil {
		d.logger.Warn().Err(err).Str("file", path).Msg("analyze core file failed")
		fa.Result = models.NewFailed(err.Error())
		return fa
	}
	fa.Result = ParseResult(reply)
	return fa
}

// AnalyzeAll 使用有界 worker pool 分析所有核心文件，结果按路径存放
// 单个文件失败不影响其他文件；上下文取消时丢弃排队中的任务，返回已完成的部分结果和 ctx.Err()
func (d *Dispatcher) AnalyzeAll(ctx context.Context, files []models.FileRecord) (map[string]models.FileAnalysis, error) {
	type item struct {
		path     string
		analysis models.FileAnalysis
	}

	conc := min(d.opts.Concurrency, max(len(files), 1), runtime.NumCPU()*4)
	inCh := make(chan models.FileRecord)
	outCh := make(chan item)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for f := range inCh {
			if ctx.Err() != nil {
				continue
			}
			text := d.store.ReadOrPlaceholder(f.AbsPath)
			fa := d.AnalyzeCoreFile(ctx, f, text)
			if ctx.Err() != nil {
				// 取消导致的失败不计入结果
				continue
			}
			outCh <- item{path: f.Path, analysis: fa}
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

	results := make(map[string]models.FileAnalysis, len(files))
	done := 0
	for it := range outCh {
		results[it.path] = it.analysis
		done++
		d.logger.Info().Str("file", it.path).Int("done", done).Int("total", len(files)).Msg("core file analyzed")
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
