package rank

import (
	"path"
	"sort"
	"strings"

	"github.com/yeisme/readmegen/pkg/content"
	"github.com/yeisme/readmegen/pkg/lang"
	"github.com/yeisme/readmegen/pkg/models"
)

// readmeName 任何层级的 README.md 都不参与排序
const readmeName = "readme.md"

// Ranker 核心文件排序器，对同一快照的多次调用结果一致
type Ranker struct {
	opts    Options
	store   *content.Store
	exclude map[string]struct{}
}

// NewRanker 创建排序器，store 为空时使用新的内容存取
func NewRanker(opts Options, store *content.Store) *Ranker {
	if store == nil {
		store = content.NewStore(0)
	}
	return &Ranker{
		opts:    opts.normalize(),
		store:   store,
		exclude: map[string]struct{}{readmeName: {}},
	}
}

// WithExcluded 追加不参与排序的文件名（不区分大小写），通常是关键配置文件
func (r *Ranker) WithExcluded(names ...string) *Ranker {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			r.exclude[strings.ToLower(n)] = struct{}{}
		}
	}
	return r
}

// Options 返回规范化后的配置
func (r *Ranker) Options() Options { return r.opts }

// IsGenerated 判断文件是否为生成文件：文件名匹配生成模式，或头部若干行包含生成标记
func (r *Ranker) IsGenerated(p, text string) bool {
	base := strings.ToLower(path.Base(p))
	for _, g := range r.opts.GeneratedGlobs {
		if ok, _ := path.Match(strings.ToLower(g), base); ok {
			return true
		}
	}
	lines := lang.SplitLines(text)
	if len(lines) > r.opts.GeneratedScanLines {
		lines = lines[:r.opts.GeneratedScanLines]
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, m := range r.opts.GeneratedMarkers {
			if m != "" && strings.Contains(lower, strings.ToLower(m)) {
				return true
			}
		}
	}
	return false
}

// IsEntryPoint 判断文件是否为入口：文件名属于入口名称，或内容包含语言的入口标记
func (r *Ranker) IsEntryPoint(p, text string) bool {
	base := path.Base(p)
	stem := strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
	for _, s := range r.opts.EntryStems {
		if stem == strings.ToLower(s) {
			return true
		}
	}
	for _, m := range r.opts.EntryMarkers {
		if m != "" && strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// excluded 判断文件是否因名称或语言被排除（不需要读取内容）
func (r *Ranker) excluded(f models.FileRecord) bool {
	if !f.KnownLanguage() {
		return true
	}
	_, ok := r.exclude[strings.ToLower(path.Base(f.Path))]
	return ok
}

// 文件不参与排序的原因
const (
	ReasonUnknownLanguage = "unknown language"
	ReasonExcludedName    = "excluded file name"
	ReasonGenerated       = "generated file"
)

// Exclusion 返回文件不参与排序的原因，可参与排序时返回空字符串
func (r *Ranker) Exclusion(f models.FileRecord, text string) string {
	switch {
	case !f.KnownLanguage():
		return ReasonUnknownLanguage
	case r.excluded(f):
		return ReasonExcludedName
	case r.IsGenerated(f.Path, text):
		return ReasonGenerated
	}
	return ""
}

// ScoreFile 计算单个文件的得分及各项因子
func (r *Ranker) ScoreFile(f models.FileRecord, text string, inbound int) models.FileScore {
	w := r.opts.Weights
	sizeKB := float64(f.Size) / 1024
	entry := r.IsEntryPoint(f.Path, text)

	s := models.FileScore{
		Path:           f.Path,
		Size:           min(sizeKB*w.SizePerKB, w.SizeCap),
		Depth:          -float64(f.Depth()) * w.Depth,
		Imports:        float64(inbound) * w.Imports,
		Comment:        lang.CommentDensity(text, f.Language) * w.Comment,
		InboundImports: inbound,
		IsEntryPoint:   entry,
	}
	if entry {
		s.EntryPoint = w.EntryPoint
	}
	s.Total = s.Size + s.Depth + s.Imports + s.Comment + s.EntryPoint
	return s
}

// ScoreAll 为所有可参与排序的文件打分，保持遍历顺序
// 读取失败的文件以空内容计分
func (r *Ranker) ScoreAll(files []models.FileRecord, counts models.ImportCounts) []models.FileScore {
	scores := make([]models.FileScore, 0, len(files))
	for _, f := range files {
		if r.excluded(f) {
			continue
		}
		text, err := r.store.Read(f.AbsPath)
		if err != nil {
			text = ""
		}
		if r.IsGenerated(f.Path, text) {
			continue
		}
		scores = append(scores, r.ScoreFile(f, text, counts.Get(f.Path)))
	}
	return scores
}

// Select 按得分降序稳定排序并截取前 CoreLimit 个，得分相同时保持遍历顺序
func (r *Ranker) Select(scores []models.FileScore) []models.FileScore {
	sorted := make([]models.FileScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total > sorted[j].Total
	})
	limit := CoreLimit(len(sorted), r.opts)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// RankCoreFiles 返回按得分降序排列的核心文件路径
func (r *Ranker) RankCoreFiles(files []models.FileRecord, counts models.ImportCounts) []string {
	selected := r.Select(r.ScoreAll(files, counts))
	out := make([]string, 0, len(selected))
	for _, s := range selected {
		out = append(out, s.Path)
	}
	return out
}

// CoreLimit 核心文件数量：clamp(eligible/divisor, min, max)
// 可选文件少于该值时调用方会得到全部可选文件
func CoreLimit(eligible int, opts Options) int {
	opts = opts.normalize()
	n := eligible / opts.CoreDivisor
	return min(max(n, opts.MinCore), opts.MaxCore)
}
