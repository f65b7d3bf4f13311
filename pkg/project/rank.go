package project

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/yeisme/readmegen/pkg/configs"
	gctx "github.com/yeisme/readmegen/pkg/context"
	"github.com/yeisme/readmegen/pkg/engine"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/rank"
	"github.com/yeisme/readmegen/pkg/style"
)

// RankOptions rank 命令选项
type RankOptions struct {
	// All 显示所有可参与排序的文件，而不只是核心文件
	All bool
	// Filter 按路径模糊过滤
	Filter string
	// Format 为空时输出表格，否则为 json/yaml/toml
	Format string
	// Colored 结构化输出是否高亮
	Colored bool
}

// RankResult rank 命令的结构化输出
type RankResult struct {
	Repository string             `json:"repository"`
	TotalFiles int                `json:"total_files"`
	Eligible   int                `json:"eligible"`
	CoreLimit  int                `json:"core_limit"`
	Core       []string           `json:"core"`
	Files      []models.FileScore `json:"files"`
}

// ExecuteRankCommand 扫描仓库并输出核心文件排序，不调用文本生成服务
func ExecuteRankCommand(rctx *gctx.ReadmegenContext, opts RankOptions, args []string, w io.Writer) error {
	root := ResolveRoot(args)
	eng := newEngine(rctx, nil)
	snap, err := eng.Scan(rctx, root)
	if err != nil {
		return err
	}
	res := buildRankResult(snap, eng.Ranker().Options(), opts)

	if opts.Format != "" {
		format, err := configs.ParseOutputFormat(opts.Format)
		if err != nil {
			return err
		}
		data, err := models.Generic(res)
		if err != nil {
			return err
		}
		return configs.OutputData(data, format, w, opts.Colored)
	}
	return printRankTable(w, res, snap)
}

// buildRankResult 组装输出；All 时按得分降序列出全部可选文件
func buildRankResult(snap *engine.Snapshot, rankOpts rank.Options, opts RankOptions) RankResult {
	files := snap.Core
	if opts.All {
		files = make([]models.FileScore, len(snap.Scores))
		copy(files, snap.Scores)
		sort.SliceStable(files, func(i, j int) bool { return files[i].Total > files[j].Total })
	}
	files = FilterScores(files, opts.Filter)
	return RankResult{
		Repository: snap.RepoName,
		TotalFiles: len(snap.Files),
		Eligible:   len(snap.Scores),
		CoreLimit:  rank.CoreLimit(len(snap.Scores), rankOpts),
		Core:       snap.CorePaths(),
		Files:      files,
	}
}

func printRankTable(w io.Writer, res RankResult, snap *engine.Snapshot) error {
	core := make(map[string]bool, len(res.Core))
	for _, p := range res.Core {
		core[p] = true
	}
	width := style.TerminalWidth(w)
	pathWidth := max(width-70, 24)

	headers := []string{"#", "path", "total", "size", "depth", "imports", "comment", "entry", "core"}
	rows := make([][]string, 0, len(res.Files))
	for i, s := range res.Files {
		mark := ""
		if core[s.Path] {
			mark = "✔"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			style.TruncateLeft(s.Path, pathWidth),
			fmt.Sprintf("%.2f", s.Total),
			fmt.Sprintf("%.2f", s.Size),
			fmt.Sprintf("%.0f", s.Depth),
			fmt.Sprintf("%.0f (%d)", s.Imports, s.InboundImports),
			fmt.Sprintf("%.2f", s.Comment),
			fmt.Sprintf("%.0f", s.EntryPoint),
			mark,
		})
	}

	_, _ = fmt.Fprintf(w, "Repository: %s (%d files, %d eligible, core limit %d)\n",
		snap.Root, res.TotalFiles, res.Eligible, res.CoreLimit)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No rankable files found.")
		return err
	}
	return style.PrintTable(w, headers, rows, 0)
}
