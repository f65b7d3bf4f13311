package project

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/list"
	"github.com/yeisme/readmegen/pkg/configs"
	gctx "github.com/yeisme/readmegen/pkg/context"
	"github.com/yeisme/readmegen/pkg/engine"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/style"
)

// ErrFileNotFound 要解释的文件不在仓库中（或被忽略策略排除）
var ErrFileNotFound = errors.New("file not found in repository")

// ExplainOptions explain 命令选项
type ExplainOptions struct {
	Format  string
	Colored bool
	// Interactive 未指定文件时允许使用模糊查找器选择
	Interactive bool
}

// Explanation 单个文件的得分说明
type Explanation struct {
	Path     string            `json:"path"`
	Language string            `json:"language"`
	Eligible bool              `json:"eligible"`
	Reason   string            `json:"reason,omitempty"`
	Score    *models.FileScore `json:"score,omitempty"`
	Rank     int               `json:"rank,omitempty"`
	Core     bool              `json:"core"`
	Ranked   int               `json:"ranked_files"`
}

// ExecuteExplainCommand 输出单个文件的评分构成
// args: [repo] [file]；没有 file 时在交互模式下弹出模糊查找器
func ExecuteExplainCommand(rctx *gctx.ReadmegenContext, opts ExplainOptions, args []string, w io.Writer) error {
	root := ResolveRoot(args)
	eng := newEngine(rctx, nil)
	snap, err := eng.Scan(rctx, root)
	if err != nil {
		return err
	}

	var target string
	switch {
	case len(args) > 1:
		p, candidates := MatchFile(snap.Files, args[1])
		if p == "" {
			if len(candidates) > 0 {
				return fmt.Errorf("%w: %q is ambiguous, candidates: %v", ErrFileNotFound, args[1], head(candidates, 5))
			}
			return fmt.Errorf("%w: %s", ErrFileNotFound, args[1])
		}
		target = p
	case opts.Interactive:
		if target, err = SelectFile(snap.Scores); err != nil {
			return err
		}
	default:
		return fmt.Errorf("no file given")
	}

	exp := Explain(eng, snap, target)
	if opts.Format != "" {
		format, err := configs.ParseOutputFormat(opts.Format)
		if err != nil {
			return err
		}
		data, err := models.Generic(exp)
		if err != nil {
			return err
		}
		return configs.OutputData(data, format, w, opts.Colored)
	}
	return printExplanation(w, exp)
}

// Explain 计算文件在快照中的评分与排名；不可参与排序时给出原因
func Explain(eng *engine.Engine, snap *engine.Snapshot, p string) Explanation {
	exp := Explanation{Path: p, Ranked: len(snap.Scores)}
	var rec models.FileRecord
	for _, f := range snap.Files {
		if f.Path == p {
			rec = f
			break
		}
	}
	exp.Language = rec.Language

	score, ok := snap.Score(p)
	if !ok {
		exp.Reason = eng.Ranker().Exclusion(rec, eng.Store().ReadOrPlaceholder(rec.AbsPath))
		if exp.Reason == "" {
			exp.Reason = "not rankable"
		}
		return exp
	}
	exp.Eligible = true
	exp.Score = &score
	exp.Rank = 1
	for _, s := range snap.Scores {
		if s.Total > score.Total {
			exp.Rank++
		}
	}
	for _, c := range snap.Core {
		if c.Path == p {
			exp.Core = true
		}
	}
	return exp
}

func printExplanation(w io.Writer, exp Explanation) error {
	if err := style.PrintHeading(w, exp.Path); err != nil {
		return err
	}
	if !exp.Eligible {
		_, err := fmt.Fprintf(w, "%s is not ranked: %s\n", exp.Path, exp.Reason)
		return err
	}
	s := exp.Score
	core := "no"
	if exp.Core {
		core = "yes"
	}
	terms := list.New(
		fmt.Sprintf("size        %+6.2f", s.Size),
		fmt.Sprintf("depth       %+6.2f", s.Depth),
		fmt.Sprintf("imports     %+6.2f  (%d inbound references)", s.Imports, s.InboundImports),
		fmt.Sprintf("comments    %+6.2f", s.Comment),
		fmt.Sprintf("entry point %+6.2f", s.EntryPoint),
	)
	if err := style.PrintList(w,
		fmt.Sprintf("language: %s", exp.Language),
		fmt.Sprintf("total score: %.2f", s.Total),
		terms,
		fmt.Sprintf("rank: %d of %d eligible files", exp.Rank, exp.Ranked),
		fmt.Sprintf("core file: %s", core),
	); err != nil {
		return err
	}
	return nil
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
