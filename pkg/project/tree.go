package project

import (
	"fmt"
	"io"

	gctx "github.com/yeisme/readmegen/pkg/context"
	"github.com/yeisme/readmegen/pkg/style"
)

// TreeOptions tree 命令选项
type TreeOptions struct {
	// Depth 大于 0 时限制展开层级
	Depth int
	// NoHighlight 不标记核心文件
	NoHighlight bool
}

// ExecuteTreeCommand 打印遍历得到的目录树，核心文件以 ★ 标记
func ExecuteTreeCommand(rctx *gctx.ReadmegenContext, opts TreeOptions, args []string, w io.Writer) error {
	root := ResolveRoot(args)
	snap, err := newEngine(rctx, nil).Scan(rctx, root)
	if err != nil {
		return err
	}

	highlight := map[string]bool{}
	if !opts.NoHighlight {
		for _, p := range snap.CorePaths() {
			highlight[p] = true
		}
	}
	if err := style.PrintTree(w, snap.Tree, style.TreeOptions{MaxDepth: opts.Depth, Highlight: highlight}); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%d files, %d core\n", snap.Tree.CountFiles(), len(snap.Core))
	return err
}
