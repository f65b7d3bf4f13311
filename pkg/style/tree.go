package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/yeisme/readmegen/pkg/models"
)

// TreeOptions 控制目录树的渲染
type TreeOptions struct {
	// MaxDepth 大于 0 时只展开到该层级，更深的目录显示为折叠
	MaxDepth int
	// Highlight 需要突出显示的文件路径（相对仓库根目录），例如核心文件
	Highlight map[string]bool
}

// PrintTree 渲染仓库目录树，目录名以 / 结尾
func PrintTree(w io.Writer, root models.TreeNode, opts TreeOptions) error {
	re := lipgloss.NewRenderer(w)
	rootStyle := re.NewStyle().Foreground(ColorAccentText).Bold(true)
	itemStyle := re.NewStyle().Foreground(ColorText)
	dirStyle := re.NewStyle().Foreground(ColorAccentPrimary)
	markStyle := re.NewStyle().Foreground(ColorSuccess).Bold(true)
	enumeratorStyle := re.NewStyle().Foreground(ColorBorder)

	var build func(node models.TreeNode, prefix string, depth int) *tree.Tree
	build = func(node models.TreeNode, prefix string, depth int) *tree.Tree {
		t := tree.New().Root(dirStyle.Render(node.Name + "/"))
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			if n := node.CountFiles(); n > 0 {
				t.Child(itemStyle.Render(fmt.Sprintf("… %d files", n)))
			}
			return t
		}
		for _, child := range node.Children {
			rel := child.Name
			if prefix != "" {
				rel = prefix + "/" + child.Name
			}
			if child.Type == models.NodeDirectory {
				t.Child(build(child, rel, depth+1))
				continue
			}
			if opts.Highlight[rel] {
				t.Child(markStyle.Render(child.Name + " ★"))
			} else {
				t.Child(itemStyle.Render(child.Name))
			}
		}
		return t
	}

	t := build(root, "", 0).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)
	t.Root(rootStyle.Render(root.Name + "/"))

	_, err := fmt.Fprintln(w, t)
	return err
}
