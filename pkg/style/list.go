package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
)

// PrintList 渲染一个圆点列表，items 可以嵌套 list.New() 创建的子列表
func PrintList(w io.Writer, items ...any) error {
	re := lipgloss.NewRenderer(w)
	l := list.New(items...).
		Enumerator(list.Bullet).
		EnumeratorStyle(re.NewStyle().Foreground(ColorAccentPrimary).MarginRight(1)).
		ItemStyle(re.NewStyle().Foreground(ColorText))

	_, err := fmt.Fprintln(w, l)
	return err
}
