package repo

import (
	"os"
	"path/filepath"

	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/utils/ignore"
)

// BuildTree 构建仓库目录树，子节点按字典序排列，忽略规则与 ListFiles 一致
func BuildTree(root string, policy *ignore.Policy, opts ...Options) (models.TreeNode, error) {
	if err := CheckRoot(root); err != nil {
		return models.TreeNode{}, err
	}
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	node := models.TreeNode{Name: filepath.Base(absRoot), Type: models.NodeDirectory}
	node.Children = buildChildren(absRoot, "", policy, o)
	return node, nil
}

// buildChildren 读取 dir 下的条目，读取失败时记录警告并返回空
// 条目过滤与 ListFiles 相同，目录树与文件列表保持一致
func buildChildren(absRoot, rel string, policy *ignore.Policy, o Options) []models.TreeNode {
	dir := filepath.Join(absRoot, filepath.FromSlash(rel))
	entries, err := os.ReadDir(dir)
	if err != nil {
		o.logger().Warn().Err(err).Str("path", dir).Msg("read directory failed")
		return nil
	}

	children := make([]models.TreeNode, 0, len(entries))
	for _, e := range entries {
		childRel := e.Name()
		if rel != "" {
			childRel = rel + "/" + e.Name()
		}
		if keep, _ := o.admit(policy, childRel, e); !keep {
			continue
		}
		if e.IsDir() {
			children = append(children, models.TreeNode{
				Name:     e.Name(),
				Type:     models.NodeDirectory,
				Children: buildChildren(absRoot, childRel, policy, o),
			})
			continue
		}
		children = append(children, models.TreeNode{Name: e.Name(), Type: models.NodeFile})
	}
	return children
}
