package project

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/yeisme/readmegen/pkg/models"
)

// FilterScores 按路径模糊匹配过滤得分列表，保持原有顺序
// 匹配规则与 fuzzy.MatchFold 一致：查询字符按顺序出现在路径中即可
func FilterScores(scores []models.FileScore, query string) []models.FileScore {
	q := strings.TrimSpace(query)
	if q == "" {
		return scores
	}
	var out []models.FileScore
	for _, s := range scores {
		if fuzzy.MatchFold(q, s.Path) {
			out = append(out, s)
		}
	}
	return out
}

// MatchFile 在文件列表中查找路径：依次尝试精确匹配、唯一的后缀匹配与唯一的模糊匹配
// 模糊匹配有多个结果时返回按距离排序的候选
func MatchFile(files []models.FileRecord, query string) (string, []string) {
	q := strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(query), "\\", "/"), "./")
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if f.Path == q {
			return f.Path, nil
		}
		paths = append(paths, f.Path)
	}
	var suffixed []string
	for _, p := range paths {
		if strings.HasSuffix(p, "/"+q) {
			suffixed = append(suffixed, p)
		}
	}
	if len(suffixed) == 1 {
		return suffixed[0], nil
	}
	ranks := fuzzy.RankFindFold(q, paths)
	if len(ranks) == 0 {
		return "", nil
	}
	if len(ranks) == 1 {
		return ranks[0].Target, nil
	}
	sort.Sort(ranks)
	var candidates []string
	for _, r := range ranks {
		candidates = append(candidates, r.Target)
	}
	return "", candidates
}

// SelectFile 使用 fuzzyfinder 交互选择一个文件，预览窗口显示得分
func SelectFile(scores []models.FileScore) (string, error) {
	if len(scores) == 0 {
		return "", fmt.Errorf("no rankable files to select")
	}
	idx, err := fuzzyfinder.Find(scores,
		func(i int) string { return scores[i].Path },
		fuzzyfinder.WithPromptString("file> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			return describeScore(scores[i])
		}),
	)
	if err != nil {
		return "", err
	}
	return scores[idx].Path, nil
}

func describeScore(s models.FileScore) string {
	return fmt.Sprintf("%s\n\ntotal    %7.2f\nsize     %+7.2f\ndepth    %+7.2f\nimports  %+7.2f (%d inbound)\ncomment  %+7.2f\nentry    %+7.2f",
		s.Path, s.Total, s.Size, s.Depth, s.Imports, s.InboundImports, s.Comment, s.EntryPoint)
}
