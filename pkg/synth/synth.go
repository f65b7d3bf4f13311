package synth

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/yeisme/readmegen/pkg/lang"
	"github.com/yeisme/readmegen/pkg/models"
)

// GroupByDirectory 按父目录对核心文件分组，根目录下的文件归入 root 分组
// 分组顺序为首次出现的顺序，即组内排名最高的文件的顺序；分组的用途由 InferPurpose 填充
func GroupByDirectory(core []string, analyses map[string]models.FileAnalysis) []models.DirectoryGroup {
	index := make(map[string]int)
	var groups []models.DirectoryGroup
	for _, p := range core {
		dir := path.Dir(p)
		if dir == "." {
			dir = RootGroup
		}
		i, ok := index[dir]
		if !ok {
			i = len(groups)
			index[dir] = i
			groups = append(groups, models.DirectoryGroup{Directory: dir})
		}

		member := models.GroupMember{Name: path.Base(p), Path: p, Language: lang.IdentifyLanguage(p)}
		if fa, ok := analyses[p]; ok {
			if fa.Language != "" {
				member.Language = fa.Language
			}
			member.Purpose = fa.Result.Purpose()
		}
		groups[i].Files = append(groups[i].Files, member)
	}
	return groups
}

// InferPurpose 推断目录用途：先查目录名表，再取第一个足够长的成员用途描述，最后使用 "<dir> directory"
func InferPurpose(dir string, members []models.GroupMember, opts Options) string {
	opts = opts.normalize()
	if p, ok := opts.DirectoryPurposes[strings.ToLower(path.Base(dir))]; ok {
		return p
	}
	for _, m := range members {
		purpose := strings.TrimSpace(m.Purpose)
		if len([]rune(purpose)) <= opts.PurposeMinChars {
			continue
		}
		if r := []rune(purpose); len(r) > opts.PurposeMaxChars {
			return string(r[:opts.PurposeMaxChars]) + "..."
		}
		return purpose
	}
	return dir + " directory"
}

// ClassifyProject 按规则顺序检查依赖清单，返回第一个命中的分类标签，未命中返回空
func ClassifyProject(deps map[string]models.Manifest, rules []ProjectRule) string {
	if len(deps) == 0 {
		return ""
	}
	// 按键排序拼接，结果与 map 迭代顺序无关
	keys := make([]string, 0, len(deps))
	for k := range deps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		m := deps[k]
		if m.IsStructured() {
			for name, version := range m.Versions {
				sb.WriteString(name)
				sb.WriteByte(' ')
				sb.WriteString(version)
				sb.WriteByte('\n')
			}
			continue
		}
		sb.WriteString(m.Text)
		sb.WriteByte('\n')
	}
	haystack := strings.ToLower(sb.String())

	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(haystack, kw) {
				return rule.Label
			}
		}
	}
	return ""
}

// BuildSummary 构造确定性的架构摘要句子
func BuildSummary(repoName string, languages []string, projectType string, groups []models.DirectoryGroup) string {
	var sb strings.Builder
	sb.WriteString(repoName)
	if len(languages) > 0 {
		fmt.Fprintf(&sb, " is a %s project", strings.Join(languages, ", "))
	} else {
		sb.WriteString(" is a project")
	}
	if projectType != "" {
		fmt.Fprintf(&sb, ", likely a %s", projectType)
	}
	sb.WriteString(".")

	var modules []string
	for _, g := range groups {
		if g.Directory == RootGroup {
			continue
		}
		modules = append(modules, fmt.Sprintf("%s (%s)", g.Directory, g.Purpose))
	}
	if len(modules) > 0 {
		fmt.Fprintf(&sb, " Its main modules are: %s.", strings.Join(modules, "; "))
	}
	return sb.String()
}

// NormalizeDependencies 统一依赖清单：结构化清单原样保留，文本清单拆分为去掉空行和注释的行列表
func NormalizeDependencies(deps map[string]models.Manifest) map[string]models.DependencyList {
	out := make(map[string]models.DependencyList, len(deps))
	for name, m := range deps {
		if m.IsStructured() {
			versions := make(map[string]string, len(m.Versions))
			for k, v := range m.Versions {
				versions[k] = v
			}
			out[name] = models.DependencyList{Versions: versions}
			continue
		}
		lines := []string{}
		for _, line := range lang.SplitLines(m.Text) {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			lines = append(lines, line)
		}
		out[name] = models.DependencyList{Lines: lines}
	}
	return out
}

// Synthesize 在分析报告基础上生成汇总视图，不修改传入的报告
func Synthesize(report models.AnalysisReport, opts Options) models.SynthesizedView {
	opts = opts.normalize()

	groups := GroupByDirectory(report.CoreFiles, report.FileAnalyses)
	for i := range groups {
		groups[i].Purpose = InferPurpose(groups[i].Directory, groups[i].Files, opts)
	}
	projectType := ClassifyProject(report.Dependencies, opts.ProjectTypes)

	return models.SynthesizedView{
		AnalysisReport:       report,
		ArchitectureSummary:  BuildSummary(report.RepoName, report.Languages, projectType, groups),
		ProjectType:          projectType,
		KeyDependencies:      NormalizeDependencies(report.Dependencies),
		CoreFilesByDirectory: groups,
	}
}
