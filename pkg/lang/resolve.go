package lang

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yeisme/readmegen/pkg/models"
)

// DefaultCandidateExts 导入目标没有扩展名时依次尝试的扩展名
var DefaultCandidateExts = []string{
	".py", ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".vue",
	".go", ".rb", ".php", ".rs", ".java", ".kt", ".scala",
	".c", ".h", ".cpp", ".hpp", ".css", ".scss", ".less", ".sh",
}

// Resolver 将导入语句的原始目标解析为仓库内真实存在的文件路径
// 存在性优先使用遍历得到的文件集合判断，未提供集合时回退到文件系统
type Resolver struct {
	root          string
	known         map[string]struct{}
	ordered       []string
	goModule      string
	candidateExts []string
}

// NewResolver 创建解析器，files 为空时通过 os.Stat 判断文件是否存在
func NewResolver(root string, files []models.FileRecord) *Resolver {
	r := &Resolver{root: root, candidateExts: DefaultCandidateExts}
	if len(files) > 0 {
		r.known = make(map[string]struct{}, len(files))
		r.ordered = make([]string, 0, len(files))
		for _, f := range files {
			r.known[f.Path] = struct{}{}
			r.ordered = append(r.ordered, f.Path)
		}
	}
	return r
}

// WithGoModule 设置 go.mod 中的模块路径，用于把包导入解析到仓库内的目录
func (r *Resolver) WithGoModule(module string) *Resolver {
	r.goModule = strings.TrimSuffix(module, "/")
	return r
}

// WithCandidateExts 替换默认的扩展名候选列表
func (r *Resolver) WithCandidateExts(exts []string) *Resolver {
	if len(exts) > 0 {
		r.candidateExts = exts
	}
	return r
}

// Resolve 返回 target 对应的候选文件路径（仓库相对路径，已去重）
// 相对引用基于导入文件所在目录解析；越出仓库根目录的引用被丢弃
func (r *Resolver) Resolve(from, target string) []string {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil
	}
	language := IdentifyLanguage(from)
	dir := path.Dir(from)

	if language == "Go" {
		return r.resolveGoPackage(target)
	}

	var bases []string
	switch {
	case language == "Python":
		bases = pythonBases(dir, target)
	case language == "Java" || language == "Kotlin" || language == "Scala":
		return r.resolveDotted(target)
	case strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../"):
		bases = []string{path.Join(dir, target)}
	case strings.HasPrefix(target, "/"):
		bases = []string{strings.TrimPrefix(target, "/")}
	case isJSFamily(language):
		// 裸模块名来自包管理器，不在仓库内
		return nil
	default:
		bases = []string{path.Join(dir, target), target}
	}

	seen := make(map[string]struct{}, len(bases))
	var out []string
	for _, b := range bases {
		b = path.Clean(b)
		if b == "." || b == ".." || strings.HasPrefix(b, "../") {
			continue
		}
		if hit, ok := r.lookup(b); ok {
			if _, dup := seen[hit]; !dup {
				seen[hit] = struct{}{}
				out = append(out, hit)
			}
		}
	}
	return out
}

// lookup 返回 base 本身，或 base+扩展名，或 base/index+扩展名 中第一个存在的文件
func (r *Resolver) lookup(base string) (string, bool) {
	if r.exists(base) {
		return base, true
	}
	for _, ext := range r.candidateExts {
		if c := base + ext; r.exists(c) {
			return c, true
		}
	}
	for _, ext := range r.candidateExts {
		if c := base + "/index" + ext; r.exists(c) {
			return c, true
		}
	}
	for _, c := range []string{base + "/__init__.py", base + "/mod.rs"} {
		if r.exists(c) {
			return c, true
		}
	}
	return "", false
}

func (r *Resolver) exists(rel string) bool {
	if r.known != nil {
		_, ok := r.known[rel]
		return ok
	}
	st, err := os.Stat(filepath.Join(r.root, filepath.FromSlash(rel)))
	return err == nil && st.Mode().IsRegular()
}

// resolveGoPackage 把模块内的包导入解析为该目录下所有非测试 .go 文件
func (r *Resolver) resolveGoPackage(target string) []string {
	if r.goModule == "" {
		return nil
	}
	var dir string
	switch {
	case target == r.goModule:
		dir = "."
	case strings.HasPrefix(target, r.goModule+"/"):
		dir = strings.TrimPrefix(target, r.goModule+"/")
	default:
		return nil
	}

	isPkgFile := func(p string) bool {
		return path.Dir(p) == dir && strings.HasSuffix(p, ".go") && !strings.HasSuffix(p, "_test.go")
	}
	var out []string
	if r.known != nil {
		for _, p := range r.ordered {
			if isPkgFile(p) {
				out = append(out, p)
			}
		}
		return out
	}
	entries, err := os.ReadDir(filepath.Join(r.root, filepath.FromSlash(dir)))
	if err != nil {
		return nil
	}
	for _, e := range entries {
		p := path.Join(dir, e.Name())
		if !e.IsDir() && isPkgFile(p) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// resolveDotted 处理 Java 系的 a.b.C 导入，按路径后缀匹配源码目录中的文件
func (r *Resolver) resolveDotted(target string) []string {
	rel := strings.ReplaceAll(strings.Trim(target, "."), ".", "/")
	if rel == "" {
		return nil
	}
	exts := []string{".java", ".kt", ".scala"}
	if r.known == nil {
		for _, ext := range exts {
			if r.exists(rel + ext) {
				return []string{rel + ext}
			}
		}
		return nil
	}
	var out []string
	for _, p := range r.ordered {
		for _, ext := range exts {
			if p == rel+ext || strings.HasSuffix(p, "/"+rel+ext) {
				out = append(out, p)
			}
		}
	}
	return out
}

// pythonBases 计算 Python 模块的候选基础路径
// 相对导入按点的数量向上回溯，越过仓库根目录时返回 nil；绝对导入同时尝试导入文件目录与仓库根目录
func pythonBases(dir, target string) []string {
	dots := len(target) - len(strings.TrimLeft(target, "."))
	rest := strings.ReplaceAll(target[dots:], ".", "/")
	if dots > 0 {
		depth := 0
		if dir != "." && dir != "" {
			depth = strings.Count(dir, "/") + 1
		}
		if dots-1 > depth {
			return nil
		}
		base := dir
		for i := 1; i < dots; i++ {
			base = path.Dir(base)
		}
		if rest == "" {
			return []string{base}
		}
		return []string{path.Join(base, rest)}
	}
	return []string{path.Join(dir, rest), rest}
}

func isJSFamily(language string) bool {
	switch language {
	case "JavaScript", "TypeScript", "React", "React TypeScript", "Vue", "Svelte":
		return true
	}
	return false
}
