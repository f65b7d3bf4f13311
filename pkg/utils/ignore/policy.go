// Package ignore decides which repository paths are excluded from analysis.
package ignore

import (
	"path"
	"strings"
)

// Options configures the ignore policy.
type Options struct {
	Dirs             []string `mapstructure:"dirs" jsonschema:"title=Dirs,description=Directory names ignored at any depth"`
	Files            []string `mapstructure:"files" jsonschema:"title=Files,description=File base names that are always ignored"`
	RespectGitignore bool     `mapstructure:"respect_gitignore" jsonschema:"title=RespectGitignore,description=Also apply patterns from the repository root .gitignore"`
}

// DefaultOptions returns the built-in ignore sets.
func DefaultOptions() Options {
	return Options{
		Dirs: []string{
			"node_modules", "venv", ".venv", ".git", ".github", "__pycache__",
			"build", "dist", ".idea", ".vscode", "target", "bin", "vendor",
			".tox", ".mypy_cache", ".pytest_cache", "coverage",
		},
		Files:            []string{".DS_Store", ".gitignore", ".env", ".gitattributes"},
		RespectGitignore: false,
	}
}

// Policy is an immutable path filter. The zero value and a nil *Policy ignore nothing.
type Policy struct {
	dirs  map[string]struct{}
	files map[string]struct{}
	gi    *GitIgnore
}

// NewPolicy builds a policy from options. Gitignore patterns are attached separately via WithGitIgnore.
func NewPolicy(opts Options) *Policy {
	p := &Policy{
		dirs:  make(map[string]struct{}, len(opts.Dirs)),
		files: make(map[string]struct{}, len(opts.Files)),
	}
	for _, d := range opts.Dirs {
		if d = strings.TrimSpace(d); d != "" {
			p.dirs[d] = struct{}{}
		}
	}
	for _, f := range opts.Files {
		if f = strings.TrimSpace(f); f != "" {
			p.files[f] = struct{}{}
		}
	}
	return p
}

// DefaultPolicy returns a policy built from DefaultOptions.
func DefaultPolicy() *Policy {
	return NewPolicy(DefaultOptions())
}

// ForRepository builds the policy for a repository root, loading its .gitignore when requested.
func ForRepository(root string, opts Options) (*Policy, error) {
	p := NewPolicy(opts)
	if !opts.RespectGitignore {
		return p, nil
	}
	return p.WithGitIgnore(root)
}

// WithGitIgnore returns a copy of the policy that also honours root/.gitignore.
// A missing .gitignore is not an error.
func (p *Policy) WithGitIgnore(root string) (*Policy, error) {
	gi, err := LoadGitIgnoreFromDir(root)
	if err != nil {
		return p, err
	}
	cp := &Policy{}
	if p != nil {
		cp.dirs = p.dirs
		cp.files = p.files
	}
	cp.gi = gi
	return cp, nil
}

// ShouldIgnore reports whether a repository-relative, slash-separated path is excluded.
// A path is excluded when any segment is an ignored directory name, when its base
// name is an ignored file name, or when a loaded .gitignore pattern matches it.
func (p *Policy) ShouldIgnore(rel string) bool {
	return p.match(rel, false)
}

// ShouldIgnoreDir is ShouldIgnore for a directory path, so that .gitignore
// patterns with a trailing slash apply to rel itself.
func (p *Policy) ShouldIgnoreDir(rel string) bool {
	return p.match(rel, true)
}

func (p *Policy) match(rel string, isDir bool) bool {
	if p == nil {
		return false
	}
	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "./")
	if rel == "." || rel == "" {
		return false
	}
	for _, seg := range strings.Split(rel, "/") {
		if _, ok := p.dirs[seg]; ok {
			return true
		}
	}
	if _, ok := p.files[path.Base(rel)]; ok {
		return true
	}
	if p.gi != nil && p.gi.Match(rel, isDir) {
		return true
	}
	return false
}

// Patterns returns the loaded .gitignore patterns, if any.
func (p *Policy) Patterns() []string {
	if p == nil || p.gi == nil {
		return nil
	}
	return p.gi.GetPatterns()
}
