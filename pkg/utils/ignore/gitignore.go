package ignore

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// GitIgnore holds the patterns of a single .gitignore file.
// Supported syntax: comments, root anchoring with a leading slash, directory
// patterns with a trailing slash and glob wildcards per path segment.
// Negation patterns are kept but never match.
type GitIgnore struct {
	patterns []string
}

// LoadGitIgnore parses the .gitignore file at the given path. A missing file yields an empty set.
func LoadGitIgnore(gitignorePath string) (*GitIgnore, error) {
	f, err := os.Open(gitignorePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GitIgnore{}, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ParseGitIgnore(f)
}

// LoadGitIgnoreFromDir loads dir/.gitignore.
func LoadGitIgnoreFromDir(dir string) (*GitIgnore, error) {
	return LoadGitIgnore(filepath.Join(dir, ".gitignore"))
}

// ParseGitIgnore reads patterns from r.
func ParseGitIgnore(r io.Reader) (*GitIgnore, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseGitIgnoreLines(lines), nil
}

// ParseGitIgnoreLines builds a GitIgnore from raw lines, skipping blanks and comments.
func ParseGitIgnoreLines(lines []string) *GitIgnore {
	gi := &GitIgnore{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gi.patterns = append(gi.patterns, line)
	}
	return gi
}

// GetPatterns returns the loaded patterns.
func (gi *GitIgnore) GetPatterns() []string {
	return gi.patterns
}

// IsIgnored reports whether a slash-separated relative file path matches any pattern.
func (gi *GitIgnore) IsIgnored(rel string) bool {
	return gi.Match(rel, false)
}

// Match reports whether rel matches any pattern. isDir tells whether rel itself
// is a directory; patterns with a trailing slash only match directories.
func (gi *GitIgnore) Match(rel string, isDir bool) bool {
	if gi == nil {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, p := range gi.patterns {
		if matchPattern(parts, p, isDir) {
			return true
		}
	}
	return false
}

func matchPattern(parts []string, pattern string, isDir bool) bool {
	if strings.HasPrefix(pattern, "!") {
		return false
	}
	anchored := strings.HasPrefix(pattern, "/")
	dirOnly := strings.HasSuffix(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")
	if pattern == "" {
		return false
	}
	pp := strings.Split(pattern, "/")

	// a segment matched at index i names a directory when more segments follow it
	isDirAt := func(i int) bool { return i < len(parts)-1 || isDir }

	// a pattern with an inner slash is relative to the root, like an anchored one
	if anchored || len(pp) > 1 {
		return matchSegments(parts, pp) && (!dirOnly || isDirAt(len(pp)-1))
	}
	for i, part := range parts {
		if segmentMatch(part, pp[0]) && (!dirOnly || isDirAt(i)) {
			return true
		}
	}
	return false
}

// matchSegments matches pp against the leading segments of parts, so a matched
// directory also covers everything below it.
func matchSegments(parts, pp []string) bool {
	if len(parts) < len(pp) {
		return false
	}
	for i, seg := range pp {
		if !segmentMatch(parts[i], seg) {
			return false
		}
	}
	return true
}

func segmentMatch(name, pattern string) bool {
	if pattern == "**" {
		return true
	}
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
