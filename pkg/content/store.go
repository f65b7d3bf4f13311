// Package content 提供带编码回退和读缓存的文件内容存取
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/encoding/charmap"
)

// ErrFileRead 文件读取失败，调用方应将该文件视为零贡献而不是中止流程
var ErrFileRead = errors.New("file read failure")

// DefaultCacheSize 默认缓存的文件数量
const DefaultCacheSize = 512

// Store 文件内容存取，读取结果按绝对路径缓存
// 依赖图构建、排序和分析阶段会多次读取同一批文件
// Store 可被多个 goroutine 并发使用
type Store struct {
	cache *lru.Cache[string, string]
}

// NewStore 创建 Store，cacheSize <= 0 时使用默认值
func NewStore(cacheSize int) *Store {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		// 只有 size <= 0 时才会出错
		panic(err)
	}
	return &Store{cache: cache}
}

// Read 读取文件文本：合法 UTF-8 原样返回，否则按 ISO-8859-1 解码
// 读取失败时返回包装了 ErrFileRead 的错误
func (s *Store) Read(path string) (string, error) {
	key := absKey(path)
	if s != nil && s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v, nil
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}
	text, err := Decode(b)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}
	if s != nil && s.cache != nil {
		s.cache.Add(key, text)
	}
	return text, nil
}

// ReadOrPlaceholder 读取失败时返回可见的占位文本而不是错误
func (s *Store) ReadOrPlaceholder(path string) string {
	text, err := s.Read(path)
	if err != nil {
		return Placeholder(err)
	}
	return text
}

// ReadLimited 读取文件并截断到 maxBytes（按字符边界），maxBytes <= 0 表示不限制
func (s *Store) ReadLimited(path string, maxBytes int) (string, error) {
	text, err := s.Read(path)
	if err != nil {
		return "", err
	}
	return Truncate(text, maxBytes), nil
}

// Write 写入文件，自动创建父目录，写入后使缓存失效
func (s *Store) Write(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if s != nil && s.cache != nil {
		s.cache.Remove(absKey(path))
	}
	return nil
}

// ListDirectory 返回目录下的条目名称，按字典序排列
func (s *Store) ListDirectory(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Purge 清空缓存，watch 模式在检测到变更后调用
func (s *Store) Purge() {
	if s != nil && s.cache != nil {
		s.cache.Purge()
	}
}

// Decode 将字节解码为文本：优先 UTF-8，失败时回退到 ISO-8859-1
func Decode(b []byte) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Placeholder 读取失败时展示的占位文本
func Placeholder(err error) string {
	return fmt.Sprintf("[unable to read file: %v]", err)
}

// Truncate 按字节上限截断文本，不切断多字节字符
func Truncate(text string, maxBytes int) string {
	if maxBytes <= 0 || len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func absKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
