// Package watch 监听仓库文件变化，防抖后触发回调
package watch

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/utils/ignore"
	"github.com/yeisme/readmegen/pkg/utils/log"
)

// DefaultDebounce 未配置防抖时长时使用的默认值
const DefaultDebounce = 500 * time.Millisecond

// maxHashSize 超过该大小的文件只比较大小与修改时间
const maxHashSize = 1 << 20

// Hook 防抖结束后调用的回调，返回错误只记录日志，不会停止监听
type Hook func(ctx context.Context) error

// Options 监听配置
type Options struct {
	Debounce time.Duration
	// Policy 与分析流水线相同的忽略策略，被忽略的路径不触发回调
	Policy *ignore.Policy
	// Exclude 不触发回调的相对路径，例如生成的 README 本身
	Exclude []string
	Logger  *zerolog.Logger
}

// fileState 文件的大小、修改时间与内容摘要，用于过滤没有实际变化的写事件
type fileState struct {
	modTime time.Time
	size    int64
	hash    string
}

// Watcher 仓库监听器
type Watcher struct {
	root    string
	opts    Options
	exclude map[string]struct{}
	fsw     *fsnotify.Watcher
	logger  *zerolog.Logger

	mu      sync.Mutex
	cache   map[string]fileState
	changed bool
	timer   *time.Timer
	fire    chan struct{}
}

// New 创建监听器并注册仓库中所有未被忽略的目录
func New(root string, opts Options) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		root:    absRoot,
		opts:    opts,
		exclude: make(map[string]struct{}, len(opts.Exclude)),
		fsw:     fsw,
		logger:  logger,
		cache:   make(map[string]fileState),
		fire:    make(chan struct{}, 1),
	}
	for _, p := range opts.Exclude {
		w.exclude[filepath.ToSlash(filepath.Clean(p))] = struct{}{}
	}
	if err := w.addTree(absRoot); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree 递归注册目录并记录其中文件的初始状态
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			w.logger.Warn().Err(err).Str("path", p).Msg("skip unreadable path")
			return nil
		}
		if w.ignored(p, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(p); err != nil {
				w.logger.Warn().Err(err).Str("dir", p).Msg("add directory to watcher failed")
			}
			return nil
		}
		if st, ok := stat(p); ok {
			w.mu.Lock()
			w.cache[p] = st
			w.mu.Unlock()
		}
		return nil
	})
}

// rel 返回相对仓库根目录的 / 分隔路径
func (w *Watcher) rel(p string) string {
	r, err := filepath.Rel(w.root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(r)
}

// ignored 判断路径是否不需要关注
func (w *Watcher) ignored(p string, isDir bool) bool {
	r := w.rel(p)
	if r == "." {
		return false
	}
	if _, ok := w.exclude[r]; ok {
		return true
	}
	if isDir {
		return w.opts.Policy.ShouldIgnoreDir(r)
	}
	return w.opts.Policy.ShouldIgnore(r)
}

// Run 处理文件事件直到 ctx 结束；防抖期间的多次变化只触发一次回调
func (w *Watcher) Run(ctx context.Context, hook Hook) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Error().Err(err).Msg("close watcher failed")
		}
	}()
	w.logger.Info().Str("root", w.root).Dur("debounce", w.opts.Debounce).Msg("watching repository, press Ctrl+C to stop")

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				w.arm()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watcher error")
		case <-w.fire:
			w.mu.Lock()
			changed := w.changed
			w.changed = false
			w.timer = nil
			w.mu.Unlock()
			if !changed {
				continue
			}
			w.logger.Info().Msg("change detected, re-running")
			if err := hook(ctx); err != nil {
				w.logger.Error().Err(err).Msg("watch hook failed")
			}
		}
	}
}

// arm 启动或重置防抖定时器
func (w *Watcher) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.changed = true
	if w.timer != nil {
		w.timer.Reset(w.opts.Debounce)
		return
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// handle 判断事件是否代表一次实际变化，并同步状态缓存
func (w *Watcher) handle(event fsnotify.Event) bool {
	info, statErr := os.Stat(event.Name)
	if w.ignored(event.Name, statErr == nil && info.IsDir()) {
		return false
	}
	w.logger.Trace().Str("op", event.Op.String()).Str("path", event.Name).Msg("fs event")

	switch {
	case event.Has(fsnotify.Create):
		if statErr != nil {
			return false
		}
		if info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn().Err(err).Str("dir", event.Name).Msg("watch new directory failed")
			}
			return true
		}
		return w.update(event.Name)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.mu.Lock()
		defer w.mu.Unlock()
		if _, ok := w.cache[event.Name]; ok {
			delete(w.cache, event.Name)
			return true
		}
		return false
	case event.Has(fsnotify.Write):
		return w.update(event.Name)
	}
	return false
}

// update 比较文件当前状态与缓存，内容没有变化的写事件返回 false
func (w *Watcher) update(p string) bool {
	st, ok := stat(p)
	w.mu.Lock()
	defer w.mu.Unlock()
	old, tracked := w.cache[p]
	if !ok {
		if tracked {
			delete(w.cache, p)
		}
		return tracked
	}
	w.cache[p] = st
	if !tracked {
		return true
	}
	if st.hash != "" && old.hash != "" {
		return st.hash != old.hash
	}
	return st.size != old.size || !st.modTime.Equal(old.modTime)
}

// stat 读取文件状态，小文件附带内容摘要
func stat(p string) (fileState, bool) {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return fileState{}, false
	}
	st := fileState{modTime: info.ModTime(), size: info.Size()}
	if info.Size() <= maxHashSize {
		st.hash = hashFile(p)
	}
	return st, true
}

func hashFile(p string) string {
	f, err := os.Open(p)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
