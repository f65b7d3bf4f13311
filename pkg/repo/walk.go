// Package repo 负责发现仓库中的文件并构建目录树
package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/lang"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/utils/ignore"
	"github.com/yeisme/readmegen/pkg/utils/log"
)

// ErrRepositoryNotFound 仓库根目录不存在或不是目录
var ErrRepositoryNotFound = errors.New("repository not found")

// Options 遍历选项
type Options struct {
	// MaxFileBytes 大于该值的文件不参与分析，<= 0 表示不限制
	MaxFileBytes int64
	// Logger 为空时使用全局日志记录器
	Logger *zerolog.Logger
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.GetLogger()
}

// CheckRoot 检查仓库根目录是否存在且为目录
func CheckRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRepositoryNotFound, root, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRepositoryNotFound, root)
	}
	return nil
}

// ListFiles 深度优先遍历仓库，每一层按字典序访问
// 被忽略的目录在进入前剪枝，被忽略的文件不出现在结果中
// 子目录读取失败只记录警告，该子树视为空
//
//	ctx: 取消遍历
//	root: 仓库根目录
//	policy: 忽略策略，nil 表示不忽略任何路径
func ListFiles(ctx context.Context, root string, policy *ignore.Policy, opts ...Options) ([]models.FileRecord, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	files := make([]models.FileRecord, 0, 256)
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			o.logger().Warn().Err(walkErr).Str("path", path).Msg("skip unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == absRoot {
			return nil
		}
		rel := toRelSlash(absRoot, path)
		keep, size := o.admit(policy, rel, d)
		if d.IsDir() {
			if !keep {
				return filepath.SkipDir
			}
			return nil
		}
		if !keep {
			return nil
		}
		files = append(files, NewRecord(absRoot, rel, size))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// admit 判断条目是否保留，ListFiles 与 BuildTree 共用
// 目录只检查忽略规则；文件还需是普通文件且不超过大小限制，保留时返回文件大小
func (o Options) admit(policy *ignore.Policy, rel string, d fs.DirEntry) (bool, int64) {
	if d.IsDir() {
		return !policy.ShouldIgnoreDir(rel), 0
	}
	if policy.ShouldIgnore(rel) {
		return false, 0
	}
	// 只收集普通文件，符号链接等不跟随
	if !d.Type().IsRegular() {
		return false, 0
	}
	info, err := d.Info()
	if err != nil {
		o.logger().Warn().Err(err).Str("path", rel).Msg("stat file failed")
		return false, 0
	}
	if o.MaxFileBytes > 0 && info.Size() > o.MaxFileBytes {
		o.logger().Debug().Str("path", rel).Int64("size", info.Size()).Msg("skip oversized file")
		return false, 0
	}
	return true, info.Size()
}

// NewRecord 根据相对路径构造 FileRecord
func NewRecord(absRoot, rel string, size int64) models.FileRecord {
	return models.FileRecord{
		Path:     rel,
		AbsPath:  filepath.Join(absRoot, filepath.FromSlash(rel)),
		Ext:      strings.ToLower(filepath.Ext(rel)),
		Language: lang.IdentifyLanguage(rel),
		Size:     size,
	}
}

// Paths 返回记录的相对路径列表，保持遍历顺序
func Paths(files []models.FileRecord) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

// toRelSlash 将绝对路径转换为相对 root 的 / 分隔路径
func toRelSlash(root, path string) string {
	rel, _ := filepath.Rel(root, path)
	return filepath.ToSlash(rel)
}
