// Package version 提供 readmegen 的构建信息
// 版本号、提交与构建时间在发布时通过 -ldflags 注入，缺省时从模块构建信息中读取
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var (
	// Version 应用版本
	Version = "dev"
	// GitCommit 提交哈希
	GitCommit = "unknown"
	// BuildDate 构建时间（RFC3339）
	BuildDate = "unknown"
	// GoVersion 构建使用的 Go 版本
	GoVersion = runtime.Version()
	// Platform 目标平台
	Platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	// Modified 源码树是否有未提交的修改（"true" 或 "false"）
	Modified = "false"
)

// Info 版本信息
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Modified  string `json:"modified"`
}

// GetVersion 返回版本信息
func GetVersion() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
		Modified:  Modified,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

// fillFromBuildInfo 用模块构建信息补全未注入的字段
func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && semver.IsValid(bi.Main.Version) {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value
		}
	}
}

// GetVersionString 返回详细版本信息
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("readmegen has version %s built with %s from %s (%s, modified: %s) on %s",
		info.Version,
		info.GoVersion,
		info.GitCommit,
		info.Platform,
		info.Modified,
		info.BuildDate,
	)
}

// GetShortVersionString 返回简短版本信息，正式版本附带发布页地址
func GetShortVersionString() string {
	return shortVersion(GetVersion())
}

func shortVersion(info Info) string {
	dateStr := info.BuildDate
	if buildTime, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		dateStr = buildTime.Format("2006-01-02")
	}

	s := fmt.Sprintf("readmegen version %s (%s)", info.Version, dateStr)
	if tag := "v" + strings.TrimPrefix(info.Version, "v"); semver.IsValid(tag) && semver.Prerelease(tag) == "" {
		s += "\nhttps://github.com/yeisme/readmegen/releases/tag/" + tag
	}
	return s
}
