package configs

import (
	"github.com/spf13/viper"
	"github.com/yeisme/readmegen/pkg/rank"
	"github.com/yeisme/readmegen/pkg/synth"
	"github.com/yeisme/readmegen/pkg/utils/ignore"
)

// AnalyzerConfig 仓库分析配置，启发式表都可以在这里修改
type AnalyzerConfig struct {
	Ignore          ignore.Options `mapstructure:"ignore" jsonschema:"title=Ignore,description=忽略的目录与文件"`
	MaxFileBytes    int64          `mapstructure:"max_file_bytes" jsonschema:"title=MaxFileBytes,description=超过该大小的文件不参与分析，0 表示不限制"`
	KeyFiles        []string       `mapstructure:"key_files" jsonschema:"title=KeyFiles,description=读取并传给 README 生成的关键配置文件"`
	KeyFileMaxBytes int            `mapstructure:"key_file_max_bytes" jsonschema:"title=KeyFileMaxBytes,default=8192"`
	Concurrency     int            `mapstructure:"concurrency" jsonschema:"title=Concurrency,description=依赖图构建的并发数，0 表示使用 CPU 数"`
	CacheSize       int            `mapstructure:"cache_size" jsonschema:"title=CacheSize,description=文件内容缓存条目数,default=512"`
	Ranking         rank.Options   `mapstructure:"ranking" jsonschema:"title=Ranking,description=核心文件排序"`
	Synthesis       synth.Options  `mapstructure:"synthesis" jsonschema:"title=Synthesis,description=汇总阶段的目录用途表与项目类型规则"`
}

// DefaultKeyFiles 默认的关键配置文件名
var DefaultKeyFiles = []string{
	"README.md", "package.json", "setup.py", "requirements.txt", "Pipfile",
	"pyproject.toml", "Makefile", "Dockerfile", "docker-compose.yml", "LICENSE",
	"CONTRIBUTING.md", "go.mod", "Cargo.toml",
}

func setAnalyzerConfigDefaults(v *viper.Viper) {
	ign := ignore.DefaultOptions()
	v.SetDefault("analyzer.ignore.dirs", ign.Dirs)
	v.SetDefault("analyzer.ignore.files", ign.Files)
	v.SetDefault("analyzer.ignore.respect_gitignore", ign.RespectGitignore)

	v.SetDefault("analyzer.max_file_bytes", 0)
	v.SetDefault("analyzer.key_files", DefaultKeyFiles)
	v.SetDefault("analyzer.key_file_max_bytes", 8192)
	v.SetDefault("analyzer.concurrency", 0)
	v.SetDefault("analyzer.cache_size", 512)

	r := rank.DefaultOptions()
	v.SetDefault("analyzer.ranking.weights.size_per_kb", r.Weights.SizePerKB)
	v.SetDefault("analyzer.ranking.weights.size_cap", r.Weights.SizeCap)
	v.SetDefault("analyzer.ranking.weights.depth", r.Weights.Depth)
	v.SetDefault("analyzer.ranking.weights.imports", r.Weights.Imports)
	v.SetDefault("analyzer.ranking.weights.comment", r.Weights.Comment)
	v.SetDefault("analyzer.ranking.weights.entry_point", r.Weights.EntryPoint)
	v.SetDefault("analyzer.ranking.entry_stems", r.EntryStems)
	v.SetDefault("analyzer.ranking.entry_markers", r.EntryMarkers)
	v.SetDefault("analyzer.ranking.generated_globs", r.GeneratedGlobs)
	v.SetDefault("analyzer.ranking.generated_markers", r.GeneratedMarkers)
	v.SetDefault("analyzer.ranking.generated_scan_lines", r.GeneratedScanLines)
	v.SetDefault("analyzer.ranking.min_core", r.MinCore)
	v.SetDefault("analyzer.ranking.max_core", r.MaxCore)
	v.SetDefault("analyzer.ranking.core_divisor", r.CoreDivisor)

	s := synth.DefaultOptions()
	v.SetDefault("analyzer.synthesis.directory_purposes", s.DirectoryPurposes)
	rules := make([]map[string]any, 0, len(s.ProjectTypes))
	for _, rule := range s.ProjectTypes {
		rules = append(rules, map[string]any{"label": rule.Label, "keywords": rule.Keywords})
	}
	v.SetDefault("analyzer.synthesis.project_types", rules)
	v.SetDefault("analyzer.synthesis.purpose_min_chars", s.PurposeMinChars)
	v.SetDefault("analyzer.synthesis.purpose_max_chars", s.PurposeMaxChars)
}
