// Package synth 把核心文件的分析结果汇总为按目录分组的架构视图
package synth

// ProjectRule 项目类型分类规则：依赖清单中出现任一关键字即归为该类型
type ProjectRule struct {
	Label    string   `mapstructure:"label" json:"label" jsonschema:"title=Label,description=分类标签"`
	Keywords []string `mapstructure:"keywords" json:"keywords" jsonschema:"title=Keywords,description=不区分大小写的子串关键字"`
}

// Options 汇总阶段使用的启发式表
type Options struct {
	// DirectoryPurposes 目录名（小写）到用途描述的映射
	DirectoryPurposes map[string]string `mapstructure:"directory_purposes" jsonschema:"title=DirectoryPurposes,description=常见目录名到用途描述的映射"`
	// ProjectTypes 按优先级排列的项目类型规则，第一个命中的规则生效
	ProjectTypes []ProjectRule `mapstructure:"project_types" jsonschema:"title=ProjectTypes,description=按优先级排列的项目类型规则"`
	// PurposeMinChars 成员用途描述超过该长度才会被用作目录用途
	PurposeMinChars int `mapstructure:"purpose_min_chars" jsonschema:"title=PurposeMinChars,default=10"`
	// PurposeMaxChars 目录用途描述的最大长度，超出部分以 ... 结尾
	PurposeMaxChars int `mapstructure:"purpose_max_chars" jsonschema:"title=PurposeMaxChars,default=100"`
}

// RootGroup 仓库根目录下文件所在分组的名称
const RootGroup = "root"

// DefaultDirectoryPurposes 默认目录用途表
func DefaultDirectoryPurposes() map[string]string {
	return map[string]string{
		"src":        "Source code",
		"lib":        "Library code",
		"utils":      "Utility functions",
		"util":       "Utility functions",
		"tests":      "Test code",
		"test":       "Test code",
		"config":     "Configuration",
		"configs":    "Configuration",
		"docs":       "Documentation",
		"static":     "Static assets",
		"assets":     "Static assets",
		"templates":  "Templates",
		"scripts":    "Scripts",
		"api":        "API endpoints",
		"models":     "Data models",
		"services":   "Business services",
		"cmd":        "Command-line entry points",
		"pkg":        "Library packages",
		"internal":   "Internal packages",
		"components": "UI components",
		"web":        "Web interface",
	}
}

// DefaultProjectTypes 默认项目类型规则：Web 框架、命令行库、数据/机器学习库
func DefaultProjectTypes() []ProjectRule {
	return []ProjectRule{
		{
			Label: "web application",
			Keywords: []string{
				"flask", "django", "fastapi", "tornado", "sanic", "express", "koa", "nestjs",
				"react", "vue", "angular", "svelte", "spring-boot", "gin-gonic", "labstack/echo",
				"gofiber", "rails", "laravel", "actix-web", "rocket",
			},
		},
		{
			Label: "command-line tool",
			Keywords: []string{
				"click", "typer", "argparse", "docopt", "commander", "yargs", "spf13/cobra",
				"urfave/cli", "clap", "thor", "picocli",
			},
		},
		{
			Label: "data science / machine learning project",
			Keywords: []string{
				"numpy", "pandas", "scikit-learn", "sklearn", "scipy", "tensorflow", "torch",
				"keras", "matplotlib", "xgboost", "jupyter", "transformers",
			},
		},
	}
}

// DefaultOptions 默认汇总配置
func DefaultOptions() Options {
	return Options{
		DirectoryPurposes: DefaultDirectoryPurposes(),
		ProjectTypes:      DefaultProjectTypes(),
		PurposeMinChars:   10,
		PurposeMaxChars:   100,
	}
}

func (o Options) normalize() Options {
	if o.DirectoryPurposes == nil {
		o.DirectoryPurposes = DefaultDirectoryPurposes()
	}
	if o.ProjectTypes == nil {
		o.ProjectTypes = DefaultProjectTypes()
	}
	if o.PurposeMinChars <= 0 {
		o.PurposeMinChars = 10
	}
	if o.PurposeMaxChars <= 0 {
		o.PurposeMaxChars = 100
	}
	return o
}
