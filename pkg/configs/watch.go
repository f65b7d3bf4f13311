package configs

import (
	"time"

	"github.com/spf13/viper"
)

// WatchConfig 监听模式配置
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" jsonschema:"title=Debounce,description=文件变化后等待多久再重新运行"`
	RankOnly bool          `mapstructure:"rank_only" jsonschema:"title=RankOnly,description=只重新计算核心文件排序，不调用文本生成服务"`
	Output   string        `mapstructure:"output" jsonschema:"title=Output,description=生成文档的输出路径（相对仓库根目录）,default=README.md"`
}

func setWatchConfigDefaults(v *viper.Viper) {
	v.SetDefault("watch.debounce", "500ms")
	v.SetDefault("watch.rank_only", false)
	v.SetDefault("watch.output", "README.md")
}
