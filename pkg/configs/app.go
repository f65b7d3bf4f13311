package configs

import (
	"github.com/spf13/viper"
)

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name" jsonschema:"title=Name,default=readmegen"`
	Debug   bool   `mapstructure:"debug" jsonschema:"title=Debug"`
	Verbose bool   `mapstructure:"verbose" jsonschema:"title=Verbose"`
	Quiet   bool   `mapstructure:"quiet" jsonschema:"title=Quiet,description=禁止所有日志输出"`
}

func setAppConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "readmegen")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.verbose", false)
	v.SetDefault("app.quiet", false)
}
