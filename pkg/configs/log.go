package configs

import "github.com/spf13/viper"

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level" jsonschema:"title=Level,enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"` // 日志级别
	JSON       bool   `mapstructure:"json" jsonschema:"title=JSON"`                                                                   // 是否使用 JSON 格式输出
	Mode       string `mapstructure:"mode" jsonschema:"title=Mode,enum=console,enum=file,enum=both,default=console"`                  // 输出模式
	FilePath   string `mapstructure:"file_path" jsonschema:"title=FilePath"`                                                          // 文件路径（mode 为 file 或 both 时使用）
	MaxSize    int    `mapstructure:"max_size" jsonschema:"title=MaxSize,default=100"`                                                // 日志文件最大大小（MB）
	MaxBackups int    `mapstructure:"max_backups" jsonschema:"title=MaxBackups,default=3"`                                            // 保留的备份文件数量
	MaxAge     int    `mapstructure:"max_age" jsonschema:"title=MaxAge,default=28"`                                                   // 文件保留天数
}

func setLogConfigDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.mode", "console")
	v.SetDefault("log.file_path", ".readmegen/readmegen.log")
	v.SetDefault("log.max_size", 100)  // MB
	v.SetDefault("log.max_backups", 3) // 保留的备份文件数量
	v.SetDefault("log.max_age", 28)    // 文件保留天数
}
