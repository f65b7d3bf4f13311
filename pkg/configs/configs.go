// Package configs 提供应用程序配置管理功能
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Version  string         `mapstructure:"version" jsonschema:"title=Version,default=1.0"`
	App      AppConfig      `mapstructure:"app" jsonschema:"title=App"`
	Log      LogConfig      `mapstructure:"log" jsonschema:"title=Log"`
	LLM      LLMConfig      `mapstructure:"llm" jsonschema:"title=LLM,description=文本生成服务"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer" jsonschema:"title=Analyzer,description=仓库分析"`
	Watch    WatchConfig    `mapstructure:"watch" jsonschema:"title=Watch,description=监听模式"`
}

// EnvPrefix 环境变量前缀，例如 READMEGEN_LLM_MODEL
const EnvPrefix = "READMEGEN"

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setAppConfigDefaults(v)
	setLogConfigDefaults(v)
	setLLMConfigDefaults(v)
	setAnalyzerConfigDefaults(v)
	setWatchConfigDefaults(v)
}

var globalConfig *Config

// searchPaths 配置文件搜索路径
func searchPaths() []string {
	paths := []string{
		".",
		"./configs",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/readmegen",
	}

	// Windows 特殊路径
	if runtime.GOOS == "windows" {
		paths = append(paths,
			"$USERPROFILE",
			"$APPDATA/readmegen",
		)
	} else {
		paths = append(paths, "/etc/readmegen")
	}
	return paths
}

// findConfigFile 尝试查找不同格式的配置文件
func findConfigFile() string {
	configNames := []string{".readmegen", "readmegen"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths() {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)

				// 展开环境变量
				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}

				if _, err := os.Stat(configFile); err == nil {
					return configFile
				}
			}
		}
	}
	return ""
}

// Setup 在 viper 实例上注册默认值、环境变量与配置文件路径
func Setup(v *viper.Viper, configPath string) {
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	// 设置环境变量前缀
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
}

// Load 从 viper 实例读取配置，没有配置文件时只使用默认值与环境变量
func Load(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 确保日志目录存在
	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}
	return &config, nil
}

// LoadConfig 使用全局 viper 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	Setup(viper.GetViper(), configPath)
	config, err := Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	globalConfig = config
	return config, nil
}

// DefaultConfig 返回只包含默认值的配置，不读取任何文件
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("默认配置无效: %v", err))
	}
	return &config
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if globalConfig == nil {
		config, err := LoadConfig("")
		if err != nil {
			panic(fmt.Sprintf("无法加载配置: %v", err))
		}
		return config
	}
	return globalConfig
}

// CreateDefaultConfig 按指定格式写出默认配置文件
func CreateDefaultConfig(path string, format OutputFormat) error {
	if format == FormatText {
		return fmt.Errorf("text format is not supported for config files")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建配置目录失败: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType(string(format))
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
