// Package context 保存一次命令执行所需的配置、日志与 viper 实例
package context

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yeisme/readmegen/pkg/configs"
	"github.com/yeisme/readmegen/pkg/utils/log"
)

// GlobalFlags 所有命令共享的全局标志
type GlobalFlags struct {
	ConfigPath    string
	EnvFile       string
	Debug         bool
	Verbose       bool
	Quiet         bool
	VersionEnable bool
}

// ReadmegenContext 一次命令执行的上下文
type ReadmegenContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Logger log.Logger      // 日志记录器
	Viper  *viper.Viper    // 加载配置使用的 viper 实例
}

// InitReadmegenContext 加载 .env 与配置文件，按全局标志覆盖应用配置并初始化日志
func InitReadmegenContext(ctx context.Context, flags GlobalFlags) (*ReadmegenContext, error) {
	envLoaded, envErr := loadEnvFile(flags.EnvFile)

	config, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)
	if envErr != nil {
		logger.Warn().Err(envErr).Str("file", flags.EnvFile).Msg("load env file failed")
	} else if envLoaded != "" {
		logger.Debug().Str("file", envLoaded).Msg("env file loaded")
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("config file loaded")
	}

	return &ReadmegenContext{
		Context: ctx,
		Config:  config,
		Logger:  logger,
		Viper:   viper.GetViper(),
	}, nil
}

// loadEnvFile 加载环境变量文件，已存在的环境变量不会被覆盖
// 未指定文件时尝试当前目录的 .env，不存在则跳过
func loadEnvFile(path string) (string, error) {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return "", nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return "", err
	}
	return path, nil
}
