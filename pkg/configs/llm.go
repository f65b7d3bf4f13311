package configs

import (
	"github.com/spf13/viper"
	"github.com/yeisme/readmegen/pkg/llm"
)

// LLMConfig llm.Config 的别名，简化引用
type LLMConfig = llm.Config

func setLLMConfigDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()
	v.SetDefault("llm.provider", def.Provider)
	v.SetDefault("llm.base_url", def.BaseURL)
	v.SetDefault("llm.api_key", "")
	// 为空时按 provider 选择默认模型
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", def.Temperature)
	v.SetDefault("llm.analysis_temperature", def.AnalysisTemperature)
	v.SetDefault("llm.max_tokens", def.MaxTokens)
	v.SetDefault("llm.timeout", def.Timeout.String())
	v.SetDefault("llm.retries", def.Retries)
	v.SetDefault("llm.retry_backoff", def.RetryBackoff.String())
	v.SetDefault("llm.concurrency", def.Concurrency)
	v.SetDefault("llm.max_file_chars", def.MaxFileChars)
	v.SetDefault("llm.system_prompt", def.SystemPrompt)
}
