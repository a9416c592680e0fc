package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Research ResearchConfig `mapstructure:"research"`
	Image    ImageConfig    `mapstructure:"image"`
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig 文本生成模型配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig 文本生成模型默认参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// ResearchConfig 历史研究（搜索增强）服务配置
// 兼容 Perplexity 的 chat/completions 接口
type ResearchConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`    // 研究结果缓存时长（仅在 Redis 可用时生效）
	EnableCache bool          `mapstructure:"enable_cache"` // 是否启用研究结果缓存
}

// ImageConfig 图片生成服务配置
type ImageConfig struct {
	Provider    string        `mapstructure:"provider"` // fal, ark
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	AspectRatio string        `mapstructure:"aspect_ratio"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UnitCost    float64       `mapstructure:"unit_cost"` // 单张图片的预估成本（美元）
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// RedisConfig Redis 配置（可选，仅用作研究结果缓存）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PipelineConfig 生成流水线常量配置
// 这些数值决定时长估算、场景数量与 token 预算
type PipelineConfig struct {
	SecondsPerScene   int `mapstructure:"seconds_per_scene"`    // 每个场景的解说时长（秒）
	WordsPerMinute    int `mapstructure:"words_per_minute"`     // 解说语速（词/分钟）
	MaxPooledImages   int `mapstructure:"max_pooled_images"`    // 图片池最大容量（成本上限）
	PerSceneTokens    int `mapstructure:"per_scene_tokens"`     // 场景拆解时每个场景的 token 预算
	TokenBuffer       int `mapstructure:"token_buffer"`         // 场景拆解 token 预算的固定余量
	MinBreakdownToken int `mapstructure:"min_breakdown_tokens"` // 场景拆解 token 预算下限
	MaxBreakdownToken int `mapstructure:"max_breakdown_tokens"` // 场景拆解 token 预算上限（模型上限）
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.Pipeline.SecondsPerScene <= 0 {
		return errors.New("pipeline.seconds_per_scene must be positive")
	}
	if c.Pipeline.WordsPerMinute <= 0 {
		return errors.New("pipeline.words_per_minute must be positive")
	}
	if c.Pipeline.MaxPooledImages <= 0 {
		return errors.New("pipeline.max_pooled_images must be positive")
	}
	if c.Pipeline.MinBreakdownToken > c.Pipeline.MaxBreakdownToken {
		return errors.New("pipeline.min_breakdown_tokens must not exceed max_breakdown_tokens")
	}

	return nil
}
