package imagegen

import (
	"context"
	"fmt"

	"historia/internal/config"
)

// Result 单张图片的生成结果
type Result struct {
	URL        string // 图片的可访问地址
	PromptUsed string // 实际下发给生成服务的完整 prompt
}

// Provider 图片生成服务抽象
// 实现方负责把风格后缀和负面提示词注入到请求中
type Provider interface {
	// GenerateImage 按视觉描述生成一张图片
	GenerateImage(ctx context.Context, visualPrompt string) (*Result, error)

	// Name 返回服务标识，用于日志与错误归因
	Name() string
}

// NewProvider 根据配置创建图片生成服务
func NewProvider(cfg *config.ImageConfig) (Provider, error) {
	switch cfg.Provider {
	case "fal", "":
		return NewFalProvider(cfg), nil
	case "ark":
		return NewArkProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", cfg.Provider)
	}
}
