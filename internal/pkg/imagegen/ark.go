package imagegen

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"historia/internal/config"
	"historia/internal/pkg/pipeerr"
	"historia/internal/pkg/prompts"
)

const (
	arkDefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	arkDefaultModel   = "doubao-seedream-3-0-t2i-250415"
)

// ArkProvider 火山引擎 Ark 图片生成客户端
// 参考 Python SDK: volcenginesdkarkruntime.Ark().images.generate()
type ArkProvider struct {
	client *arkruntime.Client
	model  string
	size   string
}

// NewArkProvider 创建 Ark 图片生成客户端
func NewArkProvider(cfg *config.ImageConfig) (*ArkProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ark API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = arkDefaultBaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = arkDefaultModel
	}

	// 16:9 横版，与视频分镜一致
	size := "1280x720"
	if cfg.AspectRatio == "9:16" {
		size = "720x1280"
	}

	client := arkruntime.NewClientWithApiKey(cfg.APIKey, arkruntime.WithBaseUrl(baseURL))

	return &ArkProvider{
		client: client,
		model:  modelName,
		size:   size,
	}, nil
}

// Name 返回服务标识
func (p *ArkProvider) Name() string { return "ark" }

// GenerateImage 生成一张油画风格的历史场景图片
func (p *ArkProvider) GenerateImage(ctx context.Context, visualPrompt string) (*Result, error) {
	styledPrompt := prompts.BuildImagePrompt(visualPrompt)

	responseFormat := "url"
	watermark := false

	input := model.GenerateImagesRequest{
		Model:          p.model,
		Prompt:         styledPrompt,
		Size:           &p.size,
		ResponseFormat: &responseFormat,
		Watermark:      &watermark,
	}

	output, err := p.client.GenerateImages(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("model", p.model).Msg("ark image generation failed")
		return nil, pipeerr.NewProvider("ark", 0, "ark GenerateImages call failed", err)
	}

	if len(output.Data) == 0 {
		return nil, pipeerr.NewProvider("ark", 0, "no image data in ark response", nil)
	}

	first := output.Data[0]
	if first.Url == nil || *first.Url == "" {
		return nil, pipeerr.NewProvider("ark", 0, "no image URL in ark response", nil)
	}

	return &Result{
		URL:        *first.Url,
		PromptUsed: styledPrompt,
	}, nil
}
