package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"historia/internal/config"
	"historia/internal/pkg/pipeerr"
	"historia/internal/pkg/prompts"
)

const (
	falDefaultBaseURL = "https://fal.run"
	falDefaultModel   = "fal-ai/nano-banana"
	falDefaultTimeout = 120 * time.Second
)

// FalProvider fal.ai 图片生成客户端
type FalProvider struct {
	apiKey      string
	model       string
	baseURL     string
	aspectRatio string
	httpClient  *http.Client
}

// NewFalProvider 创建 fal.ai 图片生成客户端
func NewFalProvider(cfg *config.ImageConfig) *FalProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = falDefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = falDefaultModel
	}

	aspectRatio := cfg.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = falDefaultTimeout
	}

	return &FalProvider{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     baseURL,
		aspectRatio: aspectRatio,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name 返回服务标识
func (p *FalProvider) Name() string { return "fal" }

// falInput fal.ai 请求的 input 部分
type falInput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	NumImages      int    `json:"num_images"`
	AspectRatio    string `json:"aspect_ratio"`
	Seed           int    `json:"seed"`
}

// falImage 响应中的单张图片
type falImage struct {
	URL string `json:"url"`
}

// falResponse fal.ai 响应体
// 部分模型把 images 包在 data 下，两种布局都要兼容
type falResponse struct {
	Data *struct {
		Images []falImage `json:"images"`
	} `json:"data"`
	Images []falImage `json:"images"`
}

// GenerateImage 生成一张油画风格的历史场景图片
// 每次请求使用随机 seed 保证同一 prompt 的多次生成有差异
func (p *FalProvider) GenerateImage(ctx context.Context, visualPrompt string) (*Result, error) {
	if p.apiKey == "" {
		return nil, pipeerr.NewProvider("fal", 0, "fal API key is not configured", nil)
	}

	styledPrompt := prompts.BuildImagePrompt(visualPrompt)

	body, err := json.Marshal(map[string]any{
		"input": falInput{
			Prompt:         styledPrompt,
			NegativePrompt: prompts.NegativePromptHistorical,
			NumImages:      1,
			AspectRatio:    p.aspectRatio,
			Seed:           rand.Intn(1000000),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(p.baseURL, "/"), p.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create fal request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Key "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, pipeerr.NewProvider("fal", 0, "fal request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, pipeerr.NewProvider("fal", resp.StatusCode, "failed to read fal response", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("model", p.model).Msg("fal image generation failed")
		return nil, pipeerr.NewProvider("fal", resp.StatusCode, fmt.Sprintf("fal API returned %d", resp.StatusCode), nil)
	}

	var falResp falResponse
	if err := json.Unmarshal(respBody, &falResp); err != nil {
		return nil, pipeerr.NewProvider("fal", resp.StatusCode, "failed to decode fal response", err)
	}

	imageURL := ""
	if falResp.Data != nil && len(falResp.Data.Images) > 0 {
		imageURL = falResp.Data.Images[0].URL
	} else if len(falResp.Images) > 0 {
		imageURL = falResp.Images[0].URL
	}

	if imageURL == "" {
		return nil, pipeerr.NewProvider("fal", resp.StatusCode, "no image URL in fal response", nil)
	}

	return &Result{
		URL:        imageURL,
		PromptUsed: styledPrompt,
	}, nil
}
