package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"historia/internal/config"
	"historia/internal/pkg/pipeerr"
)

const (
	defaultBaseURL = "https://api.perplexity.ai"
	defaultModel   = "sonar-pro"
	defaultTimeout = 60 * time.Second
)

// Client 搜索增强研究服务客户端
// 兼容 Perplexity 的 chat/completions 接口
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建研究服务客户端
func NewClient(cfg *config.ResearchConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// QueryRequest 单次研究查询
type QueryRequest struct {
	System          string
	Prompt          string
	Temperature     float64
	MaxTokens       int
	ReturnCitations bool
}

// chatMessage chat/completions 消息体
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest chat/completions 请求体
type chatRequest struct {
	Model           string        `json:"model"`
	Messages        []chatMessage `json:"messages"`
	Temperature     float64       `json:"temperature,omitempty"`
	MaxTokens       int           `json:"max_tokens,omitempty"`
	ReturnCitations bool          `json:"return_citations,omitempty"`
}

// chatResponse chat/completions 响应体
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Query 执行一次研究查询，返回模型的文本输出
func (c *Client) Query(ctx context.Context, req *QueryRequest) (string, error) {
	if c.apiKey == "" {
		return "", pipeerr.NewProvider("research", 0, "research API key is not configured", nil)
	}

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(&chatRequest{
		Model:           c.model,
		Messages:        messages,
		Temperature:     req.Temperature,
		MaxTokens:       req.MaxTokens,
		ReturnCitations: req.ReturnCitations,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal research request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create research request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pipeerr.NewProvider("research", 0, "research request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", pipeerr.NewProvider("research", resp.StatusCode, "failed to read research response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", pipeerr.NewProvider("research", resp.StatusCode, fmt.Sprintf("research API returned %d: %s", resp.StatusCode, truncate(string(respBody), 200)), nil)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", pipeerr.NewProvider("research", resp.StatusCode, "failed to decode research response", err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", pipeerr.NewProvider("research", resp.StatusCode, "empty content in research response", nil)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
