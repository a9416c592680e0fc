package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"historia/internal/ai/component"
	"historia/internal/config"
	"historia/internal/pkg/pipeerr"
)

// Client 文本生成能力层客户端
// 职责: 封装 ChatModel，提供同步与流式两种生成接口
type Client struct {
	cfg       *config.AIConfig
	chatModel model.ChatModel
}

// NewClient 创建文本生成客户端
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		log.Warn().Msg("AI API key not configured, provider calls will fail")
	}

	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &Client{
		cfg:       cfg,
		chatModel: chatModel,
	}, nil
}

// GenerateRequest 单次文本生成请求
type GenerateRequest struct {
	System      string  // 系统提示词（可选）
	Prompt      string  // 用户提示词
	Temperature float32 // 采样温度（0 表示使用模型默认值）
	MaxTokens   int     // token 预算（0 表示使用模型默认值）
}

// StreamChunk 流式生成的单个片段
// Done 为 true 表示流正常结束；Err 非空表示流异常终止
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

// Generate 同步生成文本
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	resp, err := c.chatModel.Generate(ctx, buildMessages(req), buildOptions(req)...)
	if err != nil {
		return "", pipeerr.NewProvider("text", 0, "generate failed", err)
	}

	if resp.Content == "" {
		return "", pipeerr.NewProvider("text", 0, "empty response from chat model", nil)
	}
	return resp.Content, nil
}

// GenerateStream 流式生成文本
// 返回的 channel 在流结束（Done 或 Err）后关闭；
// 片段按到达顺序投递，调用方在单个消费协程内处理
func (c *Client) GenerateStream(ctx context.Context, req *GenerateRequest) (<-chan *StreamChunk, error) {
	reader, err := c.chatModel.Stream(ctx, buildMessages(req), buildOptions(req)...)
	if err != nil {
		return nil, pipeerr.NewProvider("text", 0, "stream open failed", err)
	}

	ch := make(chan *StreamChunk, 16)

	go func() {
		defer close(ch)
		defer reader.Close()

		for {
			msg, recvErr := reader.Recv()
			if errors.Is(recvErr, io.EOF) {
				ch <- &StreamChunk{Done: true}
				return
			}
			if recvErr != nil {
				ch <- &StreamChunk{Err: pipeerr.NewProvider("text", 0, "stream receive failed", recvErr)}
				return
			}
			if msg.Content == "" {
				continue
			}

			select {
			case <-ctx.Done():
				ch <- &StreamChunk{Err: ctx.Err()}
				return
			case ch <- &StreamChunk{Content: msg.Content}:
			}
		}
	}()

	return ch, nil
}

// buildMessages 构建消息列表
func buildMessages(req *GenerateRequest) []*schema.Message {
	messages := make([]*schema.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, schema.SystemMessage(req.System))
	}
	messages = append(messages, schema.UserMessage(req.Prompt))
	return messages
}

// buildOptions 构建单次调用的模型参数
func buildOptions(req *GenerateRequest) []model.Option {
	var opts []model.Option
	if req.Temperature > 0 {
		opts = append(opts, model.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}
	return opts
}
