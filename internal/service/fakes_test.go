package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"historia/internal/ai"
	"historia/internal/config"
	"historia/internal/pkg/imagegen"
	"historia/internal/pkg/research"
)

// fakeGen 可编排的文本生成器
type fakeGen struct {
	mu        sync.Mutex
	response  string
	streamTxt string
	err       error
	requests  []*ai.GenerateRequest
}

func (f *fakeGen) record(req *ai.GenerateRequest) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
}

func (f *fakeGen) Generate(ctx context.Context, req *ai.GenerateRequest) (string, error) {
	f.record(req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGen) GenerateStream(ctx context.Context, req *ai.GenerateRequest) (<-chan *ai.StreamChunk, error) {
	f.record(req)

	ch := make(chan *ai.StreamChunk, 64)
	go func() {
		defer close(ch)
		if f.err != nil {
			ch <- &ai.StreamChunk{Err: f.err}
			return
		}
		text := f.streamTxt
		for i := 0; i < len(text); i += 10 {
			end := i + 10
			if end > len(text) {
				end = len(text)
			}
			ch <- &ai.StreamChunk{Content: text[i:end]}
		}
		ch <- &ai.StreamChunk{Done: true}
	}()
	return ch, nil
}

// fakeImages 可编排的图片生成器
type fakeImages struct {
	mu      sync.Mutex
	calls   int
	failAll bool
	failOn  map[string]bool // 按 visual prompt 定点失败
}

func (f *fakeImages) GenerateImage(ctx context.Context, visualPrompt string) (*imagegen.Result, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if f.failAll || f.failOn[visualPrompt] {
		return nil, errors.New("image backend unavailable")
	}
	return &imagegen.Result{
		URL:        fmt.Sprintf("http://img.test/%d.png", n),
		PromptUsed: visualPrompt + ", oil painting",
	}, nil
}

func (f *fakeImages) Name() string { return "fake" }

func (f *fakeImages) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeResearcher 按顺序返回预置的研究响应
type fakeResearcher struct {
	mu        sync.Mutex
	responses []string
	requests  []*research.QueryRequest
	err       error
}

func (f *fakeResearcher) Query(ctx context.Context, req *research.QueryRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no fake response queued")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Image: config.ImageConfig{UnitCost: 0.039},
		Pipeline: config.PipelineConfig{
			SecondsPerScene:   7,
			WordsPerMinute:    150,
			MaxPooledImages:   60,
			PerSceneTokens:    120,
			TokenBuffer:       2000,
			MinBreakdownToken: 4096,
			MaxBreakdownToken: 32768,
		},
	}
}
