// Package streamagg 把场景拆解的流式模型输出聚合成带进度的事件流
//
// 事件序列约定：零或多个 progress 事件，最后恰好一个 complete 或 error 事件。
// 每个 progress 事件携带到当前为止累积的全部文本，消费方无需自行拼接。
package streamagg

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"historia/internal/ai"
	"historia/internal/model/storyboard"
	"historia/internal/pkg/jsonrepair"
)

// EventType 事件类型
type EventType string

const (
	EventProgress EventType = "progress" // 生成中，Text 为当前累积文本
	EventComplete EventType = "complete" // 生成完成，Scenes/Summary 为解析结果
	EventError    EventType = "error"    // 生成或解析失败
)

// Event 聚合后的单个事件
type Event struct {
	Type        EventType                `json:"type"`
	Text        string                   `json:"text,omitempty"`
	ScenesSoFar int                      `json:"scenes_so_far,omitempty"` // progress 事件里已出现的最大场景编号
	Scenes      []storyboard.Scene       `json:"scenes,omitempty"`
	Summary     *storyboard.SceneSummary `json:"summary,omitempty"`
	Error       string                   `json:"error,omitempty"`
}

// Options 聚合参数
type Options struct {
	TargetScenes int // 估算的目标场景数，进入 Summary
}

var sceneNumberPattern = regexp.MustCompile(`"scene_number"\s*:\s*(\d+)`)

// countPartialScenes 从未完成的输出中估算已生成的场景数（出现过的最大编号）
func countPartialScenes(text string) int {
	max := 0
	for _, m := range sceneNumberPattern.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}

// Run 消费模型的流式输出并产出事件流
// 返回的 channel 在发出 complete 或 error 事件后关闭
func Run(ctx context.Context, chunks <-chan *ai.StreamChunk, opts Options) <-chan *Event {
	events := make(chan *Event, 16)

	go func() {
		defer close(events)

		var acc strings.Builder

		for chunk := range chunks {
			if chunk.Err != nil {
				emit(ctx, events, &Event{Type: EventError, Text: acc.String(), Error: chunk.Err.Error()})
				return
			}
			if chunk.Done {
				finish(ctx, events, acc.String(), opts)
				return
			}

			acc.WriteString(chunk.Content)
			full := acc.String()
			if !emit(ctx, events, &Event{Type: EventProgress, Text: full, ScenesSoFar: countPartialScenes(full)}) {
				return
			}
		}

		// 上游 channel 未发 Done 直接关闭，按异常终止处理
		emit(ctx, events, &Event{Type: EventError, Text: acc.String(), Error: "stream ended unexpectedly"})
	}()

	return events
}

// finish 解析完整输出并发出终态事件
func finish(ctx context.Context, events chan<- *Event, full string, opts Options) {
	scenes, summary, err := ParseScenes(full, opts.TargetScenes)
	if err != nil {
		emit(ctx, events, &Event{Type: EventError, Text: full, Error: err.Error()})
		return
	}
	emit(ctx, events, &Event{Type: EventComplete, Text: full, Scenes: scenes, Summary: summary})
}

// ParseScenes 从完整输出中提取场景数组并计算汇总信息
// 空数组视为失败，保证 complete 事件总是携带至少一个场景
func ParseScenes(full string, targetScenes int) ([]storyboard.Scene, *storyboard.SceneSummary, error) {
	var scenes []storyboard.Scene
	if err := jsonrepair.ExtractArray(full, &scenes); err != nil {
		return nil, nil, err
	}

	if len(scenes) == 0 {
		return nil, nil, fmt.Errorf("model returned an empty scene array")
	}

	totalLen := 0
	for _, sc := range scenes {
		totalLen += len(sc.ScriptSnippet)
	}

	summary := &storyboard.SceneSummary{
		TotalScenes:      len(scenes),
		TargetScenes:     targetScenes,
		AvgSnippetLength: float64(totalLen) / float64(len(scenes)),
	}
	return scenes, summary, nil
}

func emit(ctx context.Context, events chan<- *Event, ev *Event) bool {
	select {
	case <-ctx.Done():
		return false
	case events <- ev:
		return true
	}
}
