package streamagg

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"historia/internal/ai"
)

// feed 把文本按固定步长切成流式片段，最后发送 Done
func feed(text string, step int) <-chan *ai.StreamChunk {
	ch := make(chan *ai.StreamChunk, 64)
	go func() {
		defer close(ch)
		for i := 0; i < len(text); i += step {
			end := i + step
			if end > len(text) {
				end = len(text)
			}
			ch <- &ai.StreamChunk{Content: text[i:end]}
		}
		ch <- &ai.StreamChunk{Done: true}
	}()
	return ch
}

func collect(events <-chan *Event) []*Event {
	var all []*Event
	for ev := range events {
		all = append(all, ev)
	}
	return all
}

func TestRun(t *testing.T) {
	Convey("Run 把流式输出聚合为进度事件流", t, func() {
		ctx := context.Background()
		payload := `[
			{"scene_number": 1, "script_snippet": "Rome fell.", "visual_prompt": "A burning city"},
			{"scene_number": 2, "script_snippet": "Caesar died.", "visual_prompt": "A senate hall"}
		]`

		Convey("逐字符投喂也能得到完整结果", func() {
			events := collect(Run(ctx, feed(payload, 1), Options{TargetScenes: 2}))
			So(len(events), ShouldBeGreaterThan, 1)

			last := events[len(events)-1]
			So(last.Type, ShouldEqual, EventComplete)
			So(len(last.Scenes), ShouldEqual, 2)
			So(last.Scenes[0].SceneNumber, ShouldEqual, 1)
			So(last.Scenes[1].VisualPrompt, ShouldEqual, "A senate hall")
			So(last.Summary, ShouldNotBeNil)
			So(last.Summary.TotalScenes, ShouldEqual, 2)
			So(last.Summary.TargetScenes, ShouldEqual, 2)

			Convey("complete 之前全部是 progress 事件", func() {
				for _, ev := range events[:len(events)-1] {
					So(ev.Type, ShouldEqual, EventProgress)
				}
			})

			Convey("progress 事件携带累积文本且单调增长", func() {
				prev := 0
				for _, ev := range events[:len(events)-1] {
					So(len(ev.Text), ShouldBeGreaterThanOrEqualTo, prev)
					prev = len(ev.Text)
				}
				So(events[len(events)-2].Text, ShouldEqual, payload)
			})
		})

		Convey("progress 事件报告已出现的最大场景编号", func() {
			events := collect(Run(ctx, feed(payload, 8), Options{TargetScenes: 2}))
			last := events[len(events)-2] // 最后一个 progress
			So(last.ScenesSoFar, ShouldEqual, 2)
		})

		Convey("空数组按失败处理", func() {
			events := collect(Run(ctx, feed("[]", 2), Options{}))
			last := events[len(events)-1]
			So(last.Type, ShouldEqual, EventError)
			So(last.Error, ShouldContainSubstring, "empty scene array")
		})

		Convey("上游错误转为 error 事件", func() {
			ch := make(chan *ai.StreamChunk, 2)
			ch <- &ai.StreamChunk{Content: "partial"}
			ch <- &ai.StreamChunk{Err: context.DeadlineExceeded}
			close(ch)

			events := collect(Run(ctx, ch, Options{}))
			last := events[len(events)-1]
			So(last.Type, ShouldEqual, EventError)
			So(last.Text, ShouldEqual, "partial")
		})

		Convey("上游未发 Done 直接关闭按异常终止处理", func() {
			ch := make(chan *ai.StreamChunk, 1)
			ch <- &ai.StreamChunk{Content: "["}
			close(ch)

			events := collect(Run(ctx, ch, Options{}))
			last := events[len(events)-1]
			So(last.Type, ShouldEqual, EventError)
			So(last.Error, ShouldContainSubstring, "stream ended unexpectedly")
		})
	})
}

func TestParseScenes(t *testing.T) {
	Convey("ParseScenes 解析完整输出并计算汇总", t, func() {
		Convey("截断的数组修复后解析", func() {
			raw := `[{"scene_number": 1, "script_snippet": "abcd", "visual_prompt": "p"}, {"scene_number": 2, "script_snippet": "ab", "visual_prompt": "q"`
			scenes, summary, err := ParseScenes(raw, 5)
			So(err, ShouldBeNil)
			So(len(scenes), ShouldEqual, 2)
			So(summary.TotalScenes, ShouldEqual, 2)
			So(summary.TargetScenes, ShouldEqual, 5)
			So(summary.AvgSnippetLength, ShouldEqual, 3.0)
		})

		Convey("无法解析时返回错误", func() {
			_, _, err := ParseScenes("not json", 1)
			So(err, ShouldNotBeNil)
		})

		Convey("只有对象开头没有场景数组内容时按失败处理", func() {
			_, _, err := ParseScenes(`{"scenes": [`, 1)
			So(err, ShouldNotBeNil)
		})
	})
}
