package prompts

import (
	"strconv"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"historia/internal/model/storyboard"
)

func TestBuildImagePrompt(t *testing.T) {
	Convey("BuildImagePrompt 给视觉提示词追加油画风格", t, func() {
		prompt := BuildImagePrompt("Roman legions crossing the Rhine")

		So(prompt, ShouldStartWith, "Roman legions crossing the Rhine")
		So(prompt, ShouldEndWith, OilPaintingStyleSuffix)
		So(strings.ToLower(prompt), ShouldContainSubstring, "oil painting")
	})
}

func TestSceneBreakdown(t *testing.T) {
	Convey("SceneBreakdown 携带脚本与目标场景数", t, func() {
		script := "The empire endured for centuries before it fell."
		prompt := SceneBreakdown(script, 42)

		So(prompt, ShouldContainSubstring, script)
		So(prompt, ShouldContainSubstring, strconv.Itoa(42))
		So(prompt, ShouldContainSubstring, "scene_number")
		So(prompt, ShouldContainSubstring, "visual_prompt")
	})
}

func TestHistoricalResearch(t *testing.T) {
	Convey("HistoricalResearch 结构化研究提示词", t, func() {
		Convey("有原始材料时嵌入提示词", func() {
			prompt := HistoricalResearch("The Fall of Rome", storyboard.EraRomanEmpire, storyboard.ContentTypeBattle, "Raw: sacked in 410 AD")
			So(prompt, ShouldContainSubstring, "The Fall of Rome")
			So(prompt, ShouldContainSubstring, "Raw: sacked in 410 AD")
		})

		Convey("无原始材料时不出现嵌入段落", func() {
			prompt := HistoricalResearch("The Fall of Rome", storyboard.EraRomanEmpire, storyboard.ContentTypeBattle, "")
			So(prompt, ShouldNotContainSubstring, "Previous research findings")
		})
	})
}

func TestRewriteScript(t *testing.T) {
	Convey("RewriteScript 嵌入分析反馈", t, func() {
		analysis := &storyboard.ScriptAnalysis{
			Suggestions: []string{"Open with the sack of the city."},
		}
		analysis.Accuracy.Score = 80
		analysis.HookStrength.Score = 70
		analysis.RetentionTactics.Score = 90

		prompt := RewriteScript("The empire fell.", analysis)
		So(prompt, ShouldContainSubstring, "The empire fell.")
		So(prompt, ShouldContainSubstring, "80")
		So(prompt, ShouldContainSubstring, "Open with the sack of the city.")
	})
}

func TestFinalScript(t *testing.T) {
	Convey("FinalScript 按目标时长给出字数要求", t, func() {
		prompt := FinalScript("The Fall of Rome", "{}", "{}", storyboard.ToneEpic, storyboard.EraRomanEmpire, 10)
		So(prompt, ShouldContainSubstring, "The Fall of Rome")
		So(prompt, ShouldContainSubstring, "1500") // 10 分钟 × 150 词/分钟
	})
}
