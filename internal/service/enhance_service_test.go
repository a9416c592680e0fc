package service

import (
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"historia/internal/ai"
	"historia/internal/model/storyboard"
	"historia/internal/pkg/pipeerr"
	sessionrepo "historia/internal/repository/session"
)

const analysisJSON = `{
	"accuracy": {"score": 80, "feedback": "Mostly accurate."},
	"hook_strength": {"score": 70, "feedback": "Opening could be stronger."},
	"retention_tactics": {"score": 90, "feedback": "Good pacing throughout."},
	"philosopher_insights": [
		{"philosopher": "Marcus Aurelius", "insight": "Impermanence of empires.", "relevance": "closing section"}
	],
	"suggestions": ["Open with the sack of the city.", "Tighten the middle section."]
}`

func TestEnhanceService_AnalyzeScript(t *testing.T) {
	Convey("AnalyzeScript 分析解说词质量", t, func() {
		ctx := context.Background()
		repo := sessionrepo.NewRepo()
		script := strings.Repeat("The empire endured for centuries. ", 10)

		Convey("过短的解说词被拒绝", func() {
			svc := NewEnhanceService(repo, &fakeGen{})
			sess, _ := repo.Create(ctx)

			_, err := svc.AnalyzeScript(ctx, sess.ID, "short")
			So(pipeerr.IsValidation(err), ShouldBeTrue)
		})

		Convey("成功时计算总分并写入会话", func() {
			gen := &fakeGen{response: analysisJSON}
			svc := NewEnhanceService(repo, gen)
			sess, _ := repo.Create(ctx)

			analysis, err := svc.AnalyzeScript(ctx, sess.ID, script)
			So(err, ShouldBeNil)
			So(analysis.Accuracy.Score, ShouldEqual, 80)
			So(analysis.HookStrength.Score, ShouldEqual, 70)
			So(analysis.RetentionTactics.Score, ShouldEqual, 90)
			So(analysis.Overall, ShouldEqual, 80) // round((80+70+90)/3)
			So(len(analysis.PhilosopherInsights), ShouldEqual, 1)
			So(len(analysis.Suggestions), ShouldEqual, 2)

			stored, _ := repo.Get(ctx, sess.ID)
			So(stored.Analysis, ShouldNotBeNil)
			So(stored.Analysis.Overall, ShouldEqual, 80)
		})

		Convey("模型输出无法解析时会话回到 idle", func() {
			gen := &fakeGen{response: "I cannot produce an analysis."}
			svc := NewEnhanceService(repo, gen)
			sess, _ := repo.Create(ctx)

			_, err := svc.AnalyzeScript(ctx, sess.ID, script)
			So(err, ShouldNotBeNil)

			stored, _ := repo.Get(ctx, sess.ID)
			So(stored.CurrentStep, ShouldEqual, storyboard.StepIdle)
			So(stored.LastError, ShouldNotBeEmpty)
		})
	})
}

func TestEnhanceService_RewriteScript(t *testing.T) {
	Convey("RewriteScript 按分析反馈重写解说词", t, func() {
		ctx := context.Background()
		repo := sessionrepo.NewRepo()
		script := strings.Repeat("The empire endured for centuries. ", 10)

		var analysis storyboard.ScriptAnalysis
		analysis.Accuracy.Score = 80
		analysis.HookStrength.Score = 70
		analysis.RetentionTactics.Score = 90
		analysis.Suggestions = []string{"Open with the sack of the city."}

		Convey("没有分析结果时被拒绝", func() {
			svc := NewEnhanceService(repo, &fakeGen{})
			sess, _ := repo.Create(ctx)

			_, err := svc.RewriteScript(ctx, sess.ID, script, nil)
			So(pipeerr.IsValidation(err), ShouldBeTrue)
		})

		Convey("首次重写创建版本历史", func() {
			gen := &fakeGen{response: "The city burned while the senate argued."}
			svc := NewEnhanceService(repo, gen)
			sess, _ := repo.Create(ctx)

			rewritten, err := svc.RewriteScript(ctx, sess.ID, script, &analysis)
			So(err, ShouldBeNil)
			So(rewritten.Content, ShouldEqual, "The city burned while the senate argued.")
			So(rewritten.Version, ShouldEqual, 2)
			So(len(rewritten.ImprovementHistory), ShouldEqual, 1)
			So(rewritten.ImprovementHistory[0].Version, ShouldEqual, 1)
			So(rewritten.ImprovementHistory[0].Content, ShouldEqual, script)
			So(rewritten.ImprovementHistory[0].ImprovementsApplied, ShouldResemble, analysis.Suggestions)

			stored, _ := repo.Get(ctx, sess.ID)
			So(stored.Script.Version, ShouldEqual, 2)
		})

		Convey("已有脚本时在其版本链上递增", func() {
			gen := &fakeGen{response: "A fresh telling of the fall."}
			svc := NewEnhanceService(repo, gen)

			sess, _ := repo.Create(ctx)
			sess.Script = &storyboard.Script{Content: script, WordCount: 70, Version: 3}
			So(repo.Update(ctx, sess), ShouldBeNil)

			rewritten, err := svc.RewriteScript(ctx, sess.ID, script, &analysis)
			So(err, ShouldBeNil)
			So(rewritten.Version, ShouldEqual, 4)
			So(len(rewritten.ImprovementHistory), ShouldEqual, 1)
			So(rewritten.ImprovementHistory[0].Version, ShouldEqual, 3)
		})

		Convey("复用会话中已有的分析结果", func() {
			gen := &fakeGen{response: "Rewritten with stored analysis."}
			svc := NewEnhanceService(repo, gen)

			sess, _ := repo.Create(ctx)
			sess.Analysis = &analysis
			So(repo.Update(ctx, sess), ShouldBeNil)

			rewritten, err := svc.RewriteScript(ctx, sess.ID, script, nil)
			So(err, ShouldBeNil)
			So(rewritten.Content, ShouldEqual, "Rewritten with stored analysis.")
		})
	})
}

func TestEnhanceService_FormatForTTS(t *testing.T) {
	Convey("FormatForTTS 流式重排版并做词级校验", t, func() {
		ctx := context.Background()
		script := "Rome fell. Caesar died. The legions marched home."

		drain := func(chunks <-chan *ai.StreamChunk) string {
			var b strings.Builder
			for c := range chunks {
				b.WriteString(c.Content)
			}
			return b.String()
		}

		Convey("空脚本被拒绝", func() {
			repo := sessionrepo.NewRepo()
			svc := NewEnhanceService(repo, &fakeGen{})
			sess, _ := repo.Create(ctx)

			_, err := svc.FormatForTTS(ctx, sess.ID, "   ")
			So(pipeerr.IsValidation(err), ShouldBeTrue)
		})

		Convey("仅改变空白时校验通过并落库", func() {
			repo := sessionrepo.NewRepo()
			formatted := "Rome fell.\n\nCaesar died.\n\nThe legions marched home."
			gen := &fakeGen{streamTxt: formatted}
			svc := NewEnhanceService(repo, gen)

			sess, _ := repo.Create(ctx)
			sess.Script = &storyboard.Script{Content: script, WordCount: 9, Version: 1}
			So(repo.Update(ctx, sess), ShouldBeNil)

			chunks, err := svc.FormatForTTS(ctx, sess.ID, script)
			So(err, ShouldBeNil)
			So(drain(chunks), ShouldEqual, formatted)

			stored, _ := repo.Get(ctx, sess.ID)
			So(stored.Script.PolishedContent, ShouldEqual, formatted)
			So(stored.Script.PolishedWordCount, ShouldEqual, 9)
			So(stored.CurrentStep, ShouldEqual, storyboard.StepDone)
			So(stored.LastError, ShouldBeEmpty)
		})

		Convey("丢词时记录质量告警但不中断", func() {
			repo := sessionrepo.NewRepo()
			gen := &fakeGen{streamTxt: "Rome fell.\n\nCaesar died."}
			svc := NewEnhanceService(repo, gen)

			sess, _ := repo.Create(ctx)
			sess.Script = &storyboard.Script{Content: script, WordCount: 9, Version: 1}
			So(repo.Update(ctx, sess), ShouldBeNil)

			chunks, err := svc.FormatForTTS(ctx, sess.ID, script)
			So(err, ShouldBeNil)
			So(drain(chunks), ShouldNotBeEmpty)

			stored, _ := repo.Get(ctx, sess.ID)
			So(stored.CurrentStep, ShouldEqual, storyboard.StepDone)
			So(stored.LastError, ShouldContainSubstring, "word count differs")
		})
	})
}

func TestEnhanceService_VerifyTTSFormat(t *testing.T) {
	Convey("VerifyTTSFormat 逐词比对原文与排版结果", t, func() {
		svc := NewEnhanceService(sessionrepo.NewRepo(), &fakeGen{})

		Convey("只改变空白时判定为保留", func() {
			result := svc.VerifyTTSFormat("Rome fell. Caesar died.", "Rome fell.\n\nCaesar   died.")
			So(result.WordsPreserved, ShouldBeTrue)
			So(result.OriginalWords, ShouldEqual, 4)
			So(result.FormattedWords, ShouldEqual, 4)
			So(result.Warning, ShouldBeEmpty)
		})

		Convey("词数不同判定为未保留", func() {
			result := svc.VerifyTTSFormat("Rome fell. Caesar died.", "Rome fell.")
			So(result.WordsPreserved, ShouldBeFalse)
			So(result.Warning, ShouldNotBeEmpty)
		})

		Convey("词内容改变判定为未保留", func() {
			result := svc.VerifyTTSFormat("Rome fell. Caesar died.", "Rome rose. Caesar died.")
			So(result.WordsPreserved, ShouldBeFalse)
			So(result.Warning, ShouldContainSubstring, "diverges")
		})
	})
}
