package service

import (
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"historia/internal/config"
	"historia/internal/model/storyboard"
	"historia/internal/pkg/pipeerr"
	sessionrepo "historia/internal/repository/session"
)

const structuredResearchJSON = `{
	"topic": "The Fall of the Western Roman Empire",
	"era": "Roman Empire",
	"timeline": [
		{"date": "410 AD", "event": "Sack of Rome by the Visigoths", "significance": "First sack in 800 years"},
		{"date": "476 AD", "event": "Deposition of Romulus Augustulus", "significance": "Conventional end of the western empire"}
	],
	"key_figures": [
		{"name": "Odoacer", "role": "Germanic general", "description": "Deposed the last western emperor"}
	],
	"sensory_details": {"setting": "crumbling marble forums", "weather": "cold northern winds", "sounds": "distant war horns", "visuals": "smoke over the city", "textures": "worn cobblestones"},
	"primary_sources": ["Zosimus, New History"],
	"dramatic_arcs": ["From eternal city to conquered capital"],
	"cultural_context": "A society stretched beyond its means"
}`

const outlineJSON = `{
	"act1_setup": {"act_name": "Setup", "scenes": ["The empire at its height", "Cracks appear"], "goal": "Establish the stakes"},
	"act2_conflict": {"act_name": "Conflict", "scenes": ["Invasions begin", "Rome sacked", "The center fails"], "goal": "Escalate the collapse"},
	"act3_resolution": {"act_name": "Resolution", "scenes": ["The last emperor"], "goal": "Land the ending"},
	"narrative_theme": "No empire is eternal",
	"dramatic_question": "How does the greatest power in the world fall?"
}`

func newNarrativeFixture(gen *fakeGen, researcher *fakeResearcher) (NarrativeService, sessionrepo.SessionRepository) {
	repo := sessionrepo.NewRepo()
	svc := NewNarrativeService(repo, gen, researcher, nil, &config.ResearchConfig{EnableCache: true})
	return svc, repo
}

func TestNarrativeService_Research(t *testing.T) {
	Convey("Research 执行两段式历史研究", t, func() {
		ctx := context.Background()

		input := &ResearchInput{
			Title:       "The Fall of the Western Roman Empire",
			Era:         storyboard.EraRomanEmpire,
			ContentType: storyboard.ContentTypeBattle,
		}

		Convey("非法输入被拒绝", func() {
			svc, _ := newNarrativeFixture(&fakeGen{}, &fakeResearcher{})

			_, err := svc.Research(ctx, "any", &ResearchInput{Title: "", Era: storyboard.EraOther, ContentType: storyboard.ContentTypeBattle})
			So(pipeerr.IsValidation(err), ShouldBeTrue)

			_, err = svc.Research(ctx, "any", &ResearchInput{Title: "t", Era: "Space Age", ContentType: storyboard.ContentTypeBattle})
			So(pipeerr.IsValidation(err), ShouldBeTrue)

			_, err = svc.Research(ctx, "any", &ResearchInput{Title: "t", Era: storyboard.EraOther, ContentType: "Podcast"})
			So(pipeerr.IsValidation(err), ShouldBeTrue)
		})

		Convey("成功时两次调用研究服务并保留原始材料", func() {
			researcher := &fakeResearcher{responses: []string{
				"Raw findings: Rome was sacked in 410 AD.",
				structuredResearchJSON,
			}}
			svc, repo := newNarrativeFixture(&fakeGen{}, researcher)
			sess, _ := repo.Create(ctx)

			result, err := svc.Research(ctx, sess.ID, input)
			So(err, ShouldBeNil)
			So(result.Topic, ShouldEqual, "The Fall of the Western Roman Empire")
			So(len(result.Timeline), ShouldEqual, 2)
			So(result.RawResearchData, ShouldEqual, "Raw findings: Rome was sacked in 410 AD.")

			Convey("第一次调用要求引用来源，第二次嵌入原始材料", func() {
				So(len(researcher.requests), ShouldEqual, 2)
				So(researcher.requests[0].ReturnCitations, ShouldBeTrue)
				So(researcher.requests[0].Temperature, ShouldEqual, 0.2)
				So(researcher.requests[0].MaxTokens, ShouldEqual, 3000)
				So(researcher.requests[1].Prompt, ShouldContainSubstring, "Rome was sacked in 410 AD.")
				So(researcher.requests[1].MaxTokens, ShouldEqual, 8000)
			})

			Convey("研究结果与主题写入会话", func() {
				stored, _ := repo.Get(ctx, sess.ID)
				So(stored.Topic, ShouldEqual, input.Title)
				So(stored.Era, ShouldEqual, storyboard.EraRomanEmpire)
				So(stored.Research, ShouldNotBeNil)
			})
		})

		Convey("研究服务失败时会话回到 idle", func() {
			researcher := &fakeResearcher{err: pipeerr.NewProvider("perplexity", 502, "upstream error", nil)}
			svc, repo := newNarrativeFixture(&fakeGen{}, researcher)
			sess, _ := repo.Create(ctx)

			_, err := svc.Research(ctx, sess.ID, input)
			So(err, ShouldNotBeNil)

			stored, _ := repo.Get(ctx, sess.ID)
			So(stored.CurrentStep, ShouldEqual, storyboard.StepIdle)
			So(stored.LastError, ShouldNotBeEmpty)
		})
	})
}

func TestNarrativeService_Outline(t *testing.T) {
	Convey("Outline 基于研究结果生成三幕大纲", t, func() {
		ctx := context.Background()

		seedResearch := func(repo sessionrepo.SessionRepository) string {
			sess, _ := repo.Create(ctx)
			sess.Topic = "The Fall of Rome"
			sess.Research = &storyboard.HistoricalResearch{Topic: "The Fall of Rome", Era: storyboard.EraRomanEmpire}
			So(repo.Update(ctx, sess), ShouldBeNil)
			return sess.ID
		}

		Convey("非法基调被拒绝", func() {
			svc, repo := newNarrativeFixture(&fakeGen{}, &fakeResearcher{})
			id := seedResearch(repo)

			_, err := svc.Outline(ctx, id, "Sarcastic")
			So(pipeerr.IsValidation(err), ShouldBeTrue)
		})

		Convey("缺少研究结果被拒绝", func() {
			svc, repo := newNarrativeFixture(&fakeGen{}, &fakeResearcher{})
			sess, _ := repo.Create(ctx)

			_, err := svc.Outline(ctx, sess.ID, storyboard.ToneEpic)
			So(pipeerr.IsValidation(err), ShouldBeTrue)
		})

		Convey("成功时大纲与基调写入会话", func() {
			gen := &fakeGen{response: outlineJSON}
			svc, repo := newNarrativeFixture(gen, &fakeResearcher{})
			id := seedResearch(repo)

			outline, err := svc.Outline(ctx, id, storyboard.ToneEpic)
			So(err, ShouldBeNil)
			So(outline.NarrativeTheme, ShouldEqual, "No empire is eternal")
			So(outline.TotalScenes(), ShouldEqual, 6)

			stored, _ := repo.Get(ctx, id)
			So(stored.Tone, ShouldEqual, storyboard.ToneEpic)
			So(stored.Outline, ShouldNotBeNil)

			Convey("提示词携带研究上下文", func() {
				So(len(gen.requests), ShouldEqual, 1)
				So(gen.requests[0].Prompt, ShouldContainSubstring, "The Fall of Rome")
			})
		})
	})
}

func TestNarrativeService_GenerateScript(t *testing.T) {
	Convey("GenerateScript 生成最终解说词", t, func() {
		ctx := context.Background()

		seed := func(repo sessionrepo.SessionRepository) string {
			sess, _ := repo.Create(ctx)
			sess.Topic = "The Fall of Rome"
			sess.Era = storyboard.EraRomanEmpire
			sess.Tone = storyboard.ToneEpic
			sess.Research = &storyboard.HistoricalResearch{Topic: "The Fall of Rome"}
			sess.Outline = &storyboard.NarrativeOutline{NarrativeTheme: "No empire is eternal"}
			So(repo.Update(ctx, sess), ShouldBeNil)
			return sess.ID
		}

		Convey("目标时长必须为正", func() {
			svc, repo := newNarrativeFixture(&fakeGen{}, &fakeResearcher{})
			id := seed(repo)

			_, err := svc.GenerateScript(ctx, id, 0)
			So(pipeerr.IsValidation(err), ShouldBeTrue)
		})

		Convey("缺少大纲被拒绝", func() {
			svc, repo := newNarrativeFixture(&fakeGen{}, &fakeResearcher{})
			sess, _ := repo.Create(ctx)
			sess.Research = &storyboard.HistoricalResearch{}
			So(repo.Update(ctx, sess), ShouldBeNil)

			_, err := svc.GenerateScript(ctx, sess.ID, 5)
			So(pipeerr.IsValidation(err), ShouldBeTrue)
		})

		Convey("成功时脚本写入会话且流程进入 done", func() {
			content := strings.Repeat("The legions marched north. ", 50)
			gen := &fakeGen{response: content}
			svc, repo := newNarrativeFixture(gen, &fakeResearcher{})
			id := seed(repo)

			script, err := svc.GenerateScript(ctx, id, 10)
			So(err, ShouldBeNil)
			So(script.Version, ShouldEqual, 1)
			So(script.WordCount, ShouldEqual, 200)
			So(script.TargetDuration, ShouldEqual, 10)
			So(script.Tone, ShouldEqual, storyboard.ToneEpic)

			stored, _ := repo.Get(ctx, id)
			So(stored.Script, ShouldNotBeNil)
			So(stored.CurrentStep, ShouldEqual, storyboard.StepDone)

			Convey("token 预算按目标时长收敛", func() {
				So(len(gen.requests), ShouldEqual, 1)
				So(gen.requests[0].MaxTokens, ShouldEqual, 2250) // 10 * 150 * 1.5
			})
		})
	})
}
