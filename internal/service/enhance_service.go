package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"historia/internal/ai"
	"historia/internal/model/storyboard"
	"historia/internal/pkg/jsonrepair"
	"historia/internal/pkg/pipeerr"
	"historia/internal/pkg/prompts"
	"historia/internal/pkg/wordcount"
	sessionrepo "historia/internal/repository/session"
)

// 各增强阶段的模型参数
const (
	analyzeMaxTokens = 4096
	rewriteMaxTokens = 16384
	ttsMaxTokens     = 16000

	analyzeTemperature float32 = 0.5
	rewriteTemperature float32 = 0.7 // 重写允许更多创造性
	ttsTemperature     float32 = 0.3 // 排版任务压低随机性
)

// TTSResult 语音稿格式化的最终结果与词级校验报告
type TTSResult struct {
	Formatted      string `json:"formatted"`
	OriginalWords  int    `json:"original_words"`
	FormattedWords int    `json:"formatted_words"`
	WordsPreserved bool   `json:"words_preserved"`
	Warning        string `json:"warning,omitempty"`
}

// EnhanceService 解说词增强服务接口
// 阶段机: idle -> analyzing -> rewriting -> formatting -> done，失败回到 idle
type EnhanceService interface {
	AnalyzeScript(ctx context.Context, sessionID, script string) (*storyboard.ScriptAnalysis, error)
	RewriteScript(ctx context.Context, sessionID, script string, analysis *storyboard.ScriptAnalysis) (*storyboard.Script, error)
	FormatForTTS(ctx context.Context, sessionID, script string) (<-chan *ai.StreamChunk, error)
	VerifyTTSFormat(original, formatted string) *TTSResult
}

type enhanceService struct {
	repo sessionrepo.SessionRepository
	gen  TextGenerator
}

// NewEnhanceService 创建解说词增强服务
func NewEnhanceService(repo sessionrepo.SessionRepository, gen TextGenerator) EnhanceService {
	return &enhanceService{repo: repo, gen: gen}
}

// AnalyzeScript 分析解说词质量
func (s *enhanceService) AnalyzeScript(ctx context.Context, sessionID, script string) (*storyboard.ScriptAnalysis, error) {
	if len(script) < minScriptChars {
		return nil, pipeerr.NewValidation("script must be at least %d characters to analyze, got %d", minScriptChars, len(script))
	}

	sess, err := s.transition(ctx, sessionID, storyboard.StepAnalyzing)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.Generate(ctx, &ai.GenerateRequest{
		System:      prompts.SystemPrompt,
		Prompt:      prompts.AnalyzeScriptQuality(script),
		Temperature: analyzeTemperature,
		MaxTokens:   analyzeMaxTokens,
	})
	if err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}

	var analysis storyboard.ScriptAnalysis
	if err := jsonrepair.ExtractObject(raw, &analysis); err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}

	analysis.Overall = analysis.ComputeOverall()
	analysis.GeneratedAt = time.Now()

	sess.Analysis = &analysis
	sess.LastError = ""
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID).
		Int("accuracy", analysis.Accuracy.Score).
		Int("hook_strength", analysis.HookStrength.Score).
		Int("retention_tactics", analysis.RetentionTactics.Score).
		Int("overall", analysis.Overall).
		Msg("script analysis completed")

	return &analysis, nil
}

// RewriteScript 按分析反馈重写解说词
// 长度约束（±15%）由提示词软约束，这里记录偏差供观察
func (s *enhanceService) RewriteScript(ctx context.Context, sessionID, script string, analysis *storyboard.ScriptAnalysis) (*storyboard.Script, error) {
	if len(script) < minScriptChars {
		return nil, pipeerr.NewValidation("script must be at least %d characters to rewrite, got %d", minScriptChars, len(script))
	}

	sess, err := s.transition(ctx, sessionID, storyboard.StepRewriting)
	if err != nil {
		return nil, err
	}

	if analysis == nil {
		analysis = sess.Analysis
	}
	if analysis == nil {
		return nil, pipeerr.NewValidation("analysis result is required, run analyze first")
	}

	rewritten, err := s.gen.Generate(ctx, &ai.GenerateRequest{
		System:      prompts.SystemPrompt,
		Prompt:      prompts.RewriteScript(script, analysis),
		Temperature: rewriteTemperature,
		MaxTokens:   rewriteMaxTokens,
	})
	if err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}
	rewritten = strings.TrimSpace(rewritten)

	originalWords := wordcount.Count(script)
	rewrittenWords := wordcount.Count(rewritten)
	log.Info().
		Str("session_id", sessionID).
		Int("original_words", originalWords).
		Int("rewritten_words", rewrittenWords).
		Msg("script rewrite completed")

	// 旧版本进历史，重写结果成为当前版本
	now := time.Now()
	current := sess.Script
	if current == nil {
		current = &storyboard.Script{
			Content:     script,
			WordCount:   originalWords,
			GeneratedAt: now,
			Version:     1,
		}
	}

	current.ImprovementHistory = append(current.ImprovementHistory, storyboard.ScriptVersion{
		Version:             current.Version,
		Content:             current.Content,
		ImprovementsApplied: analysis.Suggestions,
		Timestamp:           now,
	})
	current.Content = rewritten
	current.WordCount = rewrittenWords
	current.Version++
	current.GeneratedAt = now

	sess.Script = current
	sess.LastError = ""
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	return current, nil
}

// FormatForTTS 把解说词重排版为适合语音合成的格式（流式原始文本）
// 流结束后做词级校验并把格式化结果落库；校验失败只记为质量告警，不中断
func (s *enhanceService) FormatForTTS(ctx context.Context, sessionID, script string) (<-chan *ai.StreamChunk, error) {
	if strings.TrimSpace(script) == "" {
		return nil, pipeerr.NewValidation("script is required for TTS formatting")
	}

	if _, err := s.transition(ctx, sessionID, storyboard.StepFormatting); err != nil {
		return nil, err
	}

	chunks, err := s.gen.GenerateStream(ctx, &ai.GenerateRequest{
		System:      prompts.TTSSystemPrompt,
		Prompt:      prompts.FormatForTTS(script),
		Temperature: ttsTemperature,
		MaxTokens:   ttsMaxTokens,
	})
	if err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}

	out := make(chan *ai.StreamChunk, 16)

	go func() {
		defer close(out)

		var acc strings.Builder
		for chunk := range chunks {
			if chunk.Err != nil {
				s.reset(ctx, sessionID, chunk.Err)
				out <- chunk
				return
			}
			if chunk.Done {
				s.finishFormat(ctx, sessionID, script, acc.String())
				out <- chunk
				return
			}

			acc.WriteString(chunk.Content)
			select {
			case <-ctx.Done():
				return
			case out <- chunk:
			}
		}
	}()

	return out, nil
}

// finishFormat 流结束后的校验与落库
func (s *enhanceService) finishFormat(ctx context.Context, sessionID, original, formatted string) {
	result := s.VerifyTTSFormat(original, formatted)

	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return
	}

	if sess.Script != nil {
		sess.Script.PolishedContent = formatted
		sess.Script.PolishedWordCount = result.FormattedWords
	}
	sess.CurrentStep = storyboard.StepDone
	sess.LastError = result.Warning
	if err := s.repo.Update(ctx, sess); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to store formatted script")
	}

	if !result.WordsPreserved {
		log.Warn().
			Str("session_id", sessionID).
			Int("original_words", result.OriginalWords).
			Int("formatted_words", result.FormattedWords).
			Msg("TTS formatting altered word content")
	}
}

// VerifyTTSFormat 词级比对原文与排版结果
// 重排版只允许改变空白，逐词序列必须完全一致
func (s *enhanceService) VerifyTTSFormat(original, formatted string) *TTSResult {
	origTokens := wordcount.Tokens(original)
	fmtTokens := wordcount.Tokens(formatted)

	result := &TTSResult{
		Formatted:      formatted,
		OriginalWords:  len(origTokens),
		FormattedWords: len(fmtTokens),
		WordsPreserved: true,
	}

	if len(origTokens) != len(fmtTokens) {
		result.WordsPreserved = false
		result.Warning = "formatted script word count differs from original"
		return result
	}

	for i := range origTokens {
		if origTokens[i] != fmtTokens[i] {
			result.WordsPreserved = false
			result.Warning = "formatted script diverges from original at word " + origTokens[i]
			return result
		}
	}
	return result
}

// transition 推进会话阶段
func (s *enhanceService) transition(ctx context.Context, sessionID string, step storyboard.WorkflowStep) (*storyboard.Session, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.CurrentStep = step
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// reset 失败回到 idle 并丢弃中间产物
func (s *enhanceService) reset(ctx context.Context, sessionID string, cause error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return
	}
	sess.CurrentStep = storyboard.StepIdle
	sess.LastError = cause.Error()
	if err := s.repo.Update(ctx, sess); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to reset session after failure")
	}
}
