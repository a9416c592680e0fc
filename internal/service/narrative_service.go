package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"historia/internal/ai"
	"historia/internal/config"
	"historia/internal/model/storyboard"
	"historia/internal/pkg/cache"
	"historia/internal/pkg/jsonrepair"
	"historia/internal/pkg/pipeerr"
	"historia/internal/pkg/prompts"
	"historia/internal/pkg/research"
	"historia/internal/pkg/wordcount"
	sessionrepo "historia/internal/repository/session"
)

// 研究与生成阶段的模型参数
const (
	rawResearchTemperature        = 0.2
	rawResearchMaxTokens          = 3000
	structuredResearchTemperature = 0.3
	structuredResearchMaxTokens   = 8000

	outlineTemperature float32 = 0.7
	outlineMaxTokens           = 4096
	scriptTemperature  float32 = 0.7
)

// ResearchInput 历史研究请求
type ResearchInput struct {
	Title       string                   `json:"title"`
	Era         storyboard.HistoricalEra `json:"era"`
	ContentType storyboard.ContentType   `json:"content_type"`
}

// ResearchProvider 研究服务接口（便于单测注入）
type ResearchProvider interface {
	Query(ctx context.Context, req *research.QueryRequest) (string, error)
}

// NarrativeService 历史叙事服务接口
// 阶段机: idle -> researching -> outlining -> scripting -> done，失败回到 idle
type NarrativeService interface {
	Research(ctx context.Context, sessionID string, input *ResearchInput) (*storyboard.HistoricalResearch, error)
	Outline(ctx context.Context, sessionID string, tone storyboard.NarrativeTone) (*storyboard.NarrativeOutline, error)
	GenerateScript(ctx context.Context, sessionID string, targetDuration int) (*storyboard.Script, error)
}

type narrativeService struct {
	repo       sessionrepo.SessionRepository
	gen        TextGenerator
	researcher ResearchProvider
	cache      *cache.RedisCache // 可选，nil 表示不缓存
	cacheTTL   time.Duration
	useCache   bool
}

// NewNarrativeService 创建历史叙事服务
// redisCache 传 nil 时关闭研究结果缓存
func NewNarrativeService(repo sessionrepo.SessionRepository, gen TextGenerator, researcher ResearchProvider, redisCache *cache.RedisCache, cfg *config.ResearchConfig) NarrativeService {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cache.ResearchCacheTTL
	}

	return &narrativeService{
		repo:       repo,
		gen:        gen,
		researcher: researcher,
		cache:      redisCache,
		cacheTTL:   ttl,
		useCache:   cfg.EnableCache && redisCache != nil,
	}
}

// Research 执行两段式历史研究：先做开放式检索，再结构化
func (s *narrativeService) Research(ctx context.Context, sessionID string, input *ResearchInput) (*storyboard.HistoricalResearch, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pipeerr.NewValidation("title is required")
	}
	if err := storyboard.ValidateEra(input.Era); err != nil {
		return nil, pipeerr.NewValidation("%v", err)
	}
	if err := storyboard.ValidateContentType(input.ContentType); err != nil {
		return nil, pipeerr.NewValidation("%v", err)
	}

	sess, err := s.transition(ctx, sessionID, storyboard.StepResearch)
	if err != nil {
		return nil, err
	}

	// 0. 命中缓存直接复用（研究调用幂等且昂贵）
	cacheKey := researchCacheKey(input)
	if s.useCache {
		var cached storyboard.HistoricalResearch
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			log.Info().Str("session_id", sessionID).Str("title", input.Title).Msg("research cache hit")
			s.storeResearch(ctx, sess, input, &cached)
			return &cached, nil
		}
	}

	log.Info().
		Str("session_id", sessionID).
		Str("title", input.Title).
		Str("era", string(input.Era)).
		Str("content_type", string(input.ContentType)).
		Msg("starting historical research")

	// 1. 开放式检索：拿原始研究材料
	rawFindings, err := s.researcher.Query(ctx, &research.QueryRequest{
		System:          prompts.ResearchSystemPrompt,
		Prompt:          prompts.BuildResearchQuery(input.Title, input.Era, input.ContentType),
		Temperature:     rawResearchTemperature,
		MaxTokens:       rawResearchMaxTokens,
		ReturnCitations: true,
	})
	if err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}

	// 2. 结构化：把原始材料整理成固定 schema
	structured, err := s.researcher.Query(ctx, &research.QueryRequest{
		System:      prompts.SystemPrompt,
		Prompt:      prompts.HistoricalResearch(input.Title, input.Era, input.ContentType, rawFindings),
		Temperature: structuredResearchTemperature,
		MaxTokens:   structuredResearchMaxTokens,
	})
	if err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}

	var result storyboard.HistoricalResearch
	if err := jsonrepair.ExtractObject(structured, &result); err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}

	if result.RawResearchData == "" {
		result.RawResearchData = rawFindings
	}
	result.GeneratedAt = time.Now()

	if s.useCache {
		if err := s.cache.Set(ctx, cacheKey, &result, s.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache research result")
		}
	}

	s.storeResearch(ctx, sess, input, &result)
	return &result, nil
}

// storeResearch 把研究结果写入会话
func (s *narrativeService) storeResearch(ctx context.Context, sess *storyboard.Session, input *ResearchInput, result *storyboard.HistoricalResearch) {
	sess.Topic = input.Title
	sess.Era = input.Era
	sess.ContentType = input.ContentType
	sess.Research = result
	sess.LastError = ""
	if err := s.repo.Update(ctx, sess); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to store research result")
	}
}

// Outline 基于研究结果生成三幕结构大纲
func (s *narrativeService) Outline(ctx context.Context, sessionID string, tone storyboard.NarrativeTone) (*storyboard.NarrativeOutline, error) {
	if err := storyboard.ValidateTone(tone); err != nil {
		return nil, pipeerr.NewValidation("%v", err)
	}

	sess, err := s.transition(ctx, sessionID, storyboard.StepOutline)
	if err != nil {
		return nil, err
	}
	if sess.Research == nil {
		return nil, pipeerr.NewValidation("session has no research result, run research first")
	}

	researchJSON, err := json.Marshal(sess.Research)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize research: %w", err)
	}

	raw, err := s.gen.Generate(ctx, &ai.GenerateRequest{
		System:      prompts.SystemPrompt,
		Prompt:      prompts.NarrativeOutline(sess.Topic, string(researchJSON), tone),
		Temperature: outlineTemperature,
		MaxTokens:   outlineMaxTokens,
	})
	if err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}

	var outline storyboard.NarrativeOutline
	if err := jsonrepair.ExtractObject(raw, &outline); err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}
	outline.GeneratedAt = time.Now()

	sess.Tone = tone
	sess.Outline = &outline
	sess.LastError = ""
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID).
		Int("total_scenes", outline.TotalScenes()).
		Msg("narrative outline completed")

	return &outline, nil
}

// GenerateScript 基于研究与大纲生成最终解说词
// token 预算按目标时长饱和收敛，词数只报告不强制
func (s *narrativeService) GenerateScript(ctx context.Context, sessionID string, targetDuration int) (*storyboard.Script, error) {
	if targetDuration <= 0 {
		return nil, pipeerr.NewValidation("target duration must be positive, got %d", targetDuration)
	}

	sess, err := s.transition(ctx, sessionID, storyboard.StepScripting)
	if err != nil {
		return nil, err
	}
	if sess.Research == nil {
		return nil, pipeerr.NewValidation("session has no research result, run research first")
	}
	if sess.Outline == nil {
		return nil, pipeerr.NewValidation("session has no outline, run outline first")
	}

	researchJSON, err := json.Marshal(sess.Research)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize research: %w", err)
	}
	outlineJSON, err := json.Marshal(sess.Outline)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize outline: %w", err)
	}

	budget := wordcount.ScriptTokenBudget(targetDuration)

	content, err := s.gen.Generate(ctx, &ai.GenerateRequest{
		System:      prompts.SystemPrompt,
		Prompt:      prompts.FinalScript(sess.Topic, string(researchJSON), string(outlineJSON), sess.Tone, sess.Era, targetDuration),
		Temperature: scriptTemperature,
		MaxTokens:   budget,
	})
	if err != nil {
		s.reset(ctx, sessionID, err)
		return nil, err
	}
	content = strings.TrimSpace(content)

	words := wordcount.Count(content)
	script := &storyboard.Script{
		Content:        content,
		WordCount:      words,
		Topic:          sess.Topic,
		Tone:           sess.Tone,
		Era:            sess.Era,
		TargetDuration: targetDuration,
		GeneratedAt:    time.Now(),
		Version:        1,
	}

	sess.Script = script
	sess.CurrentStep = storyboard.StepDone
	sess.LastError = ""
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID).
		Int("word_count", words).
		Int("target_words", targetDuration*150).
		Float64("estimated_minutes", wordcount.EstimateDurationMinutes(words, 150)).
		Int("token_budget", budget).
		Msg("final script generated")

	return script, nil
}

// transition 推进会话阶段
func (s *narrativeService) transition(ctx context.Context, sessionID string, step storyboard.WorkflowStep) (*storyboard.Session, error) {
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

// reset 失败回到 idle
func (s *narrativeService) reset(ctx context.Context, sessionID string, cause error) {
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

// researchCacheKey 生成研究缓存 key（对 topic/era/content-type 取哈希）
func researchCacheKey(input *ResearchInput) string {
	sum := sha256.Sum256([]byte(strings.ToLower(input.Title) + "|" + string(input.Era) + "|" + string(input.ContentType)))
	return cache.ResearchCacheKeyPrefix + hex.EncodeToString(sum[:16])
}
