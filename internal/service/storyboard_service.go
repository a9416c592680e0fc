package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"historia/internal/ai"
	"historia/internal/config"
	"historia/internal/model/storyboard"
	"historia/internal/pkg/imagegen"
	"historia/internal/pkg/pipeerr"
	"historia/internal/pkg/prompts"
	"historia/internal/pkg/streamagg"
	"historia/internal/pkg/wordcount"
	sessionrepo "historia/internal/repository/session"
)

// minScriptChars 场景拆解 / 质量分析的最小输入长度
const minScriptChars = 50

// TextGenerator 文本生成能力接口（便于单测注入）
type TextGenerator interface {
	Generate(ctx context.Context, req *ai.GenerateRequest) (string, error)
	GenerateStream(ctx context.Context, req *ai.GenerateRequest) (<-chan *ai.StreamChunk, error)
}

// SceneUpdate 分镜生成过程中的单条状态推送
type SceneUpdate struct {
	Scene         storyboard.StoryboardScene `json:"scene"`
	Completed     int                        `json:"completed"`
	Failed        int                        `json:"failed"`
	Total         int                        `json:"total"`
	PoolSize      int                        `json:"pool_size,omitempty"`
	EstimatedCost float64                    `json:"estimated_cost,omitempty"`
	Done          bool                       `json:"done,omitempty"`
}

// StoryboardService 分镜服务接口
// 覆盖场景拆解、图片池生成与单场景重生成
type StoryboardService interface {
	Breakdown(ctx context.Context, sessionID, script string) (<-chan *streamagg.Event, error)
	GenerateStoryboard(ctx context.Context, sessionID string, cap int) (<-chan *SceneUpdate, error)
	RegenerateScene(ctx context.Context, sessionID string, sceneNumber int, newPrompt string) (*storyboard.StoryboardScene, error)
	RetryFailedScenes(ctx context.Context, sessionID string) ([]storyboard.StoryboardScene, error)
}

type storyboardService struct {
	repo     sessionrepo.SessionRepository
	gen      TextGenerator
	images   imagegen.Provider
	pipeline *config.PipelineConfig
	unitCost float64
}

// NewStoryboardService 创建分镜服务
func NewStoryboardService(repo sessionrepo.SessionRepository, gen TextGenerator, images imagegen.Provider, cfg *config.Config) StoryboardService {
	return &storyboardService{
		repo:     repo,
		gen:      gen,
		images:   images,
		pipeline: &cfg.Pipeline,
		unitCost: cfg.Image.UnitCost,
	}
}

// Breakdown 把解说词拆解为视觉场景列表（流式）
// 事件流转发自聚合器，complete 事件到达时场景列表已写入会话
func (s *storyboardService) Breakdown(ctx context.Context, sessionID, script string) (<-chan *streamagg.Event, error) {
	if len(script) < minScriptChars {
		return nil, pipeerr.NewValidation("script must be at least %d characters, got %d", minScriptChars, len(script))
	}

	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 1. 估算目标场景数与 token 预算
	targetScenes := wordcount.EstimateScenes(script, s.pipeline.SecondsPerScene, s.pipeline.WordsPerMinute)
	budget := wordcount.TokenBudget(targetScenes, s.pipeline.PerSceneTokens, s.pipeline.TokenBuffer,
		s.pipeline.MinBreakdownToken, s.pipeline.MaxBreakdownToken)

	log.Info().
		Str("session_id", sessionID).
		Int("words", wordcount.Count(script)).
		Int("target_scenes", targetScenes).
		Int("token_budget", budget).
		Msg("starting scene breakdown")

	// 2. 发起流式生成
	chunks, err := s.gen.GenerateStream(ctx, &ai.GenerateRequest{
		System:    prompts.SystemPrompt,
		Prompt:    prompts.SceneBreakdown(script, targetScenes),
		MaxTokens: budget,
	})
	if err != nil {
		return nil, err
	}

	sess.CurrentStep = storyboard.StepBreakdown
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	// 3. 聚合并在完成时落库
	events := streamagg.Run(ctx, chunks, streamagg.Options{TargetScenes: targetScenes})
	out := make(chan *streamagg.Event, 16)

	go func() {
		defer close(out)
		for ev := range events {
			switch ev.Type {
			case streamagg.EventComplete:
				s.storeScenes(ctx, sessionID, ev.Scenes)
			case streamagg.EventError:
				log.Error().Str("session_id", sessionID).Str("error", ev.Error).Msg("scene breakdown failed")
				s.markFailed(ctx, sessionID, ev.Error)
			}

			select {
			case <-ctx.Done():
				return
			case out <- ev:
			}
		}
	}()

	return out, nil
}

// storeScenes 整体替换会话的场景集合（重跑覆盖旧结果）
func (s *storyboardService) storeScenes(ctx context.Context, sessionID string, scenes []storyboard.Scene) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session for scene store")
		return
	}

	sess.Scenes = scenes
	sess.StoryboardScenes = nil
	sess.LastError = ""
	if err := s.repo.Update(ctx, sess); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to store scenes")
	}
}

// markFailed 记录会话级错误并回到 idle
func (s *storyboardService) markFailed(ctx context.Context, sessionID, message string) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return
	}
	sess.CurrentStep = storyboard.StepIdle
	sess.LastError = message
	if err := s.repo.Update(ctx, sess); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to record session error")
	}
}

// GenerateStoryboard 生成图片池并分配给全部场景
//
// 成本上限: 实际发起的图片请求数 K = min(场景数, cap)，
// 多出的场景通过洗牌后的 i mod K 规则复用池内图片
func (s *storyboardService) GenerateStoryboard(ctx context.Context, sessionID string, cap int) (<-chan *SceneUpdate, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sess.Scenes) == 0 {
		return nil, pipeerr.NewValidation("session has no scenes, run breakdown first")
	}

	if cap <= 0 || cap > s.pipeline.MaxPooledImages {
		cap = s.pipeline.MaxPooledImages
	}

	scenes := sess.Scenes
	total := len(scenes)
	poolSize := total
	if poolSize > cap {
		poolSize = cap
	}

	// 全量物化为 pending 状态（重跑整体替换）
	sess.StoryboardScenes = storyboard.NewStoryboardScenes(scenes)
	sess.CurrentStep = storyboard.StepStoryboard
	sess.LastError = ""
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID).
		Int("total_scenes", total).
		Int("pool_size", poolSize).
		Float64("estimated_cost", float64(poolSize)*s.unitCost).
		Msg("starting storyboard generation")

	updates := make(chan *SceneUpdate, total+poolSize+4)

	go s.runPool(ctx, sessionID, scenes, poolSize, updates)

	return updates, nil
}

// poolEntry 图片池槽位，生成失败时保持零值
type poolEntry struct {
	url        string
	promptUsed string
}

// runPool 执行并发扇出、汇合与洗牌分配
func (s *storyboardService) runPool(ctx context.Context, sessionID string, scenes []storyboard.Scene, poolSize int, updates chan<- *SceneUpdate) {
	defer close(updates)

	total := len(scenes)
	pool := make([]poolEntry, poolSize)

	var (
		mu        sync.Mutex
		completed int
		failed    int
	)

	send := func(u *SceneUpdate) {
		select {
		case <-ctx.Done():
		case updates <- u:
		}
	}

	push := func(sc storyboard.StoryboardScene, done bool) {
		merged, err := s.repo.MergeScenes(ctx, sessionID, []storyboard.StoryboardScene{sc})
		if err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("failed to merge scene update")
		}
		_ = merged

		mu.Lock()
		u := &SceneUpdate{
			Scene:         sc,
			Completed:     completed,
			Failed:        failed,
			Total:         total,
			PoolSize:      poolSize,
			EstimatedCost: float64(poolSize) * s.unitCost,
			Done:          done,
		}
		mu.Unlock()
		send(u)
	}

	// 1. 并发扇出：前 poolSize 个场景各自发起一次图片请求
	var wg sync.WaitGroup
	for i := 0; i < poolSize; i++ {
		sc := storyboard.StoryboardScene{
			Scene:  scenes[i],
			Status: storyboard.GenerationStatusGenerating,
		}
		push(sc, false)

		wg.Add(1)
		go func(idx int, sc storyboard.StoryboardScene) {
			defer wg.Done()

			result, err := s.images.GenerateImage(ctx, sc.VisualPrompt)
			if err != nil {
				log.Warn().Err(err).Int("scene", sc.SceneNumber).Msg("pool image generation failed")
				sc.Status = storyboard.GenerationStatusError
				sc.ErrorMessage = err.Error()
				mu.Lock()
				failed++
				mu.Unlock()
				push(sc, false)
				return
			}

			// 每个请求只写自己的槽位，汇合前不读其他槽位
			pool[idx] = poolEntry{url: result.URL, promptUsed: result.PromptUsed}

			poolIdx := idx
			sc.Status = storyboard.GenerationStatusCompleted
			sc.ImageURL = result.URL
			sc.PoolIndex = &poolIdx
			mu.Lock()
			completed++
			mu.Unlock()
			push(sc, false)
		}(i, sc)
	}

	// 2. 汇合屏障：等全部请求落定后才能读取池并分配
	wg.Wait()

	// 3. 洗牌分配：每个场景拿 pool[assignment[i]]，空槽位跳过
	assignment := BuildAssignment(total, poolSize, rand.New(rand.NewSource(time.Now().UnixNano())))

	final := make([]storyboard.StoryboardScene, 0, total)
	for i, scene := range scenes {
		slot := assignment[i]
		sc := storyboard.StoryboardScene{Scene: scene}

		if pool[slot].url != "" {
			idx := slot
			sc.Status = storyboard.GenerationStatusCompleted
			sc.ImageURL = pool[slot].url
			sc.PoolIndex = &idx
		} else {
			// 对应池槽位生成失败，该场景保持失败态而不是悬空 pending
			sc.Status = storyboard.GenerationStatusError
			sc.ErrorMessage = "pool image generation failed for assigned slot"
		}
		final = append(final, sc)
	}

	if _, err := s.repo.MergeScenes(ctx, sessionID, final); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to store final storyboard")
	}

	doneCompleted := storyboard.CountByStatus(final, storyboard.GenerationStatusCompleted)
	doneFailed := storyboard.CountByStatus(final, storyboard.GenerationStatusError)
	for _, sc := range final {
		send(&SceneUpdate{
			Scene:     sc,
			Completed: doneCompleted,
			Failed:    doneFailed,
			Total:     total,
			PoolSize:  poolSize,
		})
	}

	send(&SceneUpdate{
		Completed:     doneCompleted,
		Failed:        doneFailed,
		Total:         total,
		PoolSize:      poolSize,
		EstimatedCost: float64(poolSize) * s.unitCost,
		Done:          true,
	})

	log.Info().
		Str("session_id", sessionID).
		Int("completed", doneCompleted).
		Int("failed", doneFailed).
		Msg("storyboard generation finished")
}

// RegenerateScene 重新生成单个场景的图片（单次尝试）
// 失败保留原有 image_url，只更新状态与错误信息
func (s *storyboardService) RegenerateScene(ctx context.Context, sessionID string, sceneNumber int, newPrompt string) (*storyboard.StoryboardScene, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	target, ok := findScene(sess.StoryboardScenes, sceneNumber)
	if !ok {
		return nil, pipeerr.NewValidation("scene %d not found in storyboard", sceneNumber)
	}

	prompt := newPrompt
	if prompt == "" {
		prompt = target.VisualPrompt
	}

	// 先落生成中状态，让观察方看到 in-flight
	target.Status = storyboard.GenerationStatusGenerating
	target.IsRegenerating = true
	if _, err := s.repo.MergeScenes(ctx, sessionID, []storyboard.StoryboardScene{target}); err != nil {
		return nil, err
	}

	result, genErr := s.images.GenerateImage(ctx, prompt)

	target.IsRegenerating = false
	if genErr != nil {
		target.Status = storyboard.GenerationStatusError
		target.ErrorMessage = genErr.Error()
		// image_url 保持旧值
	} else {
		target.Status = storyboard.GenerationStatusCompleted
		target.ImageURL = result.URL
		target.VisualPrompt = result.PromptUsed
		target.ErrorMessage = ""
		target.PoolIndex = nil // 重生成的图片独立于图片池
	}

	if _, err := s.repo.MergeScenes(ctx, sessionID, []storyboard.StoryboardScene{target}); err != nil {
		return nil, err
	}

	if genErr != nil {
		return &target, fmt.Errorf("scene %d regeneration failed: %w", sceneNumber, genErr)
	}
	return &target, nil
}

// RetryFailedScenes 串行重试全部失败场景（逐个单次尝试，控制并发压力）
func (s *storyboardService) RetryFailedScenes(ctx context.Context, sessionID string) ([]storyboard.StoryboardScene, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var results []storyboard.StoryboardScene
	for _, sc := range sess.StoryboardScenes {
		if sc.Status != storyboard.GenerationStatusError {
			continue
		}

		updated, err := s.RegenerateScene(ctx, sessionID, sc.SceneNumber, "")
		if err != nil {
			log.Warn().Err(err).Int("scene", sc.SceneNumber).Msg("retry failed")
		}
		if updated != nil {
			results = append(results, *updated)
		}
	}

	return results, nil
}

func findScene(scenes []storyboard.StoryboardScene, sceneNumber int) (storyboard.StoryboardScene, bool) {
	for _, sc := range scenes {
		if sc.SceneNumber == sceneNumber {
			return sc, true
		}
	}
	return storyboard.StoryboardScene{}, false
}
