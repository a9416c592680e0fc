package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"historia/internal/model/storyboard"
	"historia/internal/pkg/id"
)

// ErrNotFound 会话不存在
var ErrNotFound = errors.New("session not found")

// SessionRepository 会话仓库接口
// 所有读写都基于会话整体快照，写入采用整体替换语义
type SessionRepository interface {
	Create(ctx context.Context) (*storyboard.Session, error)
	Get(ctx context.Context, sessionID string) (*storyboard.Session, error)
	Update(ctx context.Context, s *storyboard.Session) error
	MergeScenes(ctx context.Context, sessionID string, updates []storyboard.StoryboardScene) (*storyboard.Session, error)
	Reset(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}

// Repo 内存实现
// 进程内唯一，读写由 RWMutex 保护；handler 层并发访问但单个流水线只有一个写入方
type Repo struct {
	mu       sync.RWMutex
	sessions map[string]*storyboard.Session
}

// NewRepo 创建会话仓库
func NewRepo() *Repo {
	return &Repo{
		sessions: make(map[string]*storyboard.Session),
	}
}

// Create 创建新会话
func (r *Repo) Create(ctx context.Context) (*storyboard.Session, error) {
	now := time.Now()
	s := &storyboard.Session{
		ID:          id.New(),
		CurrentStep: storyboard.StepIdle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return clone(s), nil
}

// Get 读取会话快照
func (r *Repo) Get(ctx context.Context, sessionID string) (*storyboard.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(s), nil
}

// Update 整体替换会话状态
func (r *Repo) Update(ctx context.Context, s *storyboard.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; !ok {
		return ErrNotFound
	}

	updated := clone(s)
	updated.UpdatedAt = time.Now()
	r.sessions[s.ID] = updated
	return nil
}

// MergeScenes 按 scene_number 合并分镜更新
// 构造新切片而不是原地修改，保证并发读取方看到的旧快照不被破坏
func (r *Repo) MergeScenes(ctx context.Context, sessionID string, updates []storyboard.StoryboardScene) (*storyboard.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}

	byNumber := make(map[int]storyboard.StoryboardScene, len(updates))
	for _, u := range updates {
		byNumber[u.SceneNumber] = u
	}

	merged := make([]storyboard.StoryboardScene, len(s.StoryboardScenes))
	for i, existing := range s.StoryboardScenes {
		if u, ok := byNumber[existing.SceneNumber]; ok {
			merged[i] = u
			delete(byNumber, existing.SceneNumber)
		} else {
			merged[i] = existing
		}
	}

	// 更新里出现但现有集合没有的场景追加到末尾
	for _, u := range updates {
		if _, pending := byNumber[u.SceneNumber]; pending {
			merged = append(merged, u)
			delete(byNumber, u.SceneNumber)
		}
	}

	next := clone(s)
	next.StoryboardScenes = merged
	next.UpdatedAt = time.Now()
	r.sessions[sessionID] = next

	return clone(next), nil
}

// Reset 清空会话的全部产物，保留会话本身
func (r *Repo) Reset(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}

	r.sessions[sessionID] = &storyboard.Session{
		ID:          s.ID,
		CurrentStep: storyboard.StepIdle,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	return nil
}

// Delete 删除会话
func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

// clone 深拷贝会话里的切片字段，指针字段共享（产物写入后不再原地修改）
func clone(s *storyboard.Session) *storyboard.Session {
	c := *s
	if s.Scenes != nil {
		c.Scenes = append([]storyboard.Scene(nil), s.Scenes...)
	}
	if s.StoryboardScenes != nil {
		c.StoryboardScenes = append([]storyboard.StoryboardScene(nil), s.StoryboardScenes...)
	}
	return &c
}
