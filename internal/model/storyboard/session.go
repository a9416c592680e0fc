package storyboard

import "time"

// WorkflowStep 会话当前所处的流水线阶段
type WorkflowStep string

const (
	StepIdle       WorkflowStep = "idle"
	StepResearch   WorkflowStep = "researching"
	StepOutline    WorkflowStep = "outlining"
	StepScripting  WorkflowStep = "scripting"
	StepBreakdown  WorkflowStep = "breakdown"
	StepStoryboard WorkflowStep = "storyboard"
	StepAnalyzing  WorkflowStep = "analyzing"
	StepRewriting  WorkflowStep = "rewriting"
	StepFormatting WorkflowStep = "formatting"
	StepDone       WorkflowStep = "done"
)

// Session 一次创作会话的全部状态
// 仅驻留内存，进程退出即失效
type Session struct {
	ID          string       `json:"id"`
	CurrentStep WorkflowStep `json:"current_step"`

	// 叙事阶段产物
	Topic       string              `json:"topic,omitempty"`
	Era         HistoricalEra       `json:"era,omitempty"`
	ContentType ContentType         `json:"content_type,omitempty"`
	Tone        NarrativeTone       `json:"tone,omitempty"`
	Research    *HistoricalResearch `json:"research,omitempty"`
	Outline     *NarrativeOutline   `json:"outline,omitempty"`
	Script      *Script             `json:"script,omitempty"`
	Analysis    *ScriptAnalysis     `json:"analysis,omitempty"`

	// 分镜阶段产物
	Scenes           []Scene           `json:"scenes,omitempty"`
	StoryboardScenes []StoryboardScene `json:"storyboard_scenes,omitempty"`

	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
