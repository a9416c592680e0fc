package storyboard

import "time"

// ScriptVersion 被替换的历史版本（带已应用的改进说明）
type ScriptVersion struct {
	Version             int       `json:"version"`
	Content             string    `json:"content"`
	ImprovementsApplied []string  `json:"improvements_applied,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

// Script 最终解说词
// 除版本历史外创建后不可变，润色/重写会追加历史版本而非原地修改
type Script struct {
	Content            string          `json:"content"`
	WordCount          int             `json:"word_count"`
	Topic              string          `json:"topic"`
	Tone               NarrativeTone   `json:"tone"`
	Era                HistoricalEra   `json:"era"`
	TargetDuration     int             `json:"target_duration"` // 目标视频时长（分钟）
	GeneratedAt        time.Time       `json:"generated_at"`
	Version            int             `json:"version,omitempty"`
	PolishedContent    string          `json:"polished_content,omitempty"`
	PolishedWordCount  int             `json:"polished_word_count,omitempty"`
	ImprovementHistory []ScriptVersion `json:"improvement_history,omitempty"`
}

// ActiveContent 返回当前用于后续流水线的解说词内容
// 优先使用润色后的版本
func (s *Script) ActiveContent() string {
	if s.PolishedContent != "" {
		return s.PolishedContent
	}
	return s.Content
}
