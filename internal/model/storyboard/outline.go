package storyboard

import "time"

// NarrativeAct 三幕结构中的一幕
type NarrativeAct struct {
	ActName      string   `json:"act_name"`                // Setup / Conflict / Resolution
	Scenes       []string `json:"scenes"`                  // 该幕的场景描述列表（有序）
	Goal         string   `json:"goal"`                    // 该幕的叙事目标
	EmotionalArc string   `json:"emotional_arc,omitempty"` // 情绪曲线（可选）
	KeyMoments   []string `json:"key_moments,omitempty"`   // 关键时刻（可选）
}

// NarrativeOutline 叙事大纲阶段的产出（三幕结构）
// 创建后不可变
type NarrativeOutline struct {
	Act1Setup        NarrativeAct `json:"act1_setup"`
	Act2Conflict     NarrativeAct `json:"act2_conflict"`
	Act3Resolution   NarrativeAct `json:"act3_resolution"`
	NarrativeTheme   string       `json:"narrative_theme"`
	DramaticQuestion string       `json:"dramatic_question"`
	GeneratedAt      time.Time    `json:"generated_at"`
}

// TotalScenes 统计大纲的场景总数
func (o *NarrativeOutline) TotalScenes() int {
	return len(o.Act1Setup.Scenes) + len(o.Act2Conflict.Scenes) + len(o.Act3Resolution.Scenes)
}
