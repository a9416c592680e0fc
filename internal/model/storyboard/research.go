package storyboard

import "time"

// TimelineEvent 时间线事件
type TimelineEvent struct {
	Date         string `json:"date"`         // 日期（尽可能具体到年月日）
	Event        string `json:"event"`        // 事件描述
	Significance string `json:"significance"` // 历史意义
}

// HistoricalFigure 关键历史人物
type HistoricalFigure struct {
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Description    string   `json:"description"`
	NotableActions []string `json:"notable_actions,omitempty"`
}

// SensoryDetails 感官细节，用于提升叙事画面感
type SensoryDetails struct {
	Setting  string `json:"setting"`
	Weather  string `json:"weather"`
	Sounds   string `json:"sounds"`
	Visuals  string `json:"visuals"`
	Textures string `json:"textures"`
}

// HistoricalResearch 历史研究阶段的结构化产出
// 创建后不可变，重新研究会生成新记录
type HistoricalResearch struct {
	Topic           string             `json:"topic"`
	Era             HistoricalEra      `json:"era"`
	Timeline        []TimelineEvent    `json:"timeline"`
	KeyFigures      []HistoricalFigure `json:"key_figures"`
	SensoryDetails  SensoryDetails     `json:"sensory_details"`
	PrimarySources  []string           `json:"primary_sources"`
	DramaticArcs    []string           `json:"dramatic_arcs"`
	CulturalContext string             `json:"cultural_context"`
	RawResearchData string             `json:"raw_research_data"` // 第一次研究调用的原始文本
	GeneratedAt     time.Time          `json:"generated_at"`
}
