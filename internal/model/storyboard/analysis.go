package storyboard

import "time"

// DimensionFeedback 单个评分维度的反馈
type DimensionFeedback struct {
	Score    int    `json:"score"`    // [0, 100]
	Feedback string `json:"feedback"` // 针对该维度的文字反馈
}

// PhilosopherInsight 哲学家视角的洞察
type PhilosopherInsight struct {
	Philosopher string `json:"philosopher"`
	Insight     string `json:"insight"`
	Relevance   string `json:"relevance,omitempty"`
}

// ScriptAnalysis 解说词质量分析结果
// overall 为其余三项的算术平均（四舍五入）
type ScriptAnalysis struct {
	Accuracy           DimensionFeedback    `json:"accuracy"`
	HookStrength       DimensionFeedback    `json:"hook_strength"`
	RetentionTactics   DimensionFeedback    `json:"retention_tactics"`
	Overall            int                  `json:"overall"`
	PhilosopherInsights []PhilosopherInsight `json:"philosopher_insights,omitempty"`
	Suggestions        []string             `json:"suggestions"`
	GeneratedAt        time.Time            `json:"generated_at"`
}

// ComputeOverall 由三个维度分数计算总分（算术平均，四舍五入）
func (a *ScriptAnalysis) ComputeOverall() int {
	sum := a.Accuracy.Score + a.HookStrength.Score + a.RetentionTactics.Score
	return (sum*2 + 3) / 6
}
