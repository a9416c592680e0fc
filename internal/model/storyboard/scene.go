package storyboard

// Scene 场景拆解结果中的单个场景
// 由场景拆解流水线产出，scene_number 从 1 开始连续编号
type Scene struct {
	SceneNumber       int    `json:"scene_number"`                 // 场景编号（1 开始，连续）
	ScriptSnippet     string `json:"script_snippet"`               // 对应的解说词片段（原文摘录）
	VisualPrompt      string `json:"visual_prompt"`                // 图片生成提示词
	HistoricalContext string `json:"historical_context,omitempty"` // 历史背景补充（可选）
}

// StoryboardScene 带图片生成状态的分镜场景
// 生命周期: pending -> generating -> completed/error，重试可回到 generating
type StoryboardScene struct {
	Scene
	ImageURL       string           `json:"image_url,omitempty"`        // 生成的图片 URL（completed 时非空）
	Status         GenerationStatus `json:"generation_status"`          // 生成状态
	ErrorMessage   string           `json:"error_message,omitempty"`    // 失败原因（error 时非空）
	IsRegenerating bool             `json:"is_regenerating,omitempty"`  // 是否处于手动重新生成中
	PoolIndex      *int             `json:"image_pool_index,omitempty"` // 引用的图片池下标 [0, K)
}

// SceneSummary 场景拆解完成后的汇总信息
type SceneSummary struct {
	TotalScenes      int     `json:"total_scenes"`       // 实际生成的场景数
	TargetScenes     int     `json:"target_scenes"`      // 估算的目标场景数
	AvgSnippetLength float64 `json:"avg_snippet_length"` // script_snippet 平均长度
}

// NewStoryboardScenes 将场景列表物化为待生成状态的分镜集合
func NewStoryboardScenes(scenes []Scene) []StoryboardScene {
	result := make([]StoryboardScene, len(scenes))
	for i, sc := range scenes {
		result[i] = StoryboardScene{
			Scene:  sc,
			Status: GenerationStatusPending,
		}
	}
	return result
}

// CountByStatus 统计指定状态的分镜数量
func CountByStatus(scenes []StoryboardScene, status GenerationStatus) int {
	count := 0
	for _, sc := range scenes {
		if sc.Status == status {
			count++
		}
	}
	return count
}
