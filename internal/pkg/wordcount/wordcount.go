// Package wordcount 提供解说词的字数统计、时长估算与 token 预算计算
//
// 这里的 Count 是全系统唯一的规范字数统计口径：
// 所有对外报告的 word_count 都必须使用该函数，保证各阶段统计一致。
package wordcount

import (
	"math"
	"strings"
)

// Count 统计文本的单词数
// 按连续空白切分，丢弃空 token
func Count(text string) int {
	return len(strings.Fields(text))
}

// Tokens 返回按空白切分后的单词序列
// 用于逐词比对（如 TTS 重排版后的词级校验）
func Tokens(text string) []string {
	return strings.Fields(text)
}

// EstimateDurationSeconds 由单词数估算解说时长（秒）
func EstimateDurationSeconds(words, wordsPerMinute int) int {
	if words <= 0 || wordsPerMinute <= 0 {
		return 0
	}
	return int(math.Round(float64(words) / float64(wordsPerMinute) * 60))
}

// EstimateScenes 由解说词估算目标场景数
// 非空输入至少返回 1
func EstimateScenes(text string, secondsPerScene, wordsPerMinute int) int {
	words := Count(text)
	if words == 0 {
		return 0
	}

	seconds := EstimateDurationSeconds(words, wordsPerMinute)
	scenes := int(math.Round(float64(seconds) / float64(secondsPerScene)))
	if scenes < 1 {
		scenes = 1
	}
	return scenes
}

// TokenBudget 计算场景拆解的 token 预算
// 随场景数单调递增，并在 [min, max] 区间内饱和
func TokenBudget(sceneCount, perSceneTokens, buffer, min, max int) int {
	budget := sceneCount*perSceneTokens + buffer
	if budget < min {
		return min
	}
	if budget > max {
		return max
	}
	return budget
}

// 最终解说词生成的 token 预算边界
const (
	scriptTokensMin      = 2048
	scriptTokensMax      = 16000
	tokensPerWord        = 1.5 // 单词到 token 的膨胀系数（含安全余量）
	scriptWordsPerMinute = 150
)

// ScriptTokenBudget 计算最终解说词生成的 token 预算
// clamp(目标分钟数 × 150 词 × 1.5 token/词, 2048, 16000)
func ScriptTokenBudget(targetMinutes int) int {
	estimated := int(math.Ceil(float64(targetMinutes) * scriptWordsPerMinute * tokensPerWord))
	if estimated < scriptTokensMin {
		return scriptTokensMin
	}
	if estimated > scriptTokensMax {
		return scriptTokensMax
	}
	return estimated
}

// EstimateDurationMinutes 由单词数估算时长（分钟，保留一位小数）
func EstimateDurationMinutes(words, wordsPerMinute int) float64 {
	if words <= 0 || wordsPerMinute <= 0 {
		return 0
	}
	return math.Round(float64(words)/float64(wordsPerMinute)*10) / 10
}
