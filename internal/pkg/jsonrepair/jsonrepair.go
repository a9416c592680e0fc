// Package jsonrepair 提供对大模型输出的容错 JSON 提取
//
// 大模型返回的 JSON 常见两类问题：
//  1. 外层包裹 markdown 代码块或说明文字
//  2. 输出被截断，缺少若干闭合括号
//
// 提取顺序：剥离 markdown 标记 -> 定位 JSON 片段 -> 严格解析 ->
// 失败后补齐闭合括号重试一次。修复规则集中在此包内，便于单测。
package jsonrepair

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// excerptLimit 错误信息中附带的原始文本截断长度
const excerptLimit = 500

// ParseError 容错解析失败
// Excerpt 携带原始文本的前 500 字符，用于问题排查
type ParseError struct {
	Err     error
	Excerpt string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("json repair failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var markdownPattern = regexp.MustCompile(`(?s)^\s*` + "```" + `(?:json)?\s*\n(.*?)\n\s*` + "```" + `\s*$`)

// stripMarkdown 剥离 markdown 代码块标记
func stripMarkdown(content string) string {
	content = strings.TrimSpace(content)

	if matches := markdownPattern.FindStringSubmatch(content); len(matches) > 1 {
		content = matches[1]
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// locate 按期望形状定位 JSON 片段（数组取首个 [ 到末个 ]，对象取首个 { 到末个 }）
func locate(content string, open, close byte) (string, bool) {
	start := strings.IndexByte(content, open)
	end := strings.LastIndexByte(content, close)
	if start == -1 {
		return "", false
	}
	if end > start {
		return content[start : end+1], true
	}
	// 只有开括号没有闭括号（截断输出），从开括号取到末尾交给修复逻辑
	return content[start:], true
}

// Balance 补齐缺失的闭合括号
// 逐字符扫描并忽略字符串字面量内部的括号，按嵌套顺序补齐
func Balance(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// 字符串内部的括号不参与配对
		case c == '{':
			stack = append(stack, '}')
		case c == '[':
			stack = append(stack, ']')
		case c == '}' || c == ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(s)
	// 截断在字符串中间时先补上引号
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

// extract 提取并解析 JSON 片段，失败后修复重试一次
func extract(raw string, open, close byte, v any) error {
	cleaned := stripMarkdown(raw)
	if cleaned == "" {
		return newParseError(fmt.Errorf("empty content"), raw)
	}

	fragment, ok := locate(cleaned, open, close)
	if !ok {
		return newParseError(fmt.Errorf("no JSON %c...%c fragment found", open, close), raw)
	}

	if err := json.Unmarshal([]byte(fragment), v); err == nil {
		return nil
	}

	repaired := Balance(fragment)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return newParseError(err, raw)
	}
	return nil
}

// ExtractObject 从原始文本中提取 JSON 对象并解析到 v
func ExtractObject(raw string, v any) error {
	return extract(raw, '{', '}', v)
}

// ExtractArray 从原始文本中提取 JSON 数组并解析到 v
func ExtractArray(raw string, v any) error {
	return extract(raw, '[', ']', v)
}

func newParseError(err error, raw string) *ParseError {
	excerpt := raw
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit]
	}
	return &ParseError{Err: err, Excerpt: excerpt}
}
