package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StrokeAnalysis 挥拍分析结果
type StrokeAnalysis struct {
	StrokeType   string   `json:"strokeType"`
	FormScore    float64  `json:"formScore"` // 0-100
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Drills       []string `json:"drills"`
}

// UnknownAnalysis 解析失败时使用的占位结果
func UnknownAnalysis() StrokeAnalysis {
	return StrokeAnalysis{
		StrokeType:   "Unknown",
		FormScore:    0,
		Strengths:    []string{"Analysis error"},
		Improvements: []string{"Please try again"},
		Drills:       []string{},
	}
}

// ParseAnalysis 解析服务返回的 JSON 文本
//
// 服务有时会把 JSON 包在 markdown 代码块中，解析前先去掉 ``` 标记。
// 解析失败时返回 UnknownAnalysis() 和错误，调用方可以直接显示返回值。
func ParseAnalysis(text string) (StrokeAnalysis, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = "{}"
	}

	var analysis StrokeAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return UnknownAnalysis(), fmt.Errorf("failed to parse stroke analysis: %w", err)
	}
	if analysis.FormScore < 0 {
		analysis.FormScore = 0
	} else if analysis.FormScore > 100 {
		analysis.FormScore = 100
	}
	return analysis, nil
}
