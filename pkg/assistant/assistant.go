// Package assistant 定义外部生成式文本服务的调用边界
//
// 游戏之外的教练对话、挥拍分析、战术建议和新闻面板都通过 Service 提交请求。
// 本包不提供网络客户端，只约定请求/结果的形状以及失败时的降级行为：
// 服务错误永远不会传播到调用方，而是变成一条可显示的提示信息。
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrNoService 未配置服务
var ErrNoService = errors.New("assistant service not configured")

// Kind 请求种类
type Kind int

const (
	// KindChat 与教练自由对话
	KindChat Kind = iota
	// KindAnalyze 上传挥拍图片，返回结构化分析
	KindAnalyze
	// KindStrategy 按球员类型、场地、对手生成战术建议
	KindStrategy
	// KindNews 检索最新赛事新闻
	KindNews
)

// String 返回请求种类名称
func (k Kind) String() string {
	switch k {
	case KindChat:
		return "chat"
	case KindAnalyze:
		return "analyze"
	case KindStrategy:
		return "strategy"
	case KindNews:
		return "news"
	default:
		return "unknown"
	}
}

// Prompt 一次请求
type Prompt struct {
	Kind Kind
	Text string
	// Image 仅 KindAnalyze 使用
	Image    []byte
	MIMEType string
}

// Link 新闻来源
type Link struct {
	Title string
	URI   string
}

// Result 服务返回的结果：自由文本，或者结构化的挥拍分析
type Result struct {
	Text     string
	Analysis *StrokeAnalysis
	Links    []Link
}

// Service 外部生成式服务
//
// 实现方负责网络、鉴权和重试；本包的调用方不做重试。
type Service interface {
	SubmitPrompt(ctx context.Context, prompt Prompt) (Result, error)
}

// ServiceFunc 把普通函数适配为 Service
type ServiceFunc func(ctx context.Context, prompt Prompt) (Result, error)

// SubmitPrompt 实现 Service
func (f ServiceFunc) SubmitPrompt(ctx context.Context, prompt Prompt) (Result, error) {
	return f(ctx, prompt)
}

// Reply 面向界面的回复
type Reply struct {
	Result Result
	// Fallback 为 true 表示请求失败，Message 是降级提示
	Fallback bool
	Message  string
}

// Submit 提交请求，任何失败都转换为降级回复
//
// 服务返回错误、ctx 被取消、服务未配置或服务 panic 时都不会向上传播。
func Submit(ctx context.Context, svc Service, prompt Prompt) (reply Reply) {
	if svc == nil {
		return fallbackReply(prompt.Kind, ErrNoService)
	}
	if err := ctx.Err(); err != nil {
		return fallbackReply(prompt.Kind, err)
	}

	defer func() {
		if r := recover(); r != nil {
			reply = fallbackReply(prompt.Kind, fmt.Errorf("service panic: %v", r))
		}
	}()

	result, err := svc.SubmitPrompt(ctx, prompt)
	if err != nil {
		return fallbackReply(prompt.Kind, err)
	}

	if prompt.Kind == KindAnalyze && result.Analysis == nil {
		analysis, err := ParseAnalysis(result.Text)
		if err != nil {
			log.Printf("[Assistant] Warning: %v", err)
		}
		result.Analysis = &analysis
	}
	return Reply{Result: result}
}

func fallbackReply(kind Kind, err error) Reply {
	log.Printf("[Assistant] %s request failed: %v", kind, err)
	reply := Reply{Fallback: true, Message: fallbackMessage(kind)}
	if kind == KindAnalyze {
		analysis := UnknownAnalysis()
		reply.Result.Analysis = &analysis
	}
	return reply
}

// fallbackMessage 各种请求失败时显示的提示
func fallbackMessage(kind Kind) string {
	switch kind {
	case KindChat:
		return "COACH_OFFLINE: unable to reach the coach right now. Please try again."
	case KindAnalyze:
		return "ANALYSIS_FAILED: the stroke could not be analyzed. Please try another image."
	case KindStrategy:
		return "STRATEGY_UNAVAILABLE: no tactical advice right now. Please try again."
	case KindNews:
		return "FEED_OFFLINE: the news feed is unavailable."
	default:
		return "REQUEST_FAILED"
	}
}

// StrategyPrompt 构造战术建议请求
func StrategyPrompt(playerType, surface, opponentType string) Prompt {
	return Prompt{
		Kind: KindStrategy,
		Text: fmt.Sprintf("Suggest three winning strategies for a %s player on a %s court against a %s opponent.",
			playerType, surface, opponentType),
	}
}

// DefaultNewsQuery 新闻面板的默认检索词
const DefaultNewsQuery = "Latest ATP and WTA tennis news and tournament results"

// NewsPrompt 构造新闻请求，query 为空时使用默认检索词
func NewsPrompt(query string) Prompt {
	if query == "" {
		query = DefaultNewsQuery
	}
	return Prompt{Kind: KindNews, Text: query}
}
