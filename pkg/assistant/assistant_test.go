package assistant

import (
	"context"
	"errors"
	"testing"
)

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantType  string
		wantScore float64
		wantErr   bool
	}{
		{
			name:      "plain json",
			text:      `{"strokeType":"Forehand","formScore":82,"strengths":["balance"],"improvements":["follow-through"],"drills":["shadow swings"]}`,
			wantType:  "Forehand",
			wantScore: 82,
		},
		{
			name:      "markdown fenced",
			text:      "```json\n{\"strokeType\":\"Serve\",\"formScore\":64}\n```",
			wantType:  "Serve",
			wantScore: 64,
		},
		{
			name:      "score clamped",
			text:      `{"strokeType":"Volley","formScore":140}`,
			wantType:  "Volley",
			wantScore: 100,
		},
		{
			name:     "malformed",
			text:     "the model rambled instead of returning JSON",
			wantType: "Unknown",
			wantErr:  true,
		},
		{
			name:     "empty text decodes to zero value",
			text:     "",
			wantType: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysis(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAnalysis() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.StrokeType != tt.wantType {
				t.Errorf("StrokeType = %q, want %q", got.StrokeType, tt.wantType)
			}
			if got.FormScore != tt.wantScore {
				t.Errorf("FormScore = %v, want %v", got.FormScore, tt.wantScore)
			}
		})
	}
}

// TestSubmitFallbacks 所有失败路径都返回降级回复，不会 panic
func TestSubmitFallbacks(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	failing := ServiceFunc(func(ctx context.Context, p Prompt) (Result, error) {
		return Result{}, errors.New("503 service unavailable")
	})
	panicking := ServiceFunc(func(ctx context.Context, p Prompt) (Result, error) {
		panic("nil response")
	})
	ok := ServiceFunc(func(ctx context.Context, p Prompt) (Result, error) {
		return Result{Text: "hello"}, nil
	})

	tests := []struct {
		name string
		ctx  context.Context
		svc  Service
	}{
		{"no service", context.Background(), nil},
		{"service error", context.Background(), failing},
		{"service panic", context.Background(), panicking},
		{"cancelled context", cancelled, ok},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Submit(tt.ctx, tt.svc, Prompt{Kind: KindChat, Text: "how do I hit a topspin lob?"})
			if !reply.Fallback {
				t.Fatal("Expected a fallback reply")
			}
			if reply.Message == "" {
				t.Error("Fallback reply should carry a message")
			}
		})
	}
}

func TestSubmitAnalyzeParsesText(t *testing.T) {
	svc := ServiceFunc(func(ctx context.Context, p Prompt) (Result, error) {
		if p.Kind != KindAnalyze || len(p.Image) == 0 {
			t.Errorf("Unexpected prompt %+v", p)
		}
		return Result{Text: "```json\n{\"strokeType\":\"Backhand\",\"formScore\":71}\n```"}, nil
	})

	reply := Submit(context.Background(), svc, Prompt{Kind: KindAnalyze, Image: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"})
	if reply.Fallback {
		t.Fatalf("Unexpected fallback: %s", reply.Message)
	}
	if reply.Result.Analysis == nil || reply.Result.Analysis.StrokeType != "Backhand" {
		t.Errorf("Expected parsed Backhand analysis, got %+v", reply.Result.Analysis)
	}
}

func TestSubmitAnalyzeFailureHasUnknownAnalysis(t *testing.T) {
	reply := Submit(context.Background(), nil, Prompt{Kind: KindAnalyze})
	if reply.Result.Analysis == nil || reply.Result.Analysis.StrokeType != "Unknown" {
		t.Errorf("Expected Unknown analysis on failure, got %+v", reply.Result.Analysis)
	}
}

func TestPromptBuilders(t *testing.T) {
	if p := NewsPrompt(""); p.Kind != KindNews || p.Text != DefaultNewsQuery {
		t.Errorf("NewsPrompt(\"\") = %+v", p)
	}
	p := StrategyPrompt("baseliner", "clay", "serve-and-volley")
	if p.Kind != KindStrategy || p.Text == "" {
		t.Errorf("StrategyPrompt() = %+v", p)
	}
}
