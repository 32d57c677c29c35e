package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/repograph/repograph/internal/llm"
)

func TestHeuristicPurpose(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"app/api/users/route.ts", "API route handler"},
		{"src/Button.test.tsx", "Test suite"},
		{"internal/server/middleware.go", "Middleware"},
		{"src/models/user.py", "Data model"},
		{"next.config.js", "Configuration"},
		{"src/components/Card.tsx", "UI component"},
		{"index.ts", "Module entry point"},
		{"lib/utils.ts", "Utility functions"},
		{"README.md", "Project documentation"},
		{"core.c", "Source file"},
	}
	for _, tt := range cases {
		t.Run(tt.path, func(t *testing.T) {
			got := Heuristic(tt.path, "").Purpose
			if got != tt.want {
				t.Errorf("purpose = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeuristicCountsAndComplexity(t *testing.T) {
	content := `import a from './a'
import b from './b'
export const one = 1
export function two() {}
`
	fa := Heuristic("src/mod.ts", content)

	if len(fa.Dependencies) != 2 {
		t.Errorf("dependencies = %v", fa.Dependencies)
	}
	if len(fa.Exports) != 2 {
		t.Errorf("exports = %v", fa.Exports)
	}
	if fa.Complexity != "low" {
		t.Errorf("complexity = %q", fa.Complexity)
	}
	if fa.Source != "heuristic" {
		t.Errorf("source = %q", fa.Source)
	}

	big := strings.Repeat("x = 1\n", 300)
	if got := Heuristic("a.py", big).Complexity; got != "high" {
		t.Errorf("complexity = %q, want high", got)
	}
}

// fakeProvider returns a canned response or error.
type fakeProvider struct {
	content string
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content}, nil
}

func TestAIAnalyzerSuccess(t *testing.T) {
	provider := &fakeProvider{content: "```json\n" + `{
		"summary": "Handles user routes.",
		"purpose": "API route handler",
		"dependencies": ["next"],
		"exports": ["GET", "POST"],
		"complexity": "medium"
	}` + "\n```"}

	a := NewAIAnalyzer(provider, "test-model")
	fa := a.Analyze(context.Background(), "app/api/users/route.ts", "export function GET() {}")

	if fa.Source != "ai" {
		t.Errorf("source = %q, want ai", fa.Source)
	}
	if fa.Summary != "Handles user routes." || fa.Complexity != "medium" {
		t.Errorf("analysis = %+v", fa)
	}
	if fa.Path != "app/api/users/route.ts" {
		t.Errorf("path = %q", fa.Path)
	}
}

func TestAIAnalyzerFallsBackOnError(t *testing.T) {
	a := NewAIAnalyzer(&fakeProvider{err: errors.New("provider down")}, "m")
	fa := a.Analyze(context.Background(), "lib/utils.ts", "export const x = 1\n")
	if fa.Source != "heuristic" {
		t.Errorf("source = %q, want heuristic", fa.Source)
	}
	if fa.Purpose != "Utility functions" {
		t.Errorf("purpose = %q", fa.Purpose)
	}
}

func TestAIAnalyzerFallsBackOnMalformedJSON(t *testing.T) {
	a := NewAIAnalyzer(&fakeProvider{content: "not json at all"}, "m")
	fa := a.Analyze(context.Background(), "src/a.ts", "")
	if fa.Source != "heuristic" {
		t.Errorf("source = %q, want heuristic", fa.Source)
	}
}

func TestAIAnalyzerNilProvider(t *testing.T) {
	var a *AIAnalyzer
	fa := a.Analyze(context.Background(), "src/a.ts", "")
	if fa.Source != "heuristic" {
		t.Errorf("source = %q, want heuristic", fa.Source)
	}
}
