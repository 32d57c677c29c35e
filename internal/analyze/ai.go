package analyze

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/repograph/repograph/internal/llm"
)

const analysisSystemPrompt = `You are a code analysis assistant. Given a source file, respond with a JSON object containing exactly these fields:
  "summary": one or two sentences describing what the file does,
  "purpose": a short label for the file's architectural role,
  "dependencies": array of imported module names,
  "exports": array of exported symbol names,
  "complexity": one of "low", "medium", "high".
Respond with JSON only, no prose.`

// maxExcerptBytes bounds how much file content is sent to the provider.
const maxExcerptBytes = 8000

// AIAnalyzer produces FileAnalysis records from an LLM, falling back to the
// heuristic analyzer on any provider or parse failure. Analyze never
// returns an error.
type AIAnalyzer struct {
	provider llm.Provider
	model    string
}

// NewAIAnalyzer creates an AIAnalyzer. A nil provider means every call
// takes the heuristic path.
func NewAIAnalyzer(provider llm.Provider, model string) *AIAnalyzer {
	return &AIAnalyzer{provider: provider, model: model}
}

// Analyze returns the AI analysis for the file, or the heuristic record
// when the provider is unavailable, errors, or returns malformed JSON.
func (a *AIAnalyzer) Analyze(ctx context.Context, path, content string) FileAnalysis {
	if a == nil || a.provider == nil {
		return Heuristic(path, content)
	}

	excerpt := content
	if len(excerpt) > maxExcerptBytes {
		excerpt = excerpt[:maxExcerptBytes]
	}

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: analysisSystemPrompt},
			{Role: llm.RoleUser, Content: "File: " + path + "\n\n" + excerpt},
		},
		MaxTokens:   1024,
		Temperature: 0.1,
		JSONMode:    true,
	})
	if err != nil {
		return Heuristic(path, content)
	}

	analysis, err := parseAnalysis(resp.Content)
	if err != nil {
		return Heuristic(path, content)
	}
	analysis.Path = path
	analysis.Source = "ai"
	if analysis.Complexity == "" {
		analysis.Complexity = Heuristic(path, content).Complexity
	}
	return *analysis
}

// parseAnalysis parses a provider JSON response, stripping markdown code
// fences if present.
func parseAnalysis(raw string) (*FileAnalysis, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		lines := strings.Split(raw, "\n")
		if len(lines) >= 2 {
			end := len(lines)
			if strings.TrimSpace(lines[end-1]) == "```" {
				end--
			}
			raw = strings.Join(lines[1:end], "\n")
		}
	}

	var analysis FileAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}
