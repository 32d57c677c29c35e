// Package analyze produces per-file analysis records, either from an LLM
// or from a deterministic heuristic over the file's path and content. The
// heuristic is always available and serves as the fallback, so callers get
// one of the two result shapes and never an error.
package analyze

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/repograph/repograph/internal/imports"
)

// FileAnalysis is the analysis record for a single file.
type FileAnalysis struct {
	Path         string   `json:"path"`
	Summary      string   `json:"summary"`
	Purpose      string   `json:"purpose"`
	Dependencies []string `json:"dependencies,omitempty"`
	Exports      []string `json:"exports,omitempty"`
	Complexity   string   `json:"complexity"`
	Source       string   `json:"source"` // "ai" or "heuristic"
}

// purposeRules map path substrings to a purpose label; first match wins.
var purposeRules = []struct {
	Substr  string
	Purpose string
}{
	{".test.", "Test suite"},
	{".spec.", "Test suite"},
	{"_test.go", "Test suite"},
	{"route.", "API route handler"},
	{"/api/", "API route handler"},
	{"middleware", "Middleware"},
	{"/models/", "Data model"},
	{"schema", "Data schema"},
	{"config", "Configuration"},
	{"/components/", "UI component"},
	{"/pages/", "Page component"},
	{"index.", "Module entry point"},
	{"main.", "Program entry point"},
	{"util", "Utility functions"},
	{"helper", "Utility functions"},
	{"readme", "Project documentation"},
}

var (
	jsExportRe = regexp.MustCompile(`(?m)^\s*export\s+(?:default\s+)?(?:async\s+)?(?:const|let|var|function|class|interface|type|enum)\s+(\w+)`)
	goExportRe = regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s+)?([A-Z]\w*)\s*\(`)
	pyDefRe    = regexp.MustCompile(`(?m)^(?:def|class)\s+(\w+)`)
)

const (
	maxListedDeps    = 10
	maxListedExports = 10
)

// Heuristic derives a FileAnalysis from the path and content alone.
func Heuristic(path, content string) FileAnalysis {
	deps := collectDependencies(path, content)
	exports := collectExports(content)
	purpose := inferPurpose(path)

	lines := strings.Count(content, "\n") + 1
	complexity := "low"
	switch {
	case lines > 200:
		complexity = "high"
	case lines > 50:
		complexity = "medium"
	}

	return FileAnalysis{
		Path:         path,
		Summary:      buildSummary(path, purpose, len(deps), len(exports)),
		Purpose:      purpose,
		Dependencies: deps,
		Exports:      exports,
		Complexity:   complexity,
		Source:       "heuristic",
	}
}

func collectDependencies(path, content string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, d := range imports.ParseImports(path, content) {
		if seen[d.Target] {
			continue
		}
		seen[d.Target] = true
		deps = append(deps, d.Target)
		if len(deps) >= maxListedDeps {
			break
		}
	}
	return deps
}

func collectExports(content string) []string {
	seen := make(map[string]bool)
	var exports []string
	for _, re := range []*regexp.Regexp{jsExportRe, goExportRe, pyDefRe} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if seen[m[1]] {
				continue
			}
			seen[m[1]] = true
			exports = append(exports, m[1])
			if len(exports) >= maxListedExports {
				return exports
			}
		}
	}
	return exports
}

func inferPurpose(path string) string {
	lower := strings.ToLower(path)
	for _, rule := range purposeRules {
		if strings.Contains(lower, rule.Substr) {
			return rule.Purpose
		}
	}
	return "Source file"
}

func buildSummary(path, purpose string, depCount, exportCount int) string {
	name := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		name = path[i+1:]
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(strings.ToLower(purpose[:1]) + purpose[1:])
	if depCount > 0 || exportCount > 0 {
		b.WriteString(" with ")
	}
	switch {
	case depCount > 0 && exportCount > 0:
		b.WriteString(pluralize(depCount, "import") + " and " + pluralize(exportCount, "export"))
	case depCount > 0:
		b.WriteString(pluralize(depCount, "import"))
	case exportCount > 0:
		b.WriteString(pluralize(exportCount, "export"))
	}
	b.WriteString(".")
	return b.String()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
