// Package imports extracts raw import targets from source text and resolves
// them against the set of known repository paths. Extraction is pattern
// based, not grammar based: it tolerates false positives from comments and
// string literals, and misses constructs it does not special-case. That is
// the accepted contract; dependency edges are best-effort enrichment.
package imports

import (
	"regexp"
	"strings"
)

// Kind tags how an import target was referenced.
type Kind string

const (
	KindImport  Kind = "import"
	KindRequire Kind = "require"
	KindDynamic Kind = "dynamic"
)

// ParsedDependency is one raw, unresolved import extracted from a file.
type ParsedDependency struct {
	Source string
	Target string
	Kind   Kind
}

var (
	jsImportRe   = regexp.MustCompile(`import\s+(?:[\w*{}\s,$]+\s+from\s+)?['"]([^'"]+)['"]`)
	jsRequireRe  = regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	jsDynamicRe  = regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	jsReExportRe = regexp.MustCompile(`export\s+(?:\*|\{[^}]*\})\s+from\s+['"]([^'"]+)['"]`)

	pyFromImportRe = regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import\b`)
	pyImportRe     = regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`)

	goImportBlockRe  = regexp.MustCompile(`import\s*\(([^)]*)\)`)
	goImportPathRe   = regexp.MustCompile(`"([^"]+)"`)
	goImportSingleRe = regexp.MustCompile(`(?m)^\s*import\s+(?:\w+\s+)?"([^"]+)"`)

	rustUseRe = regexp.MustCompile(`(?m)^\s*(?:pub\s+)?use\s+([\w:]+)`)
	rustModRe = regexp.MustCompile(`(?m)^\s*(?:pub\s+)?mod\s+(\w+)\s*;`)

	javaImportRe = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+)\s*;`)
)

var jsExts = map[string]bool{
	"js": true, "jsx": true, "ts": true, "tsx": true, "mjs": true, "cjs": true,
}

// Parseable reports whether files with the given extension (lowercase, no
// dot) have an import extractor.
func Parseable(ext string) bool {
	if jsExts[ext] {
		return true
	}
	switch ext {
	case "py", "go", "rs", "java":
		return true
	}
	return false
}

// ParseImports extracts import targets from a file, dispatching on its
// extension. Unrecognized extensions yield nil. Results are in scan order,
// which is stable for a given input.
func ParseImports(path, content string) []ParsedDependency {
	ext := extension(path)
	switch {
	case jsExts[ext]:
		return parseJS(path, content)
	case ext == "py":
		return parsePython(path, content)
	case ext == "go":
		return parseGo(path, content)
	case ext == "rs":
		return parseRust(path, content)
	case ext == "java":
		return parseJava(path, content)
	}
	return nil
}

func parseJS(path, content string) []ParsedDependency {
	var deps []ParsedDependency
	appendMatches(&deps, path, content, jsImportRe, KindImport)
	appendMatches(&deps, path, content, jsRequireRe, KindRequire)
	appendMatches(&deps, path, content, jsDynamicRe, KindDynamic)
	appendMatches(&deps, path, content, jsReExportRe, KindImport)
	return deps
}

func parsePython(path, content string) []ParsedDependency {
	var deps []ParsedDependency
	appendMatches(&deps, path, content, pyFromImportRe, KindImport)
	appendMatches(&deps, path, content, pyImportRe, KindImport)
	return deps
}

func parseGo(path, content string) []ParsedDependency {
	var deps []ParsedDependency
	for _, block := range goImportBlockRe.FindAllStringSubmatch(content, -1) {
		for _, m := range goImportPathRe.FindAllStringSubmatch(block[1], -1) {
			deps = append(deps, ParsedDependency{Source: path, Target: m[1], Kind: KindImport})
		}
	}
	appendMatches(&deps, path, content, goImportSingleRe, KindImport)
	return deps
}

func parseRust(path, content string) []ParsedDependency {
	var deps []ParsedDependency
	appendMatches(&deps, path, content, rustUseRe, KindImport)
	appendMatches(&deps, path, content, rustModRe, KindImport)
	return deps
}

func parseJava(path, content string) []ParsedDependency {
	var deps []ParsedDependency
	appendMatches(&deps, path, content, javaImportRe, KindImport)
	return deps
}

func appendMatches(deps *[]ParsedDependency, path, content string, re *regexp.Regexp, kind Kind) {
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		*deps = append(*deps, ParsedDependency{Source: path, Target: m[1], Kind: kind})
	}
}

func extension(path string) string {
	seg := path
	if i := strings.LastIndexByte(seg, '/'); i >= 0 {
		seg = seg[i+1:]
	}
	i := strings.LastIndexByte(seg, '.')
	if i < 0 || i == len(seg)-1 {
		return ""
	}
	return strings.ToLower(seg[i+1:])
}
