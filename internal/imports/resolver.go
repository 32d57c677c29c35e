package imports

import "strings"

// candidateSuffixes are tried in order after the bare resolved path. The
// list is JS-family only: imports extracted from Python, Go, Rust or Java
// sources rarely resolve, which matches the intended best-effort behavior.
var candidateSuffixes = []string{
	".ts", ".tsx", ".js", ".jsx", ".mjs",
	"/index.ts", "/index.tsx", "/index.js", "/index.jsx",
}

// Resolve maps a raw import target to a concrete repository path. Only
// intra-repository references resolve: relative targets ("./x", "../x"),
// the "@/" alias (rewritten to "src/") and the "~/" alias (repository
// root). Anything else is an external package and fails immediately.
//
// Candidates are tried bare first, then with each suffix in order; the
// first one present in known wins. A false second return means the import
// could not be mapped, which is an expected outcome, not an error.
func Resolve(sourcePath, rawTarget string, known map[string]bool) (string, bool) {
	var base string
	switch {
	case strings.HasPrefix(rawTarget, "@/"):
		base = "src/" + strings.TrimPrefix(rawTarget, "@/")
	case strings.HasPrefix(rawTarget, "~/"):
		base = strings.TrimPrefix(rawTarget, "~/")
	case strings.HasPrefix(rawTarget, "."):
		base = joinRelative(sourcePath, rawTarget)
	default:
		return "", false
	}
	if base == "" {
		return "", false
	}

	if known[base] {
		return base, true
	}
	for _, suffix := range candidateSuffixes {
		if candidate := base + suffix; known[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// joinRelative resolves a "."/".." prefixed target against the directory
// containing sourcePath with a segment-stack walk. Walking above the
// repository root clamps at the root rather than failing.
func joinRelative(sourcePath, target string) string {
	var stack []string
	if i := strings.LastIndexByte(sourcePath, '/'); i >= 0 {
		stack = strings.Split(sourcePath[:i], "/")
	}

	for _, seg := range strings.Split(target, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}
	return strings.Join(stack, "/")
}
