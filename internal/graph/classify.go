package graph

import "strings"

// Classification is rule-ordered: the first matching rule wins, so test
// files inside an api/ directory still classify as test. Matching is
// case-insensitive and segment checks treat the path as rooted, so both
// "api/users.ts" and "src/api/users.ts" hit the api rule.

var testSuffixExts = []string{"ts", "tsx", "js", "jsx"}

var apiSegments = []string{"/api/", "/routes/", "/controllers/", "/handlers/"}

var frontendSegments = []string{"/components/", "/pages/", "/views/", "/app/"}

var frontendExts = map[string]bool{"tsx": true, "jsx": true, "vue": true, "svelte": true}

var databaseSegments = []string{"/models/", "/schema/", "/migrations/", "/prisma/", "/drizzle/"}

var configExts = map[string]bool{"json": true, "yaml": true, "yml": true, "toml": true, "env": true}

var libSegments = []string{"/lib/", "/utils/", "/helpers/"}

// Classify maps a repository path to its module type. It is total and
// deterministic; malformed or empty paths degrade to ModuleUnknown.
func Classify(path string) ModuleType {
	p := strings.ToLower(path)
	rooted := "/" + p + "/"
	ext := Extension(p)

	if isTestPath(p, ext) {
		return ModuleTest
	}
	if containsAny(rooted, apiSegments) || strings.Contains(p, "server.") {
		return ModuleAPI
	}
	if containsAny(rooted, frontendSegments) || frontendExts[ext] {
		return ModuleFrontend
	}
	if containsAny(rooted, databaseSegments) || ext == "sql" {
		return ModuleDatabase
	}
	if strings.Contains(p, "config") || configExts[ext] || strings.Contains(p, "dockerfile") {
		return ModuleConfig
	}
	if ext == "md" || strings.Contains(rooted, "/docs/") {
		return ModuleDocs
	}
	if containsAny(rooted, libSegments) {
		return ModuleLib
	}
	return ModuleUnknown
}

func isTestPath(lower, ext string) bool {
	if strings.Contains("/"+lower+"/", "/__tests__/") {
		return true
	}
	if strings.Contains(lower, ".test.") || strings.Contains(lower, ".spec.") {
		for _, e := range testSuffixExts {
			if ext == e {
				return true
			}
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Extension returns the lowercase file extension without the dot, or ""
// when the final segment has none.
func Extension(path string) string {
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
