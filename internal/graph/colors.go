package graph

// moduleColors colors folder nodes by their classified module type.
var moduleColors = map[ModuleType]string{
	ModuleAPI:      "#ef4444",
	ModuleFrontend: "#3b82f6",
	ModuleDatabase: "#f59e0b",
	ModuleConfig:   "#8b5cf6",
	ModuleTest:     "#22c55e",
	ModuleDocs:     "#eab308",
	ModuleLib:      "#14b8a6",
	ModuleUnknown:  "#6b7280",
}

// extensionColors colors file nodes by extension.
var extensionColors = map[string]string{
	"ts":     "#3178c6",
	"tsx":    "#3178c6",
	"js":     "#f7df1e",
	"jsx":    "#f7df1e",
	"mjs":    "#f7df1e",
	"py":     "#3776ab",
	"go":     "#00add8",
	"rs":     "#dea584",
	"java":   "#b07219",
	"rb":     "#cc342d",
	"php":    "#777bb4",
	"css":    "#563d7c",
	"scss":   "#c6538c",
	"html":   "#e34c26",
	"vue":    "#41b883",
	"svelte": "#ff3e00",
	"json":   "#a3a3a3",
	"yaml":   "#cb171e",
	"yml":    "#cb171e",
	"toml":   "#9c4221",
	"md":     "#519aba",
	"sql":    "#e38c00",
	"sh":     "#89e051",
}

const defaultFileColor = "#9ca3af"

// ColorFor derives a node's display color: folders take their module-type
// color, files take their extension color.
func ColorFor(kind NodeKind, moduleType ModuleType, ext string) string {
	if kind == NodeFolder {
		if c, ok := moduleColors[moduleType]; ok {
			return c
		}
		return moduleColors[ModuleUnknown]
	}
	if c, ok := extensionColors[ext]; ok {
		return c
	}
	return defaultFileColor
}
