package graph

import "strings"

// moduleMeta holds the display label and description for each module type.
var moduleMeta = map[ModuleType]struct {
	Name        string
	Description string
}{
	ModuleAPI:      {"API Layer", "Route handlers, controllers and server endpoints"},
	ModuleFrontend: {"Frontend", "UI components, pages and views"},
	ModuleDatabase: {"Database", "Models, schemas and migrations"},
	ModuleConfig:   {"Configuration", "Config files, manifests and environment definitions"},
	ModuleTest:     {"Tests", "Test suites and specs"},
	ModuleDocs:     {"Documentation", "Markdown and documentation files"},
	ModuleLib:      {"Libraries", "Shared utilities and helpers"},
	ModuleUnknown:  {"Other", "Files without a recognized architectural role"},
}

// entryPointStems mark files that likely anchor a module.
var entryPointStems = []string{"index.", "main.", "app.", "server.", "route.", "page."}

const maxEntryPoints = 5

// GroupByModule partitions file nodes by module type into summaries for the
// stats surface. Folders are excluded. Summaries appear in the order their
// module type first occurs among the input nodes; files keep input order.
func GroupByModule(nodes []Node) []ModuleSummary {
	index := make(map[ModuleType]int)
	var summaries []ModuleSummary

	for _, n := range nodes {
		if n.Kind != NodeFile {
			continue
		}
		i, ok := index[n.ModuleType]
		if !ok {
			meta := moduleMeta[n.ModuleType]
			summaries = append(summaries, ModuleSummary{
				Name:        meta.Name,
				Type:        n.ModuleType,
				Description: meta.Description,
			})
			i = len(summaries) - 1
			index[n.ModuleType] = i
		}
		summaries[i].Files = append(summaries[i].Files, n.Path)
		if len(summaries[i].EntryPoints) < maxEntryPoints && isEntryPoint(n.Name) {
			summaries[i].EntryPoints = append(summaries[i].EntryPoints, n.Path)
		}
	}
	return summaries
}

func isEntryPoint(name string) bool {
	lower := strings.ToLower(name)
	for _, stem := range entryPointStems {
		if strings.HasPrefix(lower, stem) {
			return true
		}
	}
	return false
}
