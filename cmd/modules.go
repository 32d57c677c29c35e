package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/repograph/repograph/internal/graph"
)

var modulesRef string

var modulesCmd = &cobra.Command{
	Use:   "modules [owner/repo | path]",
	Short: "Summarize a repository's files grouped by module type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		g, err := buildTarget(cmd.Context(), cfg, args[0], modulesRef, false)
		if err != nil {
			return err
		}

		summaries := graph.GroupByModule(g.Nodes)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODULE\tFILES\tENTRY POINTS")
		for _, m := range summaries {
			fmt.Fprintf(w, "%s\t%d\t%s\n", m.Name, len(m.Files), strings.Join(m.EntryPoints, ", "))
		}
		return w.Flush()
	},
}

func init() {
	modulesCmd.Flags().StringVar(&modulesRef, "ref", "", "branch, tag or commit (default: the repository's default branch)")
	rootCmd.AddCommand(modulesCmd)
}
