package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/provider"
	"github.com/uiprobe/uiprobe/internal/snapshot"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a node identifier against the live UI",
	Long: `Take a node identifier from a previous snapshot and locate the live element it refers to.

The resolution is verified: if the UI recycled a different element into the identifier's structural position (e.g. a virtualized list reusing rows), the stale handle is detected and a full tree walk finds the real element instead.`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("id", "", "Node identifier to resolve (required)")
	resolveCmd.Flags().Bool("cold", false, "Skip the cache-warming snapshot and resolve by full walk only")
}

// resolveResult is the top-level output of the resolve command.
type resolveResult struct {
	OK     bool   `yaml:"ok"             json:"ok"`
	ID     string `yaml:"id"             json:"id"`
	Type   string `yaml:"type,omitempty" json:"type,omitempty"`
	Text   string `yaml:"text,omitempty" json:"text,omitempty"`
	Desc   string `yaml:"desc,omitempty" json:"desc,omitempty"`
	Bounds [4]int `yaml:"b"              json:"b"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	cold, _ := cmd.Flags().GetBool("cold")
	if id == "" {
		return fmt.Errorf("--id is required")
	}

	p, err := openProvider(cmd)
	if err != nil {
		return err
	}

	cache := snapshot.NewHandleCache()
	defer cache.Clear()

	if !cold {
		// Warm the cache so the resolver gets its O(1) path.
		if _, err := snapshot.Build(p, cache); err != nil {
			return err
		}
	}

	result := resolveResult{ID: id}
	err = snapshot.Resolve(p, cache, id, func(h provider.Handle) error {
		attrs := h.Attributes()
		result.OK = true
		result.Type = attrs.Type
		result.Text = attrs.Text
		result.Desc = attrs.Description
		result.Bounds = attrs.Bounds
		return nil
	})
	if err != nil {
		return fmt.Errorf("resolve %s: %w", id, err)
	}

	return output.Print(result)
}
