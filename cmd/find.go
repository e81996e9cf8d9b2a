package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/snapshot"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search for nodes across all windows",
	Long:  "Snapshot the UI and search every window's tree by text, description, type, or identifier. Matches are reported in deterministic pre-order, so the first match is reproducible.",
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("text", "", "Match node text (case-insensitive substring)")
	findCmd.Flags().String("desc", "", "Match node description")
	findCmd.Flags().String("type", "", "Match node type descriptor")
	findCmd.Flags().String("id", "", "Match node identifier")
	findCmd.Flags().Bool("exact", false, "Require full equality instead of substring")
	findCmd.Flags().Int("limit", 10, "Max matching nodes to return (0 = unlimited)")
}

// findResult is the top-level output of the find command.
type findResult struct {
	Total   int              `yaml:"total"   json:"total"`
	Matches []model.FlatNode `yaml:"matches" json:"matches"`
}

func runFind(cmd *cobra.Command, args []string) error {
	field, value, err := findCriterion(cmd)
	if err != nil {
		return err
	}
	exact, _ := cmd.Flags().GetBool("exact")
	limit, _ := cmd.Flags().GetInt("limit")

	p, err := openProvider(cmd)
	if err != nil {
		return err
	}

	cache := snapshot.NewHandleCache()
	defer cache.Clear()

	snap, err := snapshot.Build(p, cache)
	if err != nil {
		return err
	}

	matches := model.Find(snap.Windows, field, value, exact)
	total := len(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	nodes := make([]model.FlatNode, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, model.FlatNode{
			ID:          m.ID,
			Type:        m.Type,
			Text:        m.Text,
			Description: m.Description,
			Bounds:      m.Bounds,
			Clickable:   m.Clickable,
		})
	}

	return output.Print(findResult{Total: total, Matches: nodes})
}

// findCriterion picks exactly one search criterion from the flags.
func findCriterion(cmd *cobra.Command) (model.MatchField, string, error) {
	flags := []struct {
		name  string
		field model.MatchField
	}{
		{"text", model.MatchText},
		{"desc", model.MatchDescription},
		{"type", model.MatchType},
		{"id", model.MatchID},
	}

	var field model.MatchField
	var value string
	set := 0
	for _, f := range flags {
		v, _ := cmd.Flags().GetString(f.name)
		if v != "" {
			field = f.field
			value = v
			set++
		}
	}
	if set == 0 {
		return "", "", fmt.Errorf("specify one of --text, --desc, --type, or --id")
	}
	if set > 1 {
		return "", "", fmt.Errorf("specify only one of --text, --desc, --type, or --id")
	}
	return field, value, nil
}
