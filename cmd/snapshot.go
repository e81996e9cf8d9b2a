package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a snapshot of every window's UI tree",
	Long: `Enumerate all on-screen windows and parse each window's element tree into one snapshot.

Node identifiers are deterministic: re-reading an unchanged UI yields the same identifiers, so they can be passed to 'resolve' later.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().Bool("flat", false, "Output a flat node list with path breadcrumbs instead of trees")
}

// snapshotResult is the top-level output of the snapshot command.
type snapshotResult struct {
	TS       int64          `yaml:"ts"                 json:"ts"`
	Degraded bool           `yaml:"degraded,omitempty" json:"degraded,omitempty"`
	Windows  []model.Window `yaml:"windows"            json:"windows"`
}

// snapshotFlatResult is the top-level output when --flat is used.
type snapshotFlatResult struct {
	TS       int64            `yaml:"ts"                 json:"ts"`
	Degraded bool             `yaml:"degraded,omitempty" json:"degraded,omitempty"`
	Nodes    []model.FlatNode `yaml:"nodes"              json:"nodes"`
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	flat, _ := cmd.Flags().GetBool("flat")

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

	ts := time.Now().Unix()
	if flat {
		return output.Print(snapshotFlatResult{
			TS:       ts,
			Degraded: snap.Degraded,
			Nodes:    model.Flatten(snap.Windows),
		})
	}
	return output.Print(snapshotResult{
		TS:       ts,
		Degraded: snap.Degraded,
		Windows:  snap.Windows,
	})
}
