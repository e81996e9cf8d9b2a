package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/snapshot"
)

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Watch the UI fingerprint and stream change events as JSONL",
	Long: `Continuously snapshot the UI, fingerprint each snapshot, and emit an event line whenever the structure changes.

Each line is a JSON object with the similarity percentage to the previous fingerprint. Nothing is emitted while the UI is stable, which makes this far cheaper than repeated full snapshots.

Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop observing.`,
	RunE: runObserve,
}

func init() {
	rootCmd.AddCommand(observeCmd)
	observeCmd.Flags().Int("interval", 1000, "Polling interval in milliseconds")
	observeCmd.Flags().Int("duration", 0, "Max seconds to observe (0 = until Ctrl+C)")
}

func runObserve(cmd *cobra.Command, args []string) error {
	intervalMs, _ := cmd.Flags().GetInt("interval")
	durationSec, _ := cmd.Flags().GetInt("duration")

	p, err := openProvider(cmd)
	if err != nil {
		return err
	}

	cache := snapshot.NewHandleCache()
	defer cache.Clear()

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	interval := time.Duration(intervalMs) * time.Millisecond
	var deadline time.Time
	if durationSec > 0 {
		deadline = time.Now().Add(time.Duration(durationSec) * time.Second)
	}

	// Initial snapshot to establish the baseline fingerprint
	snap, err := snapshot.Build(p, cache)
	if err != nil {
		return err
	}
	prev := model.Fingerprint(snap.Windows)

	enc.Encode(map[string]interface{}{
		"type":     "baseline",
		"ts":       time.Now().Unix(),
		"windows":  len(snap.Windows),
		"degraded": snap.Degraded,
	})

	for {
		if durationSec > 0 && time.Now().After(deadline) {
			return nil
		}

		time.Sleep(interval)

		snap, err := snapshot.Build(p, cache)
		if err != nil {
			enc.Encode(map[string]interface{}{
				"type":  "error",
				"ts":    time.Now().Unix(),
				"error": err.Error(),
			})
			continue
		}

		fp := model.Fingerprint(snap.Windows)
		if fp != prev {
			enc.Encode(map[string]interface{}{
				"type":       "changed",
				"ts":         time.Now().Unix(),
				"similarity": model.Similarity(prev, fp),
				"windows":    len(snap.Windows),
			})
			prev = fp
		}
	}
}
