package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/snapshot"
)

// waitResult is the output of a wait command.
type waitResult struct {
	OK       bool   `yaml:"ok"                  json:"ok"`
	Action   string `yaml:"action"              json:"action"`
	Elapsed  string `yaml:"elapsed"             json:"elapsed"`
	Match    string `yaml:"match,omitempty"     json:"match,omitempty"`
	TimedOut bool   `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the UI to settle or for a node to appear",
	Long:  "Poll the UI until it is structurally idle (consecutive identical fingerprints) or until a node matching the given text appears, or until timeout.",
	RunE:  runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().Int("idle", 0, "Wait until this many consecutive snapshots have identical fingerprints")
	waitCmd.Flags().String("for-text", "", "Wait for a node with this text (substring match)")
	waitCmd.Flags().Bool("gone", false, "Invert: wait until the text is NO LONGER present")
	waitCmd.Flags().Int("timeout", 30, "Max seconds to wait")
	waitCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
}

func runWait(cmd *cobra.Command, args []string) error {
	idle, _ := cmd.Flags().GetInt("idle")
	forText, _ := cmd.Flags().GetString("for-text")
	gone, _ := cmd.Flags().GetBool("gone")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")

	if idle == 0 && forText == "" {
		return fmt.Errorf("specify a condition: --idle or --for-text")
	}

	p, err := openProvider(cmd)
	if err != nil {
		return err
	}

	cache := snapshot.NewHandleCache()
	defer cache.Clear()

	interval := time.Duration(intervalMs) * time.Millisecond
	deadline := time.Now().Add(time.Duration(timeoutSec) * time.Second)
	start := time.Now()

	var detector *model.IdleDetector
	if idle > 0 {
		detector = model.NewIdleDetector(idle)
	}

	matchDesc := describeWaitCondition(idle, forText, gone)

	for {
		snap, err := snapshot.Build(p, cache)
		if err != nil {
			if time.Now().After(deadline) {
				return fmt.Errorf("timeout after %ds (last error: %w)", timeoutSec, err)
			}
			time.Sleep(interval)
			continue
		}

		met := true
		if detector != nil {
			met = detector.Observe(model.Fingerprint(snap.Windows))
		}
		if met && forText != "" {
			found := len(model.Find(snap.Windows, model.MatchText, forText, false)) > 0
			if gone {
				met = !found
			} else {
				met = found
			}
		}

		if met {
			return output.Print(waitResult{
				OK:      true,
				Action:  "wait",
				Elapsed: fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				Match:   matchDesc,
			})
		}

		if time.Now().After(deadline) {
			// Print the result, then return an error for non-zero exit code
			_ = output.Print(waitResult{
				OK:       false,
				Action:   "wait",
				Elapsed:  fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				Match:    matchDesc,
				TimedOut: true,
			})
			return fmt.Errorf("timed out waiting for condition: %s", matchDesc)
		}

		time.Sleep(interval)
	}
}

func describeWaitCondition(idle int, forText string, gone bool) string {
	switch {
	case idle > 0 && forText != "":
		return fmt.Sprintf("idle x%d and text %q", idle, forText)
	case idle > 0:
		return fmt.Sprintf("idle x%d", idle)
	case gone:
		return fmt.Sprintf("text %q gone", forText)
	default:
		return fmt.Sprintf("text %q", forText)
	}
}
