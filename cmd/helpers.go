package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/provider"
	"github.com/uiprobe/uiprobe/internal/provider/scene"
)

// openProvider returns the UI provider for a command: the scene file named
// by --scene, or the registered live backend.
func openProvider(cmd *cobra.Command) (provider.Provider, error) {
	scenePath, _ := cmd.Flags().GetString("scene")
	if scenePath != "" {
		return scene.Load(scenePath)
	}
	return provider.New()
}
