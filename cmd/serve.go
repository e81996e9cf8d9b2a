package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server",
	Long:  "Expose the snapshot, find, resolve, similarity, and wait_idle tools over the Model Context Protocol so agents can drive the UI provider session.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "MCP transport: stdio or streamable-http")
	serveCmd.Flags().Int("port", 8931, "Port for the streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	p, err := openProvider(cmd)
	if err != nil {
		return err
	}

	return server.New(p).Serve(server.Config{
		Transport: transport,
		Port:      port,
	})
}
