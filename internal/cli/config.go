package cli

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/carbontrack-backend/internal/config"
)

// loadConfig reads the configuration named by --config, falling back to the
// loader's own defaults when the flag is empty.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}
