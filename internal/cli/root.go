package cli

import (
	"context"

	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/config"
	"github.com/spf13/cobra"
)

const (
	groupContainers = "containers"
	groupGeneral    = "general"
)

var flagServer string

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupContainers,
		Title: "Containers:",
	}, &cobra.Group{
		ID:    groupGeneral,
		Title: "General:",
	})
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "container API base url (overrides server.url)")
}

var rootCmd = &cobra.Command{
	Use:   "dockboard",
	Short: "Terminal dashboard for a mini-docker server",
	Long: `Watch and control the containers of a mini-docker server from the terminal.

Run without a command to open the dashboard.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig reads the config file and applies command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	return cfg, nil
}

func newClient(cfg *config.Config) (*api.Client, error) {
	return api.NewClient(api.Options{
		BaseURL:     cfg.Server.URL,
		Timeout:     cfg.RequestTimeout(),
		LogTail:     cfg.Server.LogTail,
		LogCacheTTL: cfg.LogCacheTTL(),
	})
}
