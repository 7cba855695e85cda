package cli

import (
	"fmt"
	"strings"

	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/engine"
	"github.com/spf13/cobra"
)

var (
	flagCommand string
	flagMem     int
	flagCPU     int
	flagVolumes []string
	flagEnv     []string
)

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&flagCommand, "cmd", "c", "", "command to run")
	createCmd.Flags().IntVarP(&flagMem, "memory", "m", 0, "memory limit in MB")
	createCmd.Flags().IntVar(&flagCPU, "cpu", 0, "cpu limit in percent (1-100)")
	createCmd.Flags().StringArrayVarP(&flagVolumes, "volume", "v", nil, "host:container mount, repeatable")
	createCmd.Flags().StringArrayVarP(&flagEnv, "env", "e", nil, "KEY=VALUE, repeatable")
}

var createCmd = &cobra.Command{
	Use:     "create NAME",
	Short:   "Create a container",
	Example: `  dockboard create web -c "python3 -m http.server 8080" -m 256 -e PORT=8080`,
	Args:    cobra.ExactArgs(1),
	GroupID: groupContainers,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := api.CreateSpec{
			Name:     strings.TrimSpace(args[0]),
			Command:  strings.TrimSpace(flagCommand),
			MemLimit: flagMem,
			CPULimit: flagCPU,
			Volumes:  flagVolumes,
		}
		if len(flagEnv) > 0 {
			spec.EnvVars = make(map[string]string, len(flagEnv))
			for _, kv := range flagEnv {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || strings.TrimSpace(k) == "" {
					return fmt.Errorf("env: expected KEY=VALUE, got %q", kv)
				}
				spec.EnvVars[strings.TrimSpace(k)] = v
			}
		}
		if err := engine.ValidateCreate(spec); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		id, err := client.CreateContainer(cmd.Context(), spec)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created container %s (%s)\n", spec.Name, shortID(id))
		return nil
	},
}
