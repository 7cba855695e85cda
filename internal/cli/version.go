package cli

import (
	"fmt"

	"github.com/shubh-io/dockboard/internal/update"
	"github.com/shubh-io/dockboard/pkg/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate("dockboard version: {{.Version}}\n")
	rootCmd.AddCommand(versionCmd, updateCmd)
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the version",
	Args:    cobra.NoArgs,
	GroupID: groupGeneral,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dockboard version: %s\n", version.Version)
	},
}

var updateCmd = &cobra.Command{
	Use:     "update",
	Short:   "Check for a newer release",
	Args:    cobra.NoArgs,
	GroupID: groupGeneral,
	RunE: func(cmd *cobra.Command, args []string) error {
		return update.NewChecker().Run(cmd.Context(), version.Version, cmd.OutOrStdout())
	},
}
