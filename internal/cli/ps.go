package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagRunning bool
	flagQuiet   bool
	flagFormat  string
)

func init() {
	rootCmd.AddCommand(psCmd)
	psCmd.Flags().BoolVarP(&flagRunning, "running", "r", false, "only show running containers")
	psCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "only show container names")
	psCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format (json)")
}

var psCmd = &cobra.Command{
	Use:     "ps",
	Aliases: []string{"list", "ls"},
	Short:   "List containers",
	Long: `List all containers on the server and their status, once.
`,
	Example: "  dockboard ps --running",
	Args:    cobra.NoArgs,
	GroupID: groupContainers,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		containers, err := client.ListContainers(cmd.Context())
		if err != nil {
			return err
		}

		// don't print "null" for an empty list
		shown := []api.Container{}
		for _, c := range containers {
			if flagRunning && store.ParseStatus(c.Status) != store.StatusRunning {
				continue
			}
			shown = append(shown, c)
		}

		out := cmd.OutOrStdout()
		if flagQuiet {
			for _, c := range shown {
				fmt.Fprintln(out, c.Name)
			}
			return nil
		}

		if flagFormat == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(shown)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		defer w.Flush()

		if isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Fprintf(w, "ID\tNAME\tSTATUS\tPID\tUPTIME\tCPU\tRESOURCES\n")
			fmt.Fprintf(w, "--\t----\t------\t---\t------\t---\t---------\n")
		}
		for _, c := range shown {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(c.ID), c.Name, store.ParseStatus(c.Status), dash(c.PID), dash(c.Uptime), dash(c.CPU), dash(c.Resources))
		}

		if len(containers) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), `Use "dockboard create" to create a container.`)
		}
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
