package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shubh-io/dockboard/internal/api"
	"github.com/spf13/cobra"
)

var flagFollow bool

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().BoolVarP(&flagFollow, "follow", "f", false, "keep printing new output")
}

var logsCmd = &cobra.Command{
	Use:     "logs NAME",
	Short:   "Show a container's output",
	Example: "  dockboard logs web -f",
	Args:    cobra.ExactArgs(1),
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

		ctx := cmd.Context()
		name := args[0]
		out := cmd.OutOrStdout()

		text, err := client.GetLogs(ctx, name)
		if err != nil {
			return err
		}
		writeLogs(out, "", text)
		if !flagFollow {
			if text != "" && !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(out)
			}
			return nil
		}

		ticker := time.NewTicker(cfg.PollInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
			next, err := client.GetLogs(ctx, name)
			if err != nil {
				if api.IsRejection(err) {
					// container went away
					return err
				}
				continue
			}
			writeLogs(out, text, next)
			text = next
		}
	},
}

// writeLogs prints what next adds over prev. The server returns a tail, so
// when prev is no longer a prefix the whole tail is printed again.
func writeLogs(w io.Writer, prev, next string) {
	if prev != "" && strings.HasPrefix(next, prev) {
		next = next[len(prev):]
	}
	fmt.Fprint(w, next)
}
