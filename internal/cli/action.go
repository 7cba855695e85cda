package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shubh-io/dockboard/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var flagForce bool

func init() {
	for _, kind := range store.AllActions {
		rootCmd.AddCommand(newActionCmd(kind))
	}
}

var errSomeFailed = errors.New("some containers failed")

func newActionCmd(kind store.ActionKind) *cobra.Command {
	verb := string(kind)
	cmd := &cobra.Command{
		Use:     verb + " NAME...",
		Short:   strings.ToUpper(verb[:1]) + verb[1:] + " one or more containers",
		Example: "  dockboard " + verb + " web db",
		Args:    cobra.MinimumNArgs(1),
		GroupID: groupContainers,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == store.ActionDelete && !flagForce {
				return fmt.Errorf("delete cannot be undone; pass --force to delete %s", strings.Join(args, ", "))
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			// one call per name, bounded like the dashboard's bulk actions
			errs := make([]error, len(args))
			var g errgroup.Group
			g.SetLimit(max(cfg.Actions.MaxConcurrent, 1))
			for i, name := range args {
				i, name := i, name
				g.Go(func() error {
					_, errs[i] = client.DoAction(cmd.Context(), name, verb)
					return nil
				})
			}
			_ = g.Wait()

			failed := 0
			for i, name := range args {
				if errs[i] != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "Failed to %s %s: %v\n", verb, name, errs[i])
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Container %s %s\n", name, kind.Past())
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errSomeFailed, failed, len(args))
			}
			return nil
		},
	}
	if kind == store.ActionDelete {
		cmd.Aliases = []string{"rm"}
		cmd.Flags().BoolVarP(&flagForce, "force", "f", false, "skip the safety check")
	}
	return cmd
}
