package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shubh-io/dockboard/internal/check"
	"github.com/shubh-io/dockboard/internal/engine"
	"github.com/shubh-io/dockboard/internal/logging"
	"github.com/shubh-io/dockboard/internal/push"
	"github.com/shubh-io/dockboard/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrPreCheckFailed is returned after the precheck report was printed.
var ErrPreCheckFailed = errors.New("prechecks failed")

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Setup(cfg.Logging); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: debug log disabled: %v\n", err)
	}
	defer logging.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	result := check.RunPreChecks(ctx, cfg, nil)
	if !result.Passed {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n%s\n", result.ErrorMessage, result.SuggestedAction)
		return ErrPreCheckFailed
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	pushURL := cfg.Server.PushURL
	if pushURL == "" {
		if pushURL, err = push.DeriveURL(cfg.Server.URL); err != nil {
			return fmt.Errorf("push url: %w", err)
		}
	}
	pc := push.NewClient(pushURL)
	go func() {
		if err := pc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logrus.WithError(err).Warn("push: stopped")
		}
	}()

	eng := engine.New(engine.Options{
		API:    client,
		Push:   pc,
		Config: cfg,
	})
	defer eng.Close()

	logrus.WithFields(logrus.Fields{
		"server": cfg.Server.URL,
		"push":   pushURL,
	}).Info("dashboard starting")

	// start the TUI with alternate screen mode
	// (alternate screen = your terminal history stays clean)
	p := tea.NewProgram(tui.NewModel(eng, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
