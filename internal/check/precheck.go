package check

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/config"
	"github.com/sirupsen/logrus"
)

// ============================================================================
// PreCheck Types
// ============================================================================

type PreCheckResult struct {
	Passed          bool
	ErrorType       PreCheckErrorType
	ErrorMessage    string
	SuggestedAction string
}

type PreCheckErrorType int

const (
	NoError PreCheckErrorType = iota
	InvalidServerURL
	InvalidPollRate
	ServerUnreachable
	ServerRejected
)

// reachability probes must not hold up startup for the full request timeout
const probeTimeout = 3 * time.Second

// Lister is the one endpoint the reachability probe needs.
type Lister interface {
	ListContainers(ctx context.Context) ([]api.Container, error)
}

// ============================================================================
// PreCheck Functions
// ============================================================================

func configHint() string {
	path, err := config.GetConfigPath()
	if err != nil {
		return "your config file"
	}
	return path
}

// checkConfig catches settings that would make the dashboard useless before it starts
func checkConfig(cfg *config.Config) PreCheckResult {
	raw := strings.TrimSpace(cfg.Server.URL)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return PreCheckResult{
			Passed:       false,
			ErrorType:    InvalidServerURL,
			ErrorMessage: fmt.Sprintf("Server URL %q is not a valid http(s) address", raw),
			SuggestedAction: "Set server.url in " + configHint() + ", for example:\n\n" +
				"  server:\n    url: http://127.0.0.1:5000\n\n" +
				"Or pass it on the command line:\n  dockboard --server http://127.0.0.1:5000",
		}
	}

	if cfg.Performance.PollRate < 1 {
		return PreCheckResult{
			Passed:          false,
			ErrorType:       InvalidPollRate,
			ErrorMessage:    fmt.Sprintf("performance.poll_rate must be at least 1 second, got %d", cfg.Performance.PollRate),
			SuggestedAction: "Fix performance.poll_rate in " + configHint(),
		}
	}
	return PreCheckResult{Passed: true}
}

// checkServer lists containers once with a short deadline
func checkServer(ctx context.Context, l Lister, serverURL string) PreCheckResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	_, err := l.ListContainers(ctx)
	if err == nil {
		return PreCheckResult{Passed: true}
	}

	var rej *api.RejectionError
	if errors.As(err, &rej) {
		return PreCheckResult{
			Passed:       false,
			ErrorType:    ServerRejected,
			ErrorMessage: fmt.Sprintf("The server at %s answered, but refused to list containers:\n\n%s", serverURL, rej.Message),
			SuggestedAction: "Make sure the URL points at the container API and not another service.\n\n" +
				"Skip this check with runtime.run_prechecks: false in " + configHint(),
		}
	}

	return PreCheckResult{
		Passed:       false,
		ErrorType:    ServerUnreachable,
		ErrorMessage: fmt.Sprintf("Cannot reach the container server at %s.\n\nError:\n%v", serverURL, err),
		SuggestedAction: "Start the server on that host:\n\n" +
			"  python3 main.py\n\n" +
			"Or point dockboard at a running one:\n  dockboard --server http://HOST:5000",
	}
}

// RunPreChecks validates cfg and probes the server with l. A nil l builds a client from cfg.
func RunPreChecks(ctx context.Context, cfg *config.Config, l Lister) PreCheckResult {
	if !cfg.Runtime.RunPreChecks {
		logrus.Debug("precheck: disabled by config")
		return PreCheckResult{Passed: true}
	}

	if result := checkConfig(cfg); !result.Passed {
		logrus.WithField("error_type", result.ErrorType).Warn("precheck: config check failed")
		return result
	}

	if l == nil {
		client, err := api.NewClient(api.Options{
			BaseURL: cfg.Server.URL,
			Timeout: probeTimeout,
		})
		if err != nil {
			return PreCheckResult{
				Passed:          false,
				ErrorType:       InvalidServerURL,
				ErrorMessage:    err.Error(),
				SuggestedAction: "Fix server.url in " + configHint(),
			}
		}
		l = client
	}

	result := checkServer(ctx, l, cfg.Server.URL)
	if !result.Passed {
		logrus.WithFields(logrus.Fields{
			"server":     cfg.Server.URL,
			"error_type": result.ErrorType,
		}).Warn("precheck: server check failed")
	}
	return result
}
