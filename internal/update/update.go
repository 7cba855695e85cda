package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shubh-io/dockboard/pkg/version"
	"github.com/sirupsen/logrus"
)

const defaultAPIBase = "https://api.github.com"

// Checker looks up the newest published release.
type Checker struct {
	APIBase string // github api root, overridable for tests
	Repo    string
	HTTP    *http.Client
}

func NewChecker() *Checker {
	return &Checker{
		APIBase: defaultAPIBase,
		Repo:    version.Repo,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Checker) LatestReleaseTag(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimRight(c.APIBase, "/"), c.Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch release info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return "", fmt.Errorf("failed to parse JSON: %w", err)
	}
	if strings.TrimSpace(release.TagName) == "" {
		return "", fmt.Errorf("no tag name found in release")
	}
	return release.TagName, nil
}

// trims whitespace and leading 'v' or 'V'
func normalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if strings.HasPrefix(tag, "v") || strings.HasPrefix(tag, "V") {
		return tag[1:]
	}
	return tag
}

// compareSemver returns -1, 0 or 1. Numeric parts compare as numbers.
func compareSemver(a, b string) int {
	a = normalizeTag(a)
	b = normalizeTag(b)
	if a == b {
		return 0
	}
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := max(len(as), len(bs))
	for i := 0; i < n; i++ {
		var av, bv string
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av == bv {
			continue
		}
		ai, aErr := strconv.Atoi(av)
		bi, bErr := strconv.Atoi(bv)
		if aErr == nil && bErr == nil {
			if ai < bi {
				return -1
			}
			if ai > bi {
				return 1
			}
			continue
		}
		if cmp := strings.Compare(av, bv); cmp != 0 {
			return cmp
		}
	}
	return 0
}

// Run reports whether a newer release exists and how to get it. It never installs anything.
func (c *Checker) Run(ctx context.Context, current string, w io.Writer) error {
	fmt.Fprintln(w, "Checking for updates...")

	latest, err := c.LatestReleaseTag(ctx)
	if err != nil {
		logrus.WithError(err).Warn("update: release lookup failed")
		return fmt.Errorf("could not check latest release: %w", err)
	}

	if compareSemver(current, latest) >= 0 {
		fmt.Fprintf(w, "Already up-to-date (current: %s, latest: %s)\n", current, latest)
		return nil
	}

	fmt.Fprintf(w, "New release available! : %s → %s\n", current, latest)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "To update, run:")
	fmt.Fprintf(w, "  go install github.com/%s@%s\n", c.Repo, latest)
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Release notes: https://github.com/%s/releases/latest\n", c.Repo)
	return nil
}
