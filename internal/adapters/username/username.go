// Package username resolves display names for new connections.
package username

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
)

var ErrUnexpectedStatus = errors.New("unexpected status from username service")

const maxBody = 1024

// Client asks the external name service for a fresh username.
type Client struct {
	URL  string
	HTTP *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

func (c *Client) Username(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("username request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read username: %w", err)
	}
	name := domain.NormalizeUsername(string(body))
	if name == "" {
		return "", domain.ErrUsernameEmpty
	}
	return name, nil
}

// Generated makes up names locally, e.g. "guest-k3x9a".
type Generated struct{}

func (Generated) Username(context.Context) (string, error) {
	return "guest-" + lo.RandomString(5, lo.AlphanumericCharset), nil
}

// Fallback uses Primary and falls back to a generated name when it fails,
// so a broken name service never blocks a join.
type Fallback struct {
	Primary core.UsernameSource
	Backup  core.UsernameSource
}

func (f Fallback) Username(ctx context.Context) (string, error) {
	name, err := f.Primary.Username(ctx)
	if err == nil {
		return name, nil
	}
	log.Warn().Err(err).Str("module", "adapters.username").Msg("username service failed, using fallback name")
	backup := f.Backup
	if backup == nil {
		backup = Generated{}
	}
	return backup.Username(ctx)
}

// New builds the source for the configured service URL. An empty URL means
// names are generated locally.
func New(url string, timeout time.Duration) core.UsernameSource {
	if url == "" {
		return Generated{}
	}
	return Fallback{Primary: NewClient(url, timeout), Backup: Generated{}}
}
