package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/l3montree-dev/honeypot-dashboard/packages/analysis"
	"github.com/l3montree-dev/honeypot-dashboard/packages/metrics"
	"github.com/l3montree-dev/honeypot-dashboard/packages/severity"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	defaultTimeout = 10 * time.Second

	attacksPath = "/api/attacks"
	statsPath   = "/api/stats"
)

type countryLookup interface {
	Lookup(ip net.IP) string
}

type Config struct {
	BaseURL string
	Timeout time.Duration

	// sent as bearer token when set
	Token string

	// optional, records get "Unknown" without it
	Countries countryLookup

	// overridable for tests
	HTTPClient *http.Client
	Now        func() time.Time
	Filler     analysis.Filler
}

// Client reads attack data from the honeypot api. None of its data methods
// fail: when the api cannot be used they return fallback data and say so in
// the Result.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	countries  countryLookup
	now        func() time.Time
	filler     analysis.Filler
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Filler == nil {
		cfg.Filler = analysis.RandomFiller
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: cfg.HTTPClient,
		countries:  cfg.Countries,
		now:        cfg.Now,
		filler:     cfg.Filler,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// newRequest builds a GET against the api with the json and auth headers set.
func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// request issues a GET against the api and decodes the json body into out.
func (c *Client) request(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		io.Copy(io.Discard, resp.Body) // nolint
		return fmt.Errorf("api error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) fetchAttacks(ctx context.Context) ([]types.Attack, error) {
	var res types.AttacksResponse
	if err := c.request(ctx, attacksPath, &res); err != nil {
		return nil, err
	}
	if res.Attacks == nil {
		return []types.Attack{}, nil
	}
	return res.Attacks, nil
}

func (c *Client) fetchStats(ctx context.Context) (types.Stats, error) {
	var res types.Stats
	err := c.request(ctx, statsPath, &res)
	return res, err
}

func (c *Client) fetchBoth(ctx context.Context) ([]types.Attack, types.Stats, error) {
	var attacks []types.Attack
	var stats types.Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attacks, err = c.fetchAttacks(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = c.fetchStats(ctx)
		return err
	})
	err := g.Wait()
	return attacks, stats, err
}

func observe[T any](endpoint string, res Result[T]) Result[T] {
	metrics.ObserveUpstream(endpoint, res.Source.String())
	if res.Err != nil {
		slog.Warn("api not available, using fallback data", "endpoint", endpoint, "err", res.Err)
	}
	return res
}

// GetAttacks returns the attacks of the api, or FallbackAttacks.
func (c *Client) GetAttacks(ctx context.Context) Result[[]types.Attack] {
	attacks, err := c.fetchAttacks(ctx)
	if err != nil {
		return observe("attacks", fallback(FallbackAttacks(c.now()), err))
	}
	return observe("attacks", live(attacks))
}

// GetStats returns the stats of the api, or FallbackStats.
func (c *Client) GetStats(ctx context.Context) Result[types.Stats] {
	stats, err := c.fetchStats(ctx)
	if err != nil {
		return observe("stats", fallback(FallbackStats(), err))
	}
	return observe("stats", live(stats))
}

// HoneypotStats returns the stat card summary, or MockSummary.
func (c *Client) HoneypotStats(ctx context.Context) Result[types.Summary] {
	stats, err := c.fetchStats(ctx)
	if err != nil {
		return observe("summary", fallback(MockSummary(), err))
	}
	return observe("summary", live(analysis.Summarize(stats)))
}

// HoneypotLogs returns the attacks as table records, or MockLogs.
func (c *Client) HoneypotLogs(ctx context.Context) Result[[]types.AttackRecord] {
	attacks, err := c.fetchAttacks(ctx)
	if err != nil {
		return observe("logs", fallback(MockLogs(c.now()), err))
	}
	return observe("logs", live(c.ToRecords(attacks)))
}

// AttackAnalytics fetches attacks and stats concurrently. If either fails
// the whole result is MockAnalytics.
func (c *Client) AttackAnalytics(ctx context.Context) Result[types.Analytics] {
	attacks, stats, err := c.fetchBoth(ctx)
	if err != nil {
		return observe("analytics", fallback(MockAnalytics(), err))
	}
	timeline := analysis.Timeline(attacks, c.now(), c.filler)
	return observe("analytics", live(analysis.BuildAnalytics(attacks, stats, timeline)))
}

// ToRecords maps api attacks to log records. ids start at 1.
func (c *Client) ToRecords(attacks []types.Attack) []types.AttackRecord {
	records := make([]types.AttackRecord, len(attacks))
	for i, attack := range attacks {
		level, ok := severity.Parse(attack.Severity)
		if !ok {
			level = severity.ForAttackType(attack.Type)
		}
		records[i] = types.AttackRecord{
			ID:        i + 1,
			Timestamp: attack.Timestamp,
			IP:        attack.SourceIP,
			Type:      attack.Type,
			Severity:  level,
			Country:   c.country(attack.SourceIP),
			Payload:   attack.Details,
			Honeypot:  attack.Honeypot,
			Status:    types.StatusDetected,
		}
	}
	return records
}

func (c *Client) country(ip string) string {
	if c.countries == nil {
		return types.UnknownCountry
	}
	return c.countries.Lookup(net.ParseIP(ip))
}

// HealthCheck reports whether the api answers at all. Unlike the data
// methods it returns the error.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := c.newRequest(ctx, "/")
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to check health: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) // nolint
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}
	return nil
}
