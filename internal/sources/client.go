// Package sources fetches and parses the two public CO2 datasets: the NOAA
// Mauna Loa daily concentration file and the Our World in Data annual
// emissions file.
package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
	"github.com/c0pp3rdru1d/C02-Monitor/pkg/version"
)

// Default endpoints and limits.
const (
	DefaultConcentrationURL = "https://gml.noaa.gov/webdata/ccgg/trends/co2/co2_daily_mlo.csv"
	DefaultEmissionsURL     = "https://raw.githubusercontent.com/owid/co2-data/master/owid-co2-data.csv"
	DefaultTimeout          = 20 * time.Second

	// maxBodyBytes caps a single download. The OWID file is roughly 15 MB.
	maxBodyBytes = 64 << 20
)

// Source names used in errors and logs.
const (
	sourceConcentration = "concentration"
	sourceEmissions     = "emissions"
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	ConcentrationURL string
	EmissionsURL     string
	Timeout          time.Duration
	UserAgent        string
	HTTPClient       *http.Client
	Logger           zerolog.Logger
}

// Client retrieves both datasets over HTTP.
type Client struct {
	concentrationURL string
	emissionsURL     string
	userAgent        string
	httpClient       *http.Client
	logger           zerolog.Logger
}

// NewClient creates a Client, filling unset options with defaults.
func NewClient(opts Options) *Client {
	c := &Client{
		concentrationURL: opts.ConcentrationURL,
		emissionsURL:     opts.EmissionsURL,
		userAgent:        opts.UserAgent,
		httpClient:       opts.HTTPClient,
		logger:           opts.Logger,
	}
	if c.concentrationURL == "" {
		c.concentrationURL = DefaultConcentrationURL
	}
	if c.emissionsURL == "" {
		c.emissionsURL = DefaultEmissionsURL
	}
	if c.userAgent == "" {
		c.userAgent = version.UserAgent()
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

// ConcentrationURL returns the configured concentration endpoint.
func (c *Client) ConcentrationURL() string { return c.concentrationURL }

// EmissionsURL returns the configured emissions endpoint.
func (c *Client) EmissionsURL() string { return c.emissionsURL }

// LatestConcentration downloads the daily concentration file and returns its
// most recent valid record.
func (c *Client) LatestConcentration(ctx context.Context) (carbon.ConcentrationSnapshot, error) {
	body, err := c.getText(ctx, sourceConcentration, c.concentrationURL)
	if err != nil {
		return carbon.ConcentrationSnapshot{}, err
	}
	return ParseConcentration(bytes.NewReader(body))
}

// WorldEmissions downloads the emissions file and returns the World series
// restricted to [startYear, endYear].
func (c *Client) WorldEmissions(ctx context.Context, startYear, endYear int) (carbon.EmissionsSeries, error) {
	body, err := c.getText(ctx, sourceEmissions, c.emissionsURL)
	if err != nil {
		return nil, err
	}
	return ParseEmissions(bytes.NewReader(body), startYear, endYear)
}

// getText performs the GET and returns the body, bounded to maxBodyBytes.
func (c *Client) getText(ctx context.Context, source, url string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, networkError(source, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(source, 0, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, networkError(source, resp.StatusCode, fmt.Errorf("%w from %s", ErrUnexpectedStatus, url))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	_ = resp.Body.Close()
	if err != nil {
		return nil, networkError(source, resp.StatusCode, fmt.Errorf("reading response body: %w", err))
	}
	if len(data) > maxBodyBytes {
		return nil, networkError(source, resp.StatusCode, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, maxBodyBytes))
	}

	c.logger.Debug().
		Str("source", source).
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("fetched source")

	return data, nil
}
