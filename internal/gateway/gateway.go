// Package gateway is the HTTP client for a running Tally Prime instance:
// connection checks, import pushes and master exports. All methods return
// values rather than raising; a dead or misbehaving Tally shows up as an
// offline Status or a failed Result, never as a panic.
package gateway

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/model"
)

const (
	DefaultBaseURL = "http://localhost:9000"

	// MinPayloadBytes rejects obviously truncated documents before they
	// touch the network; a valid envelope is always larger.
	MinPayloadBytes = 50

	healthTimeout = 5 * time.Second
	pushTimeout   = 30 * time.Second
	exportTimeout = 10 * time.Second
)

// Client talks to one Tally instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures the client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// WithBaseURL points the client at a non-default Tally address.
func WithBaseURL(url string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.baseURL = url
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		cfg.httpClient = hc
	}
}

// WithLogger attaches a logger; the default is a nop.
func WithLogger(l *zap.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.logger = l
	}
}

// NewClient creates a gateway client.
func NewClient(opts ...ClientOption) *Client {
	cfg := &clientConfig{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.baseURL, "/"),
		httpClient: cfg.httpClient,
		logger:     cfg.logger,
	}
}

// Status reports whether Tally is reachable.
type Status struct {
	Online bool   `json:"online"`
	Info   string `json:"info"`
}

// CheckConnection probes the health endpoint. Any HTTP answer at all
// counts as online; Tally versions differ in what they serve on /health,
// but a response means the port is attended.
func (c *Client) CheckConnection(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Status{Online: false, Info: "Offline: " + err.Error()}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("tally health check failed", zap.Error(err))
		return Status{Online: false, Info: "Offline: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return Status{Online: true, Info: "Tally Connected"}
	}
	return Status{Online: true, Info: "Port Open"}
}

// Push sends an import document to Tally and interprets the answer.
// Undersized payloads are rejected without a network round trip.
func (c *Client) Push(ctx context.Context, xml string) Result {
	if len(xml) < MinPayloadBytes {
		return failure("Payload too small (%d bytes), not sent", len(xml))
	}

	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(xml))
	if err != nil {
		return failure("Network Error: %s", err.Error())
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("tally push failed", zap.Error(err))
		return failure("Network Error: %s", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure("Network Error: %s", err.Error())
	}

	result := Interpret(string(body))
	c.logger.Info("tally push",
		zap.Bool("success", result.Success),
		zap.Int("created", result.Created),
		zap.Int("altered", result.Altered),
		zap.Int("errors", result.Errors))
	return result
}

// Export responses are scanned the same way import responses are: Tally's
// list exports are not reliably well-formed XML.
var (
	ledgerNameRe  = regexp.MustCompile(`(?s)<LEDGER[^>]*>.*?<NAME>([^<]+)</NAME>`)
	companyNameRe = regexp.MustCompile(`(?s)<COMPANY[^>]*>.*?<NAME>([^<]+)</NAME>`)
)

// FetchLedgers exports the chart of accounts and returns the set of
// ledger names Tally already knows, for seeding master dedup.
func (c *Client) FetchLedgers(ctx context.Context) (*model.LedgerSet, error) {
	body, err := c.export(ctx, "List of Accounts")
	if err != nil {
		return nil, err
	}

	set := model.NewLedgerSet()
	for _, m := range ledgerNameRe.FindAllStringSubmatch(body, -1) {
		set.Add(strings.TrimSpace(m[1]))
	}
	c.logger.Info("fetched existing ledgers", zap.Int("count", set.Len()))
	return set, nil
}

// FetchCompanies exports the list of companies currently open in Tally.
func (c *Client) FetchCompanies(ctx context.Context) ([]string, error) {
	body, err := c.export(ctx, "List of Companies")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var names []string
	for _, m := range companyNameRe.FindAllStringSubmatch(body, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *Client) export(ctx context.Context, report string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(exportRequest(report)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func exportRequest(report string) string {
	doc := etree.NewDocument()
	env := doc.CreateElement("ENVELOPE")
	env.CreateElement("HEADER").CreateElement("TALLYREQUEST").SetText("Export")
	env.CreateElement("BODY").
		CreateElement("EXPORTDATA").
		CreateElement("REQUESTDESC").
		CreateElement("REPORTNAME").SetText(report)
	out, _ := doc.WriteToString()
	return out
}
