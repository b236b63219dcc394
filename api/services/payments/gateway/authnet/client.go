package authnet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	config "github.com/tbeaudouin05/authnet-billing/api/config"
	gw "github.com/tbeaudouin05/authnet-billing/api/services/payments/gateway"
)

const (
	ProductionURL = "https://api2.authorize.net/xml/v1/request.api"
	SandboxURL    = "https://apitest.authorize.net/xml/v1/request.api"

	maxResponseBytes = 2 << 20
)

// Client is the Authorize.Net JSON API implementation of the gateway.
type Client struct {
	cfg        *config.Config
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

// WithEndpoint overrides the environment-selected API URL.
func WithEndpoint(url string) Option { return func(c *Client) { c.endpoint = url } }

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.logger = l } }

// New returns a Gateway bound to the merchant credentials in cfg.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		endpoint:   EndpointFor(cfg),
		httpClient: &http.Client{Timeout: cfg.GatewayTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ gw.Gateway = (*Client)(nil)

// EndpointFor picks the production or sandbox API URL.
func EndpointFor(cfg *config.Config) string {
	if cfg.IsProduction() {
		return ProductionURL
	}
	return SandboxURL
}

func (c *Client) auth() merchantAuthentication {
	return merchantAuthentication{Name: c.cfg.AuthorizeNetLoginID, TransactionKey: c.cfg.AuthorizeNetTransactionKey}
}

func (c *Client) validationMode() string {
	if c.cfg.IsProduction() {
		return "liveMode"
	}
	return "testMode"
}

// send posts {operation: body} and decodes the reply into a Result.
// Transport failures, non-2xx replies and malformed bodies are logged and collapse to Unreachable.
func send[T any](ctx context.Context, c *Client, operation string, body any) gw.Result[T] {
	payload, err := json.Marshal(map[string]any{operation: body})
	if err != nil {
		c.logger.Error("authorize.net request encoding failed", "operation", operation, "err", err)
		return gw.Unreachable[T]()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("authorize.net request build failed", "operation", operation, "err", err)
		return gw.Unreachable[T]()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("authorize.net API error", "operation", operation, "err", err)
		return gw.Unreachable[T]()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Error("authorize.net response read failed", "operation", operation, "err", err)
		return gw.Unreachable[T]()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("authorize.net API error", "operation", operation, "status", resp.StatusCode, "body", string(raw))
		return gw.Unreachable[T]()
	}

	res, err := decode[T](raw)
	if err != nil {
		c.logger.Error("authorize.net response decode failed", "operation", operation, "err", err)
		return gw.Unreachable[T]()
	}
	if !res.IsOK() {
		c.logger.Warn("authorize.net rejected request", "operation", operation, "code", res.Code(), "text", res.Text())
	}
	return res
}

// decode strips the byte-order marks the API prefixes to some bodies, then
// reads the shared messages envelope and the operation payload.
func decode[T any](raw []byte) (gw.Result[T], error) {
	raw = StripBOM(raw)

	var env struct {
		Messages *gw.Messages `json:"messages"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return gw.Unreachable[T](), err
	}
	if env.Messages == nil || env.Messages.ResultCode == "" {
		return gw.Unreachable[T](), fmt.Errorf("response has no messages.resultCode")
	}

	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return gw.Unreachable[T](), err
	}
	if env.Messages.ResultCode != gw.ResultCodeOk {
		return gw.Rejected(payload, env.Messages.Message), nil
	}
	return gw.OK(payload, env.Messages.Message), nil
}

// StripBOM removes any leading U+FEFF from body.
func StripBOM(body []byte) []byte {
	return bytes.TrimLeft(body, "\ufeff")
}
