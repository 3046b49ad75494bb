package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"neolish/internal/infra"
)

// ErrMissingEndpoint indicates the client was configured without a workflow URL.
var ErrMissingEndpoint = errors.New("generation: endpoint url is required")

// ErrMissingAPIKey indicates the client was configured without credentials.
var ErrMissingAPIKey = errors.New("generation: api key is required")

// Options configures the workflow client.
type Options struct {
	EndpointURL    string
	APIKey         string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs blocking calls against the external AI workflow service.
type Client struct {
	endpointURL string
	apiKey      string
	httpClient  *http.Client
	logger      *infra.Logger
}

// Runner is the contract the job processor depends on.
type Runner interface {
	Run(ctx context.Context, user string, inputs Inputs) (*Output, error)
}

// NewClient constructs a client with sane defaults and injected dependencies.
// Both the endpoint and the credential are required: their absence is a
// configuration error surfaced before any job is attempted.
func NewClient(opts Options) (*Client, error) {
	endpoint := strings.TrimSpace(opts.EndpointURL)
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 300 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		endpointURL: endpoint,
		apiKey:      apiKey,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// Run invokes the workflow once in blocking mode and returns the parsed output.
func (c *Client) Run(ctx context.Context, user string, inputs Inputs) (*Output, error) {
	payload := workflowRequest{
		Inputs:       inputs,
		ResponseMode: "blocking",
		User:         user,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("generation: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("generation: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("generation: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var detail workflowResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Message != "" {
			return nil, fmt.Errorf("generation: %s (%s)", detail.Message, detail.Code)
		}
		return nil, fmt.Errorf("generation: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	out, err := parseWorkflowResponse(raw)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("user", user).
		Int("article_bytes", len(out.Article)).
		Msg("generation: workflow run succeeded")
	return out, nil
}

var _ Runner = (*Client)(nil)
