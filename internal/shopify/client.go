// Package shopify is a small client for the Shopify Admin GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/metrics"
)

const (
	DefaultAPIVersion = "2024-10"
	DefaultPageSize   = 50
	MaxPageSize       = 250

	breakerName = "shopify-admin"
)

// ErrCircuitOpen is returned while the circuit breaker rejects requests.
var ErrCircuitOpen = errors.New("shopify circuit breaker is open")

// Config configures a Client.
type Config struct {
	Store       string // e.g. my-shop.myshopify.com
	AccessToken string
	APIVersion  string
	// RatePerSecond caps outgoing requests. Zero disables pacing.
	RatePerSecond float64
	// Endpoint overrides the URL built from Store and APIVersion.
	Endpoint   string
	HTTPClient *http.Client
}

// Client sends GraphQL documents to one store.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker[[]byte]
}

// GraphQLError carries the errors array of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "shopify graphql: " + strings.Join(e.Messages, "; ")
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		store := strings.TrimSpace(cfg.Store)
		if store == "" {
			return nil, errors.New("SHOPIFY_STORE is not configured")
		}
		version := strings.TrimSpace(cfg.APIVersion)
		if version == "" {
			version = DefaultAPIVersion
		}
		store = strings.TrimSuffix(strings.TrimPrefix(store, "https://"), "/")
		endpoint = fmt.Sprintf("https://%s/admin/api/%s/graphql.json", store, version)
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, errors.New("SHOPIFY_ACCESS_TOKEN is not configured")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &Client{
		endpoint: endpoint,
		token:    cfg.AccessToken,
		http:     httpClient,
		limiter:  rate.NewLimiter(limit, 1),
		cb:       newBreaker(),
	}, nil
}

func newBreaker() *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Do executes query and decodes the data object into out.
func (c *Client) Do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for shopify rate limit: %w", err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.post(ctx, query, variables)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ShopifyRequests.WithLabelValues("rejected").Inc()
			return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		metrics.ShopifyRequests.WithLabelValues("failure").Inc()
		return err
	}
	metrics.ShopifyRequests.WithLabelValues("success").Inc()

	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("unmarshal shopify response: %w", err)
	}
	if len(resp.Errors) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range resp.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return gqlErr
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return errors.New("shopify response missing data")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("unmarshal shopify data: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, query string, variables map[string]interface{}) ([]byte, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal shopify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create shopify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute shopify request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read shopify response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("shopify request failed: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ClampPageSize maps n into the page sizes the API accepts.
func ClampPageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	return min(n, MaxPageSize)
}
