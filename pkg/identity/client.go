package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Config holds the directory service credentials.
type Config struct {
	Endpoint  string `env:"DIRECTORY_ENDPOINT,required"` // Base URL of the directory API.
	ProjectID string `env:"DIRECTORY_PROJECT_ID,required"`
	APIKey    string `env:"DIRECTORY_API_KEY,required"`
}

// Client is a Directory implementation over the directory's REST API.
// Zero value is not usable; use NewClient.
type Client struct {
	endpoint  string
	projectID string
	apiKey    string
	// client is reused across requests for connection pooling
	client *http.Client
}

// NewClient creates a directory client with a pooled HTTP transport.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrInvalidConfig)
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint: %v", ErrInvalidConfig, err)
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrInvalidConfig)
	}

	return &Client{
		endpoint:  cfg.Endpoint,
		projectID: cfg.ProjectID,
		apiKey:    cfg.APIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// NewClientWithHTTPClient creates a directory client with a custom HTTP
// client, which allows custom transports or testing against a local server.
func NewClientWithHTTPClient(cfg Config, httpClient *http.Client) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.client = httpClient
	}
	return c, nil
}

// Lookup fetches the identity record for an account.
// Returns ErrNotFound for unknown accounts and ErrLookupFailed for any
// transport or server failure.
func (c *Client) Lookup(ctx context.Context, accountID string) (Identity, error) {
	if accountID == "" {
		return Identity{}, fmt.Errorf("%w: account id is required", ErrLookupFailed)
	}

	endpoint := fmt.Sprintf("%s/v1/accounts/%s", c.endpoint, url.PathEscape(accountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Identity{}, errors.Join(ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Project-ID", c.projectID)
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return Identity{}, errors.Join(ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Identity{}, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return Identity{}, fmt.Errorf("%w: unexpected status %d", ErrLookupFailed, resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, errors.Join(ErrLookupFailed, err)
	}
	if id.AccountID == "" {
		id.AccountID = accountID
	}
	return id, nil
}
