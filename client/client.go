package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/peergov/modgate"
)

const (
	defaultTimeout = 3 * time.Second
)

// Client talks to remote gate nodes over their public REST surface.
type Client struct {
	client        *http.Client
	cache         *cache.Cache
	userAgent     string
	defaultDomain string
	scheme        string
	authToken     string
}

func New(defaultDomain string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:        &httpClient,
		cache:         cache.New(10*time.Minute, 15*time.Minute),
		defaultDomain: defaultDomain,
		scheme:        "https",
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// SetAuthToken attaches a bearer token to every outgoing request.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

func (c *Client) httpRequest(ctx context.Context, method, domain, path string, response any) error {
	if domain == "" {
		domain = c.defaultDomain
	}
	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}

	url := c.scheme + "://" + domain + path
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}

	return nil
}

// GetWellKnown fetches and caches a node descriptor.
func (c *Client) GetWellKnown(ctx context.Context, host string) (modgate.WellKnownModgate, error) {
	cacheKey := "wellknown:" + host

	x, found := c.cache.Get(cacheKey)
	if found {
		return x.(modgate.WellKnownModgate), nil
	}

	var wellknown modgate.WellKnownModgate
	err := c.httpRequest(ctx, http.MethodGet, host, "/.well-known/modgate", &wellknown)
	if err != nil {
		return modgate.WellKnownModgate{}, fmt.Errorf("failed to get well-known modgate: %v", err)
	}

	c.cache.Set(cacheKey, wellknown, cache.DefaultExpiration)

	return wellknown, nil
}

func (c *Client) GetProposal(ctx context.Context, host string, id uint64) (modgate.Proposal, error) {
	var proposal modgate.Proposal
	err := c.httpRequest(ctx, http.MethodGet, host, fmt.Sprintf("/api/v1/proposals/%d", id), &proposal)
	if err != nil {
		return modgate.Proposal{}, err
	}
	return proposal, nil
}

func (c *Client) GetScores(ctx context.Context, host string, id uint64) ([]modgate.ScoreRecord, error) {
	var records []modgate.ScoreRecord
	err := c.httpRequest(ctx, http.MethodGet, host, fmt.Sprintf("/api/v1/proposals/%d/scores", id), &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) GetModerators(ctx context.Context, host string) ([]modgate.Moderator, error) {
	var moderators []modgate.Moderator
	err := c.httpRequest(ctx, http.MethodGet, host, "/api/v1/moderators", &moderators)
	if err != nil {
		return nil, err
	}
	return moderators, nil
}
