package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-devconnector-backend/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

// ErrUserNotFound is returned for any non-200 answer from the GitHub API.
var ErrUserNotFound = errors.New("github: user not found")

const (
	DefaultBaseURL = "https://api.github.com"
	cachePrefix    = "github:repos:"
	maxBodyBytes   = 1 << 20
)

type Config struct {
	BaseURL  string
	Token    string
	CacheTTL time.Duration
}

// Client fetches a user's five most recently created public repositories.
// Responses are cached in Redis when a client is given.
type Client struct {
	httpClient *http.Client
	cache      *goredis.Client
	cfg        Config
}

func NewClient(cfg Config, cache *goredis.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		cfg:        cfg,
	}
}

func (c *Client) LatestRepos(ctx context.Context, username string) (json.RawMessage, error) {
	key := cachePrefix + strings.ToLower(username)
	if c.cache != nil && c.cfg.CacheTTL > 0 {
		cached, err := c.cache.Get(ctx, key).Bytes()
		if err == nil {
			return json.RawMessage(cached), nil
		}
		if !errors.Is(err, goredis.Nil) {
			logger.Log.Warn("github cache read failed", "error", err)
		}
	}

	body, err := c.fetch(ctx, username)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && c.cfg.CacheTTL > 0 {
		if err := c.cache.Set(ctx, key, []byte(body), c.cfg.CacheTTL).Err(); err != nil {
			logger.Log.Warn("github cache write failed", "error", err)
		}
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, username string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created&direction=desc", c.cfg.BaseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "go-devconnector-backend")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUserNotFound
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read github response: %w", err)
	}
	if !json.Valid(body) {
		return nil, errors.New("github returned invalid JSON")
	}
	return json.RawMessage(body), nil
}
