package datamuse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Client implements Finder against the Datamuse HTTP API.
type Client struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

// New creates a Client. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Find queries the API for words standing in relation rel to word.
func (c *Client) Find(ctx context.Context, rel Relation, word string) ([]Word, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}

	u, err := c.buildURL(rel, word)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), 200)}
	}

	words, err := parseWords(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("datamuse query",
		zap.String("relation", rel.String()),
		zap.String("word", word),
		zap.Int("results", len(words)),
		zap.Duration("elapsed", time.Since(start)))

	return words, nil
}

func (c *Client) buildURL(rel Relation, word string) (string, error) {
	base, err := url.Parse(c.config.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.config.Endpoint, err)
	}
	q := base.Query()
	q.Set(rel.Param(), word)
	if c.config.Max > 0 {
		q.Set("max", strconv.Itoa(c.config.Max))
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// parseWords decodes the API's JSON array. Entries without a word are dropped.
func parseWords(body []byte) ([]Word, error) {
	var words []Word
	if err := json.Unmarshal(body, &words); err != nil {
		return nil, fmt.Errorf("failed to parse datamuse response: %w (response: %.200s)", err, body)
	}

	out := words[:0]
	for _, w := range words {
		if strings.TrimSpace(w.Word) == "" {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// back off to a rune boundary
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen] + "..."
}
