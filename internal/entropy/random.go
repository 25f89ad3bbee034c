// Package entropy supplies board seeds. Seeds come from random.org when an
// API key is configured and from crypto/rand otherwise.
package entropy

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.random.org/json-rpc/4/invoke"

// Client fetches seeds from random.org.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a random.org client. Returns nil if apiKey is empty.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Seed returns a non-zero seed. It falls back to crypto/rand when the client
// is nil or random.org cannot be reached.
func (c *Client) Seed(ctx context.Context) int64 {
	if c.Enabled() {
		seed, err := c.fetch(ctx)
		if err == nil && seed != 0 {
			return seed
		}
		slog.Debug("random.org seed unavailable, using crypto/rand", "error", err)
	}
	return CryptoSeed()
}

func (c *Client) fetch(ctx context.Context) (int64, error) {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateIntegers",
		"params": map[string]any{
			"apiKey": c.apiKey,
			"n":      2,
			"min":    0,
			"max":    1<<31 - 1,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	var result struct {
		Result struct {
			Random struct {
				Data []int64 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}
	if result.Error != nil {
		return 0, fmt.Errorf("random.org: %s", result.Error.Message)
	}

	data := result.Result.Random.Data
	if len(data) != 2 {
		return 0, fmt.Errorf("random.org returned %d integers, want 2", len(data))
	}
	// Two 31-bit draws make one 62-bit seed.
	return data[0]<<31 | data[1], nil
}

// CryptoSeed returns a non-zero seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			// crypto/rand does not fail on supported platforms.
			return time.Now().UnixNano()
		}
		// Keep seeds positive so they print and parse back unchanged.
		if seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1); seed != 0 {
			return seed
		}
	}
}
