// Package catalog talks to the game catalog's REST API: game lookup
// before rendering, and marking a round rendered afterwards.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// Client is the catalog API client.
type Client struct {
	base  string
	token string
	http  *http.Client
}

// New creates a client for the catalog at base, authenticating every
// request with token.
func New(base, token string, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Game is the catalog's view of one game.
type Game struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Exists  bool   `json:"-"`
}

// GameInfo looks up a game by id. A missing game is not an error:
// Exists is false and the caller decides.
func (c *Client) GameInfo(ctx context.Context, gameID int) (Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%d/", c.base, gameID), nil)
	if err != nil {
		return Game{}, err
	}
	req.Header.Set("Authorization", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return Game{}, fmt.Errorf("catalog lookup for game %d: %w", gameID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var g Game
		if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
			return Game{}, fmt.Errorf("decode game %d: %w", gameID, err)
		}
		g.Exists = true
		return g, nil
	case http.StatusNotFound:
		return Game{}, nil
	default:
		return Game{}, fmt.Errorf("catalog lookup for game %d: unexpected status %s", gameID, resp.Status)
	}
}

// MarkRendered records that a round's video has been produced. Callers
// treat a failure here as a warning: the video already exists.
func (c *Client) MarkRendered(ctx context.Context, gameID, roundID int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/%d/rounds/%d/rendered/", c.base, gameID, roundID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mark game %d round %d rendered: %w", gameID, roundID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mark game %d round %d rendered: unexpected status %s", gameID, roundID, resp.Status)
	}
	return nil
}
