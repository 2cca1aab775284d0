// Package client fetches public board snapshots over HTTP. It is the access
// layer consumed by the view assembler and the boardcat command.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"openboard/internal/board/models"
)

// ErrBoardNotFound is returned for every non-success response. Callers render
// a single "board not found" outcome; they cannot distinguish a private board,
// a missing board, or a server fault, and must not try.
var ErrBoardNotFound = errors.New("board not found")

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client against baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetPublicBoard fetches the snapshot for one board.
func (c *Client) GetPublicBoard(ctx context.Context, boardID string) (*models.Snapshot, error) {
	endpoint := c.baseURL + "/public/boards/" + url.PathEscape(boardID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch board: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrBoardNotFound
	}

	var snapshot models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}
