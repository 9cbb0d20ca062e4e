package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/retroflect/retroflect/internal/replication"
)

// reconnectInterval paces the client's dial attempts. The relay going away is
// expected operation, not an error worth surfacing.
const reconnectInterval = time.Second

// Client keeps one device's replicated document converging with the relay's
// copy of a board.
type Client struct {
	baseURL *url.URL
	boardID string
	doc     *replication.AutomergeDoc
}

// NewClient parses the relay URL. The document usually comes from Bootstrap.
func NewClient(relayURL, boardID string, doc *replication.AutomergeDoc) (*Client, error) {
	base, err := url.Parse(relayURL)
	if err != nil {
		return nil, fmt.Errorf("invalid relay url %q: %w", relayURL, err)
	}
	return &Client{baseURL: base, boardID: boardID, doc: doc}, nil
}

// Bootstrap fetches the relay's saved document for a board and loads it. The
// relay serves an empty document for a board it has never seen, so a fresh
// board bootstraps to an empty doc and the first device seeds it.
func Bootstrap(ctx context.Context, relayURL, boardID string) (*replication.AutomergeDoc, error) {
	base, err := url.Parse(relayURL)
	if err != nil {
		return nil, fmt.Errorf("invalid relay url %q: %w", relayURL, err)
	}
	u := base.JoinPath("boards", boardID, "latest")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching board document", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read board document: %w", err)
	}
	return replication.LoadAutomergeDoc(raw)
}

// Run dials the relay and keeps a sync session alive until ctx is cancelled,
// redialing on a ticker after every disconnect.
func (c *Client) Run(ctx context.Context) {
	t := time.NewTicker(reconnectInterval)
	defer t.Stop()
	for {
		if err := c.connectAndSync(ctx); err != nil {
			slog.Debug("sync session ended", "board", c.boardID, "error", err)
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) connectAndSync(ctx context.Context) error {
	u := c.baseURL.JoinPath("boards", c.boardID, "sync")
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to dial relay: %w", err)
	}
	defer conn.Close()

	PumpDoc(ctx, conn, c.doc)
	return nil
}
