package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/retroflect/retroflect/internal/models"
	"github.com/retroflect/retroflect/internal/replication"
)

// newSyncPeer serves one websocket endpoint that syncs against doc, standing
// in for the relay.
func newSyncPeer(t *testing.T, doc *replication.AutomergeDoc) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade: %v", err)
			return
		}
		defer conn.Close()
		PumpDoc(r.Context(), conn, doc)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func boardWithCard(id, content string) *models.Board {
	b := models.NewBoard("b1", models.KindRetro)
	b.Cards[id] = &models.Card{
		ID: id, ColumnID: models.ColumnStart, Content: content, Votes: map[string]int{},
	}
	return b
}

func hasCard(doc *replication.AutomergeDoc, cardID string) func() bool {
	return func() bool {
		b, err := replication.Reconstruct(doc, "b1", models.KindRetro)
		if err != nil {
			return false
		}
		_, ok := b.Cards[cardID]
		return ok
	}
}

func TestPumpConvergesBothDirections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	peerDoc := replication.NewAutomergeDoc()
	require.NoError(t, replication.WriteBoard(peerDoc, boardWithCard("peer-card", "from peer")))
	ts := newSyncPeer(t, peerDoc)

	localDoc := replication.NewAutomergeDoc()
	var observed atomic.Int64
	localDoc.Observe(func() { observed.Add(1) })

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	require.NoError(t, err)
	go PumpDoc(ctx, conn, localDoc)

	// Peer state reaches the local doc and fires its observers.
	require.Eventually(t, hasCard(localDoc, "peer-card"), 10*time.Second, 20*time.Millisecond)
	require.Greater(t, observed.Load(), int64(0), "merged messages must fire observers")

	// A change committed after the initial exchange flows back to the peer.
	b, err := replication.Reconstruct(localDoc, "b1", models.KindRetro)
	require.NoError(t, err)
	b.Cards["local-card"] = &models.Card{
		ID: "local-card", ColumnID: models.ColumnStart, Content: "from local", Votes: map[string]int{},
	}
	require.NoError(t, replication.WriteBoard(localDoc, b))

	require.Eventually(t, hasCard(peerDoc, "local-card"), 10*time.Second, 20*time.Millisecond)
}

func TestClientRunSyncs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	peerDoc := replication.NewAutomergeDoc()
	ts := newSyncPeer(t, peerDoc)

	localDoc := replication.NewAutomergeDoc()
	require.NoError(t, replication.WriteBoard(localDoc, boardWithCard("first", "one")))

	client, err := NewClient(ts.URL, "b1", localDoc)
	require.NoError(t, err)
	go client.Run(ctx)

	require.Eventually(t, hasCard(peerDoc, "first"), 10*time.Second, 20*time.Millisecond)
}
