// Package sync moves replicated document changes between a device and the
// relay. It carries opaque CRDT sync messages over a websocket; board
// semantics never enter this package.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/automerge/automerge-go"
	"github.com/gorilla/websocket"

	"github.com/retroflect/retroflect/internal/replication"
)

// flushInterval is how often the write side re-checks for locally committed
// changes that need to go out on an otherwise idle connection.
const flushInterval = time.Second

func readAndReceiveMessage(conn *websocket.Conn, state *automerge.SyncState) (bool, error) {
	mt, p, err := conn.ReadMessage()
	if err != nil {
		return false, fmt.Errorf("failed to read sync message: %w", err)
	}
	if mt != websocket.BinaryMessage {
		return false, nil
	}
	if _, err := state.ReceiveMessage(p); err != nil {
		return false, fmt.Errorf("failed to receive sync message: %w", err)
	}
	return true, nil
}

func generateAndWriteMessage(conn *websocket.Conn, state *automerge.SyncState) (bool, error) {
	msg, valid := state.GenerateMessage()
	if msg == nil {
		return false, nil
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, msg.Bytes()); err != nil {
		return false, fmt.Errorf("failed to write sync message: %w", err)
	}
	return valid, nil
}

// Pump runs one sync session over an established connection until the
// connection drops or ctx is cancelled. onRemote, when non-nil, runs after
// every merged remote message; the relay passes nil, devices pass the hook
// that triggers reconstruction.
func Pump(ctx context.Context, conn *websocket.Conn, doc *automerge.Doc, onRemote func()) {
	state := automerge.NewSyncState(doc)

	wg := new(stdsync.WaitGroup)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer conn.Close()
		for {
			merged, err := readAndReceiveMessage(conn, state)
			if err != nil {
				slog.Debug("sync read side finished", "error", err)
				return
			}
			if merged && onRemote != nil {
				onRemote()
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer conn.Close()

		for {
			if more, err := generateAndWriteMessage(conn, state); err != nil {
				slog.Debug("sync write side finished", "error", err)
				return
			} else if !more {
				break
			}
		}

		t := time.NewTicker(flushInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				for {
					if more, err := generateAndWriteMessage(conn, state); err != nil {
						slog.Debug("sync write side finished", "error", err)
						return
					} else if !more {
						break
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
}

// PumpDoc is Pump for a wrapped document, wiring the remote-change hook so
// observers fire once merged messages have landed.
func PumpDoc(ctx context.Context, conn *websocket.Conn, doc *replication.AutomergeDoc) {
	Pump(ctx, conn, doc.Underlying(), doc.SignalRemoteChange)
}
