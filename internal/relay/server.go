// Package relay hosts the shared replicated document for each board and fans
// sync sessions out to connected devices. The relay never interprets board
// state; it stores and forwards opaque documents.
package relay

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	stdsync "sync"
	"time"

	"github.com/automerge/automerge-go"
	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	_ "modernc.org/sqlite"

	boardsync "github.com/retroflect/retroflect/internal/sync"
)

// persistInterval is how often in-memory documents are snapshotted back to
// the database.
const persistInterval = 5 * time.Second

// Server owns the per-board document cache and its sqlite backing store.
type Server struct {
	db    *sql.DB
	cache stdsync.Map // board id -> *automerge.Doc
}

// Open connects the relay to its database and loads every saved document
// into the cache.
func Open(ctx context.Context, dbPath string) (*Server, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open relay database: %w", err)
	}
	// sqlite allows one writer; a single pooled connection avoids lock errors.
	db.SetMaxOpenConns(1)
	s := &Server{db: db}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Server) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS board_docs (
			id TEXT NOT NULL PRIMARY KEY,
			content TEXT NOT NULL
		)`,
	); err != nil {
		return fmt.Errorf("failed to create board_docs table: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, content FROM board_docs`)
	if err != nil {
		return fmt.Errorf("failed to load saved documents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var boardID, content string
		if err := rows.Scan(&boardID, &content); err != nil {
			return fmt.Errorf("failed to scan saved document: %w", err)
		}
		raw, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return fmt.Errorf("failed to decode document for board %s: %w", boardID, err)
		}
		doc, err := automerge.Load(raw)
		if err != nil {
			return fmt.Errorf("failed to load document for board %s: %w", boardID, err)
		}
		s.cache.Store(boardID, doc)
	}
	return rows.Err()
}

// Close flushes every cached document and closes the database.
func (s *Server) Close() error {
	s.persistAll(context.Background())
	return s.db.Close()
}

// Router builds the HTTP surface: the saved document for bootstrap and the
// websocket sync endpoint, with request logging around both.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			m := httpsnoop.CaptureMetrics(handler, w, req)
			slog.Info("handled",
				"method", req.Method, "url", req.URL,
				"duration", m.Duration, "status", m.Code)
		})
	})
	r.Methods(http.MethodGet).Path("/boards/{board}/latest").HandlerFunc(s.getLatest)
	r.Methods(http.MethodGet).Path("/boards/{board}/sync").HandlerFunc(s.syncBoard)
	return r
}

// doc returns the cached document for a board, creating an empty one on first
// contact. The first device to connect seeds it.
func (s *Server) doc(boardID string) *automerge.Doc {
	if cached, ok := s.cache.Load(boardID); ok {
		return cached.(*automerge.Doc)
	}
	fresh, loaded := s.cache.LoadOrStore(boardID, automerge.New())
	if !loaded {
		slog.Info("hosting new board document", "board", boardID)
	}
	return fresh.(*automerge.Doc)
}

func (s *Server) getLatest(w http.ResponseWriter, req *http.Request) {
	doc := s.doc(mux.Vars(req)["board"])
	fork, err := doc.Fork()
	if err != nil {
		slog.Error("failed to fork document", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/octet-stream")
	if _, err := w.Write(fork.Save()); err != nil {
		slog.Error("failed to write document", "error", err)
	}
}

func (s *Server) syncBoard(w http.ResponseWriter, req *http.Request) {
	doc := s.doc(mux.Vars(req)["board"])

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		slog.Error("failed to upgrade sync connection", "error", err)
		return
	}
	defer conn.Close()

	boardsync.Pump(req.Context(), conn, doc, nil)
}

// PersistLoop snapshots changed documents back to sqlite until ctx is
// cancelled. Content comparison keeps unchanged boards from being rewritten.
func (s *Server) PersistLoop(ctx context.Context) {
	t := time.NewTicker(persistInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.persistAll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) persistAll(ctx context.Context) {
	s.cache.Range(func(key, docRaw any) bool {
		boardID := key.(string)
		content := base64.StdEncoding.EncodeToString(docRaw.(*automerge.Doc).Save())
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO board_docs (id, content) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET content = excluded.content
			 WHERE board_docs.content != excluded.content`,
			boardID, content,
		)
		if err != nil {
			slog.Error("failed to persist board document", "board", boardID, "error", err)
			return true
		}
		if n, _ := res.RowsAffected(); n > 0 {
			slog.Info("persisted board document", "board", boardID)
		}
		return true
	})
}
