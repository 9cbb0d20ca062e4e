package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	stdsync "sync"
	"syscall"

	"github.com/retroflect/retroflect/internal/relay"
)

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "localhost:8080", "the address to listen on")
	dbPath := flag.String("db", "relay.sqlite3", "path to the relay database")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := relay.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer server.Close()

	wg := new(stdsync.WaitGroup)

	wg.Add(1)
	go func() {
		defer wg.Done()
		server.PersistLoop(ctx)
	}()

	httpServer := &http.Server{Addr: *addr, Handler: server.Router()}
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("relay listening", "addr", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("relay listen failed", "error", err)
		}
	}()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-exit
	slog.Info("signal caught", "sig", sig)
	cancel()
	_ = httpServer.Close()

	wg.Wait()
	return nil
}
