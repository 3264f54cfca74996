package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/vimy/tactics-core/agent"
	"github.com/nstehr/vimy/tactics-core/config"
	"github.com/nstehr/vimy/tactics-core/ipc"
	"github.com/nstehr/vimy/tactics-core/movement"
	"github.com/nstehr/vimy/tactics-core/pathfind"
	"github.com/nstehr/vimy/tactics-core/rules"
)

const banner = `
 _              _   _
| |_ __ _  ___ | |_(_) ___ ___
| __/ _' |/ __|| __| |/ __/ __|
| || (_| | (__ | |_| | (__\__ \
 \__\__,_|\___| \__|_|\___|___/

Turn-Based Unit Decision Core`

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	socketPath := flag.String("socket", "", "unix socket path (overrides config)")
	httpAddr := flag.String("http", "", "HTTP listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *socketPath != "" {
		cfg.SocketPath = *socketPath
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting tactics-core",
		"socket", cfg.SocketPath,
		"http", cfg.HTTPAddr,
		"search_budget", cfg.SearchBudget,
		"doctrine", cfg.Doctrine.Name,
		"unit_types", len(cfg.Catalogue),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SocketPath != "" {
		listener, err := listenUnix(cfg.SocketPath)
		if err != nil {
			slog.Error("failed to listen on socket", "path", cfg.SocketPath, "error", err)
			os.Exit(1)
		}
		defer listener.Close()
		defer os.Remove(cfg.SocketPath)

		slog.Info("listening on domain socket", "path", cfg.SocketPath)
		go acceptLoop(ctx, listener, cfg)
	}

	if cfg.HTTPAddr != "" {
		srv, err := newHTTPServer(cfg)
		if err != nil {
			slog.Error("failed to build HTTP server", "error", err)
			os.Exit(1)
		}
		go func() {
			slog.Info("listening on http", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http server failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("http shutdown", "error", err)
			}
		}()
	}

	<-ctx.Done()
	slog.Info("shutting down")
}

func listenUnix(path string) (net.Listener, error) {
	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clean up socket: %w", err)
	}
	return net.Listen("unix", path)
}

func acceptLoop(ctx context.Context, listener net.Listener, cfg config.Config) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Error("failed to accept connection", "error", err)
				continue
			}
		}
		slog.Info("new connection accepted")
		go serve(ipc.NewStreamTransport(conn), cfg)
	}
}

// newEngine builds an engine with the configured doctrine and search budget.
// Each session gets its own so doctrine changes stay per team.
func newEngine(cfg config.Config) (*rules.Engine, error) {
	engine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		return nil, err
	}
	if err := engine.ApplyDoctrine(cfg.Doctrine); err != nil {
		return nil, err
	}
	engine.SetPlanner(movement.New(pathfind.New(cfg.SearchBudget)))
	return engine, nil
}

func serve(t ipc.Transport, cfg config.Config) {
	engine, err := newEngine(cfg)
	if err != nil {
		slog.Error("failed to build engine", "error", err)
		t.Close()
		return
	}
	c := ipc.NewConnection(t, nil)
	a := agent.New(c, engine, cfg.Catalogue, cfg.StallThreshold)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeDecide, a.HandleDecide)
	c.RegisterHandler(ipc.TypeDoctrine, a.HandleDoctrine)
	c.ReadLoop()
}

func newHTTPServer(cfg config.Config) (*http.Server, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	turns := agent.New(nil, engine, cfg.Catalogue, cfg.StallThreshold)

	mux := http.NewServeMux()
	mux.Handle("/turn", agent.TurnHandler(turns))
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		t, err := ipc.Upgrade(w, r)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		slog.Info("new websocket session", "remote", r.RemoteAddr)
		serve(t, cfg)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}
