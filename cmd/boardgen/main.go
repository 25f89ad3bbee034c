// Command boardgen generates a board, saves it, renders a preview and
// optionally serves it over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/talgya/hexboard/internal/api"
	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/entropy"
	"github.com/talgya/hexboard/internal/persistence"
	"github.com/talgya/hexboard/internal/preview"
)

func main() {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	slog.SetDefault(newLogger(os.Stdout, os.Getenv("BOARD_LOG_FORMAT"), os.Getenv("BOARD_DEBUG") != "", tty))

	seed := envInt64OrDefault("BOARD_SEED", 0)
	dbPath := envOrDefault("BOARD_DB", "data/boards.db")
	pngPath := os.Getenv("BOARD_PNG")
	apiPort := envIntOrDefault("BOARD_API_PORT", 0)
	adminKey := os.Getenv("BOARD_ADMIN_KEY")

	// ── Seed ──────────────────────────────────────────────────────────
	if seed == 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		seed = entropy.NewClient(os.Getenv("RANDOM_ORG_API_KEY")).Seed(ctx)
		cancel()
		slog.Info("fresh seed drawn", "seed", seed)
	}

	// ── Board ─────────────────────────────────────────────────────────
	cfg := board.DefaultGenConfig()
	cfg.Seed = seed
	b, err := board.Generate(cfg)
	if err != nil {
		slog.Error("board generation failed", "seed", seed, "error", err)
		os.Exit(1)
	}

	counts := b.KindCounts()
	for _, kind := range board.TileKinds {
		if c := counts[kind]; c > 0 {
			slog.Info("tiles", "kind", kind.String(), "count", c)
		}
	}
	slog.Info("board generated",
		"seed", seed,
		"radius", b.Radius,
		"nodes", b.Graph.NodeCount(),
		"edges", b.Graph.EdgeCount(),
		"harbors", len(b.Harbors())/2,
	)

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	boardID := uuid.Nil
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			slog.Error("failed to create data directory", "error", err)
			os.Exit(1)
		}
		db, err = persistence.Open(dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		boardID, err = db.SaveBoard(b, seed)
		if err != nil {
			slog.Error("failed to save board", "error", err)
			os.Exit(1)
		}
		if err := db.SaveMeta("last_board", boardID.String()); err != nil {
			slog.Warn("failed to record last board", "error", err)
		}
		logFileSize("database", dbPath)
	}

	// ── Preview ───────────────────────────────────────────────────────
	if pngPath != "" {
		if err := preview.SavePNG(b, pngPath, preview.DefaultOptions()); err != nil {
			slog.Error("failed to render preview", "error", err)
			os.Exit(1)
		}
		logFileSize("preview", pngPath)
	}

	fmt.Printf("\n%s\n", b)
	fmt.Printf("Seed %d", seed)
	if boardID != uuid.Nil {
		fmt.Printf(", saved as %s", boardID)
	}
	fmt.Println()

	if apiPort <= 0 {
		return
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	srv := &api.Server{
		Board:    b,
		Seed:     seed,
		BoardID:  boardID,
		DB:       db,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	httpSrv := srv.Start()
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", apiPort)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("HTTP shutdown failed", "error", err)
	}
}

// newLogger picks JSON or text output. An explicit format wins; otherwise
// terminals get text and everything else JSON.
func newLogger(w io.Writer, format string, debug, tty bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	switch {
	case format == "json", format == "" && !tty:
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

func logFileSize(what, path string) {
	info, err := os.Stat(path)
	if err != nil {
		slog.Warn("cannot stat output", "what", what, "path", path, "error", err)
		return
	}
	slog.Info("wrote "+what, "path", path, "size", humanize.Bytes(uint64(info.Size())))
}

func envOrDefault(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envInt64OrDefault(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}
