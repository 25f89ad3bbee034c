// Package api provides the HTTP API for inspecting and marking up a board.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/hexgrid"
	"github.com/talgya/hexboard/internal/persistence"
)

// Server serves one board over HTTP.
type Server struct {
	Board    *board.Board
	Seed     int64
	BoardID  uuid.UUID       // uuid.Nil when the board was not saved.
	DB       *persistence.DB // Optional; enables /api/v1/boards.
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	// Board has no locking of its own.
	mu sync.Mutex
}

// Handler returns the routed API with CORS applied.
func (s *Server) Handler() http.Handler {
	// Mutations are cheap but unbounded; keep scripted clients in check.
	writeLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/board", s.handleBoard)
	mux.HandleFunc("/api/v1/graph", s.handleGraph)
	mux.HandleFunc("/api/v1/coast", s.handleCoast)
	mux.HandleFunc("/api/v1/node", s.handleNode)
	mux.HandleFunc("/api/v1/roll", s.handleRoll)
	mux.HandleFunc("/api/v1/boards", s.handleBoards)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/building", RateLimitMiddleware(writeLimiter, s.adminOnly(s.handleBuilding)))
	mux.HandleFunc("/api/v1/road", RateLimitMiddleware(writeLimiter, s.adminOnly(s.handleRoad)))
	mux.HandleFunc("/api/v1/robber", RateLimitMiddleware(writeLimiter, s.adminOnly(s.handleRobber)))

	return corsMiddleware(mux)
}

// Start begins serving the HTTP API in a goroutine. The returned server can
// be shut down by the caller.
func (s *Server) Start() *http.Server {
	addr := fmt.Sprintf(":%d", s.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
	return srv
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a POST handler with bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no BOARD_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settlements, cities := s.Board.CountBuildings()
	status := map[string]any{
		"name":        "hexboard",
		"seed":        s.Seed,
		"radius":      s.Board.Radius,
		"tiles":       len(s.Board.Tiles),
		"nodes":       s.Board.Graph.NodeCount(),
		"edges":       s.Board.Graph.EdgeCount(),
		"harbors":     len(s.Board.Harbors()) / 2,
		"settlements": settlements,
		"cities":      cities,
	}
	if s.BoardID != uuid.Nil {
		status["board_id"] = s.BoardID.String()
	}
	if s.Board.Robber != nil {
		status["robber"] = *s.Board.Robber
	}
	writeJSON(w, status)
}

type tileEntry struct {
	Position  hexgrid.Hex `json:"position"`
	Kind      string      `json:"kind"`
	Resource  string      `json:"resource"`
	Number    int         `json:"number,omitempty"`
	Elevation float64     `json:"elevation"`
}

// handleBoard returns all tiles in the order they were laid.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.Board.Positions()
	tiles := make([]tileEntry, 0, len(positions))
	for _, pos := range positions {
		t := s.Board.Get(pos)
		tiles = append(tiles, tileEntry{
			Position:  pos,
			Kind:      t.Kind.String(),
			Resource:  t.Resource().String(),
			Number:    t.Number,
			Elevation: t.Elevation,
		})
	}

	writeJSON(w, map[string]any{
		"radius": s.Board.Radius,
		"robber": s.Board.Robber,
		"tiles":  tiles,
	})
}

type nodeEntry struct {
	ID        string `json:"id"`
	Harbor    string `json:"harbor,omitempty"`
	Building  string `json:"building,omitempty"`
	Player    string `json:"player,omitempty"`
	Available bool   `json:"available"`
}

type edgeEntry struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Road   bool   `json:"road"`
	Player string `json:"player,omitempty"`
}

func (s *Server) nodeEntry(n *board.Node) nodeEntry {
	return nodeEntry{
		ID:        n.ID.Key(),
		Harbor:    n.Harbor.String(),
		Building:  n.Building.String(),
		Player:    string(n.Player),
		Available: s.Board.NodeAvailable(n.ID),
	}
}

// handleGraph returns every node and edge with their attributes.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.Board.Graph
	nodes := make([]nodeEntry, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		nodes = append(nodes, s.nodeEntry(n))
	}
	edges := make([]edgeEntry, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		edges = append(edges, edgeEntry{
			A:      e.ID.A.Key(),
			B:      e.ID.B.Key(),
			Road:   e.Road,
			Player: string(e.Player),
		})
	}

	writeJSON(w, map[string]any{
		"nodes": nodes,
		"edges": edges,
	})
}

// handleCoast returns the coastal nodes clockwise from the top-right corner.
func (s *Server) handleCoast(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type coastEntry struct {
		ID     string `json:"id"`
		Harbor string `json:"harbor,omitempty"`
	}

	coast := s.Board.Coast()
	entries := make([]coastEntry, 0, len(coast))
	for _, id := range coast {
		entries = append(entries, coastEntry{
			ID:     id.Key(),
			Harbor: s.Board.Graph.Node(id).Harbor.String(),
		})
	}
	writeJSON(w, entries)
}

// handleNode returns one node: GET /api/v1/node?id=r,g,b|r,g,b|r,g,b
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id, err := board.ParseNodeID(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.Board.Graph.Node(id)
	if n == nil {
		http.Error(w, "node not found", http.StatusNotFound)
		return
	}

	var resources []string
	for res := range s.Board.NodeResources(id) {
		resources = append(resources, res.String())
	}
	var neighbors []string
	for _, nb := range s.Board.Graph.Neighbors(id) {
		neighbors = append(neighbors, nb.Key())
	}

	writeJSON(w, map[string]any{
		"node":      s.nodeEntry(n),
		"resources": resources,
		"neighbors": neighbors,
	})
}

// handleRoll returns the tiles producing on a dice total: GET /api/v1/roll?n=8
func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil || n < 2 || n > 12 {
		http.Error(w, "n must be 2-12", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tiles := make([]tileEntry, 0)
	for _, t := range s.Board.TilesForRoll(n) {
		if s.Board.Robber != nil && *s.Board.Robber == t.Position {
			continue
		}
		tiles = append(tiles, tileEntry{
			Position:  t.Position,
			Kind:      t.Kind.String(),
			Resource:  t.Resource().String(),
			Number:    t.Number,
			Elevation: t.Elevation,
		})
	}
	writeJSON(w, map[string]any{"roll": n, "tiles": tiles})
}

// handleBoards lists saved boards.
func (s *Server) handleBoards(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, []persistence.BoardRow{})
		return
	}
	rows, err := s.DB.ListBoards()
	if err != nil {
		slog.Error("list boards failed", "error", err)
		http.Error(w, "list boards failed", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []persistence.BoardRow{}
	}
	writeJSON(w, rows)
}

// handleBuilding places a settlement or upgrades one to a city.
// Settlements must respect the distance rule; cities replace the same
// player's settlement.
func (s *Server) handleBuilding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Node     board.NodeID `json:"node"`
		Player   string       `json:"player"`
		Building string       `json:"building"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	kind, err := board.ParseBuilding(req.Building)
	if err != nil || kind == board.BuildingNone {
		http.Error(w, "building must be settlement or city", http.StatusBadRequest)
		return
	}
	if req.Player == "" {
		http.Error(w, "player required", http.StatusBadRequest)
		return
	}
	player := board.Player(req.Player)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.Board.Graph.Node(req.Node)
	if n == nil {
		http.Error(w, "node not found", http.StatusNotFound)
		return
	}
	switch kind {
	case board.BuildingSettlement:
		if !s.Board.NodeAvailable(req.Node) {
			http.Error(w, "node not available", http.StatusConflict)
			return
		}
	case board.BuildingCity:
		if n.Building != board.BuildingSettlement || n.Player != player {
			http.Error(w, "city needs the player's own settlement", http.StatusConflict)
			return
		}
	}

	if err := s.Board.UpdateBuilding(req.Node, player, kind); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Info("building placed", "node", req.Node.Key(), "player", req.Player, "building", kind.String())
	writeJSON(w, s.nodeEntry(n))
}

// handleRoad builds the road between two adjacent nodes.
func (s *Server) handleRoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From   board.NodeID `json:"from"`
		To     board.NodeID `json:"to"`
		Player string       `json:"player"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Player == "" {
		http.Error(w, "player required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Board.UpdateRoad(req.From, req.To, board.Player(req.Player)); err != nil {
		if errors.Is(err, board.ErrUnknownEdge) {
			http.Error(w, "no road between those nodes", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Info("road built", "from", req.From.Key(), "to", req.To.Key(), "player", req.Player)
	e := s.Board.Graph.Edge(req.From, req.To)
	writeJSON(w, edgeEntry{A: e.ID.A.Key(), B: e.ID.B.Key(), Road: e.Road, Player: string(e.Player)})
}

// handleRobber moves the robber onto a tile.
func (s *Server) handleRobber(w http.ResponseWriter, r *http.Request) {
	var pos hexgrid.Hex
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Board.MoveRobber(pos); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	slog.Info("robber moved", "to", pos.String())
	writeJSON(w, map[string]any{"robber": pos})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
