// Package persistence provides SQLite-based board storage.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/hexgrid"
)

// DB wraps a SQLite connection for board persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		radius INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		board_id TEXT NOT NULL REFERENCES boards(id),
		r INTEGER NOT NULL,
		g INTEGER NOT NULL,
		b INTEGER NOT NULL,
		kind INTEGER NOT NULL,
		number INTEGER NOT NULL,
		elevation REAL NOT NULL,
		PRIMARY KEY (board_id, r, g, b)
	);

	CREATE TABLE IF NOT EXISTS nodes (
		board_id TEXT NOT NULL REFERENCES boards(id),
		node_key TEXT NOT NULL,
		harbor INTEGER NOT NULL,
		building INTEGER NOT NULL,
		player TEXT NOT NULL,
		PRIMARY KEY (board_id, node_key)
	);

	CREATE TABLE IF NOT EXISTS edges (
		board_id TEXT NOT NULL REFERENCES boards(id),
		a_key TEXT NOT NULL,
		b_key TEXT NOT NULL,
		road INTEGER NOT NULL,
		player TEXT NOT NULL,
		PRIMARY KEY (board_id, a_key, b_key)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_boards_created ON boards(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveBoard writes a generated board under a fresh id.
func (db *DB) SaveBoard(b *board.Board, seed int64) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := db.conn.Beginx()
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO boards (id, seed, radius, created_at) VALUES (?, ?, ?, ?)`,
		id.String(), seed, b.Radius, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return uuid.Nil, fmt.Errorf("insert board: %w", err)
	}

	tileStmt, err := tx.Preparex(`INSERT INTO tiles
		(board_id, r, g, b, kind, number, elevation)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer tileStmt.Close()

	for _, pos := range b.Positions() {
		t := b.Get(pos)
		if _, err := tileStmt.Exec(id.String(), pos.R(), pos.G(), pos.B(), int(t.Kind), t.Number, t.Elevation); err != nil {
			return uuid.Nil, fmt.Errorf("insert tile %v: %w", pos, err)
		}
	}

	nodeStmt, err := tx.Preparex(`INSERT INTO nodes
		(board_id, node_key, harbor, building, player)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer nodeStmt.Close()

	for _, n := range b.Graph.Nodes() {
		if _, err := nodeStmt.Exec(id.String(), n.ID.Key(), int(n.Harbor), int(n.Building), string(n.Player)); err != nil {
			return uuid.Nil, fmt.Errorf("insert node %s: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.Preparex(`INSERT INTO edges
		(board_id, a_key, b_key, road, player)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer edgeStmt.Close()

	for _, e := range b.Graph.Edges() {
		road := 0
		if e.Road {
			road = 1
		}
		if _, err := edgeStmt.Exec(id.String(), e.ID.A.Key(), e.ID.B.Key(), road, string(e.Player)); err != nil {
			return uuid.Nil, fmt.Errorf("insert edge %s - %s: %w", e.ID.A, e.ID.B, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	slog.Info("board saved",
		"id", id,
		"tiles", len(b.Tiles),
		"nodes", b.Graph.NodeCount(),
		"edges", b.Graph.EdgeCount(),
	)
	return id, nil
}

// BoardRow is one saved board header.
type BoardRow struct {
	ID        string `db:"id"`
	Seed      int64  `db:"seed"`
	Radius    int    `db:"radius"`
	CreatedAt string `db:"created_at"`
}

// ListBoards returns all saved boards, newest first.
func (db *DB) ListBoards() ([]BoardRow, error) {
	var rows []BoardRow
	err := db.conn.Select(&rows, `SELECT id, seed, radius, created_at FROM boards ORDER BY created_at DESC, id`)
	return rows, err
}

// TileRow is one saved tile.
type TileRow struct {
	R         int     `db:"r"`
	G         int     `db:"g"`
	B         int     `db:"b"`
	Kind      int     `db:"kind"`
	Number    int     `db:"number"`
	Elevation float64 `db:"elevation"`
}

// Position returns the tile's cube coordinate.
func (t TileRow) Position() (hexgrid.Hex, error) {
	return hexgrid.New(t.R, t.G, t.B)
}

// LoadTiles returns the tiles of a saved board.
func (db *DB) LoadTiles(id uuid.UUID) ([]TileRow, error) {
	var rows []TileRow
	err := db.conn.Select(&rows, `SELECT r, g, b, kind, number, elevation
		FROM tiles WHERE board_id = ? ORDER BY rowid`, id.String())
	if err != nil {
		return nil, fmt.Errorf("load tiles %s: %w", id, err)
	}
	return rows, nil
}

// LoadHarbors returns the harbor-bearing nodes of a saved board.
func (db *DB) LoadHarbors(id uuid.UUID) (map[board.NodeID]board.Harbor, error) {
	var rows []struct {
		Key    string `db:"node_key"`
		Harbor int    `db:"harbor"`
	}
	err := db.conn.Select(&rows, `SELECT node_key, harbor FROM nodes
		WHERE board_id = ? AND harbor != 0`, id.String())
	if err != nil {
		return nil, fmt.Errorf("load harbors %s: %w", id, err)
	}

	harbors := make(map[board.NodeID]board.Harbor, len(rows))
	for _, row := range rows {
		nid, err := board.ParseNodeID(row.Key)
		if err != nil {
			return nil, fmt.Errorf("load harbors %s: %w", id, err)
		}
		harbors[nid] = board.Harbor(row.Harbor)
	}
	return harbors, nil
}

// SaveMeta stores a key-value pair in the metadata table.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a value from the metadata table. A missing key yields "".
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}
