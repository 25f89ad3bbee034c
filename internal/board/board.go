// Package board generates the game board: tiles laid out in a spiral, number
// chips, the settlement/road graph and harbors along the coast.
package board

import (
	"fmt"
	"iter"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/pkg/errors"

	"github.com/talgya/hexboard/internal/hexgrid"
)

// Board holds one generated game board. It is not safe for concurrent use;
// hosts serving several goroutines must serialize access.
type Board struct {
	Radius  int                   `json:"radius"`
	Tiles   map[hexgrid.Hex]*Tile `json:"-"`
	Graph   *Graph                `json:"-"`
	DiceMap map[int][]*Tile       `json:"-"`
	Robber  *hexgrid.Hex          `json:"robber,omitempty"`

	rng       *rand.Rand
	order     []hexgrid.Hex
	coast     []NodeID
	generated bool
}

// New returns an empty board that draws all randomness from rng.
func New(rng *rand.Rand) *Board {
	return &Board{
		Tiles:   make(map[hexgrid.Hex]*Tile),
		Graph:   newGraph(),
		DiceMap: make(map[int][]*Tile),
		rng:     rng,
	}
}

// Generate builds a board from cfg with a fresh RNG seeded by cfg.Seed and
// applies relief.
func Generate(cfg GenConfig) (*Board, error) {
	b := New(rand.New(rand.NewSource(cfg.Seed)))
	if err := b.Generate(cfg.Tiles, cfg.Chips, cfg.Harbors); err != nil {
		return nil, err
	}
	ApplyRelief(b, cfg.Seed)
	return b, nil
}

// Generate lays out the board. It may be called once; nothing is stored on
// the board unless every step succeeds.
func (b *Board) Generate(tiles map[TileKind]int, chips []int, harbors []Harbor) error {
	if b.generated {
		return errors.WithStack(ErrAlreadyGenerated)
	}

	stack := NewTileStack(b.rng, tiles)
	radius := hexgrid.RadiusFor(stack.Len())
	direction := hexgrid.Directions[b.rng.Intn(len(hexgrid.Directions))]

	// Lay tiles from the centre outwards.
	placed := make(map[hexgrid.Hex]*Tile, hexgrid.SpiralLen(radius))
	order := make([]hexgrid.Hex, 0, hexgrid.SpiralLen(radius))
	for pos := range hexgrid.Spiral(radius, direction, hexgrid.Origin) {
		kind, err := stack.Draw()
		if err != nil {
			return errors.Wrapf(err, "drawing tile %d at %v (radius %d)", len(order)+1, pos, radius)
		}
		placed[pos] = &Tile{Kind: kind, Position: pos}
		order = append(order, pos)
	}

	graph := BuildGraph(order)

	dice, robber, err := distributeChips(placed, order, chips)
	if err != nil {
		return err
	}

	coast, err := graph.collectCoast(radius)
	if err != nil {
		return err
	}
	shuffled := slices.Clone(harbors)
	b.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if _, err := graph.placeHarbors(coast, shuffled); err != nil {
		return err
	}

	b.Radius = radius
	b.Tiles = placed
	b.Graph = graph
	b.DiceMap = dice
	b.Robber = robber
	b.order = order
	b.coast = coast
	b.generated = true

	slog.Debug("board generated",
		"radius", radius,
		"tiles", len(placed),
		"nodes", graph.NodeCount(),
		"edges", graph.EdgeCount(),
		"coast", len(coast),
	)
	return nil
}

// distributeChips numbers producing tiles in placement order, taking chips
// from the end of the sequence. The first non-producing tile holds the robber.
func distributeChips(tiles map[hexgrid.Hex]*Tile, order []hexgrid.Hex, chips []int) (map[int][]*Tile, *hexgrid.Hex, error) {
	stack := slices.Clone(chips)
	dice := make(map[int][]*Tile)
	var robber *hexgrid.Hex

	for _, pos := range order {
		tile := tiles[pos]
		if !tile.Kind.Produces() {
			if robber == nil {
				p := pos
				robber = &p
			}
			continue
		}
		if len(stack) == 0 {
			return nil, nil, errors.Wrapf(ErrChipMismatch, "no chip left for %v", tile)
		}
		tile.Number = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		dice[tile.Number] = append(dice[tile.Number], tile)
	}

	if len(stack) > 0 {
		return nil, nil, errors.Wrapf(ErrChipMismatch, "%d chips left over", len(stack))
	}
	return dice, robber, nil
}

// Get returns the tile at pos, or nil if pos is off the board.
func (b *Board) Get(pos hexgrid.Hex) *Tile {
	return b.Tiles[pos]
}

// Positions returns tile positions in the order they were laid.
func (b *Board) Positions() []hexgrid.Hex {
	return slices.Clone(b.order)
}

// Coast returns the coastal nodes in walk order, as recorded at generation.
func (b *Board) Coast() []NodeID {
	return slices.Clone(b.coast)
}

// WalkCoast walks the coast of the generated board afresh.
func (b *Board) WalkCoast() iter.Seq2[NodeID, error] {
	return b.Graph.WalkCoast(b.Radius)
}

// Harbors returns every harbor-bearing node.
func (b *Board) Harbors() map[NodeID]Harbor {
	out := make(map[NodeID]Harbor)
	for _, id := range b.coast {
		if h := b.Graph.Node(id).Harbor; h != HarborNone {
			out[id] = h
		}
	}
	return out
}

// NodeAvailable reports whether a settlement may go on id: neither the node
// nor any node one road away may hold a building.
func (b *Board) NodeAvailable(id NodeID) bool {
	n := b.Graph.Node(id)
	if n == nil || n.Building != BuildingNone {
		return false
	}
	for _, nb := range b.Graph.adj[id] {
		if b.Graph.nodes[nb].Building != BuildingNone {
			return false
		}
	}
	return true
}

// UpdateBuilding places or replaces a building. Legality is up to the caller.
func (b *Board) UpdateBuilding(id NodeID, player Player, kind Building) error {
	n := b.Graph.Node(id)
	if n == nil {
		return errors.Wrapf(ErrUnknownNode, "%s", id)
	}
	n.Player = player
	n.Building = kind
	return nil
}

// UpdateRoad marks the road between two adjacent nodes as built by player.
func (b *Board) UpdateRoad(from, to NodeID, player Player) error {
	e := b.Graph.Edge(from, to)
	if e == nil {
		return errors.Wrapf(ErrUnknownEdge, "%s - %s", from, to)
	}
	e.Road = true
	e.Player = player
	return nil
}

// CountBuildings tallies settlements and cities per player.
func (b *Board) CountBuildings() (settlements, cities map[Player]int) {
	settlements = make(map[Player]int)
	cities = make(map[Player]int)
	for _, n := range b.Graph.nodes {
		switch n.Building {
		case BuildingSettlement:
			settlements[n.Player]++
		case BuildingCity:
			cities[n.Player]++
		}
	}
	return settlements, cities
}

// NodeResources yields the resource of each tile around id. Sea and
// non-producing tiles yield ResourceNone.
func (b *Board) NodeResources(id NodeID) iter.Seq[Resource] {
	return func(yield func(Resource) bool) {
		for _, pos := range id {
			res := ResourceNone
			if t := b.Tiles[pos]; t != nil {
				res = t.Resource()
			}
			if !yield(res) {
				return
			}
		}
	}
}

// TilesForRoll returns the tiles producing on a dice total.
func (b *Board) TilesForRoll(n int) []*Tile {
	return slices.Clone(b.DiceMap[n])
}

// MoveRobber places the robber on pos.
func (b *Board) MoveRobber(pos hexgrid.Hex) error {
	if b.Tiles[pos] == nil {
		return errors.Wrapf(ErrOffBoard, "robber to %v", pos)
	}
	b.Robber = &pos
	return nil
}

// KindCounts returns a summary of tile kind distribution.
func (b *Board) KindCounts() map[TileKind]int {
	counts := make(map[TileKind]int)
	for _, t := range b.Tiles {
		counts[t.Kind]++
	}
	return counts
}

// String returns a summary of the board.
func (b *Board) String() string {
	if !b.generated {
		return "Board(empty)"
	}
	robber := "none"
	if b.Robber != nil {
		robber = b.Robber.String()
	}
	return fmt.Sprintf("Board(radius=%d, tiles=%d, nodes=%d, edges=%d, robber=%s)",
		b.Radius, len(b.Tiles), b.Graph.NodeCount(), b.Graph.EdgeCount(), robber)
}
