package board

import (
	"fmt"

	"github.com/talgya/hexboard/internal/hexgrid"
)

// TileKind is the terrain printed on a board tile.
type TileKind uint8

const (
	TileEmpty    TileKind = iota // Placeholder, produces nothing
	TileMountain                 // Ore
	TileForest                   // Lumber
	TilePasture                  // Wool
	TileDesert                   // Nothing; robber starts here
	TileFields                   // Grain
	TileHills                    // Brick
)

// TileKinds lists every kind in the order tile stacks are filled.
var TileKinds = []TileKind{
	TileMountain, TileHills, TileDesert, TileForest, TilePasture, TileFields, TileEmpty,
}

// Resource is what a tile yields when its number is rolled.
type Resource uint8

const (
	ResourceNone Resource = iota
	ResourceOre
	ResourceLumber
	ResourceWool
	ResourceGrain
	ResourceBrick
)

var tileResources = map[TileKind]Resource{
	TileMountain: ResourceOre,
	TileForest:   ResourceLumber,
	TilePasture:  ResourceWool,
	TileFields:   ResourceGrain,
	TileHills:    ResourceBrick,
}

// Resource returns the resource the kind produces, or ResourceNone.
func (k TileKind) Resource() Resource {
	return tileResources[k]
}

// Produces reports whether tiles of this kind carry a number chip.
func (k TileKind) Produces() bool {
	return k.Resource() != ResourceNone
}

func (k TileKind) String() string {
	switch k {
	case TileMountain:
		return "Mountain"
	case TileForest:
		return "Forest"
	case TilePasture:
		return "Pasture"
	case TileDesert:
		return "Desert"
	case TileFields:
		return "Fields"
	case TileHills:
		return "Hills"
	case TileEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

func (r Resource) String() string {
	switch r {
	case ResourceOre:
		return "Ore"
	case ResourceLumber:
		return "Lumber"
	case ResourceWool:
		return "Wool"
	case ResourceGrain:
		return "Grain"
	case ResourceBrick:
		return "Brick"
	default:
		return ""
	}
}

// Tile is one hex of the board.
type Tile struct {
	Kind     TileKind    `json:"kind"`
	Position hexgrid.Hex `json:"position"`

	// Number is the production chip, 0 for tiles without one.
	Number int `json:"number,omitempty"`

	// Elevation is cosmetic relief for the renderer: 0.0 (flat) to 1.0 (peak).
	Elevation float64 `json:"elevation"`
}

// Resource returns the resource this tile produces.
func (t *Tile) Resource() Resource {
	return t.Kind.Resource()
}

func (t *Tile) String() string {
	if t.Number == 0 {
		return fmt.Sprintf("<%s%v>", t.Kind, t.Position)
	}
	return fmt.Sprintf("<%s%v: %d>", t.Kind, t.Position, t.Number)
}

// Harbor is a trade port attached to two coastal nodes.
type Harbor uint8

const (
	HarborNone    Harbor = iota
	HarborGeneric        // 3:1 any resource
	HarborBrick          // 2:1
	HarborLumber
	HarborWool
	HarborGrain
	HarborOre
)

func (h Harbor) String() string {
	switch h {
	case HarborGeneric:
		return "3to1"
	case HarborBrick:
		return "Brick"
	case HarborLumber:
		return "Lumber"
	case HarborWool:
		return "Wool"
	case HarborGrain:
		return "Grain"
	case HarborOre:
		return "Ore"
	default:
		return ""
	}
}

// Building occupies a node.
type Building uint8

const (
	BuildingNone Building = iota
	BuildingSettlement
	BuildingCity
)

func (b Building) String() string {
	switch b {
	case BuildingSettlement:
		return "settlement"
	case BuildingCity:
		return "city"
	default:
		return ""
	}
}

// ParseBuilding is the inverse of Building.String.
func ParseBuilding(s string) (Building, error) {
	switch s {
	case "settlement":
		return BuildingSettlement, nil
	case "city":
		return BuildingCity, nil
	case "":
		return BuildingNone, nil
	}
	return BuildingNone, fmt.Errorf("unknown building %q", s)
}

// Player identifies the owner of a building or road (a seat colour).
type Player string
