package board

import "slices"

// GenConfig holds board generation parameters.
type GenConfig struct {
	Seed    int64            // Random seed; the same seed reproduces the same board
	Tiles   map[TileKind]int // Tile tokens by kind; the total must fill a hexagon
	Chips   []int            // Number chips, consumed from the end
	Harbors []Harbor         // Harbor tokens, shuffled before placement
}

// StandardTiles is the 19-tile base game mix.
var StandardTiles = map[TileKind]int{
	TileMountain: 3,
	TileHills:    3,
	TileDesert:   1,
	TileForest:   4,
	TilePasture:  4,
	TileFields:   4,
}

// StandardChips is the base game chip order, listed from the outer ring in.
var StandardChips = []int{5, 2, 6, 3, 8, 10, 9, 12, 11, 4, 8, 10, 9, 4, 5, 6, 3, 11}

// StandardHarbors are the base game harbors in frame order.
var StandardHarbors = []Harbor{
	HarborGeneric, HarborBrick, HarborLumber, HarborGeneric, HarborGrain,
	HarborOre, HarborGeneric, HarborWool, HarborGeneric,
}

// DefaultGenConfig returns the standard base game board.
func DefaultGenConfig() GenConfig {
	tiles := make(map[TileKind]int, len(StandardTiles))
	for k, v := range StandardTiles {
		tiles[k] = v
	}
	return GenConfig{
		Seed:    0,
		Tiles:   tiles,
		Chips:   slices.Clone(StandardChips),
		Harbors: slices.Clone(StandardHarbors),
	}
}

// SmallTestConfig returns a single desert tile with two harbors.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Seed:    42,
		Tiles:   map[TileKind]int{TileDesert: 1},
		Chips:   nil,
		Harbors: []Harbor{HarborGeneric, HarborOre},
	}
}
