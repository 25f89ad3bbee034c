package board

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// ApplyRelief gives every tile a cosmetic elevation from layered simplex
// noise. It uses its own noise source, so the board RNG is left untouched.
func ApplyRelief(b *Board, seed int64) {
	noise := opensimplex.NewNormalized(seed)

	for pos, tile := range b.Tiles {
		// Sample at the stretched hex centre so neighbours are equidistant.
		p := pos.Project()
		x := float64(p.X) * 1.5
		y := float64(p.Y) * math.Sqrt(3.0) / 2.0

		elev := octaveNoise(noise, x, y, 3, 0.35, 0.5)
		switch tile.Kind {
		case TileMountain:
			elev = 0.6 + elev*0.4
		case TileHills:
			elev = 0.3 + elev*0.4
		case TileDesert, TileEmpty:
			elev *= 0.15
		default:
			elev *= 0.35
		}
		tile.Elevation = math.Max(0, math.Min(1, elev))
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
