// Package hexgrid provides the hex grid geometry the board is laid out on.
// Uses cube coordinates (r, g, b) with r + g + b == 0.
package hexgrid

import (
	"cmp"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ErrInvalidCoordinate is returned when a cube coordinate does not sum to zero.
var ErrInvalidCoordinate = errors.New("invalid cube coordinate")

// Hex is a position on the hex grid. The zero value is the origin.
// Fields are unexported so every Hex in circulation satisfies r+g+b == 0.
type Hex struct {
	r, g, b int
}

// Origin is the centre of the grid.
var Origin = Hex{}

// New returns the cube coordinate (r, g, b).
func New(r, g, b int) (Hex, error) {
	if r+g+b != 0 {
		return Hex{}, errors.Wrapf(ErrInvalidCoordinate, "(%d, %d, %d) sums to %d", r, g, b, r+g+b)
	}
	return Hex{r: r, g: g, b: b}, nil
}

// MustNew is like New but panics on an invalid coordinate.
func MustNew(r, g, b int) Hex {
	h, err := New(r, g, b)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Hex) R() int { return h.r }
func (h Hex) G() int { return h.g }
func (h Hex) B() int { return h.b }

// Directions are the six unit offsets, clockwise starting at north.
var Directions = [6]Hex{
	{r: 0, g: 1, b: -1}, // N
	{r: 1, g: 0, b: -1}, // NE
	{r: 1, g: -1, b: 0}, // SE
	{r: 0, g: -1, b: 1}, // S
	{r: -1, g: 0, b: 1}, // SW
	{r: -1, g: 1, b: 0}, // NW
}

// Direction indexes into Directions.
const (
	North = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
)

// Add returns h + o.
func (h Hex) Add(o Hex) Hex {
	return Hex{r: h.r + o.r, g: h.g + o.g, b: h.b + o.b}
}

// Sub returns h - o.
func (h Hex) Sub(o Hex) Hex {
	return Hex{r: h.r - o.r, g: h.g - o.g, b: h.b - o.b}
}

// Norm is the distance from the origin.
func (h Hex) Norm() int {
	return max(abs(h.r), abs(h.g), abs(h.b))
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Hex) int {
	return a.Sub(b).Norm()
}

// Neighbors returns the six adjacent coordinates in direction order.
func (h Hex) Neighbors() [6]Hex {
	var result [6]Hex
	for i, dir := range Directions {
		result[i] = h.Add(dir)
	}
	return result
}

// Compare orders coordinates lexicographically on (r, g, b).
func Compare(a, b Hex) int {
	if c := cmp.Compare(a.r, b.r); c != 0 {
		return c
	}
	if c := cmp.Compare(a.g, b.g); c != 0 {
		return c
	}
	return cmp.Compare(a.b, b.b)
}

// Less reports whether h sorts before o.
func (h Hex) Less(o Hex) bool {
	return Compare(h, o) < 0
}

// Point is a position in the unstretched 2D projection of the grid.
type Point struct {
	X, Y int
}

// Project maps h onto the plane as (r, g-b). Hex centres are recovered by the
// renderer with (x, y) -> (3/2 x, sqrt(3)/2 y).
func (h Hex) Project() Point {
	return Point{X: h.r, Y: h.g - h.b}
}

func (h Hex) String() string {
	return fmt.Sprintf("(%d, %d, %d)", h.r, h.g, h.b)
}

type hexJSON struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexJSON{R: h.r, G: h.g, B: h.b})
}

func (h *Hex) UnmarshalJSON(data []byte) error {
	var v hexJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := New(v.R, v.G, v.B)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// SignedArea returns the signed area of the polygon pts (shoelace formula).
// Positive for counter-clockwise winding.
func SignedArea(pts ...Point) float64 {
	sum := 0
	for i := range pts {
		pi := pts[i]
		pj := pts[(i+1)%len(pts)]
		sum += pi.X*pj.Y - pj.X*pi.Y
	}
	return 0.5 * float64(sum)
}

// IsCounterClockwise reports whether pts wind counter-clockwise.
func IsCounterClockwise(pts ...Point) bool {
	return SignedArea(pts...) > 0
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
