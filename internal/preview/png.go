// Package preview renders a board to a PNG image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/hexgrid"
)

// Options controls the rendered image.
type Options struct {
	HexSize float64 // Circumradius of a tile in pixels.
	Margin  float64
}

// DefaultOptions suits a standard board.
func DefaultOptions() Options {
	return Options{HexSize: 48, Margin: 24}
}

var tileColors = map[board.TileKind]color.RGBA{
	board.TileMountain: colornames.Slategray,
	board.TileForest:   colornames.Forestgreen,
	board.TilePasture:  colornames.Yellowgreen,
	board.TileDesert:   colornames.Burlywood,
	board.TileFields:   colornames.Gold,
	board.TileHills:    colornames.Sienna,
	board.TileEmpty:    colornames.Lightgray,
}

var harborColors = map[board.Harbor]color.RGBA{
	board.HarborGeneric: colornames.White,
	board.HarborBrick:   colornames.Sienna,
	board.HarborLumber:  colornames.Forestgreen,
	board.HarborWool:    colornames.Yellowgreen,
	board.HarborGrain:   colornames.Gold,
	board.HarborOre:     colornames.Slategray,
}

// layout maps cube coordinates to pixels.
type layout struct {
	size   float64
	cx, cy float64
}

func newLayout(radius int, opts Options) (layout, int, int) {
	s := opts.HexSize
	halfW := 1.5*s*float64(radius) + s
	halfH := math.Sqrt(3)*s*float64(radius) + math.Sqrt(3)/2*s
	w := int(math.Ceil(2 * (halfW + opts.Margin)))
	h := int(math.Ceil(2 * (halfH + opts.Margin)))
	return layout{size: s, cx: float64(w) / 2, cy: float64(h) / 2}, w, h
}

// point converts a projected coordinate. Screen y grows downwards.
func (l layout) point(p hexgrid.Point) (float64, float64) {
	return l.cx + 1.5*l.size*float64(p.X), l.cy - math.Sqrt(3)/2*l.size*float64(p.Y)
}

func (l layout) hex(h hexgrid.Hex) (float64, float64) {
	return l.point(h.Project())
}

// corner returns the pixel position of a node: the mean of its tile centres.
func (l layout) corner(id board.NodeID) (float64, float64) {
	var x, y float64
	for _, h := range id {
		px, py := l.hex(h)
		x += px
		y += py
	}
	return x / 3, y / 3
}

// Render draws the board: tiles shaded by elevation, chips, the robber,
// harbor nodes, roads and buildings.
func Render(b *board.Board, opts Options) image.Image {
	l, w, h := newLayout(b.Radius, opts)
	dc := gg.NewContext(w, h)

	dc.SetColor(colornames.Steelblue)
	dc.Clear()

	for _, pos := range b.Positions() {
		t := b.Get(pos)
		x, y := l.hex(pos)
		dc.DrawRegularPolygon(6, x, y, l.size, 0)
		dc.SetColor(shade(tileColors[t.Kind], t.Elevation))
		dc.FillPreserve()
		dc.SetColor(colornames.Black)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		if t.Number != 0 {
			dc.DrawCircle(x, y, l.size*0.3)
			dc.SetColor(colornames.Wheat)
			dc.Fill()
			dc.SetColor(colornames.Black)
			if t.Number == 6 || t.Number == 8 {
				dc.SetColor(colornames.Firebrick)
			}
			dc.DrawStringAnchored(fmt.Sprint(t.Number), x, y, 0.5, 0.35)
		}
	}

	if b.Robber != nil {
		x, y := l.hex(*b.Robber)
		dc.DrawCircle(x, y+l.size*0.5, l.size*0.15)
		dc.SetColor(colornames.Dimgray)
		dc.Fill()
	}

	for _, e := range b.Graph.Edges() {
		if !e.Road {
			continue
		}
		x1, y1 := l.corner(e.ID.A)
		x2, y2 := l.corner(e.ID.B)
		dc.DrawLine(x1, y1, x2, y2)
		dc.SetColor(playerColor(e.Player))
		dc.SetLineWidth(5)
		dc.Stroke()
	}

	for id, harbor := range b.Harbors() {
		x, y := l.corner(id)
		dc.DrawCircle(x, y, l.size*0.12)
		dc.SetColor(harborColors[harbor])
		dc.FillPreserve()
		dc.SetColor(colornames.Navy)
		dc.SetLineWidth(2)
		dc.Stroke()
	}

	for _, n := range b.Graph.Nodes() {
		if n.Building == board.BuildingNone {
			continue
		}
		x, y := l.corner(n.ID)
		side := l.size * 0.25
		if n.Building == board.BuildingCity {
			side = l.size * 0.4
		}
		dc.DrawRectangle(x-side/2, y-side/2, side, side)
		dc.SetColor(playerColor(n.Player))
		dc.FillPreserve()
		dc.SetColor(colornames.Black)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	return dc.Image()
}

// SavePNG renders the board and writes it to path.
func SavePNG(b *board.Board, path string, opts Options) error {
	if err := gg.SavePNG(path, Render(b, opts)); err != nil {
		return fmt.Errorf("save preview %s: %w", path, err)
	}
	return nil
}

// playerColor looks the player up as a CSS colour name.
func playerColor(p board.Player) color.Color {
	if c, ok := colornames.Map[strings.ToLower(string(p))]; ok {
		return c
	}
	return colornames.Magenta
}

// shade scales c from 110% on flat tiles down to 80% on peaks.
func shade(c color.RGBA, elevation float64) color.RGBA {
	f := 1.1 - 0.3*elevation
	scale := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*f)))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
