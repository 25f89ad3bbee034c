package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/hexgrid"
)

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.Generate(board.DefaultGenConfig())
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRenderSize(t *testing.T) {
	tests := []struct {
		radius int
		opts   Options
		w, h   int
	}{
		{2, DefaultOptions(), 432, 464},
		{0, Options{HexSize: 10, Margin: 0}, 20, 18},
	}
	for _, tc := range tests {
		_, w, h := newLayout(tc.radius, tc.opts)
		if w != tc.w || h != tc.h {
			t.Errorf("radius %d: %dx%d, want %dx%d", tc.radius, w, h, tc.w, tc.h)
		}
	}

	img := Render(testBoard(t), DefaultOptions())
	if b := img.Bounds(); b.Dx() != 432 || b.Dy() != 464 {
		t.Errorf("image bounds %v", b)
	}
}

func TestRenderDrawsTiles(t *testing.T) {
	img := Render(testBoard(t), DefaultOptions())
	sea := colornames.Steelblue

	same := func(x, y int) bool {
		r, g, b, a := img.At(x, y).RGBA()
		sr, sg, sb, sa := sea.RGBA()
		return r == sr && g == sg && b == sb && a == sa
	}
	if !same(0, 0) {
		t.Error("corner pixel is not sea")
	}
	if same(216, 232) {
		t.Error("centre tile not drawn")
	}
}

func TestLayout(t *testing.T) {
	l, _, _ := newLayout(2, DefaultOptions())
	x, y := l.hex(hexgrid.Origin)
	if x != l.cx || y != l.cy {
		t.Errorf("origin at (%v, %v), want centre", x, y)
	}
	// North is straight up on screen.
	nx, ny := l.hex(hexgrid.Directions[hexgrid.North])
	if nx != x || ny >= y {
		t.Errorf("north neighbour at (%v, %v)", nx, ny)
	}
	// North-east is up and to the right.
	ex, ey := l.hex(hexgrid.Directions[hexgrid.NorthEast])
	if ex <= x || ey >= y {
		t.Errorf("north-east neighbour at (%v, %v)", ex, ey)
	}
}

func TestSavePNG(t *testing.T) {
	b := testBoard(t)
	nodes := b.Graph.Nodes()
	if err := b.UpdateBuilding(nodes[0].ID, "red", board.BuildingCity); err != nil {
		t.Fatal(err)
	}
	e := b.Graph.Edges()[0]
	if err := b.UpdateRoad(e.ID.A, e.ID.B, "no-such-colour"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "board.png")
	if err := SavePNG(b, path, DefaultOptions()); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bounds := img.Bounds(); bounds.Dx() != 432 || bounds.Dy() != 464 {
		t.Errorf("saved image bounds %v", bounds)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "board.png")
	if err := SavePNG(testBoard(t), path, DefaultOptions()); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}
