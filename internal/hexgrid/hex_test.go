package hexgrid

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestNewValidatesSum(t *testing.T) {
	for r := -3; r <= 3; r++ {
		for g := -3; g <= 3; g++ {
			for b := -3; b <= 3; b++ {
				h, err := New(r, g, b)
				if r+g+b == 0 {
					if err != nil {
						t.Errorf("New(%d, %d, %d) error = %v, want nil", r, g, b, err)
						continue
					}
					if h.R() != r || h.G() != g || h.B() != b {
						t.Errorf("New(%d, %d, %d) = %v", r, g, b, h)
					}
					continue
				}
				if !errors.Is(err, ErrInvalidCoordinate) {
					t.Errorf("New(%d, %d, %d) error = %v, want ErrInvalidCoordinate", r, g, b, err)
				}
			}
		}
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew(1, 0, 0) did not panic")
		}
	}()
	MustNew(1, 0, 0)
}

func TestAddSub(t *testing.T) {
	if got, want := MustNew(5, -5, 0).Add(MustNew(2, 2, -4)), MustNew(7, -3, -4); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
	if got, want := MustNew(0, 1, -1).Sub(MustNew(2, -6, 4)), MustNew(-2, 7, -5); got != want {
		t.Errorf("Sub = %v, want %v", got, want)
	}
}

func TestNorm(t *testing.T) {
	if got := Origin.Norm(); got != 0 {
		t.Errorf("Origin.Norm() = %d, want 0", got)
	}
	if got := MustNew(4, -3, -1).Norm(); got != 4 {
		t.Errorf("Norm() = %d, want 4", got)
	}
}

func TestDistance(t *testing.T) {
	h := MustNew(-1, 1, 0)
	g := MustNew(2, -1, -1)
	x := MustNew(0, 1, -1)

	tests := []struct {
		a, b Hex
		want int
	}{
		{h, g, 3},
		{g, h, 3},
		{h, h, 0},
		{x, h, 1},
		{x, g, 2},
	}
	for _, tc := range tests {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDistanceMetric(t *testing.T) {
	pts := slices.Collect(Spiral(2, Directions[North], Origin))
	for _, a := range pts {
		if Distance(a, a) != 0 {
			t.Errorf("Distance(%v, %v) != 0", a, a)
		}
		for _, b := range pts {
			if Distance(a, b) != Distance(b, a) {
				t.Errorf("Distance(%v, %v) not symmetric", a, b)
			}
			for _, c := range pts {
				if Distance(a, c) > Distance(a, b)+Distance(b, c) {
					t.Errorf("triangle inequality violated for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestNeighborsAreAdjacent(t *testing.T) {
	h := MustNew(2, -1, -1)
	for i, n := range h.Neighbors() {
		if Distance(h, n) != 1 {
			t.Errorf("neighbor %d %v at distance %d", i, n, Distance(h, n))
		}
	}
}

func TestSorting(t *testing.T) {
	got := []Hex{MustNew(-1, 3, -2), MustNew(2, -1, -1), MustNew(-1, 2, -1)}
	want := []Hex{MustNew(-1, 2, -1), MustNew(-1, 3, -2), MustNew(2, -1, -1)}
	slices.SortFunc(got, Compare)
	if !slices.Equal(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
	if !want[0].Less(want[1]) || want[1].Less(want[0]) {
		t.Error("Less disagrees with Compare")
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		h    Hex
		want Point
	}{
		{MustNew(-2, 1, 1), Point{-2, 0}},
		{Origin, Point{0, 0}},
		{MustNew(2, -1, -1), Point{2, 0}},
		{MustNew(0, 1, -1), Point{0, 2}},
	}
	for _, tc := range tests {
		if got := tc.h.Project(); got != tc.want {
			t.Errorf("%v.Project() = %v, want %v", tc.h, got, tc.want)
		}
	}
}

func TestSignedArea(t *testing.T) {
	triangle := []Point{{0, 0}, {1, 0}, {0, 1}}
	if got := SignedArea(triangle...); got != 0.5 {
		t.Errorf("SignedArea = %v, want 0.5", got)
	}
	slices.Reverse(triangle)
	if got := SignedArea(triangle...); got != -0.5 {
		t.Errorf("SignedArea reversed = %v, want -0.5", got)
	}

	if !IsCounterClockwise(Point{0, 0}, Point{1, 0}, Point{0, 1}) {
		t.Error("expected counter-clockwise triangle")
	}
	if IsCounterClockwise(Point{1, 1}, Point{1, 0}, Point{0, 0}, Point{0, 1}) {
		t.Error("expected clockwise square")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	h := MustNew(3, -1, -2)
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"r":3,"g":-1,"b":-2}` {
		t.Errorf("Marshal = %s", data)
	}
	var back Hex
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != h {
		t.Errorf("round trip = %v, want %v", back, h)
	}
	if err := json.Unmarshal([]byte(`{"r":1,"g":1,"b":1}`), &back); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("Unmarshal invalid error = %v, want ErrInvalidCoordinate", err)
	}
}
