package hexgrid

import (
	"slices"
	"testing"
)

func hexes(ts ...[3]int) []Hex {
	out := make([]Hex, len(ts))
	for i, t := range ts {
		out[i] = MustNew(t[0], t[1], t[2])
	}
	return out
}

var (
	ring1 = hexes(
		[3]int{0, 1, -1}, [3]int{1, 0, -1}, [3]int{1, -1, 0},
		[3]int{0, -1, 1}, [3]int{-1, 0, 1}, [3]int{-1, 1, 0},
	)
	ring2 = hexes(
		[3]int{0, 2, -2}, [3]int{1, 1, -2}, [3]int{2, 0, -2}, [3]int{2, -1, -1},
		[3]int{2, -2, 0}, [3]int{1, -2, 1}, [3]int{0, -2, 2}, [3]int{-1, -1, 2},
		[3]int{-2, 0, 2}, [3]int{-2, 1, 1}, [3]int{-2, 2, 0}, [3]int{-1, 2, -1},
	)
)

func rotate(s []Hex, i int) []Hex {
	return append(slices.Clone(s[i:]), s[:i]...)
}

func shift(s []Hex, by Hex) []Hex {
	out := make([]Hex, len(s))
	for i, h := range s {
		out[i] = h.Add(by)
	}
	return out
}

func TestRingCentre(t *testing.T) {
	got := slices.Collect(Ring(Origin, Origin))
	if !slices.Equal(got, []Hex{Origin}) {
		t.Errorf("Ring(origin) = %v, want [origin]", got)
	}
}

func TestRingRotations(t *testing.T) {
	m := MustNew(2, -2, 0)
	cases := []struct {
		name   string
		ring   []Hex
		center Hex
	}{
		{"ring1", ring1, Origin},
		{"ring2", ring2, Origin},
		{"ring1 off-centre", shift(ring1, m), m},
		{"ring2 off-centre", shift(ring2, m), m},
	}
	for _, tc := range cases {
		for i := range tc.ring {
			want := rotate(tc.ring, i)
			got := slices.Collect(Ring(want[0], tc.center))
			if !slices.Equal(got, want) {
				t.Errorf("%s from %v = %v, want %v", tc.name, want[0], got, want)
			}
		}
	}
}

func TestRingLength(t *testing.T) {
	for r := 0; r <= 5; r++ {
		start := Origin
		for range r {
			start = start.Add(Directions[SouthWest])
		}
		got := slices.Collect(Ring(start, Origin))
		want := max(6*r, 1)
		if len(got) != want {
			t.Errorf("ring %d has %d coordinates, want %d", r, len(got), want)
		}
		seen := make(map[Hex]bool)
		for _, h := range got {
			if Distance(h, Origin) != r {
				t.Errorf("ring %d yielded %v at distance %d", r, h, Distance(h, Origin))
			}
			if seen[h] {
				t.Errorf("ring %d repeats %v", r, h)
			}
			seen[h] = true
		}
	}
}

func TestRingStopsEarly(t *testing.T) {
	n := 0
	for range Ring(ring2[0], Origin) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("consumed %d, want 3", n)
	}
}

func TestSpiral(t *testing.T) {
	spiral1 := append([]Hex{Origin}, ring1...)
	spiral2 := append(slices.Clone(spiral1), hexes(
		[3]int{-1, 2, -1}, [3]int{0, 2, -2}, [3]int{1, 1, -2}, [3]int{2, 0, -2},
		[3]int{2, -1, -1}, [3]int{2, -2, 0}, [3]int{1, -2, 1}, [3]int{0, -2, 2},
		[3]int{-1, -1, 2}, [3]int{-2, 0, 2}, [3]int{-2, 1, 1}, [3]int{-2, 2, 0},
	)...)

	north := MustNew(0, 1, -1)
	if got := slices.Collect(Spiral(1, north, Origin)); !slices.Equal(got, spiral1) {
		t.Errorf("Spiral(1) = %v, want %v", got, spiral1)
	}
	if got := slices.Collect(Spiral(2, north, Origin)); !slices.Equal(got, spiral2) {
		t.Errorf("Spiral(2) = %v, want %v", got, spiral2)
	}
}

func TestSpiralCoversDisc(t *testing.T) {
	centers := []Hex{Origin, MustNew(3, -1, -2)}
	for _, c := range centers {
		for _, dir := range Directions {
			for radius := 0; radius <= 4; radius++ {
				got := slices.Collect(Spiral(radius, dir, c))
				if len(got) != SpiralLen(radius) {
					t.Errorf("Spiral(%d, %v, %v) len = %d, want %d", radius, dir, c, len(got), SpiralLen(radius))
				}
				if got[0] != c {
					t.Errorf("Spiral(%d, %v, %v) starts at %v", radius, dir, c, got[0])
				}
				seen := make(map[Hex]bool)
				for _, h := range got {
					if Distance(h, c) > radius {
						t.Errorf("Spiral(%d) yielded %v outside radius", radius, h)
					}
					if seen[h] {
						t.Errorf("Spiral(%d) repeats %v", radius, h)
					}
					seen[h] = true
				}
			}
		}
	}
}

func TestRadiusFor(t *testing.T) {
	tests := []struct {
		count, want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{7, 1},
		{8, 2},
		{19, 2},
		{20, 3},
		{37, 3},
	}
	for _, tc := range tests {
		if got := RadiusFor(tc.count); got != tc.want {
			t.Errorf("RadiusFor(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}
