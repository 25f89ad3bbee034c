package board

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func TestTileStackDrawsEveryToken(t *testing.T) {
	s := NewTileStack(rand.New(rand.NewSource(1)), StandardTiles)
	if s.Len() != 19 {
		t.Fatalf("Len() = %d, want 19", s.Len())
	}

	counts := make(map[TileKind]int)
	for i := 0; i < 19; i++ {
		kind, err := s.Draw()
		if err != nil {
			t.Fatalf("Draw %d: %v", i, err)
		}
		counts[kind]++
	}
	for kind, want := range StandardTiles {
		if counts[kind] != want {
			t.Errorf("drew %d %s, want %d", counts[kind], kind, want)
		}
	}

	if _, err := s.Draw(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("Draw on empty stack error = %v, want ErrEmptyStack", err)
	}
}

func TestTileStackSeeded(t *testing.T) {
	drawAll := func(seed int64) []TileKind {
		s := NewTileStack(rand.New(rand.NewSource(seed)), StandardTiles)
		var out []TileKind
		for s.Len() > 0 {
			k, err := s.Draw()
			if err != nil {
				t.Fatal(err)
			}
			out = append(out, k)
		}
		return out
	}

	if a, b := drawAll(9), drawAll(9); !slices.Equal(a, b) {
		t.Errorf("same seed drew %v and %v", a, b)
	}
}

func TestTileStackEmptyConfig(t *testing.T) {
	s := NewTileStack(rand.New(rand.NewSource(1)), nil)
	if _, err := s.Draw(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("Draw error = %v, want ErrEmptyStack", err)
	}
}
