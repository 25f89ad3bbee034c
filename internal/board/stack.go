package board

import (
	"math/rand"

	"github.com/pkg/errors"
)

// TileStack is a bag of tile tokens drawn without replacement.
type TileStack struct {
	rng    *rand.Rand
	tokens []TileKind
}

// NewTileStack expands counts into tokens. Kinds are expanded in TileKinds
// order so a given rng seed always draws the same sequence.
func NewTileStack(rng *rand.Rand, counts map[TileKind]int) *TileStack {
	s := &TileStack{rng: rng}
	for _, kind := range TileKinds {
		for i := 0; i < counts[kind]; i++ {
			s.tokens = append(s.tokens, kind)
		}
	}
	return s
}

// Draw removes and returns a uniformly random token.
func (s *TileStack) Draw() (TileKind, error) {
	if len(s.tokens) == 0 {
		return TileEmpty, errors.WithStack(ErrEmptyStack)
	}
	i := s.rng.Intn(len(s.tokens))
	kind := s.tokens[i]
	s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
	return kind, nil
}

// Len is the number of tokens left.
func (s *TileStack) Len() int {
	return len(s.tokens)
}
