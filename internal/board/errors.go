package board

import "github.com/pkg/errors"

var (
	// ErrEmptyStack means more tiles were requested than configured: the tile
	// counts do not fill a whole hexagon.
	ErrEmptyStack = errors.New("tile stack is empty")

	// ErrCoastalAlignment means the coast could not be walked as a single
	// cycle, or harbors do not line up with it in pairs.
	ErrCoastalAlignment = errors.New("coastal alignment mismatch")

	// ErrChipMismatch means the chip sequence does not match the number of
	// producing tiles.
	ErrChipMismatch = errors.New("chip count does not match producing tiles")

	ErrAlreadyGenerated = errors.New("board already generated")
	ErrUnknownNode      = errors.New("unknown node")
	ErrUnknownEdge      = errors.New("unknown edge")
	ErrOffBoard         = errors.New("position is off the board")
)
