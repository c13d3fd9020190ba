package holdem

import "errors"

// Error kinds surfaced by range parsing and simulation setup. Parse errors
// wrap these with the offending token.
var (
	ErrUnknownToken   = errors.New("unknown range token")
	ErrBadSuffix      = errors.New("bad range suffix")
	ErrRangeEndpoints = errors.New("inconsistent range endpoints")
	ErrDuplicateCard  = errors.New("duplicate card reference")

	ErrEmptyRange = errors.New("range has no playable combos")
	ErrBadBoard   = errors.New("board must have 0, 3, 4 or 5 cards")
	ErrNoPlayers  = errors.New("simulation needs at least one player")
)
