package poker

import "errors"

// Error kinds surfaced by the core. Callers match with errors.Is; parse and
// deck helpers wrap these with context about the offending input.
var (
	ErrCardLength   = errors.New("card string must be two characters")
	ErrUnknownValue = errors.New("unknown card value")
	ErrUnknownSuit  = errors.New("unknown card suit")

	ErrCardAbsent = errors.New("card not in deck")
	ErrDeckEmpty  = errors.New("deck is empty")

	ErrArity = errors.New("wrong number of cards")
)
