package replay

import (
	"errors"
	"fmt"
)

// ErrRoundNotFound is returned when the gamelog contains no section for
// the requested round.
var ErrRoundNotFound = errors.New("round not found in gamelog")

// ParseError reports a turn record that does not decode into the
// expected tuple-list grammar.
type ParseError struct {
	Line int // 1-based line number within the round section
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at record %d: %s", e.Line, e.Msg)
}

// BoundsError reports a token whose coordinates lie outside the board.
// Under the strict policy, or once the lenient skip threshold is
// exceeded, it aborts the parse.
type BoundsError struct {
	Line  int
	Token Token
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("record %d: token at (%d,%d) outside board bounds [0,%d)",
		e.Line, e.Token.X, e.Token.Y, BoardSize)
}
