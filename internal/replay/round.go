package replay

// BoardSize is the number of token cells along each axis. Token
// coordinates are valid in [0, BoardSize).
const BoardSize = 100

// Token is a single placed game piece. Immutable once parsed.
type Token struct {
	X, Y     int
	Strength int
	Faction  Faction
}

// InBounds reports whether the token's coordinates lie on the board.
func (t Token) InBounds() bool {
	return t.X >= 0 && t.X < BoardSize && t.Y >= 0 && t.Y < BoardSize
}

// Turn is one time-step snapshot of token placements. Turns are created
// by the parser, owned by their Round, and never mutated afterwards.
type Turn struct {
	Number int // 1-based, contiguous within a round
	Tokens []Token
}

// Round is an ordered collection of turns for one complete play of the
// game. Every Round owns its turn storage exclusively; constructing two
// rounds never shares backing memory.
type Round struct {
	number int
	turns  []*Turn
}

// NewRound creates an empty round with its own freshly allocated
// turn storage.
func NewRound(number int) *Round {
	return &Round{
		number: number,
		turns:  make([]*Turn, 0, 16),
	}
}

// Number returns the round identifier.
func (r *Round) Number() int {
	return r.number
}

// Len returns the number of turns in the round.
func (r *Round) Len() int {
	return len(r.turns)
}

// AppendTurn adds a turn holding the given tokens, assigning it the
// next consecutive turn number (starting at 1).
func (r *Round) AppendTurn(tokens []Token) *Turn {
	t := &Turn{
		Number: len(r.turns) + 1,
		Tokens: tokens,
	}
	r.turns = append(r.turns, t)
	return t
}

// Turn returns the turn with the given 1-based number.
func (r *Round) Turn(number int) (*Turn, bool) {
	if number < 1 || number > len(r.turns) {
		return nil, false
	}
	return r.turns[number-1], true
}

// Turns returns the round's turns in ascending turn-number order.
// Callers must not mutate the returned slice or the turns it holds.
func (r *Round) Turns() []*Turn {
	return r.turns
}
