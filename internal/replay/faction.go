package replay

import "fmt"

// Faction is one of the two opposing sides in a game.
type Faction int

const (
	FactionRed Faction = iota
	FactionBlue
)

func (f Faction) String() string {
	switch f {
	case FactionRed:
		return "red"
	case FactionBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// ParseFaction resolves the single-character faction tag used by the
// gamelog format ('R' or 'B').
func ParseFaction(tag byte) (Faction, error) {
	switch tag {
	case 'R':
		return FactionRed, nil
	case 'B':
		return FactionBlue, nil
	default:
		return 0, fmt.Errorf("unknown faction tag %q", string(tag))
	}
}
