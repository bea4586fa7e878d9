package replay

// TurnStats is the immutable per-turn snapshot recorded by
// RunningStats: each turn lists the whole board, so the totals are that
// turn's own per-faction strength sums, alongside the turn's strength
// histogram and token counts.
type TurnStats struct {
	Turn                int
	RedTotal            int // sum of this turn's red strengths
	BlueTotal           int
	RedStrengths        []int // this turn only
	BlueStrengths       []int
	RedCount, BlueCount int
}

// RunningStats collects per-faction strength totals turn by turn.
// Record must be called once per turn in ascending turn order; after
// the full pass the recorded snapshots are read-only and safe to share
// across goroutines.
type RunningStats struct {
	redTotals  []int
	blueTotals []int
	turns      []TurnStats
}

// NewRunningStats creates an empty aggregator.
func NewRunningStats() *RunningStats {
	return &RunningStats{}
}

// Record computes one turn's snapshot from its tokens and appends it.
// Totals are not summed across turns: turns are full board snapshots,
// so each entry already carries the whole faction.
func (s *RunningStats) Record(t *Turn) TurnStats {
	ts := TurnStats{Turn: t.Number}
	for _, tok := range t.Tokens {
		switch tok.Faction {
		case FactionRed:
			ts.RedTotal += tok.Strength
			ts.RedStrengths = append(ts.RedStrengths, tok.Strength)
			ts.RedCount++
		case FactionBlue:
			ts.BlueTotal += tok.Strength
			ts.BlueStrengths = append(ts.BlueStrengths, tok.Strength)
			ts.BlueCount++
		}
	}

	s.redTotals = append(s.redTotals, ts.RedTotal)
	s.blueTotals = append(s.blueTotals, ts.BlueTotal)
	s.turns = append(s.turns, ts)
	return ts
}

// Len returns the number of recorded turns.
func (s *RunningStats) Len() int {
	return len(s.turns)
}

// Snapshot returns the stats for the i-th recorded turn (0-based).
func (s *RunningStats) Snapshot(i int) TurnStats {
	return s.turns[i]
}

// RedTotals returns the per-turn red strength totals, one entry per
// recorded turn. Callers must not mutate the returned slice.
func (s *RunningStats) RedTotals() []int {
	return s.redTotals
}

// BlueTotals returns the per-turn blue strength totals.
func (s *RunningStats) BlueTotals() []int {
	return s.blueTotals
}
