package replay

import (
	"fmt"
	"log/slog"
	"strings"
)

// Gamelog section markers. A round's records are the lines between its
// start marker and the next start marker (or the end of the log); an
// explicit terminator line may close the final section.
const (
	startMarkerFmt    = "round-start-for(%d)"
	startMarkerPrefix = "round-start-for("
	endMarker         = "round-end"
)

// BoundsPolicy controls how the parser reacts to tokens placed outside
// the board. The choice must be explicit: strict aborts on the first
// offending turn, lenient skips up to maxSkips offending turns (with a
// recorded warning each) before escalating to a fatal BoundsError.
type BoundsPolicy struct {
	strict   bool
	maxSkips int
}

// StrictBounds aborts parsing on the first out-of-bounds token.
func StrictBounds() BoundsPolicy {
	return BoundsPolicy{strict: true}
}

// LenientBounds skips up to maxSkips offending turns before aborting.
func LenientBounds(maxSkips int) BoundsPolicy {
	return BoundsPolicy{maxSkips: maxSkips}
}

// Warning records one skipped out-of-bounds turn under the lenient
// policy. Warnings are kept on the parser so callers can surface them
// in the run summary after parsing succeeds.
type Warning struct {
	Record int // 1-based record number within the round section
	Token  Token
}

func (w Warning) String() string {
	return fmt.Sprintf("record %d skipped: token at (%d,%d) outside board bounds",
		w.Record, w.Token.X, w.Token.Y)
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithBoundsPolicy sets the out-of-bounds policy. The default is
// LenientBounds(3).
func WithBoundsPolicy(p BoundsPolicy) ParserOption {
	return func(pr *Parser) { pr.policy = p }
}

// WithLogger sets the logger used for skip warnings.
func WithLogger(log *slog.Logger) ParserOption {
	return func(pr *Parser) { pr.log = log }
}

// Parser extracts one round's turn records from raw gamelog text.
type Parser struct {
	policy   BoundsPolicy
	log      *slog.Logger
	warnings []Warning
}

// NewParser creates a parser with the default lenient bounds policy.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		policy: LenientBounds(3),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Warnings returns the skip warnings recorded during the last
// ParseRound call, in encounter order.
func (p *Parser) Warnings() []Warning {
	return p.warnings
}

// ParseRound locates the section for roundID in the gamelog text and
// parses it into a Round. Surviving turns are numbered 1..N in the
// order encountered. Returns ErrRoundNotFound, a *ParseError, or a
// *BoundsError on failure.
func (p *Parser) ParseRound(logText string, roundID int) (*Round, error) {
	p.warnings = nil

	section, err := roundSection(logText, roundID)
	if err != nil {
		return nil, err
	}

	round := NewRound(roundID)
	skipped := 0
	record := 0
	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line == endMarker {
			continue
		}
		record++

		tokens, err := parseTokenList(line)
		if err != nil {
			return nil, &ParseError{Line: record, Msg: err.Error()}
		}

		if bad, ok := firstOutOfBounds(tokens); ok {
			if p.policy.strict || skipped >= p.policy.maxSkips {
				return nil, &BoundsError{Line: record, Token: bad}
			}
			skipped++
			w := Warning{Record: record, Token: bad}
			p.warnings = append(p.warnings, w)
			p.log.Warn("skipping out-of-bounds turn",
				"round", roundID,
				"record", record,
				"x", bad.X,
				"y", bad.Y,
				"skipped", skipped,
				"max_skips", p.policy.maxSkips)
			continue
		}

		round.AppendTurn(tokens)
	}

	return round, nil
}

// roundSection returns the raw text between roundID's start marker and
// the next round's marker, or the end of the log.
func roundSection(logText string, roundID int) (string, error) {
	marker := fmt.Sprintf(startMarkerFmt, roundID)
	start := strings.Index(logText, marker)
	if start < 0 {
		return "", fmt.Errorf("round %d: %w", roundID, ErrRoundNotFound)
	}
	rest := logText[start+len(marker):]
	if next := strings.Index(rest, startMarkerPrefix); next >= 0 {
		rest = rest[:next]
	}
	return rest, nil
}

func firstOutOfBounds(tokens []Token) (Token, bool) {
	for _, t := range tokens {
		if !t.InBounds() {
			return t, true
		}
	}
	return Token{}, false
}
