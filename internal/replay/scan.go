package replay

import "fmt"

// The record grammar is a literal list of 4-tuples:
//
//	[(x, y, strength, 'R'), (x, y, strength, 'B'), ...]
//
// Records are decoded by this hand-written scanner and nothing else;
// the surrounding list may use [] or () braces, the faction tag may be
// single- or double-quoted or bare, and whitespace is free between
// elements. Anything outside that shape is a parse failure.

type scanner struct {
	src string
	pos int
}

// parseTokenList decodes one record line into tokens.
func parseTokenList(line string) ([]Token, error) {
	sc := &scanner{src: line}
	sc.skipSpace()

	open, ok := sc.next()
	if !ok || (open != '[' && open != '(') {
		return nil, fmt.Errorf("expected token list, got %q", line)
	}
	closing := byte(']')
	if open == '(' {
		closing = ')'
	}

	var tokens []Token
	sc.skipSpace()
	if sc.peek() == closing {
		sc.pos++
	} else {
		for {
			tok, err := sc.scanTuple()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)

			sc.skipSpace()
			c, ok := sc.next()
			if !ok {
				return nil, fmt.Errorf("unterminated token list")
			}
			if c == closing {
				break
			}
			if c != ',' {
				return nil, fmt.Errorf("expected ',' or %q after tuple, got %q", string(closing), string(c))
			}
			sc.skipSpace()
			// Trailing comma before the closing brace.
			if sc.peek() == closing {
				sc.pos++
				break
			}
		}
	}

	sc.skipSpace()
	if sc.pos != len(sc.src) {
		return nil, fmt.Errorf("trailing data after token list: %q", sc.src[sc.pos:])
	}
	return tokens, nil
}

func (sc *scanner) scanTuple() (Token, error) {
	sc.skipSpace()
	if c, ok := sc.next(); !ok || c != '(' {
		return Token{}, fmt.Errorf("expected '(' at offset %d", sc.pos)
	}

	x, err := sc.scanInt()
	if err != nil {
		return Token{}, fmt.Errorf("tuple x: %w", err)
	}
	if err := sc.expect(','); err != nil {
		return Token{}, err
	}
	y, err := sc.scanInt()
	if err != nil {
		return Token{}, fmt.Errorf("tuple y: %w", err)
	}
	if err := sc.expect(','); err != nil {
		return Token{}, err
	}
	strength, err := sc.scanInt()
	if err != nil {
		return Token{}, fmt.Errorf("tuple strength: %w", err)
	}
	if strength < 0 {
		return Token{}, fmt.Errorf("negative strength %d", strength)
	}
	if err := sc.expect(','); err != nil {
		return Token{}, err
	}
	faction, err := sc.scanFaction()
	if err != nil {
		return Token{}, err
	}
	if err := sc.expect(')'); err != nil {
		return Token{}, err
	}

	return Token{X: x, Y: y, Strength: strength, Faction: faction}, nil
}

func (sc *scanner) scanInt() (int, error) {
	sc.skipSpace()
	neg := false
	if sc.peek() == '-' {
		neg = true
		sc.pos++
	}
	start := sc.pos
	n := 0
	for sc.pos < len(sc.src) && sc.src[sc.pos] >= '0' && sc.src[sc.pos] <= '9' {
		n = n*10 + int(sc.src[sc.pos]-'0')
		sc.pos++
	}
	if sc.pos == start {
		return 0, fmt.Errorf("expected integer at offset %d", sc.pos)
	}
	if neg {
		n = -n
	}
	return n, nil
}

func (sc *scanner) scanFaction() (Faction, error) {
	sc.skipSpace()
	quote := byte(0)
	if c := sc.peek(); c == '\'' || c == '"' {
		quote = c
		sc.pos++
	}
	tag, ok := sc.next()
	if !ok {
		return 0, fmt.Errorf("expected faction tag at offset %d", sc.pos)
	}
	f, err := ParseFaction(tag)
	if err != nil {
		return 0, err
	}
	if quote != 0 {
		if c, ok := sc.next(); !ok || c != quote {
			return 0, fmt.Errorf("unterminated faction quote at offset %d", sc.pos)
		}
	}
	return f, nil
}

func (sc *scanner) expect(want byte) error {
	sc.skipSpace()
	c, ok := sc.next()
	if !ok || c != want {
		return fmt.Errorf("expected %q at offset %d", string(want), sc.pos)
	}
	return nil
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.src) {
		switch sc.src[sc.pos] {
		case ' ', '\t', '\r':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *scanner) peek() byte {
	if sc.pos >= len(sc.src) {
		return 0
	}
	return sc.src[sc.pos]
}

func (sc *scanner) next() (byte, bool) {
	if sc.pos >= len(sc.src) {
		return 0, false
	}
	c := sc.src[sc.pos]
	sc.pos++
	return c, true
}
