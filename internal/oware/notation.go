package oware

import (
	"fmt"
	"strconv"
	"strings"
)

// Move notation: south houses are written A-F, north houses a-f, both
// counted in sowing order.

// MoveString formats a move, or "0000" for the null move.
func MoveString(move int) string {
	switch {
	case move >= 0 && move <= 5:
		return string(rune('A' + move))
	case move >= 6 && move <= 11:
		return string(rune('a' + move - 6))
	default:
		return "0000"
	}
}

// ParseMove parses a move written in letter notation.
func ParseMove(s string) (int, error) {
	if len(s) != 1 {
		return NullMove, fmt.Errorf("oware: invalid move %q", s)
	}
	switch c := s[0]; {
	case c >= 'A' && c <= 'F':
		return int(c - 'A'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 6, nil
	default:
		return NullMove, fmt.Errorf("oware: invalid move %q", s)
	}
}

// BoardString renders the position as fourteen seed counts followed by
// the side to move, e.g. "4-4-4-4-4-4-4-4-4-4-4-4-0-0 S".
func (g *Game) BoardString() string {
	var b strings.Builder
	for pit, seeds := range g.board {
		if pit > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(int(seeds)))
	}
	if g.turn == South {
		b.WriteString(" S")
	} else {
		b.WriteString(" N")
	}
	return b.String()
}

// ParseBoard parses the BoardString format into a fresh game.
func ParseBoard(s string) (*Game, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return nil, fmt.Errorf("oware: invalid board %q", s)
	}

	counts := strings.Split(fields[0], "-")
	if len(counts) != 14 {
		return nil, fmt.Errorf("oware: board needs 14 pits, got %d", len(counts))
	}

	var board [14]int8
	for pit, c := range counts {
		seeds, err := strconv.Atoi(c)
		if err != nil || seeds < 0 || seeds > SeedCount {
			return nil, fmt.Errorf("oware: invalid seed count %q in pit %d", c, pit)
		}
		board[pit] = int8(seeds)
	}

	var turn int
	switch fields[1] {
	case "S", "s":
		turn = South
	case "N", "n":
		turn = North
	default:
		return nil, fmt.Errorf("oware: invalid turn %q", fields[1])
	}

	g := &Game{}
	if err := g.SetBoard(board, turn); err != nil {
		return nil, err
	}
	return g, nil
}

// String renders the board for terminal display, north row first as seen
// from south's side of the mat.
func (g *Game) String() string {
	var b strings.Builder

	b.WriteString("   f  e  d  c  b  a\n")
	b.WriteString("  ")
	for pit := 11; pit >= 6; pit-- {
		fmt.Fprintf(&b, "%2d ", g.board[pit])
	}
	fmt.Fprintf(&b, "  north: %d\n", g.board[NorthStore])

	b.WriteString("  ")
	for pit := 0; pit <= 5; pit++ {
		fmt.Fprintf(&b, "%2d ", g.board[pit])
	}
	fmt.Fprintf(&b, "  south: %d\n", g.board[SouthStore])
	b.WriteString("   A  B  C  D  E  F\n")

	if g.turn == South {
		b.WriteString("  south to move")
	} else {
		b.WriteString("  north to move")
	}
	return b.String()
}
