// Package oware implements the rules of oware (Abapa variant) behind the
// engine's game capability: sowing, captures, the feeding obligation,
// terminal detection and a bounded static evaluation.
package oware

import "fmt"

// Board geometry. Houses 0-5 belong to south, 6-11 to north; seeds are
// sown counterclockwise over the houses only. The two stores hold each
// player's captures.
const (
	SouthStore = 12
	NorthStore = 13

	// SeedCount is the total number of seeds in play.
	SeedCount = 48

	// SeedGoal is the number of captured seeds that decides the game.
	SeedGoal = 25
)

// Side-to-move sign multipliers.
const (
	South = 1
	North = -1
)

const (
	// NullMove marks an exhausted move enumeration.
	NullMove = -1

	// DrawScore is the outcome of a drawn game.
	DrawScore = 0

	// MaxScore is the outcome of a decided game and the bound on the
	// static evaluation. Wire it into the engine as the infinity.
	MaxScore = 1000
)

// MaxLength caps the game length in plies. Long oware endgames can cycle
// indefinitely; past the cap the remaining seeds are split by the side
// they sit on, which is how repetition is scored over the board.
const MaxLength = 300

// undo captures the full per-ply state. The board is small enough that a
// snapshot beats incremental bookkeeping on the way back up.
type undo struct {
	board  [14]int8
	hash   uint64
	cursor int8
}

// Game is a mutable oware position with make/unmake history. It
// implements the engine's game capability.
type Game struct {
	board  [14]int8
	turn   int8
	hash   uint64
	cursor int8
	undos  []undo
}

// NewGame returns the start position: four seeds in every house, south to
// move.
func NewGame() *Game {
	g := &Game{turn: South}
	for house := 0; house < 12; house++ {
		g.board[house] = 4
	}
	g.hash = hashBoard(&g.board, South)
	return g
}

// SetBoard replaces the position. The seed counts must be non-negative
// and sum to SeedCount, and turn must be South or North. The move history
// is discarded.
func (g *Game) SetBoard(board [14]int8, turn int) error {
	total := 0
	for pit, seeds := range board {
		if seeds < 0 {
			return fmt.Errorf("oware: negative seed count %d in pit %d", seeds, pit)
		}
		total += int(seeds)
	}
	if total != SeedCount {
		return fmt.Errorf("oware: board holds %d seeds, want %d", total, SeedCount)
	}
	if turn != South && turn != North {
		return fmt.Errorf("oware: invalid turn %d", turn)
	}

	g.board = board
	g.turn = int8(turn)
	g.hash = hashBoard(&g.board, turn)
	g.cursor = 0
	g.undos = g.undos[:0]
	return nil
}

// Board returns a copy of the seed counts.
func (g *Game) Board() [14]int8 {
	return g.board
}

// Turn returns the side-to-move sign multiplier.
func (g *Game) Turn() int {
	return int(g.turn)
}

// Length returns the number of plies played.
func (g *Game) Length() int {
	return len(g.undos)
}

// Hash returns the position fingerprint.
func (g *Game) Hash() uint64 {
	return g.hash
}

// EnsureCapacity grows the undo stack so at least the given number of
// plies can be performed without reallocation.
func (g *Game) EnsureCapacity(plies int) {
	if cap(g.undos) < plies {
		grown := make([]undo, len(g.undos), plies)
		copy(grown, g.undos)
		g.undos = grown
	}
}

// Make sows the seeds of the given house, performs any capture and passes
// the turn. The move must be legal.
func (g *Game) Make(move int) {
	if !g.isLegal(move) {
		panic("oware: make of illegal move")
	}

	g.undos = append(g.undos, undo{board: g.board, hash: g.hash, cursor: g.cursor})
	last := g.sow(move)
	g.capture(last)
	g.hash ^= sideKey
	g.turn = -g.turn
	g.cursor = 0
}

// Unmake restores the position before the last Make.
func (g *Game) Unmake() {
	if len(g.undos) == 0 {
		panic("oware: unmake without matching make")
	}

	u := g.undos[len(g.undos)-1]
	g.undos = g.undos[:len(g.undos)-1]
	g.board = u.board
	g.hash = u.hash
	g.cursor = u.cursor
	g.turn = -g.turn
}

// NextMove returns the next legal move, or NullMove when the enumeration
// is exhausted. The cursor is per-ply state: Make resets it and Unmake
// restores it.
func (g *Game) NextMove() int {
	base := 0
	if g.turn == North {
		base = 6
	}
	for g.cursor < 6 {
		move := base + int(g.cursor)
		g.cursor++
		if g.isLegal(move) {
			return move
		}
	}
	return NullMove
}

// Cursor returns the enumeration cursor.
func (g *Game) Cursor() int {
	return int(g.cursor)
}

// SetCursor restores an enumeration cursor.
func (g *Game) SetCursor(cursor int) {
	g.cursor = int8(cursor)
}

// ResetCursor rewinds the enumeration to the first house.
func (g *Game) ResetCursor() {
	g.cursor = 0
}

// LegalMoves materializes the legal move list without disturbing the
// enumeration cursor.
func (g *Game) LegalMoves() []int {
	saved := g.cursor
	g.cursor = 0

	var moves []int
	for move := g.NextMove(); move != NullMove; move = g.NextMove() {
		moves = append(moves, move)
	}

	g.cursor = saved
	return moves
}

// HasEnded reports whether the game is over: a store reached the goal,
// the length cap was hit, or the side to move has no legal move.
func (g *Game) HasEnded() bool {
	if g.board[SouthStore] >= SeedGoal || g.board[NorthStore] >= SeedGoal {
		return true
	}
	if len(g.undos) >= MaxLength {
		return true
	}
	return !g.hasMove()
}

// Outcome returns the absolute result of a terminal position: MaxScore
// for a south win, -MaxScore for a north win, DrawScore for 24-24. Seeds
// still on the board count for the side they sit on, which settles both
// starvation and the length cap.
func (g *Game) Outcome() int {
	south := int(g.board[SouthStore])
	north := int(g.board[NorthStore])
	if south < SeedGoal && north < SeedGoal {
		for house := 0; house < 6; house++ {
			south += int(g.board[house])
		}
		for house := 6; house < 12; house++ {
			north += int(g.board[house])
		}
	}

	switch {
	case south > north:
		return MaxScore
	case north > south:
		return -MaxScore
	default:
		return DrawScore
	}
}

// sow distributes the seeds of the house counterclockwise, skipping the
// origin on full laps, and returns the house the last seed landed in.
func (g *Game) sow(move int) int {
	seeds := int(g.board[move])
	g.setSeeds(move, 0)

	pit := move
	for seeds > 0 {
		pit++
		if pit == 12 {
			pit = 0
		}
		if pit == move {
			continue
		}
		g.setSeeds(pit, g.board[pit]+1)
		seeds--
	}
	return pit
}

// capture collects the chain of opponent houses holding two or three
// seeds that ends where the last seed landed. A grand slam, a capture
// that would empty the opponent's row entirely, takes nothing.
func (g *Game) capture(last int) {
	low, high, store := 6, 11, SouthStore
	if g.turn == North {
		low, high, store = 0, 5, NorthStore
	}
	if last < low || last > high {
		return
	}
	if g.board[last] != 2 && g.board[last] != 3 {
		return
	}

	first := last
	for first > low && (g.board[first-1] == 2 || g.board[first-1] == 3) {
		first--
	}

	taken := 0
	for pit := first; pit <= last; pit++ {
		taken += int(g.board[pit])
	}
	remaining := 0
	for pit := low; pit <= high; pit++ {
		remaining += int(g.board[pit])
	}
	if taken == remaining {
		return
	}

	for pit := first; pit <= last; pit++ {
		g.setSeeds(store, g.board[store]+g.board[pit])
		g.setSeeds(pit, 0)
	}
}

// isLegal reports whether the house may be sown: it must be a non-empty
// house of the side to move, and when the opponent is starved the move
// must feed them if any move can.
func (g *Game) isLegal(move int) bool {
	base := 0
	if g.turn == North {
		base = 6
	}
	if move < base || move > base+5 {
		return false
	}
	if g.board[move] == 0 {
		return false
	}
	if g.opponentSeeds() == 0 && !g.reaches(move) {
		return false
	}
	return true
}

// hasMove reports whether any legal move exists for the side to move.
func (g *Game) hasMove() bool {
	base := 0
	if g.turn == North {
		base = 6
	}
	for house := base; house < base+6; house++ {
		if g.isLegal(house) {
			return true
		}
	}
	return false
}

// opponentSeeds counts the seeds left in the opponent's row.
func (g *Game) opponentSeeds() int {
	low := 6
	if g.turn == North {
		low = 0
	}
	total := 0
	for pit := low; pit < low+6; pit++ {
		total += int(g.board[pit])
	}
	return total
}

// reaches reports whether sowing the house puts at least one seed on the
// opponent's row.
func (g *Game) reaches(move int) bool {
	if g.turn == South {
		return int(g.board[move]) >= 6-move
	}
	return int(g.board[move]) >= 12-move
}

// setSeeds writes a pit and keeps the incremental hash in step.
func (g *Game) setSeeds(pit int, seeds int8) {
	g.hash ^= pitKeys[pit][g.board[pit]] ^ pitKeys[pit][seeds]
	g.board[pit] = seeds
}
