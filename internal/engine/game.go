package engine

// Move encoding shared with game implementations.
const (
	// NullMove is returned where no move exists or applies.
	NullMove = -1

	// DrawScore is the absolute outcome of a drawn game.
	DrawScore = 0
)

// Game is the mutable game state searched by the engine. Implementations
// provide move generation, terminal detection and static evaluation; the
// engine never inspects the position beyond this surface.
//
// Make and Unmake follow stack discipline: Unmake undoes exactly the
// matching Make. The engine leaves the state as it found it, but may grow
// the internal move stack via EnsureCapacity.
type Game interface {
	// HasEnded reports whether the position is terminal.
	HasEnded() bool

	// Outcome returns the absolute result of a terminal position.
	// It is DrawScore if and only if the game is drawn.
	Outcome() int

	// Score returns the static heuristic evaluation from the absolute
	// perspective, bounded by the engine's infinity.
	Score() int

	// Turn returns the side-to-move sign multiplier: +1 for south,
	// -1 for north.
	Turn() int

	// Length returns the number of plies played from the start position.
	Length() int

	// Hash returns a stable fingerprint of the position. Collisions are
	// allowed but must be rare.
	Hash() uint64

	// Make performs a move on the board.
	Make(move int)

	// Unmake takes back the last performed move.
	Unmake()

	// NextMove returns the next legal move for the position, or NullMove
	// when the enumeration is exhausted. The enumeration cursor is part
	// of the per-ply state: Make starts a fresh enumeration and Unmake
	// restores the previous one.
	NextMove() int

	// Cursor returns the current enumeration cursor.
	Cursor() int

	// SetCursor restores an enumeration cursor obtained from Cursor.
	SetCursor(cursor int)

	// ResetCursor rewinds the enumeration to the first move.
	ResetCursor()

	// LegalMoves returns the materialized legal move list. The
	// enumeration cursor is left undisturbed.
	LegalMoves() []int

	// EnsureCapacity grows the internal move stack so that at least the
	// given number of plies can be performed.
	EnsureCapacity(plies int)
}
