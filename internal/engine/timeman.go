package engine

import "time"

// Limits carries the clock parameters of a timed search request. Time and
// Inc are indexed by side: 0 for south, 1 for north.
type Limits struct {
	Time      [2]time.Duration // remaining time on each clock
	Inc       [2]time.Duration // increment per move
	MovesToGo int              // moves until the next time control (0 = sudden death)
	MoveTime  time.Duration    // fixed time per move (overrides the clocks)
	Depth     int              // maximum search depth (0 = engine default)
	Infinite  bool             // search until stopped
}

// TimeManager turns a game clock into a per-move budget. The optimum is
// the target handed to the engine's move timer; the maximum bounds how far
// a caller may stretch it.
type TimeManager struct {
	optimumTime time.Duration
	maximumTime time.Duration
}

// NewTimeManager creates a time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init computes the allocation for the side to move. turn is the
// side-to-move sign multiplier and ply the number of plies played.
func (tm *TimeManager) Init(limits Limits, turn, ply int) {
	// Fixed move time mode.
	if limits.MoveTime > 0 {
		tm.optimumTime = limits.MoveTime
		tm.maximumTime = limits.MoveTime
		return
	}

	side := 0
	if turn < 0 {
		side = 1
	}

	// Infinite or depth-limited mode.
	if limits.Infinite || limits.Time[side] == 0 {
		tm.optimumTime = time.Hour
		tm.maximumTime = time.Hour
		return
	}

	timeLeft := limits.Time[side]
	inc := limits.Inc[side]

	// Estimate moves to go. Sudden death assumes fewer remaining moves
	// as the game ages.
	mtg := limits.MovesToGo
	if mtg == 0 {
		mtg = 50 - ply/4
		if mtg < 10 {
			mtg = 10
		}
		if mtg > 50 {
			mtg = 50
		}
	}

	baseTime := timeLeft / time.Duration(mtg)
	baseTime += inc * 9 / 10

	tm.optimumTime = baseTime

	// Keep a little in hand on the very first moves.
	if ply < 8 {
		tm.optimumTime = baseTime * 85 / 100
	}

	// Maximum time: 5x optimum or 80% of the clock, whichever is less.
	maxFromOptimum := tm.optimumTime * 5
	maxFromRemaining := timeLeft * 8 / 10

	if maxFromOptimum < maxFromRemaining {
		tm.maximumTime = maxFromOptimum
	} else {
		tm.maximumTime = maxFromRemaining
	}

	// Never budget more than 95% of the remaining clock.
	safetyMargin := timeLeft * 95 / 100
	if tm.maximumTime > safetyMargin {
		tm.maximumTime = safetyMargin
	}

	if tm.optimumTime < 10*time.Millisecond {
		tm.optimumTime = 10 * time.Millisecond
	}
	if tm.maximumTime < 50*time.Millisecond {
		tm.maximumTime = 50 * time.Millisecond
	}
}

// OptimumTime returns the target time for this move.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimumTime
}

// MaximumTime returns the most this move may be stretched to.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}
