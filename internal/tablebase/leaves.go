package tablebase

import (
	"github.com/hailam/owareplay/internal/engine"
)

// Leaves adapts a prober to the engine's leaves capability. Find latches
// the matched record for the Score and Flag getters.
type Leaves struct {
	prober Prober
	score  int
	flag   engine.Flag
}

// NewLeaves wraps a prober for the engine.
func NewLeaves(p Prober) *Leaves {
	return &Leaves{prober: p, flag: engine.Empty}
}

// Find looks up the current position.
func (l *Leaves) Find(g engine.Game) bool {
	rec, found := l.prober.Probe(g.Hash())
	if !found {
		return false
	}

	l.score = rec.Score
	if rec.Exact {
		l.flag = engine.Exact
	} else {
		l.flag = engine.Fuzzy
	}
	return true
}

// Score returns the score of the last matched position.
func (l *Leaves) Score() int {
	return l.score
}

// Flag returns the precision of the last matched position.
func (l *Leaves) Flag() engine.Flag {
	return l.flag
}
