package engine

import "log"

// Report is an immutable snapshot handed to consumers whenever the best
// root move may have changed. Consumers must not mutate the game.
type Report struct {
	Game     Game
	Cache    Cache
	BestMove int
}

// Consumer receives search reports. Accept is called synchronously on the
// search thread between root iterations and once more when the search
// finishes.
type Consumer interface {
	Accept(r Report)
}

// notify fans the current snapshot out to every attached consumer.
func (e *Engine) notify(g Game, bestMove int) {
	r := Report{Game: g, Cache: e.cache, BestMove: bestMove}
	for _, c := range e.consumers {
		deliver(c, r)
	}
}

// deliver isolates the engine from a misbehaving consumer: a panic is
// logged and swallowed so the search state survives intact.
func deliver(c Consumer, r Report) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[Engine] consumer failed: %v", p)
		}
	}()
	c.Accept(r)
}
