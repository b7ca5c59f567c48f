package engine

// search is the recursive negamax with alpha-beta pruning. The returned
// score is fail-soft bounded within [alpha, beta] and is always from the
// perspective of the side to move at the node.
//
// The checks short-circuit in a fixed order: abort guard, terminal
// position, tablebase probe, frontier evaluation, cache probe, and only
// then move iteration. The cache is consulted and written only above the
// pre-frontier depth, where the lookup pays for itself.
func (e *Engine) search(alpha, beta, depth int) int {
	g := e.game

	// Deep nodes unwind immediately on abort; shallow ones are allowed
	// to finish so a completed first iteration always exists.
	if e.aborted.Load() && depth > MinDepth {
		return e.minScore
	}

	if g.HasEnded() {
		if outcome := g.Outcome(); outcome != DrawScore {
			return outcome * g.Turn()
		}
		return e.contempt * g.Turn()
	}

	if e.leaves.Find(g) {
		if score := e.leaves.Score(); score != DrawScore {
			return score * g.Turn()
		}
		return e.contempt * g.Turn()
	}

	if depth == 0 {
		return g.Score() * g.Turn()
	}

	hashMove := NullMove
	if depth > 2 && e.cache.Find(g) {
		if e.cache.Depth() >= depth {
			switch e.cache.Flag() {
			case Upper:
				if e.cache.Score() >= beta {
					return beta
				}
			case Lower:
				if e.cache.Score() <= alpha {
					return alpha
				}
			case Exact:
				return e.cache.Score()
			}
		}
		hashMove = e.cache.Move()
	}

	score := e.minScore
	flag := Lower

	// The hash move goes first: it produced the best score here before
	// and usually yields the cutoff without generating siblings.
	if hashMove != NullMove {
		g.Make(hashMove)
		score = -e.search(-beta, -alpha, depth-1)
		g.Unmake()

		if score >= beta && !e.aborted.Load() {
			e.cache.Store(g, score, hashMove, depth, Upper)
			return beta
		}
		if score > alpha {
			alpha = score
			flag = Exact
		}
	}

	for move := g.NextMove(); move != NullMove; move = g.NextMove() {
		if move == hashMove {
			continue
		}

		g.Make(move)
		score = -e.search(-beta, -alpha, depth-1)
		g.Unmake()

		if score >= beta {
			alpha = beta
			hashMove = move
			flag = Upper
			break
		}
		if score > alpha {
			alpha = score
			hashMove = move
			flag = Exact
		}
	}

	if depth > 2 && !e.aborted.Load() {
		e.cache.Store(g, alpha, hashMove, depth, flag)
	}

	return alpha
}
