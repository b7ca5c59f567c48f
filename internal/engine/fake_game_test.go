package engine

import "sort"

// fakeNode is a position in a scripted game tree.
type fakeNode struct {
	moves    []int
	children map[int]*fakeNode
	ended    bool
	outcome  int
	score    int
}

// term builds a terminal node with the given absolute outcome.
func term(outcome int) *fakeNode {
	return &fakeNode{ended: true, outcome: outcome}
}

// pos builds an interior node; moves are enumerated in ascending order.
func pos(score int, children map[int]*fakeNode) *fakeNode {
	n := &fakeNode{score: score, children: children}
	for move := range children {
		n.moves = append(n.moves, move)
	}
	sort.Ints(n.moves)
	return n
}

// fakeGame walks a scripted tree behind the Game interface. Every make is
// logged so tests can assert on move order, and onMake gives tests a hook
// into the middle of a search.
type fakeGame struct {
	turn    int
	path    []*fakeNode
	cursors []int
	hashes  map[*fakeNode]uint64
	nextID  uint64
	makes   []int
	onMake  func(g *fakeGame)
}

func newFakeGame(root *fakeNode, turn int) *fakeGame {
	return &fakeGame{
		turn:    turn,
		path:    []*fakeNode{root},
		cursors: []int{0},
		hashes:  make(map[*fakeNode]uint64),
		nextID:  0x9E3779B97F4A7C15,
	}
}

func (g *fakeGame) current() *fakeNode { return g.path[len(g.path)-1] }

func (g *fakeGame) HasEnded() bool { return g.current().ended }

func (g *fakeGame) Outcome() int { return g.current().outcome }

func (g *fakeGame) Score() int { return g.current().score }

func (g *fakeGame) Turn() int { return g.turn }

func (g *fakeGame) Length() int { return len(g.path) - 1 }

func (g *fakeGame) Hash() uint64 {
	node := g.current()
	id, ok := g.hashes[node]
	if !ok {
		id = g.nextID
		g.nextID += 0x9E3779B97F4A7C15
		g.hashes[node] = id
	}
	return id
}

func (g *fakeGame) Make(move int) {
	child, ok := g.current().children[move]
	if !ok {
		panic("fakeGame: make of unknown move")
	}
	g.path = append(g.path, child)
	g.cursors = append(g.cursors, 0)
	g.turn = -g.turn
	g.makes = append(g.makes, move)
	if g.onMake != nil {
		g.onMake(g)
	}
}

func (g *fakeGame) Unmake() {
	if len(g.path) == 1 {
		panic("fakeGame: unmake without matching make")
	}
	g.path = g.path[:len(g.path)-1]
	g.cursors = g.cursors[:len(g.cursors)-1]
	g.turn = -g.turn
}

func (g *fakeGame) NextMove() int {
	node := g.current()
	cursor := g.cursors[len(g.cursors)-1]
	if cursor >= len(node.moves) {
		return NullMove
	}
	g.cursors[len(g.cursors)-1] = cursor + 1
	return node.moves[cursor]
}

func (g *fakeGame) Cursor() int { return g.cursors[len(g.cursors)-1] }

func (g *fakeGame) SetCursor(c int) { g.cursors[len(g.cursors)-1] = c }

func (g *fakeGame) ResetCursor() { g.cursors[len(g.cursors)-1] = 0 }

func (g *fakeGame) EnsureCapacity(int) {}

func (g *fakeGame) LegalMoves() []int {
	return append([]int(nil), g.current().moves...)
}

// lcg is a deterministic generator for scripted tree content.
type lcg uint64

func (r *lcg) next() int {
	*r = *r*6364136223846793005 + 1442695040888963407
	return int(uint64(*r) >> 33)
}

// buildTree builds a uniform tree of the given height. Interior nodes and
// leaves all carry scores within ±900 so no line looks like a forced win.
func buildTree(height, branching int, rng *lcg) *fakeNode {
	score := rng.next()%1801 - 900
	if height == 0 {
		return &fakeNode{score: score}
	}
	children := make(map[int]*fakeNode, branching)
	for move := 0; move < branching; move++ {
		children[move] = buildTree(height-1, branching, rng)
	}
	return pos(score, children)
}

// refValue mirrors the search contract exactly: scores are from the side
// to move, terminals and the frontier short-circuit in the same order.
func refValue(n *fakeNode, turn, depth, contempt, infinity int) int {
	if n.ended {
		if n.outcome == DrawScore {
			return contempt * turn
		}
		return n.outcome * turn
	}
	if depth == 0 {
		return n.score * turn
	}

	best := -infinity
	for _, move := range n.moves {
		v := -refValue(n.children[move], -turn, depth-1, contempt, infinity)
		if v > best {
			best = v
		}
	}
	return best
}

// refRoot mirrors the root driver: each root move is scored at the full
// iteration depth from the child's perspective and the first strict
// improvement wins, so ties resolve identically to the engine.
func refRoot(n *fakeNode, turn, depth, contempt, infinity int) (move, parentScore int) {
	beta := infinity
	move = n.moves[0]
	for _, m := range n.moves {
		v := refValue(n.children[m], -turn, depth, contempt, infinity)
		if v < beta {
			beta = v
			move = m
		}
	}
	return move, beta
}
