// Package uci implements the text protocol front end of the engine. The
// command surface follows UCI conventions adapted to oware notation.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/owareplay/internal/book"
	"github.com/hailam/owareplay/internal/engine"
	"github.com/hailam/owareplay/internal/oware"
	"github.com/hailam/owareplay/internal/tablebase"
)

// UCI wires the engine, the current position and the optional book into a
// line-oriented command loop.
type UCI struct {
	engine *engine.Engine
	cache  *engine.Table
	game   *oware.Game
	book   *book.Book
	leaves *tablebase.Store
	rng    *rand.Rand

	out io.Writer

	// searchDone is closed when the in-flight search finishes; nil when
	// no search is running.
	searchDone chan struct{}
}

// New creates a protocol handler around the given engine and cache.
func New(eng *engine.Engine, cache *engine.Table) *UCI {
	eng.SetCache(cache)
	if err := eng.SetInfinity(oware.MaxScore); err != nil {
		log.Printf("[UCI] set infinity: %v", err)
	}

	u := &UCI{
		engine: eng,
		cache:  cache,
		game:   oware.NewGame(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		out:    os.Stdout,
	}
	eng.AttachConsumer(&infoConsumer{u: u})
	return u
}

// infoConsumer streams progress reports as info lines whenever the best
// root move changes between iterations.
type infoConsumer struct {
	u *UCI
}

func (c *infoConsumer) Accept(r engine.Report) {
	line := fmt.Sprintf("info pv %s", oware.MoveString(r.BestMove))
	if r.Cache.Find(r.Game) && r.Cache.Move() != engine.NullMove {
		line += " hashmove " + oware.MoveString(r.Cache.Move())
	}
	fmt.Fprintln(c.u.out, line)
}

// SetBook installs an opening book.
func (u *UCI) SetBook(b *book.Book) {
	u.book = b
}

// SetLeaves installs a badger endgame tablebase and hands it to the
// engine behind an in-memory probe cache.
func (u *UCI) SetLeaves(store *tablebase.Store) {
	u.leaves = store
	u.engine.SetLeaves(tablebase.NewLeaves(tablebase.NewCached(store, 1<<16)))
}

// Close releases the tablebase, if any.
func (u *UCI) Close() error {
	if u.leaves != nil {
		return u.leaves.Close()
	}
	return nil
}

// Run reads commands from the reader until quit or EOF.
func (u *UCI) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "setoption":
			u.handleSetOption(args)
		case "d":
			fmt.Fprintln(u.out, u.game.String())
		case "quit":
			u.handleStop()
			return
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name owareplay")
	fmt.Fprintln(u.out, "id author owareplay team")
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, "option name Hash type spin default 64 min 1 max 4096")
	fmt.Fprintln(u.out, "option name MoveTime type spin default 3600 min 1 max 3600000")
	fmt.Fprintln(u.out, "option name Depth type spin default 254 min 2 max 254")
	fmt.Fprintln(u.out, "option name Contempt type spin default 0 min -1000 max 1000")
	fmt.Fprintln(u.out, "option name BookPath type string default <empty>")
	fmt.Fprintln(u.out, "option name LeavesPath type string default <empty>")
	fmt.Fprintln(u.out, "uciok")
}

func (u *UCI) handleNewGame() {
	u.waitSearch()
	u.engine.NewMatch()
	u.game = oware.NewGame()
}

// handlePosition parses "position startpos [moves ...]" and
// "position board <pits> <turn> [moves ...]".
func (u *UCI) handlePosition(args []string) {
	u.waitSearch()
	if len(args) == 0 {
		return
	}

	var game *oware.Game
	moveStart := len(args)

	switch args[0] {
	case "startpos":
		game = oware.NewGame()
		moveStart = 1
	case "board":
		if len(args) < 3 {
			log.Printf("[UCI] position board needs pits and turn")
			return
		}
		parsed, err := oware.ParseBoard(args[1] + " " + args[2])
		if err != nil {
			log.Printf("[UCI] %v", err)
			return
		}
		game = parsed
		moveStart = 3
	default:
		log.Printf("[UCI] unknown position %q", args[0])
		return
	}

	if moveStart < len(args) && args[moveStart] == "moves" {
		for _, s := range args[moveStart+1:] {
			move, err := oware.ParseMove(s)
			if err != nil {
				log.Printf("[UCI] %v", err)
				return
			}
			if game.HasEnded() || !contains(game.LegalMoves(), move) {
				log.Printf("[UCI] illegal move %s", s)
				return
			}
			game.Make(move)
		}
	}

	u.game = game
}

// handleGo starts a search in the background and prints bestmove when it
// completes.
func (u *UCI) handleGo(args []string) {
	u.waitSearch()
	u.applyLimits(parseLimits(args))

	if u.game.HasEnded() {
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}

	// Book moves skip the search entirely.
	if u.book != nil {
		if move, ok := u.book.ProbeRandom(u.game.Hash(), u.rng); ok {
			if contains(u.game.LegalMoves(), move) {
				fmt.Fprintf(u.out, "bestmove %s\n", oware.MoveString(move))
				return
			}
		}
	}

	game := u.game
	done := make(chan struct{})
	u.searchDone = done

	go func() {
		defer close(done)
		start := time.Now()

		best := u.engine.ComputeBestMove(game)
		score := -u.engine.BestScore()
		depth := u.engine.ScoreDepth()
		elapsed := time.Since(start)

		fmt.Fprintf(u.out, "info depth %d score cp %d time %d hashfull %d\n",
			depth, score, elapsed.Milliseconds(), u.cache.HashFull())

		ponder := engine.NullMove
		if best != engine.NullMove {
			game.Make(best)
			ponder = u.engine.PonderMove(game)
			game.Unmake()
		}

		if ponder != engine.NullMove {
			fmt.Fprintf(u.out, "bestmove %s ponder %s\n",
				oware.MoveString(best), oware.MoveString(ponder))
		} else {
			fmt.Fprintf(u.out, "bestmove %s\n", oware.MoveString(best))
		}
	}()
}

func (u *UCI) handleStop() {
	if u.searchDone == nil {
		return
	}
	u.engine.AbortComputation()
	u.waitSearch()
}

func (u *UCI) handleSetOption(args []string) {
	name, value := parseOption(args)
	if name == "" {
		return
	}
	u.waitSearch()

	switch strings.ToLower(name) {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil && mb > 0 {
			u.cache.Resize(mb << 20)
		}
	case "movetime":
		if ms, err := strconv.Atoi(value); err == nil {
			if err := u.engine.SetMoveTime(time.Duration(ms) * time.Millisecond); err != nil {
				log.Printf("[UCI] %v", err)
			}
		}
	case "depth":
		if d, err := strconv.Atoi(value); err == nil {
			u.engine.SetDepth(d)
		}
	case "contempt":
		if c, err := strconv.Atoi(value); err == nil {
			u.engine.SetContempt(c)
		}
	case "bookpath":
		b, err := book.Load(value)
		if err != nil {
			log.Printf("[UCI] load book %s: %v", value, err)
			return
		}
		u.book = b
	case "leavespath":
		store, err := tablebase.Open(value)
		if err != nil {
			log.Printf("[UCI] open tablebase %s: %v", value, err)
			return
		}
		u.SetLeaves(store)
	}
}

// parseLimits reads the go command parameters. The wtime/btime pair maps
// onto south and north, first player first.
func parseLimits(args []string) engine.Limits {
	var limits engine.Limits

	ms := func(i int) (time.Duration, bool) {
		if i >= len(args) {
			return 0, false
		}
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return 0, false
		}
		return time.Duration(v) * time.Millisecond, true
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "movetime":
			if d, ok := ms(i + 1); ok {
				limits.MoveTime = d
			}
			i++
		case "wtime":
			if d, ok := ms(i + 1); ok {
				limits.Time[0] = d
			}
			i++
		case "btime":
			if d, ok := ms(i + 1); ok {
				limits.Time[1] = d
			}
			i++
		case "winc":
			if d, ok := ms(i + 1); ok {
				limits.Inc[0] = d
			}
			i++
		case "binc":
			if d, ok := ms(i + 1); ok {
				limits.Inc[1] = d
			}
			i++
		case "movestogo":
			if i+1 < len(args) {
				if n, err := strconv.Atoi(args[i+1]); err == nil {
					limits.MovesToGo = n
				}
			}
			i++
		case "depth":
			if i+1 < len(args) {
				if d, err := strconv.Atoi(args[i+1]); err == nil {
					limits.Depth = d
				}
			}
			i++
		case "infinite":
			limits.Infinite = true
		}
	}
	return limits
}

// applyLimits configures the engine for the request. Clock-based requests
// go through the time manager, which turns the remaining time into a
// budget for the engine's move timer.
func (u *UCI) applyLimits(limits engine.Limits) {
	if limits.Depth > 0 {
		u.engine.SetDepth(limits.Depth)
	}

	side := 0
	if u.game.Turn() == oware.North {
		side = 1
	}

	var budget time.Duration
	switch {
	case limits.MoveTime > 0:
		budget = limits.MoveTime
	case limits.Infinite:
		budget = 24 * time.Hour
	case limits.Time[side] > 0:
		tm := engine.NewTimeManager()
		tm.Init(limits, u.game.Turn(), u.game.Length())
		budget = tm.OptimumTime()
	default:
		return // keep the configured move time
	}

	if err := u.engine.SetMoveTime(budget); err != nil {
		log.Printf("[UCI] %v", err)
	}
}

// waitSearch blocks until the in-flight search, if any, has finished.
func (u *UCI) waitSearch() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
	}
}

func parseOption(args []string) (name, value string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			if i+1 < len(args) {
				name = args[i+1]
			}
		case "value":
			if i+1 < len(args) {
				value = strings.Join(args[i+1:], " ")
				return name, value
			}
		}
	}
	return name, value
}

func contains(moves []int, move int) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}
