package oware

import "testing"

func TestScoreStartPositionIsLevel(t *testing.T) {
	if got := NewGame().Score(); got != 0 {
		t.Errorf("start position scores %d, want 0", got)
	}
}

func TestScoreCountsStoreDifferential(t *testing.T) {
	g := &Game{}
	board := [14]int8{0, 0, 0, 0, 0, 0, 4, 4, 4, 4, 4, 4, 14, 10}
	if err := g.SetBoard(board, South); err != nil {
		t.Fatal(err)
	}

	// Four extra captured seeds for south; north's houses are neither
	// loaded nor vulnerable.
	if got := g.Score(); got != 4*tallyWeight {
		t.Errorf("score = %d, want %d", got, 4*tallyWeight)
	}
}

func TestScoreAttackAndVulnerableHouses(t *testing.T) {
	g := &Game{}
	board := [14]int8{13, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 20, 15}
	if err := g.SetBoard(board, South); err != nil {
		t.Fatal(err)
	}

	want := 5*tallyWeight + attackWeight
	if got := g.Score(); got != want {
		t.Errorf("score = %d, want %d", got, want)
	}

	board = [14]int8{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 23, 24}
	if err := g.SetBoard(board, South); err != nil {
		t.Fatal(err)
	}

	want = -tallyWeight + vulnerableWeight
	if got := g.Score(); got != want {
		t.Errorf("score = %d, want %d", got, want)
	}
}

func TestScoreStaysInsideBounds(t *testing.T) {
	g := &Game{}
	board := [14]int8{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 48, 0}
	if err := g.SetBoard(board, South); err != nil {
		t.Fatal(err)
	}
	if got := g.Score(); got != MaxScore-1 {
		t.Errorf("score = %d, must clamp to %d", got, MaxScore-1)
	}

	board = [14]int8{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 48}
	if err := g.SetBoard(board, South); err != nil {
		t.Fatal(err)
	}
	if got := g.Score(); got != -(MaxScore - 1) {
		t.Errorf("score = %d, must clamp to %d", got, -(MaxScore - 1))
	}
}
