package gamemaster

import (
	"errors"
	"testing"

	"connect4/game"
)

// drawSequence fills the board without either side connecting four when X
// moves first.
var drawSequence = []int{
	2, 3, 3, 3, 3, 3, 3, 2, 2, 2, 2, 2, 5, 4, 4, 4, 4, 4, 4, 1, 1,
	1, 1, 1, 1, 5, 5, 5, 5, 0, 0, 0, 0, 0, 0, 6, 6, 6, 6, 6, 6, 5,
}

func TestMatchInit(t *testing.T) {
	match := NewMatch(game.AI)

	if match.Board() != game.NewBoard() {
		t.Errorf("expected an empty board, got\n%s", match.Board())
	}
	if match.Turn() != game.AI {
		t.Errorf("expected AI to move first, got %s", match.Turn())
	}
	if match.IsOver() || match.Winner() != game.Empty {
		t.Error("expected a running game without a winner")
	}

	select {
	case u := <-match.Updates():
		t.Errorf("expected no update yet, got %+v", u)
	default:
	}
}

func TestMatchPlay_ValidMove(t *testing.T) {
	match := NewMatch(game.Player)

	if err := match.Play(3); err != nil {
		t.Fatalf("expected no error for a valid move, got %v", err)
	}
	if err := match.Play(3); err != nil {
		t.Fatalf("expected no error for a valid move, got %v", err)
	}

	first := <-match.Updates()
	if first.Column != 3 || first.Row != 0 || first.Cell != game.Player {
		t.Errorf("unexpected first update %+v", first)
	}
	second := <-match.Updates()
	if second.Column != 3 || second.Row != 1 || second.Cell != game.AI {
		t.Errorf("unexpected second update %+v", second)
	}
	if second.Board != match.Board() {
		t.Error("expected the last update to carry the current board")
	}
	if match.Turn() != game.Player || match.Moves() != 2 {
		t.Errorf("expected player to move after 2 moves, got %s after %d", match.Turn(), match.Moves())
	}
}

func TestMatchPlay_IllegalMove(t *testing.T) {
	match := NewMatch(game.Player)

	for _, col := range []int{-1, game.Columns} {
		if err := match.Play(col); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("expected illegal move for column %d, got %v", col, err)
		}
	}

	for i := 0; i < game.Rows; i++ {
		if err := match.Play(0); err != nil {
			t.Fatalf("unexpected error filling column 0: %v", err)
		}
	}
	if err := match.Play(0); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("expected illegal move for a full column, got %v", err)
	}
	if match.Moves() != game.Rows {
		t.Errorf("expected rejected moves not to count, got %d moves", match.Moves())
	}
}

func TestMatchPlay_GameOver(t *testing.T) {
	match := NewMatch(game.Player)

	// X stacks column 0, O answers in column 1
	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		if err := match.Play(col); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if !match.IsOver() || match.Winner() != game.Player {
		t.Fatalf("expected X to win, got over=%v winner=%s", match.IsOver(), match.Winner())
	}

	count := 0
	for range match.Updates() {
		count++
	}
	if count != 7 {
		t.Errorf("expected 7 updates before the channel closed, got %d", count)
	}

	if err := match.Play(2); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected %v, got %v", ErrGameOver, err)
	}
}

func TestMatchPlay_Draw(t *testing.T) {
	match := NewMatch(game.Player)

	for i, col := range drawSequence {
		if match.IsOver() {
			t.Fatalf("game ended early after %d moves", i)
		}
		if err := match.Play(col); err != nil {
			t.Fatalf("move %d in column %d: %v", i+1, col, err)
		}
	}

	if !match.IsOver() {
		t.Fatal("expected the game to be over on a full board")
	}
	if match.Winner() != game.Empty {
		t.Errorf("expected a draw, got winner %s", match.Winner())
	}
	if !match.Board().IsFull() {
		t.Error("expected a full board")
	}
}
