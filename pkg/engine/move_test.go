package engine

import (
	"testing"

	"github.com/ktomerius/dobutsu/pkg/common"
)

func mustBoard(t *testing.T, s string, sente bool) common.Board {
	t.Helper()
	b, err := common.ParseBoard(s, sente)
	if err != nil {
		t.Fatalf("ParseBoard(%q): %v", s, err)
	}
	return b
}

// destinationsFor returns every destination square GenerateMoves finds
// for a mover-owned piece of the given kind at square, on an otherwise
// empty board.
func destinationsFor(kind common.Piece, square int) map[int]bool {
	var b common.Board
	b.Grid[square] = common.NewPiece(kind, false)
	dests := map[int]bool{}
	for _, m := range GenerateMoves(&b, nil) {
		if m.From == square {
			dests[m.To] = true
		}
	}
	return dests
}

func TestChickMovesForwardOnly(t *testing.T) {
	// square 4 is row 1, col 1 (middling, clear of all edges)
	dests := destinationsFor(common.Chick, 4)
	want := map[int]bool{7: true}
	if len(dests) != len(want) || !dests[7] {
		t.Errorf("Chick@4 destinations = %v, want %v", dests, want)
	}
}

func TestGiraffeMovesOrthogonalOnly(t *testing.T) {
	dests := destinationsFor(common.Giraffe, 4)
	want := map[int]bool{1: true, 3: true, 5: true, 7: true}
	if len(dests) != len(want) {
		t.Fatalf("Giraffe@4 destinations = %v, want %v", dests, want)
	}
	for d := range want {
		if !dests[d] {
			t.Errorf("Giraffe@4 missing destination %d", d)
		}
	}
}

func TestElephantMovesDiagonalOnly(t *testing.T) {
	dests := destinationsFor(common.Elephant, 4)
	want := map[int]bool{0: true, 2: true, 6: true, 8: true}
	if len(dests) != len(want) {
		t.Fatalf("Elephant@4 destinations = %v, want %v", dests, want)
	}
	for d := range want {
		if !dests[d] {
			t.Errorf("Elephant@4 missing destination %d", d)
		}
	}
}

func TestHenMovesAllButRearDiagonals(t *testing.T) {
	dests := destinationsFor(common.Hen, 4)
	want := map[int]bool{1: true, 3: true, 5: true, 6: true, 7: true, 8: true}
	if len(dests) != len(want) {
		t.Fatalf("Hen@4 destinations = %v, want %v", dests, want)
	}
	for d := range want {
		if !dests[d] {
			t.Errorf("Hen@4 missing destination %d", d)
		}
	}
}

func TestLionMovesAllEight(t *testing.T) {
	dests := destinationsFor(common.Lion, 4)
	if len(dests) != 8 {
		t.Errorf("Lion@4 should have 8 destinations, got %d: %v", len(dests), dests)
	}
}

func TestNoChildEqualsParent(t *testing.T) {
	b := mustBoard(t, common.DefaultBoardString, true)
	for _, m := range GenerateMoves(&b, nil) {
		child := ApplyMove(b, m)
		if child == b {
			t.Errorf("move %+v produced a child identical to the parent", m)
		}
	}
}

func TestCapturingTheLionIsAnImmediateLoss(t *testing.T) {
	// Sente Lion adjacent to a Gote Lion it can capture.
	b := mustBoard(t, "L   l             ", true)
	var found bool
	for _, m := range GenerateMoves(&b, nil) {
		if b.Grid[m.To].Animal() == common.Lion {
			found = true
			child := ApplyMove(b, m)
			if child.Result != -1 {
				t.Errorf("capturing the Lion should set the child's Result to -1, got %d", child.Result)
			}
		}
	}
	if !found {
		t.Fatalf("expected a Lion-capturing move to be available")
	}
}

func TestPromotionOnBackRank(t *testing.T) {
	// Slot 6 is row 2, col 0: a Chick's only legal step from there lands
	// on row 3 (slot 9), the mover's promotion rank.
	var b common.Board
	b.Grid[6] = common.NewPiece(common.Chick, false)
	var promoted bool
	for _, m := range GenerateMoves(&b, nil) {
		if m.From == 6 && m.To >= common.NumSquares-common.Width {
			child := ApplyMove(b, m)
			// After the mandatory rotation, the promoted piece sits at the
			// mirrored square, now carrying the non-mover (Gote-looking) tag.
			mirrored := common.NumSquares - 1 - m.To
			if child.Grid[mirrored].Animal() == common.Hen {
				promoted = true
			}
		}
	}
	if !promoted {
		t.Errorf("Chick reaching the back rank should promote to Hen")
	}
}

func TestDropDestinationsAreEmptySquaresOnly(t *testing.T) {
	var b common.Board
	b.Hand[0] = common.NewPiece(common.Chick, false)
	b.Grid[5] = common.NewPiece(common.Giraffe, true)
	moves := GenerateMoves(&b, nil)
	for _, m := range moves {
		if m.From < common.NumSquares {
			continue
		}
		if !b.Grid[m.To].IsEmpty() {
			t.Errorf("drop destination %d is not empty", m.To)
		}
	}
}

func TestDuplicateHandDropsAreDeduped(t *testing.T) {
	var b common.Board
	b.Hand[0] = common.NewPiece(common.Chick, false)
	b.Hand[1] = common.NewPiece(common.Chick, false)
	moves := GenerateMoves(&b, nil)
	count := 0
	for _, m := range moves {
		if m.From == common.NumSquares+1 {
			count++
		}
	}
	if count != 0 {
		t.Errorf("the second identical hand slot should contribute no moves of its own, got %d", count)
	}
}
