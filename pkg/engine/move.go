// Package engine implements move generation, the negamax search, and the
// transposition table.
package engine

import "github.com/ktomerius/dobutsu/pkg/common"

// Move is a single ply, expressed as a source and destination slot index.
// A source in [0, common.NumSquares) is an on-board piece; a source at or
// beyond common.NumSquares is a drop from the given hand slot. The
// destination is always a board square.
type Move struct {
	From int
	To   int
}

// dirRow/dirCol give the row/column delta for each of the 8 king-adjacent
// directions, indexed 0..8 with the center (index 4, delta (0,0)) unused.
var dirRow = [9]int{-1, -1, -1, 0, 0, 0, 1, 1, 1}
var dirCol = [9]int{-1, 0, 1, -1, 0, 1, -1, 0, 1}

// directionAllowed reports whether piece p may step in direction i,
// independent of board edges or occupancy.
func directionAllowed(p common.Piece, i int) bool {
	switch p.Animal() {
	case common.Chick:
		return i == 7
	case common.Hen:
		return i != 0 && i != 2
	case common.Elephant:
		return i%2 == 0
	case common.Giraffe:
		return i%2 == 1
	case common.Lion:
		return true
	default:
		return false
	}
}

// GenerateMoves appends every legal move for the side to move in b to buf
// and returns the extended slice. b must already be in the mover's own
// frame (row 0 = mover's back rank), as produced by ApplyMove or
// ParseBoard.
func GenerateMoves(b *common.Board, buf []Move) []Move {
	for n := 0; n < common.NumSlots; n++ {
		p := b.Slot(n)
		if p.IsEmpty() || p.IsGote() {
			continue
		}
		if n > common.NumSquares && b.Slot(n-1) == p {
			// Duplicate drop: an identical animal already enumerated via
			// the previous hand slot (hand is kept sorted by SortHand).
			continue
		}

		if n < common.NumSquares {
			row, col := n/common.Width, n%common.Width
			for i := 0; i < 9; i++ {
				if i == 4 || !directionAllowed(p, i) {
					continue
				}
				r, c := row+dirRow[i], col+dirCol[i]
				if r < 0 || r >= common.Height || c < 0 || c >= common.Width {
					continue
				}
				d := r*common.Width + c
				dest := b.Grid[d]
				if !dest.IsEmpty() && !dest.IsGote() {
					continue
				}
				buf = append(buf, Move{From: n, To: d})
			}
		} else {
			for d := 0; d < common.NumSquares; d++ {
				if b.Grid[d].IsEmpty() {
					buf = append(buf, Move{From: n, To: d})
				}
			}
		}
	}
	return buf
}

// ApplyMove constructs the successor of parent after m: capture (with Hen
// demotion), relocation, promotion, the Lion-reaching-back-rank `deeper`
// extension, the board rotation that keeps the mover "up", and the
// back-rank survival check that resolves a won game. parent is left
// unmodified.
func ApplyMove(parent common.Board, m Move) common.Board {
	b := parent
	// Deeper reflects only whether *this* move put a Lion on the back
	// rank, not a running total across the line: the search recursion
	// folds a parent's own Deeper into the depth budget it hands to its
	// children, so each trigger buys exactly one extra ply of looking,
	// not a compounding one.
	b.Deeper = 0

	captured := b.Grid[m.To]
	if !captured.IsEmpty() {
		if captured.Animal() == common.Lion {
			// The mover just captured the defending Lion: whoever is to
			// move in the successor (the side that lost it) has lost.
			b.Result = -1
		}
		b.Capture(captured)
	}

	moving := b.Slot(m.From)
	b.SetSlot(m.From, common.Empty)

	if m.To >= common.NumSquares-common.Width {
		switch moving.Animal() {
		case common.Chick:
			moving = common.Promote(moving)
		case common.Lion:
			b.Deeper += 2
		}
	}
	b.Grid[m.To] = moving

	b.Rotate()
	b.Sente = !b.Sente
	b.SortHand()

	for i := common.NumSquares - common.Width; i < common.NumSquares; i++ {
		if b.Grid[i].Animal() == common.Lion && !b.Grid[i].IsGote() {
			b.Result = 1
			break
		}
	}

	return b
}
