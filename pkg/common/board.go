package common

import (
	"bytes"
	"fmt"
	"sort"
)

// Board dimensions: 4 rows by 3 columns, plus up to 6 pieces in hand.
const (
	Width      = 3
	Height     = 4
	NumSquares = Width * Height
	HandSize   = 6
	NumSlots   = NumSquares + HandSize
)

// DefaultBoardString is the standard Dōbutsu shōgi opening position.
const DefaultBoardString = "ELG C  c gle      "

// Board is a value type: successor boards are built by copy-mutate from a
// parent plus a move, never shared or pointer-aliased across plies.
//
// Grid is stored row-major with row 0 the side-to-move's own back rank and
// row 3 the opponent's, per the "always rotate so the mover plays upward"
// convention (see Rotate). Sente records which player is literally to move,
// independent of that convention.
type Board struct {
	Grid [NumSquares]Piece
	Hand [HandSize]Piece

	Sente bool // true iff Sente is literally to move

	Illegal bool // set when a hash value decodes to a structurally impossible board
	Deeper  int  // ply extension accumulated from a lion reaching the back rank
	Result  int  // nonzero once terminal: positive = win for the mover, negative = loss
}

// ParseBoard builds a Board from an 18-character board string (12 grid
// cells followed by up to 6 hand cells; a short string is padded with
// spaces). sente indicates whose move it is.
func ParseBoard(s string, sente bool) (Board, error) {
	var b Board
	b.Sente = sente

	buf := make([]byte, NumSlots)
	copy(buf, s)
	for i := len(s); i < NumSlots; i++ {
		buf[i] = ' '
	}

	for i := 0; i < NumSquares; i++ {
		p, err := ParsePieceByte(buf[i])
		if err != nil {
			return Board{}, fmt.Errorf("dobutsu: board string square %d: %w", i, err)
		}
		b.Grid[i] = p
	}
	for i := 0; i < HandSize; i++ {
		p, err := ParsePieceByte(buf[NumSquares+i])
		if err != nil {
			return Board{}, fmt.Errorf("dobutsu: board string hand slot %d: %w", i, err)
		}
		b.Hand[i] = p
	}
	return b, nil
}

// BoardString renders b back to the 18-character board-string format.
func (b Board) BoardString() string {
	buf := make([]byte, 0, NumSlots)
	for i := 0; i < NumSquares; i++ {
		buf = append(buf, b.Grid[i].Byte())
	}
	for i := 0; i < HandSize; i++ {
		buf = append(buf, b.Hand[i].Byte())
	}
	return string(buf)
}

// Slot returns the piece at slot index n (0..NumSquares-1 for the board,
// NumSquares..NumSlots-1 for hand).
func (b *Board) Slot(n int) Piece {
	if n < NumSquares {
		return b.Grid[n]
	}
	return b.Hand[n-NumSquares]
}

// SetSlot writes the piece at slot index n.
func (b *Board) SetSlot(n int, p Piece) {
	if n < NumSquares {
		b.Grid[n] = p
	} else {
		b.Hand[n-NumSquares] = p
	}
}

// FindPiece returns the board-square index of the first occurrence of p,
// or -1 if p is not on the board. Used to locate the Lions.
func (b *Board) FindPiece(p Piece) int {
	for i, q := range b.Grid {
		if q == p {
			return i
		}
	}
	return -1
}

// Capture records an opponent's piece p as newly captured, owned by the
// mover, in the first empty hand slot. A captured Hen demotes to an
// unpromoted Chick: promotion is lost on capture, and Hens never sit in
// hand (invariant 3 of the data model).
func (b *Board) Capture(p Piece) {
	if p.Animal() == Hen {
		p = NewPiece(Chick, p.IsGote())
	}
	p = FlipOwner(p)
	for i := range b.Hand {
		if b.Hand[i].IsEmpty() {
			b.Hand[i] = p
			return
		}
	}
}

// Rotate physically rotates the board 180 degrees and swaps every piece's
// owner tag, on both the grid and the hand. This is the operation that
// keeps "the side to move plays upward" true across plies, and that
// brings a board into (or out of) the absolute, literal-Sente-up frame
// the encoder and decoder work in.
func (b *Board) Rotate() {
	for i, j := 0, NumSquares-1; i < j; i, j = i+1, j-1 {
		b.Grid[i], b.Grid[j] = b.Grid[j], b.Grid[i]
	}
	for i := range b.Grid {
		b.Grid[i] = FlipOwner(b.Grid[i])
	}
	for i := range b.Hand {
		b.Hand[i] = FlipOwner(b.Hand[i])
	}
}

// Canonical returns b rotated into the absolute, literal-Sente-up frame if
// it is not already there, leaving b itself untouched. The encoder and
// decoder both work against this frame; gameplay code never needs it.
func (b Board) Canonical() Board {
	if !b.Sente {
		b.Rotate()
	}
	return b
}

// SortHand canonicalizes the order of the 6 hand slots: empty slots first,
// then non-empty slots ascending by animal kind (Chick < Elephant <
// Giraffe — Hen never appears in hand). This makes the per-slot owner-bit
// stream well-defined despite the hand being a multiset.
func (b *Board) SortHand() {
	sort.SliceStable(b.Hand[:], func(i, j int) bool {
		return b.Hand[i].Animal() < b.Hand[j].Animal()
	})
}

// String renders an ASCII board, matching the pretty-printer of the
// reference solver this system continues: file/rank labels oriented to
// whichever side is literally to move, the grid, then any pieces in hand.
func (b Board) String() string {
	if b.Illegal {
		return "(illegal)"
	}

	var buf bytes.Buffer
	if b.Sente {
		fmt.Fprintln(&buf, " 321")
	} else {
		fmt.Fprintln(&buf, " 123")
	}

	for row := Height - 1; row >= 0; row-- {
		buf.WriteByte('|')
		for col := 0; col < Width; col++ {
			buf.WriteByte(b.Grid[row*Width+col].Byte())
		}
		buf.WriteByte('|')
		if b.Sente {
			fmt.Fprintln(&buf, Height-row)
		} else {
			fmt.Fprintln(&buf, row+1)
		}
	}

	var hand bytes.Buffer
	for _, p := range b.Hand {
		if !p.IsEmpty() {
			hand.WriteByte(p.Byte())
		}
	}
	if hand.Len() > 0 {
		buf.Write(hand.Bytes())
		buf.WriteByte('\n')
	}

	if b.Result != 0 {
		if b.Result > 0 {
			fmt.Fprintln(&buf, "is won")
		} else {
			fmt.Fprintln(&buf, "is lost")
		}
	}

	return buf.String()
}
