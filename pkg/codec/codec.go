// Package codec implements the bijective position encoder/decoder: a
// minimal perfect hash, modulo board symmetry, between legal Dōbutsu
// shōgi positions and a dense integer range.
package codec

import "github.com/ktomerius/dobutsu/pkg/common"

// SpaceSize is the total addressable hash space S = 39 * 2^29. It is the
// length of the transposition table domain, not the count of legal
// positions (which is a smaller, known constant verified by the
// validation sweep).
const SpaceSize = uint64(common.NumLionPairs) << 29

// Unhashable is returned by Hash for a board with no valid Lion placement
// (off-board Lion, or a Lion pair outside the 39-entry table).
const Unhashable = ^uint64(0)

var boardCodeAnimal = [4]common.Piece{common.Empty, common.Chick, common.Elephant, common.Giraffe}

func boardCode(p common.Piece) uint64 {
	switch p.Animal() {
	case common.Chick, common.Hen:
		return 1
	case common.Elephant:
		return 2
	case common.Giraffe:
		return 3
	default:
		return 0
	}
}

// Hash maps b to its dense integer encoding, or Unhashable if b has no
// legal Lion placement. b is left unmodified; encoding works against a
// rotated copy when b is not already in Sente's perspective.
func Hash(b common.Board) uint64 {
	if b.Illegal {
		return Unhashable
	}

	canon := b.Canonical()

	senteSq := canon.FindPiece(common.NewPiece(common.Lion, false))
	goteSq := canon.FindPiece(common.NewPiece(common.Lion, true))
	if senteSq < 0 || goteSq < 0 {
		return Unhashable
	}
	pairIndex := common.LionPairIndex(senteSq, goteSq)
	if pairIndex >= common.NumLionPairs {
		return Unhashable
	}

	h := uint64(pairIndex)

	// Promotion bits: walk all 18 slots in reverse, one bit per Chick/Hen.
	for n := 17; n >= 0; n-- {
		p := canon.Slot(n)
		if p.Animal() != common.Chick && p.Animal() != common.Hen {
			continue
		}
		bit := uint64(0)
		if p.Animal() == common.Hen {
			bit = 1
		}
		h = (h << 1) | bit
	}

	canon.SortHand()

	// Owner bits: walk all 18 slots in reverse, one bit per non-Lion piece.
	for n := 17; n >= 0; n-- {
		p := canon.Slot(n)
		if p.IsEmpty() || p.Animal() == common.Lion {
			continue
		}
		bit := uint64(0)
		if p.IsGote() {
			bit = 1
		}
		h = (h << 1) | bit
	}

	// Board codes: walk the 12 board slots in reverse, 2 bits per non-Lion
	// square (Lion squares contribute no bits at all).
	for n := 11; n >= 0; n-- {
		p := canon.Grid[n]
		if p.Animal() == common.Lion {
			continue
		}
		h = (h << 2) | boardCode(p)
	}

	// Side-to-move bit, literal (not affected by canonicalization).
	stm := uint64(0)
	if !b.Sente {
		stm = 1
	}
	h = (h << 1) | stm

	return h
}

// Decode is the inverse of Hash, total over [0, SpaceSize): every value
// in range produces a Board, illegal ones with Illegal set. h >= SpaceSize
// also yields an illegal sentinel board.
func Decode(h uint64) common.Board {
	var b common.Board
	if h >= SpaceSize {
		b.Illegal = true
		return b
	}

	pairIndex := int(h >> 29)
	senteSq, goteSq := common.LionPairSquares(pairIndex)
	b.Grid[senteSq] = common.NewPiece(common.Lion, false)
	b.Grid[goteSq] = common.NewPiece(common.Lion, true)

	stmBit := h & 1
	h >>= 1
	b.Sente = stmBit == 0

	counts := map[common.Piece]int{}
	for sq := 0; sq < common.NumSquares; sq++ {
		if sq == senteSq || sq == goteSq {
			continue
		}
		code := h & 3
		h >>= 2
		animal := boardCodeAnimal[code]
		if animal != common.Empty {
			counts[animal]++
			if counts[animal] > 2 {
				b.Illegal = true
			}
		}
		b.Grid[sq] = common.NewPiece(animal, false)
	}

	// Fill the hand from its last slot down, so it comes out in SortHand
	// order (empty slots first), the order Hash emits owner bits in.
	handIdx := common.HandSize - 1
	for _, animal := range [3]common.Piece{common.Giraffe, common.Elephant, common.Chick} {
		for need := 2 - counts[animal]; need > 0; need-- {
			b.Hand[handIdx] = common.NewPiece(animal, false)
			handIdx--
		}
	}

	for n := 0; n < common.NumSlots; n++ {
		p := b.Slot(n)
		if p.IsEmpty() || p.Animal() == common.Lion {
			continue
		}
		bit := h & 1
		h >>= 1
		if bit == 1 {
			b.SetSlot(n, common.FlipOwner(p))
		}
	}

	for n := 0; n < common.NumSlots; n++ {
		p := b.Slot(n)
		if p.Animal() != common.Chick {
			continue
		}
		bit := h & 1
		h >>= 1
		if bit == 1 {
			if n < common.NumSquares {
				b.SetSlot(n, common.Promote(p))
			} else {
				b.Illegal = true
			}
		}
	}

	if !b.Sente {
		b.Rotate()
	}
	return b
}
