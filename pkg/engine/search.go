package engine

import (
	"github.com/ktomerius/dobutsu/pkg/codec"
	"github.com/ktomerius/dobutsu/pkg/common"
)

// maxPly bounds the recursion depth a Searcher will ever reach, sizing
// its per-height move buffers. It comfortably covers the CLI's maximum
// practical -d value plus the deeper extension.
const maxPly = 128

// MaxMoves bounds the branching factor of any single position: drops add
// at most three distinct kinds onto the at most 10 squares the Lions leave
// free, on-board steps at most 8 for the Lion plus 6 per Hen and 4 per
// Giraffe or Elephant, and every kind held in hand is a piece fewer on the
// board, so the total stays at or below 52.
const MaxMoves = 64

// unresolvedSentinel seeds the per-node best-result accumulator below any
// value search ever actually returns ({-1, 0, 1}), so the first child
// visited always takes over.
const unresolvedSentinel = -2

// Searcher runs the depth-limited negamax search against a Table. Its
// per-height move buffers are reused across the whole recursion, exactly
// as the teacher engine reuses thread.stack[height] buffers, so a search
// allocates no memory on its hot path.
type Searcher struct {
	tt  *Table
	buf [maxPly][MaxMoves]Move
}

// NewSearcher builds a Searcher backed by tt. A nil tt is legal: the
// search still runs, it just never short-circuits on a stored verdict.
func NewSearcher(tt *Table) *Searcher {
	return &Searcher{tt: tt}
}

// Search returns the negamax verdict for b at the given depth budget:
// positive if the side to move wins, negative if it loses, zero if
// unresolved within the budget.
func (s *Searcher) Search(b common.Board, depth int) int {
	return s.negamax(b, depth, 0)
}

func (s *Searcher) negamax(b common.Board, depth, height int) int {
	if b.Result != 0 {
		return b.Result
	}

	effDepth := depth + b.Deeper

	var h uint64
	hashable := false
	if s.tt != nil {
		h = codec.Hash(b)
		hashable = h != codec.Unhashable
		if hashable {
			if result, done := s.tt.Query(h, effDepth); done {
				return result
			}
		}
	}

	if effDepth <= 0 {
		return 0
	}

	var buf []Move
	if height < maxPly {
		buf = s.buf[height][:0]
	}
	moves := GenerateMoves(&b, buf)

	result := unresolvedSentinel
	for _, m := range moves {
		child := ApplyMove(b, m)
		rc := -s.negamax(child, depth-1+b.Deeper, height+1)
		if rc > result {
			result = rc
		}
		if result > 0 {
			break
		}
	}
	if result == unresolvedSentinel {
		// No legal move at all: treat as unresolved rather than
		// propagating the seed value. Not known to occur in this game
		// (a side always has at least its Lion to move), but a bare
		// generator failure shouldn't masquerade as a definitive loss.
		result = 0
	}

	if hashable {
		s.tt.Enter(h, effDepth, result)
	}
	return result
}
