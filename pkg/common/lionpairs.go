package common

// NumLionPairs is the count of legal, non-adjacent, non-terminal placements
// of the two Lions. The list below is reproduced literally from the
// reference solver this system is descended from — it is a fixed constant
// of the game, not something to be recomputed.
const NumLionPairs = 39

// lionPairSquares holds the 39 legal (senteSquare, goteSquare) pairs, in
// the canonical order that defines the lion-pair index used by the hash
// layout's top bits.
var lionPairSquares = [2 * NumLionPairs]int{
	0, 5, 0, 6, 0, 7, 0, 8, 0, 9, 0, 10, 0, 11,
	1, 6, 1, 7, 1, 8, 1, 9, 1, 10, 1, 11,
	2, 3, 2, 6, 2, 7, 2, 8, 2, 9, 2, 10, 2, 11,
	3, 5, 3, 8, 3, 9, 3, 10, 3, 11,
	4, 9, 4, 10, 4, 11,
	5, 3, 5, 6, 5, 9, 5, 10, 5, 11,
	6, 5, 6, 8, 6, 11,
	8, 3, 8, 6, 8, 9,
}

// lionGrid[s][g] is the lion-pair index for a sente lion at s and a gote
// lion at g, or NumLionPairs if that placement is not among the 39 legal
// pairs (adjacent lions, or a lion already on the final rank).
var lionGrid [NumSquares][NumSquares]uint8

func init() {
	for i := range lionGrid {
		for j := range lionGrid[i] {
			lionGrid[i][j] = NumLionPairs
		}
	}
	for i := 0; i < NumLionPairs; i++ {
		s, g := lionPairSquares[2*i], lionPairSquares[2*i+1]
		lionGrid[s][g] = uint8(i)
	}
}

// LionPairIndex returns the lion-pair index for the given lion placement,
// or NumLionPairs if the placement is not one of the 39 legal pairs.
func LionPairIndex(senteSquare, goteSquare int) int {
	return int(lionGrid[senteSquare][goteSquare])
}

// LionPairSquares is the inverse of LionPairIndex.
func LionPairSquares(index int) (senteSquare, goteSquare int) {
	return lionPairSquares[2*index], lionPairSquares[2*index+1]
}
