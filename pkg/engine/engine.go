package engine

import "github.com/ktomerius/dobutsu/pkg/common"

// Engine ties a Table to a Searcher and drives the iterative-deepening
// loop the driver's `-d` flag asks for.
type Engine struct {
	TT       *Table
	Searcher *Searcher
}

// NewEngine builds an Engine over tt. tt may be nil (see Searcher).
func NewEngine(tt *Table) *Engine {
	return &Engine{TT: tt, Searcher: NewSearcher(tt)}
}

// IterativeDeepen runs Search(start, d) for d = 1..maxDepth in turn,
// reusing the warm transposition table between iterations, and reports
// each iteration's verdict through onDepth (which may be nil). It
// returns the final iteration's verdict.
func (e *Engine) IterativeDeepen(start common.Board, maxDepth int, onDepth func(depth, result int)) int {
	result := 0
	for depth := 1; depth <= maxDepth; depth++ {
		result = e.Searcher.Search(start, depth)
		if onDepth != nil {
			onDepth(depth, result)
		}
	}
	return result
}
