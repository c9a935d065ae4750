// Command dobutsu drives the retrograde/forward solver: a validation sweep
// over the position space, a depth-limited search from a given board, and
// reporting on the resulting transposition table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/ktomerius/dobutsu/pkg/codec"
	"github.com/ktomerius/dobutsu/pkg/common"
	"github.com/ktomerius/dobutsu/pkg/engine"
)

// sweepProgressStride matches the reference solver's reporting cadence
// during a full validation sweep.
const sweepProgressStride = 1 << 21

func main() {
	var (
		flgBoard string
		flgCheck bool
		flgDepth int
		flgErase bool
		flgFile  string
		flgGote  bool
		flgCount bool
		flgPrint bool
		flgStart string
		flgStop  string
		flgVerb  bool
	)
	flag.StringVar(&flgBoard, "b", common.DefaultBoardString, "18-character board string")
	flag.BoolVar(&flgCheck, "c", false, "validation sweep: decode/re-hash every h in [start,stop), set LEGAL")
	flag.IntVar(&flgDepth, "d", 0, "search to this maximum depth (iterative deepening 1..depth)")
	flag.BoolVar(&flgErase, "e", false, "clear WIN/LOSS bits from all legal entries, keeping LEGAL")
	flag.StringVar(&flgFile, "f", "", "path to backing file for the transposition table")
	flag.BoolVar(&flgGote, "g", false, "start position is from Gote's side to move")
	flag.BoolVar(&flgCount, "n", false, "count legal entries and their win/loss breakdown")
	flag.BoolVar(&flgPrint, "p", false, "print every legal position encountered during the sweep")
	flag.StringVar(&flgStart, "s", "0", "sweep start (hex with 0x prefix, or decimal); forced even")
	flag.StringVar(&flgStop, "t", "", "sweep stop, exclusive (hex with 0x prefix, or decimal); defaults to the full space")
	flag.BoolVar(&flgVerb, "v", false, "verbose: print the start position after each search depth (individual verdicts are not printed)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

	start, err := parseBound(flgStart, 0)
	if err != nil {
		logger.Fatalf("-s: %v", err)
	}
	start &^= 1 // forced even

	stop, err := parseBound(flgStop, codec.SpaceSize)
	if err != nil {
		logger.Fatalf("-t: %v", err)
	}

	tt, ttErr := openTable(flgFile)
	if ttErr != nil {
		logger.Printf("warning: transposition table unavailable (%v); disabling -c, -n, -e", ttErr)
		flgCheck, flgCount, flgErase = false, false, false
	}
	if tt != nil {
		defer tt.Close()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		logger.Println("interrupted, closing transposition table")
		if tt != nil {
			tt.Close()
		}
		os.Exit(1)
	}()

	if flgCheck || flgPrint {
		runSweep(logger, tt, start, stop, flgCheck, flgPrint)
	}

	if flgDepth > 0 {
		runSearch(logger, tt, flgBoard, flgGote, flgDepth, flgVerb)
	}

	if flgErase {
		tt.ClearResults()
		logger.Println("cleared WIN/LOSS bits from all legal entries")
	}

	if flgCount {
		legal, won, lost, unresolved := tt.Stats()
		fmt.Printf("legal=%d won=%d lost=%d unresolved=%d\n", legal, won, lost, unresolved)
	}
}

func parseBound(s string, dflt uint64) (uint64, error) {
	if s == "" {
		return dflt, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

func openTable(path string) (*engine.Table, error) {
	if path == "" {
		return engine.NewHeapTable(codec.SpaceSize), nil
	}
	return engine.NewFileTable(path, codec.SpaceSize)
}

// runSweep decodes every hash in [start, stop) step 2. It runs whenever
// either -c or -p is set: printing (-p) is independent of the round-trip
// check (-c), which additionally requires re-hashing the decode to match
// and marks the entry LEGAL in the table. A decode that comes back
// Illegal is skipped, not an error: it is the expected outcome for the
// vast majority of the space.
func runSweep(logger *log.Logger, tt *engine.Table, start, stop uint64, check, print bool) {
	var legalCount uint64
	for h := start; h < stop; h += 2 {
		if h%sweepProgressStride == 0 {
			logger.Printf("sweep progress: h=%d legal=%d", h, legalCount)
		}
		b := codec.Decode(h)
		if b.Illegal {
			continue
		}
		if check {
			rehashed := codec.Hash(b)
			if rehashed != h {
				logger.Fatalf("round-trip mismatch at h=%d: re-hash gave %d\n%s", h, rehashed, b)
			}
			tt.SetLegal(h)
		}
		legalCount++
		if print {
			fmt.Print(b)
		}
	}
	logger.Printf("sweep complete: [%d, %d) legal=%d", start, stop, legalCount)
}

// runSearch runs iterative deepening from the given board and reports the
// verdict and table statistics after each depth.
func runSearch(logger *log.Logger, tt *engine.Table, boardString string, gote bool, maxDepth int, verbose bool) {
	b, err := common.ParseBoard(boardString, !gote)
	if err != nil {
		logger.Fatalf("-b: %v", err)
	}

	eng := engine.NewEngine(tt)
	eng.IterativeDeepen(b, maxDepth, func(depth, result int) {
		if tt != nil {
			logger.Printf("depth=%d result=%d queried=%d matched=%d won=%d lost=%d",
				depth, result, tt.Queried, tt.Matched, tt.Won, tt.Lost)
		} else {
			logger.Printf("depth=%d result=%d", depth, result)
		}
		if verbose {
			fmt.Print(b)
		}
	})
}
