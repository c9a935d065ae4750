package engine

import "io"

// Flat byte-per-position transposition table. Each byte:
//
//	bit 0: LEGAL    (set by the validation sweep)
//	bit 1: WIN      (side to move wins)
//	bit 2: LOSS     (side to move loses)
//	bits 3-7: searched depth / 2 (5-bit field, max 62 plies)
const (
	flagLegal = 1 << iota
	flagWin
	flagLoss
)

const depthShift = 3
const depthMask = 0x1f

// Table is the persistent verdict store indexed directly by a position's
// dense hash. Backing is either a heap slice or an mmap'd file; callers
// never see which.
type Table struct {
	data   []byte
	closer io.Closer

	Won, Lost, Queried, Matched uint64
}

// NewHeapTable allocates a zero-initialized in-memory table of the given
// size (in entries, i.e. hash-space positions).
func NewHeapTable(size uint64) *Table {
	return &Table{data: make([]byte, size)}
}

// NewFileTable opens or creates path, extends it to size bytes (by writing
// a single sentinel 0xff byte at offset size-1; the bytes before it read
// as zero), and maps it read+write with MAP_SHARED so
// writes are visible to the file and to any other mapping of it.
// MAP_PRIVATE is never used: it would silently discard every verdict on
// teardown.
func NewFileTable(path string, size uint64) (*Table, error) {
	return newFileTable(path, size)
}

// Close releases the table's backing storage, flushing a file-backed
// table to disk first.
func (t *Table) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

func depthHalf(b byte) int { return int(b>>depthShift) & depthMask }

func withDepthHalf(b byte, half int) byte {
	return (b &^ (depthMask << depthShift)) | byte(half&depthMask)<<depthShift
}

// Query probes h at the given effective depth. If a definitive WIN/LOSS
// verdict is already stored, or the stored depth already meets or
// exceeds depth, it returns that result and true ("done": the caller
// should not expand children). Otherwise it bumps the stored depth
// upward to depth (marking this node as in progress, to break cycles
// during the recursive search) and returns (0, false).
func (t *Table) Query(h uint64, depth int) (result int, done bool) {
	if h >= uint64(len(t.data)) {
		return 0, false
	}
	t.Queried++
	b := t.data[h]
	if b&(flagWin|flagLoss) != 0 {
		t.Matched++
		if b&flagWin != 0 {
			return 1, true
		}
		return -1, true
	}
	if depthHalf(b)*2 >= depth {
		return 0, true
	}
	t.data[h] = withDepthHalf(b, depth/2)
	return 0, false
}

// Enter records the final verdict for h at the given effective depth,
// overwriting the depth field and setting WIN/LOSS on a result's sign.
// Won/Lost are incremented only on the transition into that state, not
// on every re-entry.
func (t *Table) Enter(h uint64, depth int, result int) {
	if h >= uint64(len(t.data)) {
		return
	}
	b := t.data[h]
	switch {
	case result > 0:
		if b&flagWin == 0 {
			t.Won++
		}
		b |= flagWin
	case result < 0:
		if b&flagLoss == 0 {
			t.Lost++
		}
		b |= flagLoss
	}
	b = withDepthHalf(b, depth/2)
	t.data[h] = b
}

// SetLegal marks h as a legal, reachable position (used by the
// validation sweep).
func (t *Table) SetLegal(h uint64) {
	if h < uint64(len(t.data)) {
		t.data[h] |= flagLegal
	}
}

// IsLegal reports whether h has previously been marked legal.
func (t *Table) IsLegal(h uint64) bool {
	return h < uint64(len(t.data)) && t.data[h]&flagLegal != 0
}

// ClearResults clears the WIN/LOSS bits (and depth field) from every
// legal entry, keeping the LEGAL bit, implementing the `-e` CLI flag.
func (t *Table) ClearResults() {
	for i, b := range t.data {
		if b&flagLegal != 0 {
			t.data[i] = flagLegal
		}
	}
}

// Stats reports the count of legal entries and their win/loss/unresolved
// breakdown, implementing the `-n` CLI flag.
func (t *Table) Stats() (legal, won, lost, unresolved uint64) {
	for _, b := range t.data {
		if b&flagLegal == 0 {
			continue
		}
		legal++
		switch {
		case b&flagWin != 0:
			won++
		case b&flagLoss != 0:
			lost++
		default:
			unresolved++
		}
	}
	return
}

// Len is the table's entry count (its hash-space size).
func (t *Table) Len() uint64 { return uint64(len(t.data)) }
