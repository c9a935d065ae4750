//go:build !unix

package engine

import "fmt"

func newFileTable(path string, size uint64) (*Table, error) {
	return nil, fmt.Errorf("dobutsu: file-backed transposition table requires mmap, unsupported on this platform")
}
