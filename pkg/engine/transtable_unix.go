//go:build unix

package engine

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapCloser syncs data to the backing file on Close, then unmaps it and
// closes the file. The explicit Msync before Munmap maximizes durability even
// though the MAP_SHARED mapping means the OS may already have flushed
// dirty pages on its own schedule.
type mmapCloser struct {
	data []byte
	file *os.File
}

func (c *mmapCloser) Close() error {
	if err := unix.Msync(c.data, unix.MS_SYNC); err != nil {
		return fmt.Errorf("dobutsu: msync %s: %w", c.file.Name(), err)
	}
	if err := unix.Munmap(c.data); err != nil {
		return fmt.Errorf("dobutsu: munmap %s: %w", c.file.Name(), err)
	}
	return c.file.Close()
}

func newFileTable(path string, size uint64) (*Table, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("dobutsu: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("dobutsu: stat %s: %w", path, err)
	}
	if uint64(info.Size()) < size {
		if _, err := f.WriteAt([]byte{0xff}, int64(size)-1); err != nil {
			f.Close()
			return nil, fmt.Errorf("dobutsu: extend %s to %d bytes: %w", path, size, err)
		}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("dobutsu: mmap %s: %w", path, err)
	}

	return &Table{
		data:   data,
		closer: &mmapCloser{data: data, file: f},
	}, nil
}
