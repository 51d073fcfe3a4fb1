//go:build linux || darwin

package sourcefile

import (
	"fmt"
	"os"
	"syscall"
)

// openMmap maps path read-only with MAP_SHARED. An empty file is returned
// as a zero-length slice with no mapping to release, since syscall.Mmap
// rejects a zero-length request.
func openMmap(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("sourcefile: stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		return &File{Data: []byte{}}, nil
	}

	data, err := syscall.Mmap(int(fh.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("sourcefile: mmap %s: %w", path, err)
	}

	return &File{
		Data: data,
		release: func() error {
			return syscall.Munmap(data)
		},
	}, nil
}
