// Package sourcefile opens a source text file for read-only, zero-copy
// access. On platforms that support it the file is memory-mapped; callers
// elsewhere are not meant to know or care which backing was used (spec.md
// §4.7, "memory-maps it").
package sourcefile

import "os"

// File is an opened source file's byte contents plus whatever teardown is
// needed to release them. The zero value is not usable; construct with
// Open.
type File struct {
	// Data is the file's full contents. It must not be mutated: on the
	// mmap path it is backed by the kernel's page cache for the file, and
	// every detected Record borrows directly from it.
	Data []byte

	release func() error
}

// Close releases the file's backing storage. It is safe to call once per
// successful Open.
func (f *File) Close() error {
	if f.release == nil {
		return nil
	}
	return f.release()
}

// Open maps path into memory if the platform and filesystem support it,
// falling back to a single buffered read otherwise (network filesystems,
// pipes, or platforms with no mmap implementation here). Either way the
// caller gets one contiguous, read-only byte slice.
func Open(path string) (*File, error) {
	f, err := openMmap(path)
	if err == nil {
		return f, nil
	}
	return openBuffered(path)
}

func openBuffered(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Data: data}, nil
}
