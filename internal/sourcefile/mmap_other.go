//go:build !linux && !darwin

package sourcefile

import "errors"

var errMmapUnsupported = errors.New("sourcefile: mmap not implemented on this platform")

func openMmap(path string) (*File, error) {
	return nil, errMmapUnsupported
}
