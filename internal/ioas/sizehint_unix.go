//go:build unix

package ioas

import (
	"os"

	"golang.org/x/sys/unix"
)

// SizeHint stats f to give NewLineReader a buffer size close to the whole
// file, avoiding bufio's default growth-by-doubling on large sources.
// Best effort: any Fstat failure just falls back to bufio's default.
func SizeHint(f *os.File) int {
	var stat unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &stat); err != nil {
		return 0
	}
	return int(stat.Size)
}
