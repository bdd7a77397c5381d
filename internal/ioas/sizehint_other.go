//go:build !unix

package ioas

import "os"

// SizeHint is the non-unix fallback: bufio picks its own default size.
func SizeHint(f *os.File) int {
	return 0
}
