//go:build unix

package supplicant

import "golang.org/x/sys/unix"

// Readable reports whether the current process may read path, using the
// real uid the way access(2) does.
func Readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
