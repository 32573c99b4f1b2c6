//go:build !unix

package supplicant

import "os"

// Readable reports whether path can be opened for reading.
func Readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
