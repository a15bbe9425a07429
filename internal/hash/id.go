// Package hash computes the content fingerprints attached to files and blocks.
package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of a byte slice.
// It identifies raw file buffers and block chunks without retaining them.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
