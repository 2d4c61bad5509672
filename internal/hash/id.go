// Package hash provides the xxHash64 primitive used for the encoder's
// optional output digest.
package hash

import "github.com/cespare/xxhash/v2"

// Digest accumulates an xxHash64 over successive byte writes, used by the
// output buffer's optional page digest.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns a fresh running digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write feeds bytes into the running digest. Never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// Sum64 returns the digest of all bytes written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
