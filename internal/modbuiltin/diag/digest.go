// Package diag provides small debug helpers for the mod-builtin runner.
// Digest hashes a serialized transcript with SHA-3, so two extractions
// of the same payload can be compared cheaply without diffing the full
// structure.
package diag

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Digest hashes a sequence of big integers (e.g. a flattened
// air-private-input payload) into a 32-byte fingerprint.
func Digest(values []*big.Int) [32]byte {
	h := sha3.New256()
	var lenBuf [8]byte
	for _, v := range values {
		b := v.Bytes()
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(b)))
		h.Write(lenBuf[:])
		h.Write(b)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
