// Package vecscan implements a word-parallel "index of byte" scan used on
// the hot paths of the header-block parser and the delimited read helpers.
//
// There is no portable SIMD intrinsic in the standard library, so the
// vectorisation here works a native machine word (8 bytes) at a time using
// the classic zero-byte bit trick instead of scanning byte-by-byte. Hardware
// SIMD would shrink this further (e.g. to 16 or 32 bytes per compare), but
// that requires either architecture-specific assembly or the unsafe/cgo
// surface this module intentionally avoids.
package vecscan

import "encoding/binary"

// wordSize is the number of bytes read per word-parallel comparison.
const wordSize = 8

// broadcastMul is multiplied against the scan byte to fill every byte lane
// of a 64-bit word with the same value. An integer multiply is used instead
// of a manually byte-filled literal so that, if this were compiled for a
// target with a native byte-splat instruction, the compiler would be free
// to recognise and lower the multiply to that instruction.
const broadcastMul = 0x0101010101010101

// loBits and hiBits are used by hasZeroByte below.
const (
	loBits = 0x0101010101010101
	hiBits = 0x8080808080808080
)

// IndexByte returns the index of the first occurrence of c in b, or -1 if
// c is not present. It never reads past len(b).
func IndexByte(b []byte, c byte) int {
	n := len(b)
	i := 0

	if n >= wordSize {
		bcast := broadcastMul * uint64(c)
		for ; i+wordSize <= n; i += wordSize {
			word := binary.LittleEndian.Uint64(b[i : i+wordSize])
			if x := word ^ bcast; hasZeroByte(x) {
				// A zero byte lane means a match landed somewhere in this
				// word; the scalar fallback below pins down which byte.
				for j := 0; j < wordSize; j++ {
					if b[i+j] == c {
						return i + j
					}
				}
			}
		}
	}

	for ; i < n; i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c occurs anywhere in b.
func Contains(b []byte, c byte) bool {
	return IndexByte(b, c) >= 0
}

// hasZeroByte reports whether any of the 8 byte lanes of x is zero, using
// the standard branchless bit trick: subtracting 1 from each lane borrows
// out of a zero lane and not out of any non-zero lane, and the high bit of
// each lane then distinguishes the two cases once non-lane carries are
// masked away by &^x.
func hasZeroByte(x uint64) bool {
	return (x-loBits)&^x&hiBits != 0
}
