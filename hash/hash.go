// Package hash implements the fast modular hash used by the hashtron classifiers
package hash

// Hash mixes n with the salt s and reduces the result into the range 0 to max-1.
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mixing stage, mix input with salt using subtraction
	var m = uint32(n) - uint32(s)

	// hashing stage, use xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	m += s

	// modular stage, the multiply shift trick by Daniel Lemire
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// StringHash hashes the string str using the salt n. The result spans the whole uint32 range.
func StringHash(n uint32, str string) uint32 {
	return BytesHash(n, []byte(str))
}

// BytesHash hashes the buffer buf using the salt n. The result spans the whole uint32 range.
func BytesHash(n uint32, buf []byte) uint32 {
	var h = Hash(n, uint32(len(buf)), 0xFFFFFFFF)
	for i, b := range buf {
		h = Hash(h^uint32(b), uint32(i)+n, 0xFFFFFFFF)
	}
	return h
}
