// Package hash implements the fast modular hash used by hashtron evaluation
package hash

// Hash maps n salted with s into the range 0 to max-1. Hash with max 0 is always 0.
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

	// multiply shift range reduction (Lemire) instead of modulo
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// Premodulo reduces the n-th input feature into a premodulo sized space.
// A zero premodulo leaves the feature untouched.
func Premodulo(feature uint32, n int, premodulo uint32) uint32 {
	if premodulo == 0 {
		return feature
	}
	return Hash(feature, uint32(n), premodulo)
}
