package raster

// div255 divides x by 255, rounding to nearest, without a division.
//
// Formula: t = x + 128; (t + (t >> 8)) >> 8
//
// Exact for every product of two bytes and for sums of the form
// s*a + d*(255-a), which is all the compositing here needs.
func div255(x uint32) uint32 {
	t := x + 128
	return (t + (t >> 8)) >> 8
}

// blend composites channel s over d at coverage a (0-255).
func blend(s, d, a uint8) uint8 {
	return uint8(div255(uint32(s)*uint32(a) + uint32(d)*uint32(255-a))) //nolint:gosec // <= 255
}
