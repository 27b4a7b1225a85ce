package bitpack

import "math/bits"

// ceilLog2 returns ceil(log2(n)) for n >= 1, using the same
// bits.Len(n-1) trick the teacher's palette converter uses.
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// BlockStateWidth returns the packing width for a block-state palette of
// the given size: max(4, ceil(log2(paletteLen))). A palette of size 1
// still yields 4, but callers must skip packing entirely for that case
// (spec: no data child is written; readers synthesise zeros).
func BlockStateWidth(paletteLen int) int {
	w := ceilLog2(paletteLen)
	if w < 4 {
		w = 4
	}
	return w
}

// BiomeWidth returns the packing width for a biome palette of the given
// size: ceil(log2(paletteLen)), with no floor. As with block states, a
// single-entry palette is omitted entirely by callers.
func BiomeWidth(paletteLen int) int {
	return ceilLog2(paletteLen)
}
