// Package bitpack implements the non-straddling bit-packing scheme used
// to fit palette indices into 64-bit words: values never cross a long
// boundary, and the unused high bits of the final partial word are zero.
package bitpack

// ValuesPerLong returns how many width-bit values fit in one 64-bit word
// under the non-straddling rule.
func ValuesPerLong(width int) int {
	return 64 / width
}

// LongCount returns how many 64-bit words are needed to pack n values at
// the given width.
func LongCount(n, width int) int {
	perLong := ValuesPerLong(width)
	return (n + perLong - 1) / perLong
}

// Pack packs values (each assumed to fit in width bits) into an ordered
// sequence of signed 64-bit words. Each word is built by iterating its
// slots in reverse so the first slot ends up in the low-order bits; the
// accumulator is unsigned and reinterpreted as two's-complement when
// returned, matching the on-disk LONG_ARRAY encoding.
func Pack(values []int, width int) []int64 {
	perLong := ValuesPerLong(width)
	out := make([]int64, LongCount(len(values), width))
	mask := uint64(1)<<uint(width) - 1

	for longIdx := range out {
		var acc uint64
		for slot := perLong - 1; slot >= 0; slot-- {
			idx := longIdx*perLong + slot
			var v uint64
			if idx < len(values) {
				v = uint64(values[idx]) & mask
			}
			acc = (acc << uint(width)) | v
		}
		out[longIdx] = int64(acc)
	}
	return out
}

// Unpack decodes count values of the given width from data. Position p
// resides in word p/valuesPerLong at bit offset (p mod valuesPerLong)*width.
func Unpack(data []int64, width, count int) []int {
	perLong := ValuesPerLong(width)
	mask := uint64(1)<<uint(width) - 1

	out := make([]int, count)
	for p := 0; p < count; p++ {
		longIdx := p / perLong
		bitOffset := uint(p%perLong) * uint(width)
		word := uint64(data[longIdx])
		out[p] = int((word >> bitOffset) & mask)
	}
	return out
}
