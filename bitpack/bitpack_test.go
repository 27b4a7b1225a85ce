package bitpack

import (
	"reflect"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	widths := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 15, 16, 31, 32, 63}
	for _, w := range widths {
		n := 200
		values := make([]int, n)
		max := (1 << uint(w)) - 1
		for i := range values {
			values[i] = (i * 7) % (max + 1)
		}
		packed := Pack(values, w)
		got := Unpack(packed, w, n)
		if !reflect.DeepEqual(got, values) {
			t.Fatalf("width %d: round trip mismatch:\n got  %v\n want %v", w, got, values)
		}
	}
}

func TestPackWidth5TwelveValues(t *testing.T) {
	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	packed := Pack(values, 5)
	if len(packed) != 1 {
		t.Fatalf("expected a single long for 12 values at width 5 (perLong=12), got %d", len(packed))
	}
	got := Unpack(packed, 5, 12)
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("got %v, want %v", got, values)
	}
}

func TestLongCount(t *testing.T) {
	if got := LongCount(4096, 4); got != 256 {
		t.Fatalf("LongCount(4096, 4) = %d, want 256", got)
	}
}

func TestBlockStateWidthFloor(t *testing.T) {
	if w := BlockStateWidth(2); w != 4 {
		t.Fatalf("BlockStateWidth(2) = %d, want 4 (floor of 4)", w)
	}
	if w := BlockStateWidth(17); w != 5 {
		t.Fatalf("BlockStateWidth(17) = %d, want 5", w)
	}
}

func TestBiomeWidthNoFloor(t *testing.T) {
	if w := BiomeWidth(2); w != 1 {
		t.Fatalf("BiomeWidth(2) = %d, want 1", w)
	}
	if w := BiomeWidth(1); w != 0 {
		t.Fatalf("BiomeWidth(1) = %d, want 0", w)
	}
}
