package coord

import "testing"

func TestAbsoluteToChunk(t *testing.T) {
	cases := []struct{ x, z, wantX, wantZ int32 }{
		{0, 0, 0, 0},
		{15, 15, 0, 0},
		{16, 16, 1, 1},
		{-1, -1, -1, -1},
		{-16, -16, -1, -1},
		{-17, -17, -2, -2},
	}
	for _, c := range cases {
		gotX, gotZ := AbsoluteToChunk(c.x, c.z)
		if gotX != c.wantX || gotZ != c.wantZ {
			t.Errorf("AbsoluteToChunk(%d, %d) = (%d, %d), want (%d, %d)", c.x, c.z, gotX, gotZ, c.wantX, c.wantZ)
		}
	}
}

func TestChunkToBiomeMultiplies(t *testing.T) {
	gotX, gotZ := ChunkToBiome(3, -2)
	if gotX != 12 || gotZ != -8 {
		t.Fatalf("ChunkToBiome(3, -2) = (%d, %d), want (12, -8)", gotX, gotZ)
	}
}

func TestRegionIndex(t *testing.T) {
	if idx := RegionIndex(0, 0); idx != 0 {
		t.Errorf("RegionIndex(0,0) = %d, want 0", idx)
	}
	if idx := RegionIndex(31, 31); idx != 31+31*32 {
		t.Errorf("RegionIndex(31,31) = %d, want %d", idx, 31+31*32)
	}
	if idx := RegionIndex(-1, -1); idx != 31+31*32 {
		t.Errorf("RegionIndex(-1,-1) = %d, want %d (wraps to 31,31 within its region)", idx, 31+31*32)
	}
}

func TestRegionFileName(t *testing.T) {
	if got := RegionFileName(3, -2); got != "r.3.-2.mca" {
		t.Fatalf("RegionFileName(3, -2) = %q", got)
	}
}

func TestDistEuclidean(t *testing.T) {
	a := Absolute{0, 0, 0}
	b := Absolute{3, 4, 0}
	if got := a.Dist(b); got != 5 {
		t.Fatalf("Dist = %v, want 5", got)
	}
}
