package chunk

import (
	"testing"

	"github.com/oriumgames/anvil/nbt"
)

func rawChunk(t *testing.T, x, z int32) *nbt.Tag {
	t.Helper()
	raw := nbt.NewCompound("")
	raw.Put(nbt.NewInt("xPos", x))
	raw.Put(nbt.NewInt("zPos", z))

	section := rawSectionWithSingleEntryPalettes(0, AirName, "minecraft:plains")
	sections := nbt.NewList("sections", nbt.Compound)
	sections.Append(section)
	raw.Put(sections)
	return raw
}

func TestDecodeChunkAndGetBlock(t *testing.T) {
	c, err := DecodeChunk(rawChunk(t, 3, -1), 123, nil)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	if c.X != 3 || c.Z != -1 {
		t.Fatalf("chunk coord = (%d,%d), want (3,-1)", c.X, c.Z)
	}
	if c.OriginalCompressedSize() != 123 {
		t.Fatalf("OriginalCompressedSize = %d, want 123", c.OriginalCompressedSize())
	}
	b := c.GetBlock(0, 5, 0)
	if b == nil || !b.State().Equal(Air()) {
		t.Fatalf("GetBlock(0,5,0) = %v, want air", b)
	}
}

func TestChunkIndex(t *testing.T) {
	c := &Chunk{X: 35, Z: -1, sections: map[int8]*Section{}}
	// 35 mod 32 = 3; -1 mod 32 = 31
	want := 3 + 31*32
	if got := c.Index(); got != want {
		t.Fatalf("Index() = %d, want %d", got, want)
	}
}

func TestGetSectionMaterialisesBlankDirtySection(t *testing.T) {
	c := &Chunk{X: 0, Z: 0, sections: map[int8]*Section{}}
	s := c.GetSection(2)
	if s == nil {
		t.Fatalf("GetSection returned nil")
	}
	if !c.Dirty() {
		t.Fatalf("materialising a new section should mark the chunk dirty")
	}
	if got := c.GetBlock(5, 2*16+3, 7); !got.State().Equal(Air()) {
		t.Fatalf("blank section block should be air")
	}
}

func TestFindLike(t *testing.T) {
	c, err := DecodeChunk(rawChunk(t, 0, 0), 0, nil)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	c.GetSection(0).Block(BlockIndex(1, 2, 3)).SetState(BlockState{Name: "minecraft:diamond_ore"})

	found := c.FindLike("diamond")
	if len(found) != 1 {
		t.Fatalf("FindLike found %d blocks, want 1", len(found))
	}
	if found[0].X != 1 || found[0].Y != 2 || found[0].Z != 3 {
		t.Fatalf("FindLike position = (%d,%d,%d), want (1,2,3)", found[0].X, found[0].Y, found[0].Z)
	}
}

func TestPackPreservesUnknownFields(t *testing.T) {
	raw := rawChunk(t, 0, 0)
	raw.Put(nbt.NewString("Status", "full"))

	c, err := DecodeChunk(raw, 0, nil)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	packed := c.Pack()
	status, ok := packed.Get("Status")
	if !ok || status.Str() != "full" {
		t.Fatalf("Pack dropped unrecognised sibling field Status")
	}
}

func TestPackageAndCompressRoundTrips(t *testing.T) {
	c, err := DecodeChunk(rawChunk(t, 1, 1), 0, nil)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	compressed, err := c.PackageAndCompress()
	if err != nil {
		t.Fatalf("PackageAndCompress: %v", err)
	}
	if len(compressed) == 0 {
		t.Fatalf("PackageAndCompress returned no bytes")
	}
}
