package chunk

import (
	"testing"

	"github.com/oriumgames/anvil/bitpack"
	"github.com/oriumgames/anvil/nbt"
)

func singleEntryBlockStatesTag(name string) *nbt.Tag {
	blockStates := nbt.NewCompound("block_states")
	palette := nbt.NewList("palette", nbt.Compound)
	entry := nbt.NewCompound("")
	entry.Put(nbt.NewString("Name", name))
	palette.Append(entry)
	blockStates.Put(palette)
	return blockStates
}

func singleEntryBiomesTag(name string) *nbt.Tag {
	biomes := nbt.NewCompound("biomes")
	palette := nbt.NewList("palette", nbt.String)
	palette.Append(nbt.NewString("", name))
	biomes.Put(palette)
	return biomes
}

func rawSectionWithSingleEntryPalettes(y int8, blockName, biomeName string) *nbt.Tag {
	raw := nbt.NewCompound("")
	raw.Put(nbt.NewByte("Y", y))
	raw.Put(singleEntryBlockStatesTag(blockName))
	raw.Put(singleEntryBiomesTag(biomeName))
	return raw
}

func TestDecodeSectionSingleEntryPalette(t *testing.T) {
	raw := rawSectionWithSingleEntryPalettes(4, AirName, "minecraft:plains")
	s, err := DecodeSection(raw, nil)
	if err != nil {
		t.Fatalf("DecodeSection: %v", err)
	}
	if s.Y != 4 {
		t.Fatalf("Y = %d, want 4", s.Y)
	}
	for i := 0; i < BlockCount; i++ {
		b := s.Block(i)
		if b == nil || !b.State().Equal(Air()) {
			t.Fatalf("block %d = %v, want air", i, b)
		}
	}
	for i := 0; i < BiomeCount; i++ {
		r := s.BiomeRegion(i)
		if r == nil || r.Biome().Name != "minecraft:plains" {
			t.Fatalf("biome region %d = %v, want minecraft:plains", i, r)
		}
	}
	if s.Dirty() {
		t.Fatalf("freshly decoded section should not be dirty")
	}
}

func twoEntryBlockStatesRaw(t *testing.T, stoneAt int) *nbt.Tag {
	t.Helper()
	blockStates := nbt.NewCompound("block_states")
	palette := nbt.NewList("palette", nbt.Compound)
	air := nbt.NewCompound("")
	air.Put(nbt.NewString("Name", AirName))
	stone := nbt.NewCompound("")
	stone.Put(nbt.NewString("Name", "minecraft:stone"))
	palette.Append(air)
	palette.Append(stone)
	blockStates.Put(palette)

	values := make([]int, BlockCount)
	values[stoneAt] = 1
	blockStates.Put(nbt.NewLongArray("data", bitpack.Pack(values, 4)))
	return blockStates
}

func TestDecodeSectionTwoEntryPalette(t *testing.T) {
	raw := nbt.NewCompound("")
	raw.Put(nbt.NewByte("Y", 0))
	raw.Put(twoEntryBlockStatesRaw(t, 0))
	raw.Put(singleEntryBiomesTag("minecraft:plains"))

	s, err := DecodeSection(raw, nil)
	if err != nil {
		t.Fatalf("DecodeSection: %v", err)
	}
	if got := s.Block(0).State().Name; got != "minecraft:stone" {
		t.Fatalf("block 0 = %q, want minecraft:stone", got)
	}
	if got := s.Block(1).State().Name; got != AirName {
		t.Fatalf("block 1 = %q, want %s", got, AirName)
	}
}

func TestSectionEncodeTwoEntryPaletteMatchesScenario(t *testing.T) {
	s := newBlankSection(0, nil)
	s.blocks[0].state = BlockState{Name: "minecraft:stone"}

	out := s.Encode()
	blockStates, ok := out.Get("block_states")
	if !ok {
		t.Fatalf("encoded section missing block_states")
	}
	palette, ok := blockStates.Get("palette")
	if !ok {
		t.Fatalf("block_states missing palette")
	}
	entries := palette.List()
	if len(entries) != 2 {
		t.Fatalf("palette has %d entries, want 2", len(entries))
	}
	if got := entries[0].MustGet("Name").Str(); got != AirName {
		t.Fatalf("palette[0] = %q, want %s (sorted air first)", got, AirName)
	}
	if got := entries[1].MustGet("Name").Str(); got != "minecraft:stone" {
		t.Fatalf("palette[1] = %q, want minecraft:stone", got)
	}

	data, ok := blockStates.Get("data")
	if !ok {
		t.Fatalf("block_states missing data for 2-entry palette")
	}
	longs := data.LongArray()
	if len(longs) != 256 {
		t.Fatalf("data has %d longs, want 256 (4096*4/64)", len(longs))
	}
}

func TestSectionEncodeSingleEntryPaletteOmitsData(t *testing.T) {
	s := newBlankSection(0, nil)
	// All blocks already default to air from newBlankSection.
	out := s.Encode()
	blockStates := out.MustGet("block_states")
	if blockStates.Has("data") {
		t.Fatalf("single-entry block palette must omit data child")
	}
}

func TestSectionEncodeSynthesisesLight(t *testing.T) {
	s := newBlankSection(0, nil)
	out := s.Encode()
	sky, ok := out.Get("SkyLight")
	if !ok {
		t.Fatalf("encoded section missing SkyLight")
	}
	for _, b := range sky.ByteArray() {
		if b != -1 {
			t.Fatalf("SkyLight byte = %d, want -1 (fully lit)", b)
		}
	}
}

func TestDirtyPropagationFromBlock(t *testing.T) {
	c := &Chunk{sections: make(map[int8]*Section)}
	s := newBlankSection(0, c)
	s.dirty = false
	c.dirty = false

	b := s.Block(0)
	other := s.Block(1)
	b.SetState(BlockState{Name: "minecraft:stone"})

	if !b.Dirty() {
		t.Fatalf("mutated block should be dirty")
	}
	if !s.Dirty() {
		t.Fatalf("section should be dirty after block mutation")
	}
	if !c.Dirty() {
		t.Fatalf("chunk should be dirty after block mutation")
	}
	if other.Dirty() {
		t.Fatalf("sibling block should remain clean")
	}
}

func TestBlockIndexAndBiomeIndex(t *testing.T) {
	if got := BlockIndex(1, 2, 3); got != 1+3*16+2*256 {
		t.Fatalf("BlockIndex(1,2,3) = %d", got)
	}
	if got := BiomeIndex(1, 2, 3); got != 1+3*4+2*16 {
		t.Fatalf("BiomeIndex(1,2,3) = %d", got)
	}
}
