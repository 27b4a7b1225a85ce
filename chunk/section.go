package chunk

import (
	"github.com/oriumgames/anvil/bitpack"
	"github.com/oriumgames/anvil/nbt"
)

// Sizes of a section's voxel and biome grids.
const (
	sectionWidth    = 16
	BlockCount      = sectionWidth * sectionWidth * sectionWidth
	biomeWidth      = 4
	BiomeCount      = biomeWidth * biomeWidth * biomeWidth
	fullyLitByte    = -1 // two's complement 0xFF
	lightArrayBytes = BlockCount / 2
)

// Section is a 16x16x16 cube of voxels at a fixed vertical index, plus
// the 4x4x4 biome grid overlaid on it. It wraps the original parsed tag
// tree so unrecognised children survive a decode/encode round trip.
type Section struct {
	Y int8

	blocks [BlockCount]*Block
	biomes [BiomeCount]*BiomeRegion

	raw   *nbt.Tag
	dirty bool
	chunk *Chunk
}

// BlockIndex maps local section coordinates (each in [0,16)) to the
// dense [0,4096) block index.
func BlockIndex(x, y, z int) int {
	return x + z*sectionWidth + y*sectionWidth*sectionWidth
}

// BiomeIndex maps local biome-region coordinates (each in [0,4)) to the
// dense [0,64) biome index.
func BiomeIndex(x, y, z int) int {
	return x + z*biomeWidth + y*biomeWidth*biomeWidth
}

// Block returns the block at the given dense index.
func (s *Section) Block(index int) *Block {
	return s.blocks[index]
}

// BiomeRegion returns the biome region at the given dense index.
func (s *Section) BiomeRegion(index int) *BiomeRegion {
	return s.biomes[index]
}

// Dirty reports whether any block or biome region in the section has
// been mutated since it was decoded.
func (s *Section) Dirty() bool {
	return s.dirty
}

func (s *Section) markDirty() {
	s.dirty = true
	if s.chunk != nil {
		s.chunk.markDirty()
	}
}

// newBlankSection returns a section populated with BlockCount blank
// dirty blocks (air) and BiomeCount blank dirty biome regions, used
// when a chunk materialises a section on demand rather than decoding
// one from disk.
func newBlankSection(y int8, owner *Chunk) *Section {
	s := &Section{Y: y, chunk: owner, dirty: true}
	for i := range s.blocks {
		s.blocks[i] = &Block{state: Air(), dirty: true, section: s}
	}
	for i := range s.biomes {
		s.biomes[i] = &BiomeRegion{dirty: true, section: s}
	}
	return s
}

// DecodeSection parses a section compound per the on-disk format: a
// block-state palette and optional packed data array, a biome palette
// and optional packed data array, and optional BlockLight/SkyLight
// nibble arrays.
func DecodeSection(raw *nbt.Tag, owner *Chunk) (*Section, error) {
	yTag, ok := raw.Get("Y")
	if !ok {
		return nil, malformed(0, "missing Y tag")
	}
	y := yTag.Byte()

	blockStatesTag, ok := raw.Get("block_states")
	if !ok {
		return nil, malformed(y, "missing block_states")
	}
	palette, err := decodeBlockStatePalette(blockStatesTag, y)
	if err != nil {
		return nil, err
	}

	s := &Section{Y: y, raw: raw, chunk: owner}

	stateIndices, err := decodePaletteIndices(blockStatesTag, len(palette), bitpack.BlockStateWidth(len(palette)), BlockCount, y)
	if err != nil {
		return nil, err
	}

	blockLight, err := decodeNibbleArray(raw, "BlockLight", y)
	if err != nil {
		return nil, err
	}
	skyLight, err := decodeNibbleArray(raw, "SkyLight", y)
	if err != nil {
		return nil, err
	}

	for i, idx := range stateIndices {
		if idx < 0 || idx >= len(palette) {
			return nil, malformed(y, "block palette index %d out of range [0,%d)", idx, len(palette))
		}
		b := &Block{state: palette[idx], section: s}
		if blockLight != nil {
			b.BlockLight = blockLight[i]
		}
		if skyLight != nil {
			b.SkyLight = skyLight[i]
		}
		s.blocks[i] = b
	}

	biomesTag, ok := raw.Get("biomes")
	if !ok {
		return nil, malformed(y, "missing biomes")
	}
	biomePalette, err := decodeBiomePalette(biomesTag, y)
	if err != nil {
		return nil, err
	}
	biomeIndices, err := decodePaletteIndices(biomesTag, len(biomePalette), bitpack.BiomeWidth(len(biomePalette)), BiomeCount, y)
	if err != nil {
		return nil, err
	}
	for i, idx := range biomeIndices {
		if idx < 0 || idx >= len(biomePalette) {
			return nil, malformed(y, "biome palette index %d out of range [0,%d)", idx, len(biomePalette))
		}
		s.biomes[i] = &BiomeRegion{biome: biomePalette[idx], section: s}
	}

	return s, nil
}

func decodeBlockStatePalette(blockStatesTag *nbt.Tag, y int8) ([]BlockState, error) {
	paletteTag, ok := blockStatesTag.Get("palette")
	if !ok {
		return nil, malformed(y, "missing block_states.palette")
	}
	entries := paletteTag.List()
	palette := make([]BlockState, 0, len(entries))
	for _, entry := range entries {
		nameTag, ok := entry.Get("Name")
		if !ok {
			return nil, malformed(y, "palette entry missing Name")
		}
		state := BlockState{Name: nameTag.Str()}
		if propsTag, ok := entry.Get("Properties"); ok {
			children := propsTag.Children()
			props := make(map[string]string, len(children))
			for _, p := range children {
				props[p.Name()] = p.Str()
			}
			state.Properties = props
		}
		palette = append(palette, state)
	}
	return palette, nil
}

func decodeBiomePalette(biomesTag *nbt.Tag, y int8) ([]Biome, error) {
	paletteTag, ok := biomesTag.Get("palette")
	if !ok {
		return nil, malformed(y, "missing biomes.palette")
	}
	entries := paletteTag.List()
	palette := make([]Biome, 0, len(entries))
	for _, entry := range entries {
		palette = append(palette, Biome{Name: entry.Str()})
	}
	return palette, nil
}

// decodePaletteIndices reads the packed data array under container, or
// synthesises count zeros when the palette has exactly one entry and no
// data child is present.
func decodePaletteIndices(container *nbt.Tag, paletteLen, width, count int, y int8) ([]int, error) {
	dataTag, hasData := container.Get("data")
	if !hasData {
		if paletteLen != 1 {
			return nil, malformed(y, "missing data array for palette of size %d", paletteLen)
		}
		return make([]int, count), nil
	}
	longs := dataTag.LongArray()
	if want := bitpack.LongCount(count, width); len(longs) != want {
		return nil, malformed(y, "data array has %d longs, want %d for width %d", len(longs), want, width)
	}
	return bitpack.Unpack(longs, width, count), nil
}

// decodeNibbleArray unpacks a 2048-byte array of packed nibble pairs
// into BlockCount values, low nibble first per byte. Returns nil if name is
// absent, in which case the caller defaults the values to 0.
func decodeNibbleArray(raw *nbt.Tag, name string, y int8) ([]uint8, error) {
	tag, ok := raw.Get(name)
	if !ok {
		return nil, nil
	}
	bytes := tag.ByteArray()
	if len(bytes) != lightArrayBytes {
		return nil, malformed(y, "%s has %d bytes, want %d", name, len(bytes), lightArrayBytes)
	}
	out := make([]uint8, BlockCount)
	for i, b := range bytes {
		v := uint8(b)
		out[2*i] = v & 0x0F
		out[2*i+1] = (v >> 4) & 0x0F
	}
	return out, nil
}

// Encode rebuilds the section's tag tree if it is dirty, reusing the
// original raw tag as the base so unrecognised children survive.
// Returns the original raw tag unchanged if nothing was mutated.
func (s *Section) Encode() *nbt.Tag {
	if !s.dirty {
		return s.raw
	}

	out := s.raw
	if out == nil {
		out = nbt.NewCompound("")
	} else {
		out = nbt.Clone(out)
	}
	out.Put(nbt.NewByte("Y", s.Y))

	statePalette := s.buildBlockStatePalette()
	out.Put(s.encodeBlockStates(statePalette))

	biomePalette := s.buildBiomePalette()
	out.Put(s.encodeBiomes(biomePalette))

	if !out.Has("SkyLight") {
		out.Put(nbt.NewByteArray("SkyLight", fullyLitArray()))
	}
	if !out.Has("BlockLight") {
		out.Put(nbt.NewByteArray("BlockLight", fullyLitArray()))
	}

	return out
}

func fullyLitArray() []int8 {
	arr := make([]int8, lightArrayBytes)
	for i := range arr {
		arr[i] = fullyLitByte
	}
	return arr
}

func (s *Section) buildBlockStatePalette() []BlockState {
	seen := make(map[uint64]BlockState)
	seen[Air().Hash()] = Air()
	for _, b := range s.blocks {
		if b == nil {
			continue
		}
		seen[b.state.Hash()] = b.state
	}
	palette := make([]BlockState, 0, len(seen))
	for _, st := range seen {
		palette = append(palette, st)
	}
	SortBlockStates(palette)
	return palette
}

func (s *Section) buildBiomePalette() []Biome {
	seen := make(map[uint64]Biome)
	for _, r := range s.biomes {
		if r == nil {
			continue
		}
		seen[r.biome.Hash()] = r.biome
	}
	palette := make([]Biome, 0, len(seen))
	for _, b := range seen {
		palette = append(palette, b)
	}
	SortBiomes(palette)
	return palette
}

func (s *Section) encodeBlockStates(palette []BlockState) *nbt.Tag {
	index := make(map[uint64]int, len(palette))
	for i, st := range palette {
		index[st.Hash()] = i
	}

	out := nbt.NewCompound("block_states")
	out.Put(encodeBlockStatePaletteList(palette))

	if len(palette) == 1 {
		return out
	}

	width := bitpack.BlockStateWidth(len(palette))
	values := make([]int, BlockCount)
	for i, b := range s.blocks {
		values[i] = index[b.state.Hash()]
	}
	out.Put(nbt.NewLongArray("data", bitpack.Pack(values, width)))
	return out
}

func encodeBlockStatePaletteList(palette []BlockState) *nbt.Tag {
	list := nbt.NewList("palette", nbt.Compound)
	for _, st := range palette {
		entry := nbt.NewCompound("")
		entry.Put(nbt.NewString("Name", st.Name))
		if len(st.Properties) != 0 {
			props := nbt.NewCompound("Properties")
			for k, v := range st.Properties {
				props.Put(nbt.NewString(k, v))
			}
			entry.Put(props)
		}
		list.Append(entry)
	}
	return list
}

func (s *Section) encodeBiomes(palette []Biome) *nbt.Tag {
	index := make(map[uint64]int, len(palette))
	for i, b := range palette {
		index[b.Hash()] = i
	}

	out := nbt.NewCompound("biomes")
	list := nbt.NewList("palette", nbt.String)
	for _, b := range palette {
		list.Append(nbt.NewString("", b.Name))
	}
	out.Put(list)

	if len(palette) == 1 {
		return out
	}

	width := bitpack.BiomeWidth(len(palette))
	values := make([]int, BiomeCount)
	for i, r := range s.biomes {
		values[i] = index[r.biome.Hash()]
	}
	out.Put(nbt.NewLongArray("data", bitpack.Pack(values, width)))
	return out
}
