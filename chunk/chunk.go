package chunk

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/oriumgames/anvil/coord"
	"github.com/oriumgames/anvil/nbt"
)

// BlockHit is a located block returned by FindLike: its world position and
// the block itself.
type BlockHit struct {
	X, Y, Z int32
	Block   *Block
}

// DirtyNotifier is the minimal interface a Chunk's owner must satisfy
// to receive dirty propagation; Region implements it.
type DirtyNotifier interface {
	MarkDirty()
}

// Chunk aggregates sections keyed by vertical index and owns the raw
// tag tree the sections were parsed from, so unrecognised sibling
// fields (entities, heightmaps, structures, ...) survive a pack/encode
// round trip untouched.
type Chunk struct {
	X, Z int32

	sections map[int8]*Section

	raw                  *nbt.Tag
	originalCompressedSize int

	dirty  bool
	region DirtyNotifier
}

// Index returns the chunk's position within its region's 32x32 grid.
func (c *Chunk) Index() int {
	return coord.RegionIndex(c.X, c.Z)
}

// OriginalCompressedSize returns the byte count of the chunk's
// compressed payload as it was read from disk, before any mutation.
func (c *Chunk) OriginalCompressedSize() int {
	return c.originalCompressedSize
}

// Dirty reports whether any section in the chunk has been mutated, or a
// blank section has been materialised by GetSection.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

func (c *Chunk) markDirty() {
	c.dirty = true
	if c.region != nil {
		c.region.MarkDirty()
	}
}

// DecodeChunk parses a chunk's NBT compound (as stored, uncompressed)
// into sections keyed by vertical index.
func DecodeChunk(raw *nbt.Tag, originalCompressedSize int, region DirtyNotifier) (*Chunk, error) {
	xTag, ok := raw.Get("xPos")
	if !ok {
		return nil, fmt.Errorf("chunk: missing xPos")
	}
	zTag, ok := raw.Get("zPos")
	if !ok {
		return nil, fmt.Errorf("chunk: missing zPos")
	}

	c := &Chunk{
		X:                      xTag.Int(),
		Z:                      zTag.Int(),
		sections:               make(map[int8]*Section),
		raw:                    raw,
		originalCompressedSize: originalCompressedSize,
		region:                 region,
	}

	sectionsTag, ok := raw.Get("sections")
	if !ok {
		return c, nil
	}
	for _, sectionTag := range sectionsTag.List() {
		section, err := DecodeSection(sectionTag, c)
		if err != nil {
			return nil, fmt.Errorf("chunk (%d,%d): %w", c.X, c.Z, err)
		}
		c.sections[section.Y] = section
	}
	return c, nil
}

// GetBlock returns the block at chunk-relative (localX, localZ) in
// [0,16) and absolute world Y.
func (c *Chunk) GetBlock(localX int, y int32, localZ int) *Block {
	sectionY := int8(floorDiv(y, 16))
	localY := int(y - int32(sectionY)*16)
	section := c.GetSection(sectionY)
	return section.Block(BlockIndex(localX, localY, localZ))
}

func floorDiv(a int32, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// GetSection returns the section at vertical index y, materialising a
// blank dirty section on demand if it does not yet exist.
func (c *Chunk) GetSection(y int8) *Section {
	if s, ok := c.sections[y]; ok {
		return s
	}
	s := newBlankSection(y, c)
	c.sections[y] = s
	c.markDirty()
	return s
}

// FindLike returns every block in the chunk whose state name contains
// substr, together with its absolute world position.
func (c *Chunk) FindLike(substr string) []BlockHit {
	var results []BlockHit
	for y, section := range c.sections {
		for lx := 0; lx < sectionWidth; lx++ {
			for ly := 0; ly < sectionWidth; ly++ {
				for lz := 0; lz < sectionWidth; lz++ {
					b := section.Block(BlockIndex(lx, ly, lz))
					if b == nil || !contains(b.state.Name, substr) {
						continue
					}
					results = append(results, BlockHit{
						X:     c.X*sectionWidth + int32(lx),
						Y:     int32(y)*sectionWidth + int32(ly),
						Z:     c.Z*sectionWidth + int32(lz),
						Block: b,
					})
				}
			}
		}
	}
	return results
}

func contains(name, substr string) bool {
	return len(substr) == 0 || bytesIndex(name, substr) >= 0
}

func bytesIndex(s, substr string) int {
	return bytes.Index([]byte(s), []byte(substr))
}

// Pack clones the stored raw tag and replaces its sections list with
// freshly serialized sections, leaving every other top-level field
// (entities, heightmaps, structures, ...) untouched.
func (c *Chunk) Pack() *nbt.Tag {
	out := nbt.Clone(c.raw)
	sections := nbt.NewList("sections", nbt.Compound)
	for _, section := range orderedSections(c.sections) {
		sections.Append(section.Encode())
	}
	out.Put(sections)
	return out
}

func orderedSections(m map[int8]*Section) []*Section {
	ys := make([]int8, 0, len(m))
	for y := range m {
		ys = append(ys, y)
	}
	for i := 1; i < len(ys); i++ {
		for j := i; j > 0 && ys[j-1] > ys[j]; j-- {
			ys[j-1], ys[j] = ys[j], ys[j-1]
		}
	}
	out := make([]*Section, len(ys))
	for i, y := range ys {
		out[i] = m[y]
	}
	return out
}

// PackageAndCompress serializes Pack's result and zlib-compresses it,
// ready to be written into a region payload sector.
func (c *Chunk) PackageAndCompress() ([]byte, error) {
	var buf bytes.Buffer
	w := nbt.NewWriter()
	nbt.Serialize(c.Pack(), w)

	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(w.Snapshot()); err != nil {
		return nil, fmt.Errorf("chunk (%d,%d): zlib write: %w", c.X, c.Z, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("chunk (%d,%d): zlib close: %w", c.X, c.Z, err)
	}
	return buf.Bytes(), nil
}
