package chunk

// Block is a single voxel: a BlockState plus light levels in [0,15]. It
// carries a dirty flag and a non-owning back-reference to its enclosing
// section, used only to propagate the dirty flag upward; the section
// owns the block, never the reverse.
type Block struct {
	state      BlockState
	BlockLight uint8
	SkyLight   uint8
	dirty      bool
	section    *Section
}

// NewBlock returns a block with the given state, owned by section.
// BlockLight and SkyLight default to 0.
func NewBlock(state BlockState, section *Section) *Block {
	return &Block{state: state, section: section}
}

// State returns a copy of the block's current state.
func (b *Block) State() BlockState {
	return b.state
}

// SetState replaces the block's state and marks the block, its section,
// its chunk, and its region dirty.
func (b *Block) SetState(state BlockState) {
	b.state = state
	b.dirty = true
	if b.section != nil {
		b.section.markDirty()
	}
}

// Dirty reports whether the block has been mutated since it was decoded.
func (b *Block) Dirty() bool {
	return b.dirty
}

// BiomeRegion is a 4x4x4 cube inside a section carrying one Biome. It
// mirrors Block's dirty-propagation shape.
type BiomeRegion struct {
	biome   Biome
	dirty   bool
	section *Section
}

// NewBiomeRegion returns a biome region with the given biome, owned by
// section.
func NewBiomeRegion(biome Biome, section *Section) *BiomeRegion {
	return &BiomeRegion{biome: biome, section: section}
}

// Biome returns the region's current biome.
func (r *BiomeRegion) Biome() Biome {
	return r.biome
}

// SetBiome replaces the region's biome and marks the region, its section,
// its chunk, and its region file dirty.
func (r *BiomeRegion) SetBiome(biome Biome) {
	r.biome = biome
	r.dirty = true
	if r.section != nil {
		r.section.markDirty()
	}
}

// Dirty reports whether the biome region has been mutated since it was
// decoded.
func (r *BiomeRegion) Dirty() bool {
	return r.dirty
}
