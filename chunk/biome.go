package chunk

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Biome is identified by name; equality/hashing are by name.
type Biome struct {
	Name string
}

// Hash returns a value suitable as a map key for deduplicating biomes.
func (b Biome) Hash() uint64 {
	return xxhash.Sum64String(b.Name)
}

// Equal reports whether b and other share a name.
func (b Biome) Equal(other Biome) bool {
	return b.Name == other.Name
}

// SortBiomes sorts biomes ascending by name, matching the palette
// ordering rule the section encoder must use.
func SortBiomes(biomes []Biome) {
	sort.Slice(biomes, func(i, j int) bool { return biomes[i].Name < biomes[j].Name })
}
