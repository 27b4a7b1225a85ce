// Package chunk decodes and encodes a single chunk section's palette and
// voxel grid, and aggregates sections into a chunk keyed by vertical
// index.
package chunk

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// AirName is the reserved default block state, always present in a
// serialized block-state palette.
const AirName = "minecraft:air"

// BlockState is a block's identity and named properties. Equality and
// hashing are by (Name, Properties).
type BlockState struct {
	Name       string
	Properties map[string]string
}

// Air returns the reserved default block state with no properties.
func Air() BlockState {
	return BlockState{Name: AirName}
}

// Equal reports whether s and other have the same name and properties.
func (s BlockState) Equal(other BlockState) bool {
	if s.Name != other.Name || len(s.Properties) != len(other.Properties) {
		return false
	}
	for k, v := range s.Properties {
		if other.Properties[k] != v {
			return false
		}
	}
	return true
}

// Hash returns a value suitable as a map key for deduplicating block
// states: Go maps can't key on a map[string]string directly, so the
// properties are folded into the digest in a canonical (sorted) order.
func (s BlockState) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(s.Name)
	if len(s.Properties) == 0 {
		return d.Sum64()
	}
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(k)
		_, _ = d.WriteString("\x01")
		_, _ = d.WriteString(s.Properties[k])
	}
	return d.Sum64()
}

// Clone returns a deep copy of s.
func (s BlockState) Clone() BlockState {
	if len(s.Properties) == 0 {
		return BlockState{Name: s.Name}
	}
	props := make(map[string]string, len(s.Properties))
	for k, v := range s.Properties {
		props[k] = v
	}
	return BlockState{Name: s.Name, Properties: props}
}

// SortBlockStates sorts states ascending by name, matching the palette
// ordering rule the section encoder must use.
func SortBlockStates(states []BlockState) {
	sort.Slice(states, func(i, j int) bool { return states[i].Name < states[j].Name })
}
