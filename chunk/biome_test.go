package chunk

import "testing"

func TestBiomeEqualAndHash(t *testing.T) {
	a := Biome{Name: "minecraft:plains"}
	b := Biome{Name: "minecraft:plains"}
	c := Biome{Name: "minecraft:desert"}
	if !a.Equal(b) {
		t.Fatalf("biomes with the same name should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("biomes with the same name should hash equally")
	}
	if a.Equal(c) || a.Hash() == c.Hash() {
		t.Fatalf("biomes with different names should differ")
	}
}

func TestSortBiomes(t *testing.T) {
	biomes := []Biome{{Name: "minecraft:plains"}, {Name: "minecraft:desert"}, {Name: "minecraft:badlands"}}
	SortBiomes(biomes)
	want := []string{"minecraft:badlands", "minecraft:desert", "minecraft:plains"}
	for i, b := range biomes {
		if b.Name != want[i] {
			t.Fatalf("biomes[%d] = %q, want %q", i, b.Name, want[i])
		}
	}
}
