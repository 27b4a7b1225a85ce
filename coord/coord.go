// Package coord implements the coordinate-space conversions between
// absolute block coordinates and chunk/biome/region coordinates.
//
// Two bugs present in the reference implementation this module was
// distilled from are fixed here rather than reproduced: chunk-to-biome
// conversion multiplies rather than divides (one chunk spans four biome
// regions per axis), and distance is true Euclidean rather than a sum of
// unsquared deltas.
package coord

import (
	"fmt"
	"math"
	"path/filepath"
)

// AbsoluteToChunk converts an absolute block coordinate to its chunk
// coordinate.
func AbsoluteToChunk(x, z int32) (int32, int32) {
	return x >> 4, z >> 4
}

// AbsoluteToBiome converts an absolute block coordinate to its biome
// region coordinate.
func AbsoluteToBiome(x, z int32) (int32, int32) {
	return x >> 2, z >> 2
}

// AbsoluteToRegion converts an absolute block coordinate to its region
// coordinate.
func AbsoluteToRegion(x, z int32) (int32, int32) {
	return x >> 9, z >> 9
}

// ChunkToRegion converts a chunk coordinate to its region coordinate.
func ChunkToRegion(cx, cz int32) (int32, int32) {
	return cx >> 5, cz >> 5
}

// ChunkToBiome converts a chunk coordinate to the coordinate of its
// first biome region: one chunk spans four biome regions per axis.
func ChunkToBiome(cx, cz int32) (int32, int32) {
	return cx * 4, cz * 4
}

// RegionIndex returns a chunk's position within its region file's 32x32
// grid, in [0, 1024).
func RegionIndex(cx, cz int32) int {
	return int(mod32(cx)) + int(mod32(cz))*32
}

func mod32(v int32) int32 {
	m := v % 32
	if m < 0 {
		m += 32
	}
	return m
}

// RegionFileName returns the on-disk file name for the region at (rx, rz).
func RegionFileName(rx, rz int32) string {
	return fmt.Sprintf("r.%d.%d.mca", rx, rz)
}

// ParseRegionFileName is RegionFileName's inverse: it recovers (rx, rz)
// from a path whose base name is "r.<rx>.<rz>.mca", ignoring any
// directory component. ok is false if the base name doesn't match.
func ParseRegionFileName(path string) (rx, rz int32, ok bool) {
	base := filepath.Base(path)
	var x, z int32
	var suffix string
	n, err := fmt.Sscanf(base, "r.%d.%d.%s", &x, &z, &suffix)
	if err != nil || n != 3 || suffix != "mca" {
		return 0, 0, false
	}
	return x, z, true
}

// Absolute is an absolute block coordinate.
type Absolute struct {
	X, Y, Z int32
}

// Add returns the component-wise sum of a and b.
func (a Absolute) Add(b Absolute) Absolute {
	return Absolute{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the component-wise difference of a and b.
func (a Absolute) Sub(b Absolute) Absolute {
	return Absolute{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Dist returns the Euclidean distance between a and b.
func (a Absolute) Dist(b Absolute) float64 {
	d := a.Sub(b)
	dx, dy, dz := float64(d.X), float64(d.Y), float64(d.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
