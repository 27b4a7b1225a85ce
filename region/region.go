// Package region owns a single on-disk .mca file: its header of chunk
// offsets and timestamps, a lazy cache of decoded chunks, and the
// in-place rewrite algorithm that saves mutations back to disk.
package region

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zlib"

	"github.com/oriumgames/anvil/chunk"
	"github.com/oriumgames/anvil/coord"
	"github.com/oriumgames/anvil/nbt"
)

const (
	sectorSize          = 4096
	locationTableBytes  = 4096
	timestampTableBytes = 4096
	headerBytes         = locationTableBytes + timestampTableBytes
	gridSize            = 1024 // 32 * 32
)

// location is a chunk's byte offset and length within the file, both
// always multiples of sectorSize. A zero value marks an ungenerated
// chunk.
type location struct {
	offset int
	length int
}

func (l location) ungenerated() bool {
	return l.offset == 0 && l.length == 0
}

// Region owns an open region file: its header tables, a cache of raw
// chunk payload bytes keyed by file offset, and decoded chunks keyed by
// grid index. It is not safe for concurrent use.
type Region struct {
	path string
	file *os.File

	rx, rz int32

	locations  [gridSize]location
	timestamps [gridSize]uint32

	rawChunkData map[int][]byte // keyed by file offset
	chunks       map[int]*chunk.Chunk

	dirty bool
}

// Open reads an existing region file's header and caches its chunk
// payload bytes, ready for lazy per-chunk decode via GetChunk. The
// region's own (rx, rz) is recovered from the file name per the
// r.<rx>.<rz>.mca convention, so GetChunk/MutateChunk can reject chunk
// coordinates that belong to a different region.
func Open(path string) (*Region, error) {
	rx, rz, ok := coord.ParseRegionFileName(path)
	if !ok {
		return nil, fmt.Errorf("region: %s: name does not match r.<rx>.<rz>.mca", path)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("region: open %s: %w", path, err)
	}

	r := &Region{
		path:         path,
		file:         f,
		rx:           rx,
		rz:           rz,
		rawChunkData: make(map[int][]byte),
		chunks:       make(map[int]*chunk.Chunk),
	}
	if err := r.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	if err := r.cacheChunkBytes(); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Region) readHeader() error {
	header := make([]byte, headerBytes)
	if _, err := io.ReadFull(io.NewSectionReader(r.file, 0, headerBytes), header); err != nil {
		return fmt.Errorf("region: read header: %w", err)
	}

	for i := 0; i < gridSize; i++ {
		entry := header[i*4 : i*4+4]
		sectorOffset := uint32(entry[0])<<16 | uint32(entry[1])<<8 | uint32(entry[2])
		sectorCount := entry[3]
		r.locations[i] = location{
			offset: int(sectorOffset) * sectorSize,
			length: int(sectorCount) * sectorSize,
		}
	}

	timestamps := header[locationTableBytes:]
	for i := 0; i < gridSize; i++ {
		r.timestamps[i] = binary.BigEndian.Uint32(timestamps[i*4 : i*4+4])
	}
	return nil
}

func (r *Region) cacheChunkBytes() error {
	for _, loc := range r.locations {
		if loc.length == 0 {
			continue
		}
		if _, ok := r.rawChunkData[loc.offset]; ok {
			continue
		}
		buf := make([]byte, loc.length)
		if _, err := io.ReadFull(io.NewSectionReader(r.file, int64(loc.offset), int64(loc.length)), buf); err != nil {
			return fmt.Errorf("region: read chunk payload at offset %d: %w", loc.offset, err)
		}
		r.rawChunkData[loc.offset] = buf
	}
	return nil
}

// MarkDirty satisfies chunk.DirtyNotifier: any mutation to a resident
// chunk marks the whole region dirty.
func (r *Region) MarkDirty() {
	r.dirty = true
}

// Dirty reports whether any resident chunk has been mutated since load
// or the last save.
func (r *Region) Dirty() bool {
	return r.dirty
}

// chunkIndex validates that (cx, cz) falls within this region's 32x32
// grid — i.e. that the chunk coordinate's region, per coord.ChunkToRegion,
// is the region this file was opened for — and returns its grid index.
func (r *Region) chunkIndex(cx, cz int32) (int, error) {
	rx, rz := coord.ChunkToRegion(cx, cz)
	if rx != r.rx || rz != r.rz {
		return 0, ErrCoordinateOutOfRange
	}
	return coord.RegionIndex(cx, cz), nil
}

// GetChunk returns the chunk at chunk coordinate (cx, cz), decoding it
// from the cached raw bytes on first access. It returns a nil chunk and
// no error if the chunk is ungenerated — callers must not write into
// it; use MutateChunk for that. It fails with ErrCoordinateOutOfRange if
// (cx, cz) does not belong to this region file.
func (r *Region) GetChunk(cx, cz int32) (*chunk.Chunk, error) {
	idx, err := r.chunkIndex(cx, cz)
	if err != nil {
		return nil, err
	}
	if c, ok := r.chunks[idx]; ok {
		return c, nil
	}

	loc := r.locations[idx]
	if loc.ungenerated() {
		return nil, nil
	}

	raw, ok := r.rawChunkData[loc.offset]
	if !ok {
		return nil, fmt.Errorf("region: no cached payload at offset %d", loc.offset)
	}
	c, err := r.decodeChunkPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("region: decode chunk at index %d: %w", idx, err)
	}
	r.chunks[idx] = c
	return c, nil
}

// MutateChunk is like GetChunk but fails with ErrUngeneratedChunkWrite
// instead of returning a nil chunk, for callers about to write into it.
func (r *Region) MutateChunk(cx, cz int32) (*chunk.Chunk, error) {
	idx, err := r.chunkIndex(cx, cz)
	if err != nil {
		return nil, err
	}
	if r.locations[idx].ungenerated() {
		return nil, ErrUngeneratedChunkWrite
	}
	return r.GetChunk(cx, cz)
}

func (r *Region) decodeChunkPayload(raw []byte) (*chunk.Chunk, error) {
	if len(raw) < 5 {
		return nil, fmt.Errorf("payload shorter than header (%d bytes)", len(raw))
	}
	dataLen := binary.BigEndian.Uint32(raw[0:4])
	scheme := raw[4]
	if int(dataLen) < 1 || 5+int(dataLen)-1 > len(raw) {
		return nil, fmt.Errorf("invalid payload length %d", dataLen)
	}
	compressed := raw[5 : 5+int(dataLen)-1]

	if scheme != 2 {
		return nil, fmt.Errorf("unsupported compression scheme %d", scheme)
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer zr.Close()
	decompressed, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}

	tag, err := nbt.Parse(nbt.NewReader(decompressed))
	if err != nil {
		return nil, fmt.Errorf("nbt: %w", err)
	}
	return chunk.DecodeChunk(tag, len(compressed), r)
}

// Save rewrites every resident mutated chunk in place: it recompresses
// each dirty chunk, splices the result into an in-memory copy of the
// post-header bytes (growing or shrinking it and shifting every
// downstream chunk's offset by the delta), then rewrites the file from
// offset 0 with a fresh header followed by that buffer.
func (r *Region) Save() error {
	rest, err := r.readPostHeader()
	if err != nil {
		return err
	}

	for idx := 0; idx < gridSize; idx++ {
		c, ok := r.chunks[idx]
		if !ok || !c.Dirty() {
			continue
		}

		r.timestamps[idx] = uint32(time.Now().Unix())

		compressed, err := c.PackageAndCompress()
		if err != nil {
			return fmt.Errorf("region: save chunk %d: %w", idx, err)
		}
		dataLen := len(compressed)
		blockDataLen := ceilToSector(dataLen + 5)

		payload := make([]byte, 0, blockDataLen)
		payload = append(payload, be32(uint32(dataLen+1))...)
		payload = append(payload, 2)
		payload = append(payload, compressed...)
		payload = append(payload, make([]byte, blockDataLen-(dataLen+5))...)

		loc := r.locations[idx]
		if loc.ungenerated() {
			return fmt.Errorf("region: save chunk %d: %w", idx, ErrUngeneratedChunkWrite)
		}
		delta := blockDataLen - loc.length

		r.locations[idx] = location{offset: loc.offset, length: blockDataLen}
		for j := range r.locations {
			if r.locations[j].offset > loc.offset {
				r.locations[j].offset += delta
			}
		}

		spliceStart := loc.offset - headerBytes
		spliceEnd := spliceStart + loc.length
		next := make([]byte, 0, len(rest)-loc.length+blockDataLen)
		next = append(next, rest[:spliceStart]...)
		next = append(next, payload...)
		next = append(next, rest[spliceEnd:]...)
		rest = next
	}

	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("region: seek: %w", err)
	}
	if err := r.writeHeader(); err != nil {
		return err
	}
	if _, err := r.file.Write(rest); err != nil {
		return fmt.Errorf("region: write body: %w", err)
	}

	pos, err := r.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("region: seek: %w", err)
	}
	finalSize := int64(ceilToSector(int(pos)))
	if pad := finalSize - pos; pad > 0 {
		if _, err := r.file.Write(make([]byte, pad)); err != nil {
			return fmt.Errorf("region: write padding: %w", err)
		}
	}
	if err := r.file.Truncate(finalSize); err != nil {
		return fmt.Errorf("region: truncate: %w", err)
	}

	// Re-key the raw payload cache by the post-save offsets, so chunks not
	// yet decoded are still found after downstream offsets shifted.
	r.rawChunkData = make(map[int][]byte, len(r.rawChunkData))
	for _, loc := range r.locations {
		start := loc.offset - headerBytes
		if loc.length == 0 || start < 0 || start+loc.length > len(rest) {
			continue
		}
		r.rawChunkData[loc.offset] = rest[start : start+loc.length]
	}

	r.dirty = false
	return nil
}

func (r *Region) readPostHeader() ([]byte, error) {
	info, err := r.file.Stat()
	if err != nil {
		return nil, fmt.Errorf("region: stat: %w", err)
	}
	size := info.Size()
	if size <= headerBytes {
		return nil, nil
	}
	buf := make([]byte, size-headerBytes)
	if _, err := io.ReadFull(io.NewSectionReader(r.file, headerBytes, size-headerBytes), buf); err != nil {
		return nil, fmt.Errorf("region: read body: %w", err)
	}
	return buf, nil
}

func (r *Region) writeHeader() error {
	header := make([]byte, headerBytes)
	for i, loc := range r.locations {
		sectorOffset := uint32(loc.offset / sectorSize)
		sectorCount := byte(loc.length / sectorSize)
		header[i*4+0] = byte(sectorOffset >> 16)
		header[i*4+1] = byte(sectorOffset >> 8)
		header[i*4+2] = byte(sectorOffset)
		header[i*4+3] = sectorCount
	}
	for i, ts := range r.timestamps {
		binary.BigEndian.PutUint32(header[locationTableBytes+i*4:locationTableBytes+i*4+4], ts)
	}
	if _, err := r.file.Write(header); err != nil {
		return fmt.Errorf("region: write header: %w", err)
	}
	return nil
}

// Close flushes the region if dirty, then releases its file handle.
func (r *Region) Close() error {
	if r.dirty {
		if err := r.Save(); err != nil {
			return err
		}
	}
	return r.file.Close()
}

func ceilToSector(n int) int {
	return (n + sectorSize - 1) / sectorSize * sectorSize
}

func be32(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}
