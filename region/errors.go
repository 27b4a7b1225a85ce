package region

import "errors"

// ErrUngeneratedChunkWrite is returned when a caller attempts to mutate
// a chunk whose header entry is (0, 0) — it was never generated and
// must not be materialised by a write.
var ErrUngeneratedChunkWrite = errors.New("region: write to ungenerated chunk")

// ErrCoordinateOutOfRange is returned when a chunk coordinate passed to
// GetChunk/MutateChunk belongs to a different region file than the one
// it was called on (its chunk-to-region conversion doesn't match this
// Region's own (rx, rz), recovered from the file name on Open).
var ErrCoordinateOutOfRange = errors.New("region: coordinate out of range")
