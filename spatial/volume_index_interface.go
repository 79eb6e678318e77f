package spatial

// Volume is the contract between the index and a registrant. The index never
// stores bounds or priority across calls beyond the last-known bounds used
// for cell bookkeeping; it re-reads both at registration and query time.
//
// Volume identity is reference equality, so implementations must be pointer
// types. The index holds the reference only between Register and Unregister.
type Volume interface {
	// Bounds returns the current world-space bounds, already accounting for
	// whatever transform the owner applies.
	Bounds() Box

	// Priority orders overlapping volumes. Higher wins.
	Priority() int32
}

// VolumeIndex answers which registered volume, if any, contains a point,
// preferring the highest-priority overlapping volume.
type VolumeIndex interface {
	Register(Volume) error
	Unregister(Volume)
	Registered(Volume) bool
	FindBest(Vector3f) Volume

	// Prunes empty cells outside the hot path. Returns the number of cells
	// released.
	Compact() int

	// debug stuff:
	DebugInfo() DebugInfo
}

type DebugInfo struct {
	FineCellSize         float32
	CoarseCellSize       float32
	LargeVolumeThreshold float32
	VolumeCount          int
	FineVolumeCount      int
	CoarseVolumeCount    int
	FineCellCount        int
	CoarseCellCount      int
	MaxCellOccupancy     int
}
