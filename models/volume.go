package models

import (
	"sync"

	"github.com/aukilabs/raido/spatial"
)

// Volume is a host-owned registrant of the spatial index. The host mutates
// center, extents and priority; the index only ever reads the derived bounds
// through the spatial.Volume interface, and only when told to via
// re-registration.
type Volume struct {
	ID   uint32
	Name string

	mutex    sync.RWMutex
	center   spatial.Vector3f
	extents  spatial.Vector3f
	priority int32
}

func NewVolume(id uint32, name string, center, extents spatial.Vector3f, priority int32) *Volume {
	return &Volume{
		ID:       id,
		Name:     name,
		center:   center,
		extents:  extents,
		priority: priority,
	}
}

func (v *Volume) SetCenter(center spatial.Vector3f) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	v.center = center
}

func (v *Volume) Center() spatial.Vector3f {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.center
}

func (v *Volume) SetExtents(extents spatial.Vector3f) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	v.extents = extents
}

func (v *Volume) Extents() spatial.Vector3f {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.extents
}

func (v *Volume) SetPriority(priority int32) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	v.priority = priority
}

// Bounds derives the world-space box from the current center and
// half-extents.
func (v *Volume) Bounds() spatial.Box {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return spatial.NewBoxFromCenterExtents(v.center, v.extents)
}

func (v *Volume) Priority() int32 {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.priority
}
