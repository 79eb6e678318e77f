package models

import (
	"sync"
)

// VolumeStore is the host-side registry of live volumes. It owns volume ids
// and the prometheus accounting; spatial registration stays the caller's
// responsibility so the store never reaches into the index.
type VolumeStore struct {
	Scene string

	initOnce sync.Once
	mutex    sync.RWMutex
	volumes  map[uint32]*Volume
	ids      SequentialIDGenerator
}

func (s *VolumeStore) init() {
	s.volumes = map[uint32]*Volume{}
}

func (s *VolumeStore) NewID() uint32 {
	return s.ids.New()
}

func (s *VolumeStore) Add(v *Volume) {
	s.initOnce.Do(s.init)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.volumes[v.ID] = v

	instrumentIncreaseVolumeGauge(s.Scene)
	instrumentCountVolume(s.Scene)
}

func (s *VolumeStore) Remove(v *Volume) {
	s.initOnce.Do(s.init)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.volumes[v.ID]; !ok {
		return
	}

	delete(s.volumes, v.ID)
	s.ids.Reuse(v.ID)

	instrumentDecreaseVolumeGauge(s.Scene)
}

func (s *VolumeStore) GetByID(id uint32) (*Volume, bool) {
	s.initOnce.Do(s.init)
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	v, ok := s.volumes[id]
	return v, ok
}

func (s *VolumeStore) List() []*Volume {
	s.initOnce.Do(s.init)
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	volumes := make([]*Volume, 0, len(s.volumes))
	for _, v := range s.volumes {
		volumes = append(volumes, v)
	}
	return volumes
}

func (s *VolumeStore) Count() int {
	s.initOnce.Do(s.init)
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.volumes)
}
