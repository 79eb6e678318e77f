package spatial

// FindBest returns the highest-priority registered volume containing p, or
// nil when no volume contains it.
//
// Broad phase: the single cell containing p is read from each grid into the
// reusable candidate buffer. Narrow phase: every candidate is tested for
// exact containment against its authoritative current bounds, keeping the
// highest priority; equal priorities resolve to the earliest registered
// volume. Cost is bounded by the occupancy of the point's two cells, not by
// the number of registered volumes, and the steady state allocates nothing.
//
// The candidate buffer is owned by the Dispatcher, so FindBest calls must be
// strictly sequential, never reentrant.
func (d *Dispatcher) FindBest(p Vector3f) Volume {
	d.candidates = d.candidates[:0]
	d.candidates = d.fine.QueryCell(p, d.candidates)
	d.candidates = d.coarse.QueryCell(p, d.candidates)

	var best Volume
	var bestPriority int32
	var bestOrder uint64

	for _, v := range d.candidates {
		if !v.Bounds().ContainsPoint(p) {
			continue
		}

		priority := v.Priority()
		order := d.order[v]

		switch {
		case best == nil:
		case priority > bestPriority:
		case priority == bestPriority && order < bestOrder:
		default:
			continue
		}

		best = v
		bestPriority = priority
		bestOrder = order
	}

	return best
}
