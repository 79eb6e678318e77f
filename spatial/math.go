package spatial

type Vector3f struct {
	X float32
	Y float32
	Z float32
}

func NewVector3f(x, y, z float32) Vector3f {
	return Vector3f{x, y, z}
}

func (v1 Vector3f) Equal(v2 Vector3f) bool {
	return v1.X == v2.X && v1.Y == v2.Y && v1.Z == v2.Z
}

func Add(a Vector3f, b Vector3f) Vector3f {
	return Vector3f{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a Vector3f, b Vector3f) Vector3f {
	return Vector3f{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Mul(a Vector3f, s float32) Vector3f {
	return Vector3f{a.X * s, a.Y * s, a.Z * s}
}

// Box is an axis-aligned bounding box given by its min and max corners in
// world space.
type Box struct {
	Min Vector3f
	Max Vector3f
}

func NewBox(min, max Vector3f) Box {
	return Box{Min: min, Max: max}
}

// NewBoxFromCenterExtents builds a box from a center point and half-extents.
func NewBoxFromCenterExtents(center, extents Vector3f) Box {
	return Box{
		Min: Sub(center, extents),
		Max: Add(center, extents),
	}
}

// Valid reports whether min <= max holds on every axis.
func (b Box) Valid() bool {
	return b.Min.X <= b.Max.X &&
		b.Min.Y <= b.Max.Y &&
		b.Min.Z <= b.Max.Z
}

func (b Box) Size() Vector3f {
	return Sub(b.Max, b.Min)
}

func (b Box) Center() Vector3f {
	return Mul(Add(b.Min, b.Max), 0.5)
}

// ContainsPoint reports whether p lies within [min, max] on every axis. Both
// faces are inclusive, which keeps a point sitting exactly on a shared face
// inside both neighboring volumes.
func (b Box) ContainsPoint(p Vector3f) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// MaxHorizontalExtent returns the larger of the box sizes along x and z. The
// vertical axis is deliberately left out: volumes are footprint-dominant and
// routing on height would push flat, tall-ceilinged zones to the wrong grid.
func (b Box) MaxHorizontalExtent() float32 {
	size := b.Size()
	if size.X > size.Z {
		return size.X
	}
	return size.Z
}
