package tetris

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the component-wise sum of c and o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the component-wise difference of c and o.
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y}
}

// key packs the cell into a single integer: X in the upper 32 bits, Y in the lower.
func (c Cell) key() int64 {
	return int64(c.X)<<32 | int64(uint32(int32(c.Y)))
}

func cellFromKey(k int64) Cell {
	return Cell{X: int(k >> 32), Y: int(int32(uint32(k)))}
}

// Bounds is a half-open rectangle [XMin, XMax) x [YMin, YMax).
type Bounds struct {
	XMin, YMin int
	XMax, YMax int
}

// NewBounds returns the bounds of a width x height board centred on the origin.
func NewBounds(width, height int) Bounds {
	xMin := -width / 2
	yMin := -height / 2
	return Bounds{
		XMin: xMin,
		YMin: yMin,
		XMax: xMin + width,
		YMax: yMin + height,
	}
}

func (b Bounds) Width() int  { return b.XMax - b.XMin }
func (b Bounds) Height() int { return b.YMax - b.YMin }

// Contains reports whether c lies inside the bounds.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.XMin && c.X < b.XMax && c.Y >= b.YMin && c.Y < b.YMax
}
