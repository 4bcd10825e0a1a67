package tetris

import "github.com/kamstrup/intmap"

// TileSink receives cell writes from the engine. A write with VisualNone clears the cell.
type TileSink interface {
	SetTile(c Cell, v Visual)
}

// TileSinkFunc adapts a plain function to TileSink.
type TileSinkFunc func(c Cell, v Visual)

func (f TileSinkFunc) SetTile(c Cell, v Visual) { f(c, v) }

type discardSink struct{}

func (discardSink) SetTile(Cell, Visual) {}

// TileWrite is a single buffered cell write.
type TileWrite struct {
	Cell   Cell
	Visual Visual
}

// TileBuffer collects cell writes made during a tick and hands them to a sink at the
// end of it. Only the last write to a cell survives; cells keep the order of their
// first write.
type TileBuffer struct {
	writes []TileWrite
	index  *intmap.Map[int64, int]
}

func NewTileBuffer() *TileBuffer {
	return &TileBuffer{
		index: intmap.New[int64, int](64),
	}
}

// Set queues a write of v at c.
func (b *TileBuffer) Set(c Cell, v Visual) {
	if i, ok := b.index.Get(c.key()); ok {
		b.writes[i].Visual = v
		return
	}
	b.index.Put(c.key(), len(b.writes))
	b.writes = append(b.writes, TileWrite{Cell: c, Visual: v})
}

// Len returns the number of distinct cells written since the last flush.
func (b *TileBuffer) Len() int {
	return len(b.writes)
}

// Pending returns a copy of the queued writes.
func (b *TileBuffer) Pending() []TileWrite {
	out := make([]TileWrite, len(b.writes))
	copy(out, b.writes)
	return out
}

// Flush sends all queued writes to sink, resetting the buffer state.
func (b *TileBuffer) Flush(sink TileSink) {
	for _, w := range b.writes {
		sink.SetTile(w.Cell, w.Visual)
	}
	b.writes = b.writes[:0]
	b.index.Clear()
}
