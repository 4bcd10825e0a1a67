package loop

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// Frame carries the state shared by the systems of a single scheduler pass.
type Frame struct {
	DeltaTime float64
	Session   *tetris.Session
	Inputs    []tetris.Input

	defers []func()
}

func newFrame(dt float64, session *tetris.Session) *Frame {
	return &Frame{
		DeltaTime: dt,
		Session:   session,
	}
}

// Elapsed returns DeltaTime as a duration.
func (f *Frame) Elapsed() time.Duration {
	return time.Duration(f.DeltaTime * float64(time.Second))
}

// Push queues inputs for the session system of this frame.
func (f *Frame) Push(inputs ...tetris.Input) {
	for _, input := range inputs {
		if input != tetris.InputNone {
			f.Inputs = append(f.Inputs, input)
		}
	}
}

// Defer queues fn to run once every system has executed.
func (f *Frame) Defer(fn func()) {
	f.defers = append(f.defers, fn)
}

func (f *Frame) flush() {
	for _, fn := range f.defers {
		fn()
	}
	f.defers = f.defers[:0]
}
