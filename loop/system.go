package loop

// System is a unit of per-frame work run by a Scheduler.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function into a System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }
