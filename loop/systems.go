package loop

import "github.com/plus3/blockfall/tetris"

// InputSystem pushes whatever Poll reports into the frame.
type InputSystem struct {
	Poll func() []tetris.Input
}

func (s *InputSystem) Execute(frame *Frame) {
	if s.Poll == nil {
		return
	}
	frame.Push(s.Poll()...)
}

// SessionSystem advances the frame's session by the frame's elapsed time,
// handing it the inputs gathered by earlier systems.
type SessionSystem struct {
	// Paused freezes the session without dropping frames from the scheduler.
	Paused bool
}

func (s *SessionSystem) Execute(frame *Frame) {
	if s.Paused || frame.Session == nil {
		return
	}
	frame.Session.Tick(frame.Elapsed(), frame.Inputs)
}

// RestartSystem restarts a finished session at the end of the frame when
// Requested reports true.
type RestartSystem struct {
	Requested func() bool
}

func (s *RestartSystem) Execute(frame *Frame) {
	if s.Requested == nil || frame.Session == nil || !s.Requested() {
		return
	}
	if frame.Session.State() != tetris.SessionOver {
		return
	}
	session := frame.Session
	frame.Defer(session.Restart)
}
