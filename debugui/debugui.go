// Package debugui provides Dear ImGui inspector windows for blockfall sessions.
// Windows are registered on a System, which defers their render functions to
// the end of each scheduler frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// Item holds a Dear ImGui render function drawn once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Frontends should skip game input while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System records the input capture state and defers every item's render.
type System struct {
	Items []Item
	State InputState
}

// Add registers a render function.
func (s *System) Add(render func()) {
	s.Items = append(s.Items, Item{Render: render})
}

// Execute updates input state and queues all render functions for the end of the frame.
func (s *System) Execute(frame *loop.Frame) {
	io := imgui.CurrentIO()
	s.State.WantCaptureMouse = io.WantCaptureMouse()
	s.State.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range s.Items {
		frame.Defer(item.Render)
	}
}
