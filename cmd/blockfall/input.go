package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/tetris"
)

type keyBinding struct {
	keys  []ebiten.Key
	input tetris.Input
}

// Checked in order; the first pressed binding wins the tick.
var keyBindings = []keyBinding{
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, tetris.InputMoveLeft},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, tetris.InputMoveRight},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, tetris.InputSoftDrop},
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, tetris.InputHardDrop},
	{[]ebiten.Key{ebiten.KeyQ}, tetris.InputRotateCCW},
	{[]ebiten.Key{ebiten.KeyE}, tetris.InputRotateCW},
}

// pressedInput returns the input of the first binding with a pressed key.
func pressedInput(pressed func(ebiten.Key) bool) tetris.Input {
	for _, binding := range keyBindings {
		for _, key := range binding.keys {
			if pressed(key) {
				return binding.input
			}
		}
	}
	return tetris.InputNone
}

// pollKeyboard reports the input for keys that went down this frame.
func pollKeyboard() []tetris.Input {
	if input := pressedInput(inpututil.IsKeyJustPressed); input != tetris.InputNone {
		return []tetris.Input{input}
	}
	return nil
}
