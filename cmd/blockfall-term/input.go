package main

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
)

type command int

const (
	commandNone command = iota
	commandInput
	commandRestart
	commandQuit
)

// translateKey maps a key event onto a game input or a frontend command.
func translateKey(ev *tcell.EventKey) (command, tetris.Input) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return commandQuit, tetris.InputNone
	case tcell.KeyLeft:
		return commandInput, tetris.InputMoveLeft
	case tcell.KeyRight:
		return commandInput, tetris.InputMoveRight
	case tcell.KeyDown:
		return commandInput, tetris.InputSoftDrop
	case tcell.KeyUp:
		return commandInput, tetris.InputHardDrop
	case tcell.KeyRune:
	default:
		return commandNone, tetris.InputNone
	}

	switch unicode.ToLower(ev.Rune()) {
	case 'a':
		return commandInput, tetris.InputMoveLeft
	case 'd':
		return commandInput, tetris.InputMoveRight
	case 's':
		return commandInput, tetris.InputSoftDrop
	case 'w':
		return commandInput, tetris.InputHardDrop
	case 'q':
		return commandInput, tetris.InputRotateCCW
	case 'e':
		return commandInput, tetris.InputRotateCW
	case 'r':
		return commandRestart, tetris.InputNone
	}
	return commandNone, tetris.InputNone
}
