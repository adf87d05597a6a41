package console

import (
	"github.com/muesli/termenv"
)

// Cursor moves the terminal cursor and clears lines on an [Output]. Sequences are written
// unconditionally; callers decide whether the output is a terminal.
type Cursor struct {
	out *termenv.Output
}

// NewCursor returns a cursor writing control sequences to out.
func NewCursor(out Output) *Cursor {
	return &Cursor{out: termenv.NewOutput(out)}
}

func (c *Cursor) MoveUp(lines int) *Cursor {
	c.out.CursorUp(lines)
	return c
}

func (c *Cursor) MoveDown(lines int) *Cursor {
	c.out.CursorDown(lines)
	return c
}

func (c *Cursor) MoveRight(columns int) *Cursor {
	c.out.CursorForward(columns)
	return c
}

func (c *Cursor) MoveLeft(columns int) *Cursor {
	c.out.CursorBack(columns)
	return c
}

// MoveTo moves to a 1-based row and column.
func (c *Cursor) MoveTo(row, column int) *Cursor {
	c.out.MoveCursor(row, column)
	return c
}

func (c *Cursor) ClearLine() *Cursor {
	c.out.ClearLine()
	return c
}

func (c *Cursor) ClearScreen() *Cursor {
	c.out.ClearScreen()
	return c
}

func (c *Cursor) Hide() *Cursor {
	c.out.HideCursor()
	return c
}

func (c *Cursor) Show() *Cursor {
	c.out.ShowCursor()
	return c
}

func (c *Cursor) SavePosition() *Cursor {
	c.out.SaveCursorPosition()
	return c
}

func (c *Cursor) RestorePosition() *Cursor {
	c.out.RestoreCursorPosition()
	return c
}
