package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyle(t *testing.T) {
	t.Parallel()

	newStyle := func() (*Style, *bytes.Buffer) {
		var buf bytes.Buffer
		return NewStyle(NewStreamOutput(&buf)), &buf
	}

	t.Run("plain output", func(t *testing.T) {
		t.Parallel()
		s, buf := newStyle()
		assert.False(t, s.Output().IsDecorated())

		require.NoError(t, s.Title("Tasks"))
		require.NoError(t, s.Section("Open"))
		require.NoError(t, s.Text("one", "two"))
		require.NoError(t, s.Listing("a", "b"))
		require.NoError(t, s.Comment("note to self"))
		assert.Equal(t, "Tasks\n=====\n\nOpen\n----\n\n one\n two\n * a\n * b\n\n // note to self\n", buf.String())
	})
	t.Run("blocks", func(t *testing.T) {
		t.Parallel()
		s, buf := newStyle()
		require.NoError(t, s.Success("done"))
		require.NoError(t, s.Error("boom\nsecond line"))
		require.NoError(t, s.Warning("careful"))
		require.NoError(t, s.Note("fyi"))
		assert.Equal(t, "[OK] done\n\n"+
			"[ERROR] boom\n        second line\n\n"+
			"[WARNING] careful\n\n"+
			"! [NOTE] fyi\n\n", buf.String())
	})
}

func TestCursor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewCursor(NewStreamOutput(&buf))
	c.MoveUp(2).MoveDown(1).MoveRight(3).MoveLeft(4).MoveTo(5, 6)
	assert.Equal(t, "\x1b[2A\x1b[1B\x1b[3C\x1b[4D\x1b[5;6H", buf.String())

	buf.Reset()
	c.Hide().Show()
	assert.Equal(t, "\x1b[?25l\x1b[?25h", buf.String())

	buf.Reset()
	c.SavePosition().RestorePosition()
	assert.Equal(t, "\x1b[s\x1b[u", buf.String())
}
