package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionHelper(t *testing.T) {
	t.Parallel()

	ask := func(t *testing.T, input string, q Question) (string, string, error) {
		t.Helper()
		var buf bytes.Buffer
		answer, err := NewQuestionHelper(strings.NewReader(input)).Ask(context.Background(), NewStreamOutput(&buf), q)
		return answer, buf.String(), err
	}

	t.Run("plain answer", func(t *testing.T) {
		t.Parallel()
		answer, out, err := ask(t, "  gopher \n", Question{Text: "Your name"})
		require.NoError(t, err)
		assert.Equal(t, "gopher", answer)
		assert.Equal(t, " Your name:\n > ", out)
	})
	t.Run("default", func(t *testing.T) {
		t.Parallel()
		answer, out, err := ask(t, "\n", Question{Text: "Color", Default: "blue"})
		require.NoError(t, err)
		assert.Equal(t, "blue", answer)
		assert.Equal(t, " Color [blue]:\n > ", out)
	})
	t.Run("last line without newline", func(t *testing.T) {
		t.Parallel()
		answer, _, err := ask(t, "gopher", Question{Text: "Your name"})
		require.NoError(t, err)
		assert.Equal(t, "gopher", answer)
	})
	t.Run("end of input", func(t *testing.T) {
		t.Parallel()
		_, _, err := ask(t, "", Question{Text: "Your name"})
		require.ErrorIs(t, err, ErrNoAnswer)
	})
	t.Run("choice by value and index", func(t *testing.T) {
		t.Parallel()
		q := Question{Text: "Pick", Choices: []string{"red", "green"}}
		answer, out, err := ask(t, "green\n", q)
		require.NoError(t, err)
		assert.Equal(t, "green", answer)
		assert.Equal(t, " Pick:\n  [0] red\n  [1] green\n > ", out)

		answer, _, err = ask(t, "0\n", q)
		require.NoError(t, err)
		assert.Equal(t, "red", answer)
	})
	t.Run("invalid choice asks again", func(t *testing.T) {
		t.Parallel()
		answer, out, err := ask(t, "blue\n1\n", Question{Text: "Pick", Choices: []string{"red", "green"}})
		require.NoError(t, err)
		assert.Equal(t, "green", answer)
		assert.Contains(t, out, ` value "blue" is invalid, choose one of "red", "green"`)
		assert.Equal(t, 2, strings.Count(out, " Pick:"))
	})
	t.Run("attempts exhausted", func(t *testing.T) {
		t.Parallel()
		_, out, err := ask(t, "blue\n7\nred\n", Question{Text: "Pick", Choices: []string{"red", "green"}, MaxAttempts: 2})
		require.Error(t, err)
		assert.EqualError(t, err, `value "7" is invalid, choose one of "red", "green"`)
		assert.Equal(t, 2, strings.Count(out, " Pick:"))
	})
	t.Run("hidden answer without terminal", func(t *testing.T) {
		t.Parallel()
		answer, _, err := ask(t, "s3cret\n", Question{Text: "Password", Hidden: true})
		require.NoError(t, err)
		assert.Equal(t, "s3cret", answer)
	})
	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var buf bytes.Buffer
		_, err := NewQuestionHelper(strings.NewReader("gopher\n")).Ask(ctx, NewStreamOutput(&buf), Question{Text: "Your name"})
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, buf.String())
	})
}
