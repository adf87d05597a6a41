package console

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinition(t *testing.T) *Definition {
	t.Helper()
	def := &Definition{}
	require.NoError(t, def.AddArgument(InputArgument{Name: "name", Required: true}))
	require.NoError(t, def.AddArgument(InputArgument{Name: "files", IsArray: true}))
	require.NoError(t, def.AddOption(InputOption{Name: "verbose", Shortcut: "v", Mode: OptionValueNone}))
	require.NoError(t, def.AddOption(InputOption{Name: "format", Default: "text"}))
	require.NoError(t, def.AddOption(InputOption{Name: "tag", Mode: OptionValueIsArray}))
	return def
}

func parseOptions(t *testing.T, def *Definition, args ...string) *flag.FlagSet {
	t.Helper()
	fset := flag.NewFlagSet("test", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	OptionFlags(def, fset)
	require.NoError(t, fset.Parse(args))
	return fset
}

func TestBindInput(t *testing.T) {
	t.Parallel()

	t.Run("arguments and options", func(t *testing.T) {
		t.Parallel()
		def := testDefinition(t)
		fset := parseOptions(t, def, "-v", "--format", "json", "--tag", "a", "--tag", "b")

		in, err := BindInput(def, []string{"gopher", "one", "two"}, fset)
		require.NoError(t, err)
		assert.Equal(t, "gopher", in.Argument("name"))
		assert.Equal(t, []string{"one", "two"}, in.Argument("files"))
		assert.Equal(t, true, in.Option("verbose"))
		assert.Equal(t, true, in.Option("v"))
		assert.Equal(t, "json", in.Option("format"))
		assert.Equal(t, []string{"a", "b"}, in.Option("tag"))
		require.NoError(t, in.Validate())
	})
	t.Run("defaults come from the definition", func(t *testing.T) {
		t.Parallel()
		def := testDefinition(t)
		in, err := BindInput(def, nil, parseOptions(t, def))
		require.NoError(t, err)
		assert.Equal(t, false, in.Option("verbose"))
		assert.Equal(t, "text", in.Option("format"))
		assert.Nil(t, in.Option("tag"))
		assert.Equal(t, map[string]any{"verbose": false, "format": "text", "tag": nil}, in.Options())
		assert.Equal(t, map[string]any{"name": nil, "files": nil}, in.Arguments())

		var invalid *InvalidInputError
		require.ErrorAs(t, in.Validate(), &invalid)
		assert.Equal(t, `not enough arguments (missing: "name")`, invalid.Message)
	})
	t.Run("too many arguments", func(t *testing.T) {
		t.Parallel()
		def := &Definition{}
		require.NoError(t, def.AddArgument(InputArgument{Name: "name"}))
		_, err := BindInput(def, []string{"a", "b"}, nil)
		assert.EqualError(t, err, `too many arguments, expected arguments "name"`)

		_, err = BindInput(&Definition{}, []string{"a"}, nil)
		assert.EqualError(t, err, `no arguments expected, got "a"`)
	})
	t.Run("reset options", func(t *testing.T) {
		t.Parallel()
		def := testDefinition(t)
		fset := parseOptions(t, def, "-v", "--tag", "x")
		resetOptions(fset)

		in, err := BindInput(def, []string{"gopher"}, fset)
		require.NoError(t, err)
		assert.Equal(t, false, in.Option("verbose"))
		assert.Nil(t, in.Option("tag"))

		require.NoError(t, fset.Parse([]string{"--tag", "y"}))
		in, err = BindInput(def, []string{"gopher"}, fset)
		require.NoError(t, err)
		assert.Equal(t, []string{"y"}, in.Option("tag"))
	})
}

func TestArrayInput(t *testing.T) {
	t.Parallel()

	t.Run("without definition", func(t *testing.T) {
		t.Parallel()
		in := NewArrayInput(nil, map[string]any{"name": "gopher"}, map[string]any{"force": true})
		assert.True(t, in.HasArgument("name"))
		assert.False(t, in.HasArgument("other"))
		assert.True(t, in.HasOption("force"))
		assert.Equal(t, true, in.Option("force"))
		assert.Nil(t, in.Option("missing"))
		require.NoError(t, in.Validate())
	})
	t.Run("with definition", func(t *testing.T) {
		t.Parallel()
		def := testDefinition(t)
		in := NewArrayInput(def, nil, nil)
		assert.True(t, in.HasArgument("files"))
		assert.True(t, in.HasOption("v"))
		assert.False(t, in.HasOption("quiet"))

		in.SetOption("v", true)
		assert.Equal(t, true, in.Option("verbose"))
		in.SetArgument("name", "gopher")
		require.NoError(t, in.Validate())

		assert.False(t, in.IsInteractive())
		in.SetInteractive(true)
		assert.True(t, in.IsInteractive())
	})
	t.Run("empty list is missing", func(t *testing.T) {
		t.Parallel()
		def := &Definition{}
		require.NoError(t, def.AddArgument(InputArgument{Name: "files", Required: true, IsArray: true}))
		in := NewArrayInput(def, map[string]any{"files": []string{}}, nil)
		assert.Error(t, in.Validate())
	})
}
