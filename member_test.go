package console

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMember(t *testing.T) {
	t.Parallel()

	t.Run("param", func(t *testing.T) {
		t.Parallel()
		m := Param[*string]("dryRun", Option{Shortcut: "n"})
		assert.Equal(t, "dryRun", m.Name())
		assert.Equal(t, "dry-run", m.InputName())
		assert.Equal(t, "$dryRun", m.String())
		assert.Equal(t, reflect.TypeFor[*string](), m.Type())
		assert.True(t, m.IsNullable())
		assert.False(t, m.HasDefault())
		assert.False(t, m.IsField())
		assert.True(t, HasMarker[Option](m))
		assert.False(t, HasMarker[Argument](m))
	})
	t.Run("field", func(t *testing.T) {
		t.Parallel()
		m := Field[string]("City", Argument{})
		assert.True(t, m.IsField())
		assert.Equal(t, "City", m.String())
		assert.Equal(t, "city", m.InputName())
		assert.False(t, m.IsNullable())
	})
	t.Run("interfaces are nullable", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Param[context.Context]("ctx").IsNullable())
		assert.False(t, Param[[]string]("names").IsNullable())
	})
	t.Run("default", func(t *testing.T) {
		t.Parallel()
		m := Param[int]("limit")
		withDefault := m.WithDefault(5)
		assert.False(t, m.HasDefault())
		assert.True(t, withDefault.HasDefault())
		assert.Equal(t, 5, withDefault.Default())

		nilDefault := Param[*int]("limit").WithDefault(nil)
		assert.True(t, nilDefault.HasDefault())
		assert.Nil(t, nilDefault.Default())

		assert.Panics(t, func() { m.WithDefault("five") })
	})
	t.Run("variadic", func(t *testing.T) {
		t.Parallel()
		m := Param[[]int]("ids").AsVariadic()
		assert.True(t, m.IsVariadic())
		assert.Equal(t, reflect.TypeFor[[]int](), m.Type())
		assert.Equal(t, reflect.TypeFor[int](), m.ValueType())
		assert.Panics(t, func() { Param[int]("id").AsVariadic() })
	})
	t.Run("markers", func(t *testing.T) {
		t.Parallel()
		m := Param[string]("name", Argument{Name: "who"})
		extended := m.WithMarkers(DisableResolver{Name: "default"}, DisableResolver{Name: "variadic"})
		assert.Len(t, m.Markers(), 1)
		assert.Len(t, extended.Markers(), 3)

		disabled := MarkersOf[DisableResolver](extended)
		require.Len(t, disabled, 2)
		assert.Equal(t, "default", disabled[0].Name)
		assert.Equal(t, "variadic", disabled[1].Name)

		a, ok := MarkerOf[Argument](extended)
		require.True(t, ok)
		assert.Equal(t, "who", a.Name)
		name, ok := argumentName(extended)
		require.True(t, ok)
		assert.Equal(t, "who", name)

		_, ok = MarkerOf[Ask](extended)
		assert.False(t, ok)
	})
	t.Run("disable by type", func(t *testing.T) {
		t.Parallel()
		d := Disable[*MapInputResolver]()
		assert.Equal(t, reflect.TypeFor[*MapInputResolver](), d.Type)
		assert.Empty(t, d.Name)
	})
}
