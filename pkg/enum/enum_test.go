package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("create a enum of string", func(t *testing.T) {
		type EnumString string

		bar := New(EnumString("bar"))
		foo := New(EnumString("foo"))
		require.Equal(t, bar, EnumString("bar"))

		v, err := ToEnum[EnumString]("bar")
		require.NoError(t, err)
		require.Equal(t, v, bar)

		_, err = ToEnum[EnumString]("Bar")
		require.Error(t, err)

		require.True(t, IsValid(foo))
		require.False(t, IsValid(EnumString("baz")))
		require.Equal(t, []EnumString{bar, foo}, Values[EnumString]())
		require.Equal(t, 1, Index(foo))
		require.Equal(t, -1, Index(EnumString("baz")))
	})

	t.Run("create a enum of int", func(t *testing.T) {
		type EnumInt int

		bar := New(EnumInt(100))
		require.Equal(t, bar, EnumInt(100))

		v, err := ToEnum[EnumInt]("100")
		require.NoError(t, err)
		require.Equal(t, v, bar)

		_, err = ToEnum[EnumInt]("200")
		require.Error(t, err)
	})

	t.Run("register twice keeps a single member", func(t *testing.T) {
		type EnumTwice string

		New(EnumTwice("a"))
		New(EnumTwice("a"))
		require.Len(t, Values[EnumTwice](), 1)
	})

	t.Run("unknown enum type", func(t *testing.T) {
		type EnumUnknown string

		_, err := ToEnum[EnumUnknown]("a")
		require.Error(t, err)
		require.Nil(t, Values[EnumUnknown]())
		require.Equal(t, -1, Index(EnumUnknown("a")))
	})
}
