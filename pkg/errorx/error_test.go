package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	err := New(NotFound, "Not found quest %s", "q1")
	require.Equal(t, "Not found quest q1", err.Error())
	require.True(t, Is(err, NotFound))
	require.False(t, Is(err, InvalidState))

	wrapped := fmt.Errorf("engine: %w", err)
	require.True(t, Is(wrapped, NotFound))
	require.Equal(t, NotFound, CodeOf(wrapped))

	require.False(t, Is(errors.New("plain"), NotFound))
	require.Equal(t, Unknown.Code, CodeOf(errors.New("plain")))
}
