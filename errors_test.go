package bindict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorruptImageErrorMessage(t *testing.T) {
	err := corruptImage(42, "read past end of buffer")

	var corrupt *CorruptImageError
	require.True(t, errors.As(err, &corrupt))
	require.Equal(t, uint32(42), corrupt.Offset)
	require.Contains(t, corrupt.Error(), "42")
	require.Contains(t, corrupt.Error(), "read past end of buffer")
}

func TestWrapCorruptImagePreservesCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := wrapCorruptImage(7, "bad read", cause)

	var corrupt *CorruptImageError
	require.True(t, errors.As(err, &corrupt))
	require.ErrorIs(t, err, cause)
	require.Contains(t, corrupt.Error(), "underlying failure")
}

func TestEncodeOverflowErrorMessage(t *testing.T) {
	err := encodeOverflow(maxAddress + 1)

	var overflow *EncodeOverflowError
	require.True(t, errors.As(err, &overflow))
	require.Equal(t, uint32(maxAddress+1), overflow.Attempted)
	require.Contains(t, overflow.Error(), "24-bit")
}
