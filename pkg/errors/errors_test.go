package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCodeThroughChain(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("outer: %w", Wrap("store_unavailable", "cache lookup failed", cause))

	require.True(t, IsCode(err, "store_unavailable"))
	require.False(t, IsCode(err, "invalid_input"))
	require.Equal(t, "store_unavailable", CodeOf(err))
	require.Equal(t, "cache lookup failed", MessageOf(err))
	require.ErrorIs(t, err, cause)
}

func TestCodeOfPlainError(t *testing.T) {
	require.Equal(t, "", CodeOf(errors.New("boom")))
	require.False(t, IsCode(errors.New("boom"), ""))
	require.Equal(t, "boom", MessageOf(errors.New("boom")))
}
