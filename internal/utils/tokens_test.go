package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDLengthAndAlphabet(t *testing.T) {
	id, err := NewID(10)
	require.NoError(t, err)
	assert.Len(t, id, 10)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(idAlphabet, r), "caractere fora do alfabeto: %q", r)
	}
}

func TestNewIDDefaultLength(t *testing.T) {
	id, err := NewID(0)
	require.NoError(t, err)
	assert.Len(t, id, 16)
}

func TestNewIDIsRandom(t *testing.T) {
	a, err := NewID(32)
	require.NoError(t, err)
	b, err := NewID(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
