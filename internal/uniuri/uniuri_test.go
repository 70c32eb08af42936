package uniuri

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	assert.Len(t, s, StdLen)

	for _, c := range s {
		assert.True(t, strings.ContainsRune(string(StdChars), c))
	}
}

func TestNewLen_Unique(t *testing.T) {
	seen := make(map[string]struct{})

	for range 200 {
		s := NewLen(SessionLen)
		require.Len(t, s, SessionLen)

		_, dup := seen[s]
		require.False(t, dup)
		seen[s] = struct{}{}
	}
}

func TestGenerate(t *testing.T) {
	s, err := Generate(0, StdChars)
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = Generate(5, []byte("a"))
	require.ErrorIs(t, err, ErrCharset)

	s, err = Generate(32, []byte("01"))
	require.NoError(t, err)
	assert.Len(t, s, 32)
	assert.Empty(t, strings.Trim(s, "01"))
}
