package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShareToken(t *testing.T) {
	token, err := NewShareToken()
	require.NoError(t, err)
	assert.Len(t, token, shareLength)
	for _, c := range token {
		assert.True(t, strings.ContainsRune(shareAlphabet, c), "unexpected char %q", c)
	}
}

func TestNewAdminToken(t *testing.T) {
	token, err := NewAdminToken()
	require.NoError(t, err)
	assert.Len(t, token, adminLength)
	for _, c := range token {
		assert.True(t, strings.ContainsRune(adminAlphabet, c), "unexpected char %q", c)
	}
}

func TestTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		token, err := NewShareToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "duplicate token %s", token)
		seen[token] = true
	}
}
