package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAvatarEmoji(t *testing.T) {
	assert.Equal(t, "🏃", NormalizeAvatarEmoji("🏃"))
	assert.Equal(t, "💪", NormalizeAvatarEmoji(""))
	assert.Equal(t, "💪", NormalizeAvatarEmoji("<script>"))
	assert.Equal(t, "💪", NormalizeAvatarEmoji("🍕"))
}
