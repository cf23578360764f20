package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-4, 0, 100))
	assert.Equal(t, 100.0, Clamp(120, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 43.24, RoundTo(43.2389, 2))
	assert.Equal(t, 2.3, RoundTo(2.345, 1))
}

func TestContainsAnyFold(t *testing.T) {
	match, ok := ContainsAnyFold("Tomato LEAF Blight", []string{"powdery mildew", "leaf blight", "blight"})
	assert.True(t, ok)
	assert.Equal(t, "leaf blight", match)

	_, ok = ContainsAnyFold("Healthy Plant", []string{"rust", "rot"})
	assert.False(t, ok)
}
