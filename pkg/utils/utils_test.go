package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandToken(t *testing.T) {
	a := RandToken(48)
	b := RandToken(48)

	assert.Len(t, a, 48)
	assert.Len(t, b, 48)
	assert.NotEqual(t, a, b)

	for _, r := range a {
		assert.Contains(t, tokenCharset, string(r))
	}
}
