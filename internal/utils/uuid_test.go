package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUID(t *testing.T) {
	a := NewUID()
	b := NewUID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
