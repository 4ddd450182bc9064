package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type constant uint16

func (c constant) Forward(command uint32, negate bool) uint16 {
	return uint16(c)
}

func TestUnanimous(t *testing.T) {
	out, ok := Unanimous(7, []constant{3, 3, 3})
	assert.True(t, ok)
	assert.Equal(t, uint16(3), out)

	_, ok = Unanimous(7, []constant{3, 2, 3})
	assert.False(t, ok)

	_, ok = Unanimous(7, []constant{})
	assert.False(t, ok)
}
