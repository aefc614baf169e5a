package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loggedOut struct{}

func (loggedOut) CurrentRole() (string, bool) { return "", false }

func TestSubscribe_BajaLiberaElOrden(t *testing.T) {
	c := NewController(loggedOut{}, nil, nil)
	keep := c.Subscribe(func(PageEntered) {})

	for i := 0; i < 100; i++ {
		cancel := c.Subscribe(func(PageEntered) {})
		cancel()
	}

	assert.Len(t, c.order, 1)
	assert.Len(t, c.listeners, 1)

	keep()
	assert.Empty(t, c.order)
	assert.Empty(t, c.listeners)
}
