package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHeader(t *testing.T) {
	l := NewLayout(80, 24)

	calm := l.RenderHeader("TankTrack", "all caught up", false)
	assert.Contains(t, calm, "TankTrack")
	assert.Contains(t, calm, "all caught up")

	alert := l.RenderHeader("TankTrack", "3 overdue", true)
	assert.Contains(t, alert, "3 overdue")
}

func TestContentHeight(t *testing.T) {
	l := NewLayout(80, 24)
	assert.Equal(t, 22, l.ContentHeight())
	assert.Equal(t, 80, l.ContentWidth())
}
