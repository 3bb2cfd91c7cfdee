package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pnidkit/internal/domain"
)

func TestRectContains(t *testing.T) {
	r := domain.Rect{Min: domain.Point{X: 0, Y: 0}, Max: domain.Point{X: 840, Y: 594}}

	tests := []struct {
		name string
		p    domain.Point
		want bool
	}{
		{"interior", domain.Point{X: 420, Y: 297}, true},
		{"one unit inside corner", domain.Point{X: 1, Y: 1}, true},
		{"left edge", domain.Point{X: 0, Y: 297}, false},
		{"right edge", domain.Point{X: 840, Y: 297}, false},
		{"bottom edge", domain.Point{X: 420, Y: 0}, false},
		{"top edge", domain.Point{X: 420, Y: 594}, false},
		{"corner", domain.Point{X: 840, Y: 594}, false},
		{"outside", domain.Point{X: -5, Y: 700}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRectSharedEdge(t *testing.T) {
	left := domain.Rect{Min: domain.Point{X: 0, Y: 0}, Max: domain.Point{X: 100, Y: 100}}
	right := domain.Rect{Min: domain.Point{X: 100, Y: 0}, Max: domain.Point{X: 200, Y: 100}}
	p := domain.Point{X: 100, Y: 50}

	assert.False(t, left.Contains(p))
	assert.False(t, right.Contains(p))
}

func TestRectValidAndMid(t *testing.T) {
	r := domain.Rect{Min: domain.Point{X: 10, Y: 0}, Max: domain.Point{X: 30, Y: 5}}
	assert.True(t, r.Valid())
	assert.Equal(t, 20.0, r.MidX())
	assert.Equal(t, 20.0, r.Width())
	assert.Equal(t, 5.0, r.Height())

	flat := domain.Rect{Min: domain.Point{X: 0, Y: 5}, Max: domain.Point{X: 10, Y: 5}}
	assert.False(t, flat.Valid())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, domain.Round2(12.3456))
	assert.Equal(t, -0.5, domain.Round2(-0.499))
}
