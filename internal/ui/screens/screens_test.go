package screens

import (
	"testing"

	"blinkrest/internal/core/stability"

	"github.com/stretchr/testify/assert"
)

func TestCategoryColor(t *testing.T) {
	assert.Equal(t, colorGreen, CategoryColor(stability.CategoryNormal))
	assert.Equal(t, colorAmber, CategoryColor(stability.CategoryMarginal))
	assert.Equal(t, colorRed, CategoryColor(stability.CategoryDryEye))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.0s", formatSeconds(0))
	assert.Equal(t, "7.3s", formatSeconds(7.342))
	assert.Equal(t, "12.0s", formatSeconds(11.96))
}

func TestEyeLayoutScalesLidHeight(t *testing.T) {
	eye := newEyeView(colorInk)
	eye.layout.openness = 0.5
	eye.layout.Layout(eye.content.Objects, eye.layout.MinSize(nil))
	assert.Equal(t, eyeHeight/2, eye.white.Size().Height)
	assert.Equal(t, eyeWidth, eye.white.Size().Width)

	eye.layout.openness = 0
	eye.layout.Layout(eye.content.Objects, eye.layout.MinSize(nil))
	assert.Equal(t, float32(3), eye.white.Size().Height)
}
