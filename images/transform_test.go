package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFitTransform verifies the scale and offset factors computed for an
// image rendered aspect-fit inside a view.
func TestFitTransform(t *testing.T) {
	tests := []struct {
		name           string
		imageW, imageH int
		viewW, viewH   int
		wantScale      float32
		wantOffsetX    float32
		wantOffsetY    float32
	}{
		{
			name:   "landscape image in square view pads vertically",
			imageW: 1280, imageH: 720,
			viewW: 640, viewH: 640,
			wantScale:   0.5,
			wantOffsetX: 0,
			wantOffsetY: 140, // (640 - 0.5*720) / 2
		},
		{
			name:   "portrait image in square view pads horizontally",
			imageW: 720, imageH: 1280,
			viewW: 640, viewH: 640,
			wantScale:   0.5,
			wantOffsetX: 140,
			wantOffsetY: 0,
		},
		{
			name:   "exact fit has no padding",
			imageW: 640, imageH: 640,
			viewW: 640, viewH: 640,
			wantScale:   1,
			wantOffsetX: 0,
			wantOffsetY: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := FitTransform(tt.imageW, tt.imageH, 640, 640, tt.viewW, tt.viewH)
			assert.InDelta(t, tt.wantScale, tr.ViewScaleX, 1e-6)
			assert.InDelta(t, tt.wantScale, tr.ViewScaleY, 1e-6)
			assert.InDelta(t, tt.wantOffsetX, tr.OffsetX, 1e-6)
			assert.InDelta(t, tt.wantOffsetY, tr.OffsetY, 1e-6)
		})
	}
}

// TestTransformApply verifies that edges are scaled to image space before
// the view alignment is applied.
func TestTransformApply(t *testing.T) {
	tr := Transform{
		ImgScaleX:  2,
		ImgScaleY:  3,
		ViewScaleX: 0.5,
		ViewScaleY: 0.25,
		OffsetX:    10,
		OffsetY:    20,
	}

	// x: 10 + 0.5 * (2 * 100) = 110
	assert.InDelta(t, 110, tr.ApplyX(100), 1e-6)
	// y: 20 + 0.25 * (3 * 100) = 95
	assert.InDelta(t, 95, tr.ApplyY(100), 1e-6)
}

// TestIdentityTransform verifies the no-view mapping scales straight to
// image pixels.
func TestIdentityTransform(t *testing.T) {
	tr := IdentityTransform(1280, 720, 640, 640)
	assert.InDelta(t, 2.0, tr.ImgScaleX, 1e-6)
	assert.InDelta(t, 1.125, tr.ImgScaleY, 1e-6)
	assert.InDelta(t, 640, tr.ApplyX(320), 1e-4)
	assert.InDelta(t, 360, tr.ApplyY(320), 1e-4)
}
