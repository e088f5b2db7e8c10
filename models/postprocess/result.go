// Package postprocess - Postprocessing utilities for models.
package postprocess

import "github.com/photoseek/go-detect/images"

// Result represents a single detection result.
type Result struct {
	// The bounding box of the result, in view pixel space.
	Box images.Rect
	// The objectness confidence score of the result, in [0, 1].
	Score float32
	// The predicted class index of the result.
	Class int
}
