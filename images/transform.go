package images

import (
	"github.com/chewxy/math32"
)

// Transform maps box edges from model input space into view pixel space.
//
// Edges are first scaled from model input coordinates to source image
// coordinates (ImgScaleX/Y), then aligned to the destination view
// (OffsetX/Y plus ViewScaleX/Y). The zero value is not useful; build one
// with FitTransform or fill every field.
type Transform struct {
	// ImgScaleX and ImgScaleY scale model input coordinates to source
	// image pixels.
	ImgScaleX float32 `json:"imgScaleX" yaml:"imgScaleX"`
	ImgScaleY float32 `json:"imgScaleY" yaml:"imgScaleY"`
	// ViewScaleX and ViewScaleY scale source image pixels to the view.
	ViewScaleX float32 `json:"viewScaleX" yaml:"viewScaleX"`
	ViewScaleY float32 `json:"viewScaleY" yaml:"viewScaleY"`
	// OffsetX and OffsetY translate the scaled box into the view.
	OffsetX float32 `json:"offsetX" yaml:"offsetX"`
	OffsetY float32 `json:"offsetY" yaml:"offsetY"`
}

// ApplyX maps a horizontal edge from model input space to view space.
func (t Transform) ApplyX(x float32) float32 {
	return t.OffsetX + t.ViewScaleX*(t.ImgScaleX*x)
}

// ApplyY maps a vertical edge from model input space to view space.
func (t Transform) ApplyY(y float32) float32 {
	return t.OffsetY + t.ViewScaleY*(t.ImgScaleY*y)
}

// FitTransform builds the Transform for an image rendered aspect-fit
// inside a view.
//
// Arguments:
//   - imageW, imageH: Dimensions of the source image in pixels.
//   - inputW, inputH: Dimensions of the model input the image was
//     resized to before inference.
//   - viewW, viewH: Dimensions of the destination view. The image is
//     scaled uniformly to fit and centered, with equal padding on the
//     shorter axis.
//
// Returns:
//   - Transform: The composed model-to-view mapping.
func FitTransform(imageW, imageH, inputW, inputH, viewW, viewH int) Transform {
	imgScaleX := float32(imageW) / float32(inputW)
	imgScaleY := float32(imageH) / float32(inputH)

	viewScale := math32.Min(
		float32(viewW)/float32(imageW),
		float32(viewH)/float32(imageH),
	)

	return Transform{
		ImgScaleX:  imgScaleX,
		ImgScaleY:  imgScaleY,
		ViewScaleX: viewScale,
		ViewScaleY: viewScale,
		OffsetX:    (float32(viewW) - viewScale*float32(imageW)) / 2,
		OffsetY:    (float32(viewH) - viewScale*float32(imageH)) / 2,
	}
}

// IdentityTransform returns a Transform that maps model input
// coordinates straight to image pixels with no view alignment.
func IdentityTransform(imageW, imageH, inputW, inputH int) Transform {
	return Transform{
		ImgScaleX:  float32(imageW) / float32(inputW),
		ImgScaleY:  float32(imageH) / float32(inputH),
		ViewScaleX: 1,
		ViewScaleY: 1,
	}
}
