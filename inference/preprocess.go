package inference

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// PrepareInput converts an image into the CHW float tensor layout the
// model consumes, resizing to the given input dimensions.
//
// Pixels are normalized to [0, 1] and written planar: the full red
// channel, then green, then blue.
//
// Arguments:
//   - img: The source image.
//   - width, height: The model input dimensions.
//   - dst: The destination buffer; it must hold exactly 3*width*height
//     floats.
//
// Returns:
//   - error: An error if the destination buffer has the wrong size.
func PrepareInput(img image.Image, width, height int, dst []float32) error {
	channelSize := width * height
	if len(dst) != channelSize*3 {
		return errors.Errorf("destination holds %d floats, needs %d (3x%dx%d)",
			len(dst), channelSize*3, width, height)
	}
	red := dst[0:channelSize]
	green := dst[channelSize : channelSize*2]
	blue := dst[channelSize*2 : channelSize*3]

	// Resize the image using the Lanczos3 algorithm.
	img = resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			red[i] = float32(r>>8) / 255.0
			green[i] = float32(g>>8) / 255.0
			blue[i] = float32(b>>8) / 255.0
			i++
		}
	}
	return nil
}
