package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	// This is the closest equivalent to OpenCV's INTER_AREA.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	// Equivalent to OpenCV's INTER_LINEAR.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize returns img scaled to width x height. The channel count is
// preserved.
func Resize(img *Buffer, width, height int, interp Interpolation) (*Buffer, error) {
	if err := checkImage("resize", img); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, invalidArgument("resize target %dx%d must be positive", width, height)
	}
	dstRect := image.Rect(0, 0, width, height)

	if img.Channels == 1 {
		src := img.Image().(*image.Gray)
		dst := image.NewGray(dstRect)
		interp.scaler().Scale(dst, dstRect, src, src.Bounds(), draw.Src, nil)
		return BufferFromImage(dst)
	}
	src := img.Image()
	dst := image.NewRGBA(dstRect)
	interp.scaler().Scale(dst, dstRect, src, src.Bounds(), draw.Src, nil)
	return BufferFromImage(dst)
}

// ResizeToWidth resizes an image to the specified width while maintaining
// aspect ratio.
func ResizeToWidth(img *Buffer, width int, interp Interpolation) (*Buffer, error) {
	if err := checkImage("resize", img); err != nil {
		return nil, err
	}
	height := img.height * width / img.width
	if height < 1 {
		height = 1
	}
	return Resize(img, width, height, interp)
}
