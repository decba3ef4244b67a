// Package imageutil provides the pure Go raster core used by every filter
// in imgfilters: an 8-bit image buffer, convolution with explicit border
// policies, Gaussian kernels and the Canny edge detector.
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromColor converts a color.Color to RGB.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Buffer is a dense, row-major raster of 8-bit intensities. A buffer holds
// either one channel (grayscale) or three interleaved channels (R, G, B).
// Its dimensions are fixed at construction.
type Buffer struct {
	// Pix holds the samples. The sample for channel c of pixel (x, y)
	// is at Pix[y*Stride+x*Channels+c].
	Pix []uint8
	// Stride is the distance in bytes between vertically adjacent pixels.
	Stride int
	// Channels is 1 or 3.
	Channels int

	width  int
	height int
}

// NewBuffer creates a zero-filled buffer. Width and height must be positive
// and channels must be 1 or 3.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidArgument("image size %dx%d must be positive", width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, invalidArgument("unsupported channel count %d", channels)
	}
	return newBuffer(width, height, channels), nil
}

// NewGrayBuffer creates a zero-filled single-channel buffer.
func NewGrayBuffer(width, height int) (*Buffer, error) {
	return NewBuffer(width, height, 1)
}

// newBuffer allocates a buffer whose dimensions were already validated.
func newBuffer(width, height, channels int) *Buffer {
	return &Buffer{
		Pix:      make([]uint8, width*height*channels),
		Stride:   width * channels,
		Channels: channels,
		width:    width,
		height:   height,
	}
}

// newLike allocates a zeroed buffer with the same size as b.
func newLike(b *Buffer, channels int) *Buffer {
	return newBuffer(b.width, b.height, channels)
}

// Width returns the image width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the image height.
func (b *Buffer) Height() int {
	return b.height
}

// Bounds returns the buffer's rectangle, anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// SameSize reports whether o has the same width and height as b.
func (b *Buffer) SameSize(o *Buffer) bool {
	return o != nil && b.width == o.width && b.height == o.height
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// At returns channel c of the pixel at (x, y).
func (b *Buffer) At(x, y, c int) uint8 {
	return b.Pix[y*b.Stride+x*b.Channels+c]
}

// Set stores v in channel c of the pixel at (x, y).
func (b *Buffer) Set(x, y, c int, v uint8) {
	b.Pix[y*b.Stride+x*b.Channels+c] = v
}

// GrayAt returns the first channel at (x, y). For single-channel buffers
// this is the intensity.
func (b *Buffer) GrayAt(x, y int) uint8 {
	return b.Pix[y*b.Stride+x*b.Channels]
}

// SetGray writes v into every channel of the pixel at (x, y).
func (b *Buffer) SetGray(x, y int, v uint8) {
	i := y*b.Stride + x*b.Channels
	for c := 0; c < b.Channels; c++ {
		b.Pix[i+c] = v
	}
}

// RGBAt returns the pixel at (x, y) as RGB. Grayscale pixels are
// replicated into all three components.
func (b *Buffer) RGBAt(x, y int) RGB {
	i := y*b.Stride + x*b.Channels
	if b.Channels == 1 {
		v := b.Pix[i]
		return RGB{R: v, G: v, B: v}
	}
	return RGB{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// SetRGB sets the pixel at (x, y). On a grayscale buffer the unweighted
// mean of the components is stored.
func (b *Buffer) SetRGB(x, y int, c RGB) {
	i := y*b.Stride + x*b.Channels
	if b.Channels == 1 {
		b.Pix[i] = uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
		return
	}
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
}

// Intensity returns the unweighted integer mean of the pixel's channels.
// This is the grayscale value every gradient operator works on.
func (b *Buffer) Intensity(x, y int) int {
	i := y*b.Stride + x*b.Channels
	if b.Channels == 1 {
		return int(b.Pix[i])
	}
	return (int(b.Pix[i]) + int(b.Pix[i+1]) + int(b.Pix[i+2])) / 3
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	clone := newLike(b, b.Channels)
	copy(clone.Pix, b.Pix)
	return clone
}

// BufferFromImage converts any image.Image to a Buffer. *image.Gray
// sources produce a single-channel buffer; everything else is decoded to
// three channels with alpha discarded.
func BufferFromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		buf, err := NewBuffer(bounds.Dx(), bounds.Dy(), 1)
		if err != nil {
			return nil, err
		}
		for y := 0; y < buf.height; y++ {
			row := g.Pix[g.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			copy(buf.Pix[y*buf.Stride:(y+1)*buf.Stride], row[:buf.width])
		}
		return buf, nil
	}

	buf, err := NewBuffer(bounds.Dx(), bounds.Dy(), 3)
	if err != nil {
		return nil, err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf.SetRGB(x-bounds.Min.X, y-bounds.Min.Y, RGBFromColor(img.At(x, y)))
		}
	}
	return buf, nil
}

// Image returns a standard library view of the buffer: *image.Gray for
// single-channel buffers, *image.RGBA otherwise. The pixels are copied.
func (b *Buffer) Image() image.Image {
	if b.Channels == 1 {
		g := image.NewGray(b.Bounds())
		copy(g.Pix, b.Pix)
		return g
	}
	rgba := image.NewRGBA(b.Bounds())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			rgba.SetRGBA(x, y, b.RGBAt(x, y).ToColor())
		}
	}
	return rgba
}

// checkImage validates an input buffer for an operation.
func checkImage(op string, b *Buffer) error {
	if b == nil || b.width <= 0 || b.height <= 0 || len(b.Pix) < b.height*b.Stride {
		return invalidArgument("%s: empty image", op)
	}
	return nil
}
