package imageutil

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BorderPolicy selects how a convolution treats kernel taps that fall
// outside the image.
type BorderPolicy int

const (
	// OmitOutOfRange skips taps outside the image. The weighted sum runs
	// over the in-bounds taps only, with no renormalization.
	OmitOutOfRange BorderPolicy = iota
	// SkipBorder computes only pixels whose whole kernel footprint lies
	// inside the image, i.e. [half, dim-half) on both axes. Every other
	// output pixel stays zero.
	SkipBorder
)

// String returns the policy name.
func (p BorderPolicy) String() string {
	switch p {
	case OmitOutOfRange:
		return "omit-out-of-range"
	case SkipBorder:
		return "skip-border"
	}
	return "unknown"
}

// region returns the output rectangle [x0,x1) x [y0,y1) computed under
// the policy.
func (p BorderPolicy) region(width, height, half int) (x0, y0, x1, y1 int, err error) {
	switch p {
	case OmitOutOfRange:
		return 0, 0, width, height, nil
	case SkipBorder:
		return half, half, width - half, height - half, nil
	}
	return 0, 0, 0, 0, invalidArgument("unknown border policy %d", int(p))
}

// Correlate applies kernel to every channel of img independently and
// returns a new buffer with the same size and channel count. Each output
// sample is the raw weighted sum clamped to [0, 255] with the fractional
// part truncated. The kernel is not flipped.
func Correlate(img *Buffer, kernel *Kernel, policy BorderPolicy) (*Buffer, error) {
	if err := checkImage("correlate", img); err != nil {
		return nil, err
	}
	if err := kernel.Validate(); err != nil {
		return nil, err
	}
	width, height, channels := img.width, img.height, img.Channels
	half := kernel.Width / 2
	x0, y0, x1, y1, err := policy.region(width, height, half)
	if err != nil {
		return nil, err
	}

	dst := newLike(img, channels)
	forEachRow(y0, y1, func(y int) {
		var sums [3]float64
		for x := x0; x < x1; x++ {
			sums = [3]float64{}
			for ky := 0; ky < kernel.Height; ky++ {
				sy := y + ky - half
				if sy < 0 || sy >= height {
					continue
				}
				for kx := 0; kx < kernel.Width; kx++ {
					sx := x + kx - half
					if sx < 0 || sx >= width {
						continue
					}
					k := kernel.Values[ky][kx]
					i := sy*img.Stride + sx*channels
					for c := 0; c < channels; c++ {
						sums[c] += float64(img.Pix[i+c]) * k
					}
				}
			}
			o := y*dst.Stride + x*channels
			for c := 0; c < channels; c++ {
				dst.Pix[o+c] = truncUint8(sums[c])
			}
		}
	})
	return dst, nil
}

// Response applies kernel to the intensity of img (the unweighted mean of
// each pixel's channels) and returns the raw, unclamped weighted sums as
// a height x width matrix. Pixels outside the policy's region are zero.
func Response(img *Buffer, kernel *Kernel, policy BorderPolicy) (*mat.Dense, error) {
	if err := checkImage("response", img); err != nil {
		return nil, err
	}
	if err := kernel.Validate(); err != nil {
		return nil, err
	}
	width, height := img.width, img.height
	half := kernel.Width / 2
	x0, y0, x1, y1, err := policy.region(width, height, half)
	if err != nil {
		return nil, err
	}

	gray := intensities(img)
	dst := mat.NewDense(height, width, nil)
	forEachRow(y0, y1, func(y int) {
		for x := x0; x < x1; x++ {
			var sum float64
			for ky := 0; ky < kernel.Height; ky++ {
				sy := y + ky - half
				if sy < 0 || sy >= height {
					continue
				}
				for kx := 0; kx < kernel.Width; kx++ {
					sx := x + kx - half
					if sx < 0 || sx >= width {
						continue
					}
					sum += float64(gray[sy*width+sx]) * kernel.Values[ky][kx]
				}
			}
			dst.Set(y, x, sum)
		}
	})
	return dst, nil
}

// intensities returns the integer channel mean of every pixel, row-major.
func intensities(img *Buffer) []int {
	gray := make([]int, img.width*img.height)
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			gray[y*img.width+x] = img.Intensity(x, y)
		}
	}
	return gray
}

// clampInt clamps an integer to the given range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 clamps a float64 to [0, 255] and rounds to the nearest
// integer.
func clampUint8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// truncUint8 clamps a float64 to [0, 255] and truncates toward zero.
func truncUint8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
