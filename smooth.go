package imgfilters

import "github.com/wbrown/imgfilters/imageutil"

// integral is a summed-area table of one channel, padded with a leading
// zero row and column so that sum(x0, y0, x1, y1) needs no bounds checks.
type integral struct {
	sums   []int
	stride int
}

func newIntegral(img *imageutil.Buffer, c int) *integral {
	width, height := img.Width(), img.Height()
	t := &integral{
		sums:   make([]int, (width+1)*(height+1)),
		stride: width + 1,
	}
	for y := 0; y < height; y++ {
		row := 0
		for x := 0; x < width; x++ {
			row += int(img.At(x, y, c))
			t.sums[(y+1)*t.stride+x+1] = t.sums[y*t.stride+x+1] + row
		}
	}
	return t
}

// sum returns the sum over [x0, x1) x [y0, y1).
func (t *integral) sum(x0, y0, x1, y1 int) int {
	return t.sums[y1*t.stride+x1] - t.sums[y0*t.stride+x1] -
		t.sums[y1*t.stride+x0] + t.sums[y0*t.stride+x0]
}

// AverageFilter replaces every channel with the mean of a size x size box.
// The box spans offsets [-size/2, size-size/2) so even sizes are allowed.
// Taps outside the image are omitted but the divisor stays size², which
// darkens the border. The division is integer.
func AverageFilter(img *imageutil.Buffer, size int) (*imageutil.Buffer, error) {
	if err := checkImage("average", img); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, invalidArgument("average window %d must be at least 1", size)
	}
	width, height, channels := img.Width(), img.Height(), img.Channels
	dst, err := imageutil.NewBuffer(width, height, channels)
	if err != nil {
		return nil, err
	}

	area := size * size
	for c := 0; c < channels; c++ {
		t := newIntegral(img, c)
		for y := 0; y < height; y++ {
			y0 := clampInt(y-size/2, 0, height)
			y1 := clampInt(y-size/2+size, 0, height)
			for x := 0; x < width; x++ {
				x0 := clampInt(x-size/2, 0, width)
				x1 := clampInt(x-size/2+size, 0, width)
				dst.Set(x, y, c, uint8(t.sum(x0, y0, x1, y1)/area))
			}
		}
	}
	return dst, nil
}

// GaussianSmooth applies the normalized 3x3 binomial kernel to every
// channel. Taps outside the image are omitted.
func GaussianSmooth(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	return imageutil.Correlate(img, imageutil.KernelGaussian3Normalized.Kernel(), imageutil.OmitOutOfRange)
}
