package imageutil

import "math"

// GaussianKernelSize returns the side of the kernel GaussianKernel builds
// for sigma: round(6*sigma) bumped to the next odd number, at least 3.
func GaussianKernelSize(sigma float64) int {
	size := int(math.Round(6 * sigma))
	if size%2 == 0 {
		size++
	}
	if size < 3 {
		size = 3
	}
	return size
}

// GaussianKernel builds a normalized 2D Gaussian kernel for sigma. The
// weights sum to 1.
func GaussianKernel(sigma float64) (*Kernel, error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, invalidArgument("sigma %v must be positive and finite", sigma)
	}
	size := GaussianKernelSize(sigma)
	radius := size / 2
	twoSigmaSq := 2 * sigma * sigma

	values := make([][]float64, size)
	var sum float64
	for y := -radius; y <= radius; y++ {
		row := make([]float64, size)
		for x := -radius; x <= radius; x++ {
			w := math.Exp(-float64(x*x+y*y)/twoSigmaSq) / (math.Pi * twoSigmaSq)
			row[x+radius] = w
			sum += w
		}
		values[y+radius] = row
	}
	for _, row := range values {
		for i := range row {
			row[i] /= sum
		}
	}
	return NewKernel(values), nil
}

// GaussianBlur smooths every channel of img with a Gaussian kernel for
// sigma. Pixels within half a kernel of the border are left at zero.
func GaussianBlur(img *Buffer, sigma float64) (*Buffer, error) {
	kernel, err := GaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	return Correlate(img, kernel, SkipBorder)
}
