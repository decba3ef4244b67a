package imageutil

import "fmt"

// Kernel represents a convolution kernel. Values is row-major:
// Values[ky][kx] weights the sample at offset (kx-Width/2, ky-Height/2).
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice. The slice is used as is.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// Validate checks that the kernel is square, has an odd side and that every
// row has the declared width.
func (k *Kernel) Validate() error {
	if k == nil || k.Width == 0 || k.Height == 0 {
		return invalidArgument("empty kernel")
	}
	if k.Width != k.Height {
		return invalidArgument("kernel is %dx%d, must be square", k.Width, k.Height)
	}
	if k.Width%2 == 0 {
		return invalidArgument("kernel side %d must be odd", k.Width)
	}
	if len(k.Values) != k.Height {
		return invalidArgument("kernel has %d rows, want %d", len(k.Values), k.Height)
	}
	for i, row := range k.Values {
		if len(row) != k.Width {
			return invalidArgument("kernel row %d has %d values, want %d", i, len(row), k.Width)
		}
	}
	return nil
}

// Sum returns the sum of all weights.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, row := range k.Values {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Clone returns a deep copy of the kernel.
func (k *Kernel) Clone() *Kernel {
	values := make([][]float64, len(k.Values))
	for i, row := range k.Values {
		values[i] = append([]float64(nil), row...)
	}
	return &Kernel{Values: values, Width: k.Width, Height: k.Height}
}

// KernelName identifies one of the fixed kernels used by the filters.
type KernelName int

const (
	// KernelSobelX differentiates along x (responds to vertical edges).
	KernelSobelX KernelName = iota
	// KernelSobelY differentiates along y (responds to horizontal edges).
	KernelSobelY
	KernelPrewittX
	KernelPrewittY
	// KernelRobertsX and KernelRobertsY are the 2x2 Roberts cross
	// operators embedded in the top-left corner of a 3x3 kernel, so their
	// taps sit at offsets -1 and 0 around the anchor.
	KernelRobertsX
	KernelRobertsY
	// KernelLoG is the 4-neighbour Laplacian with a negative centre.
	KernelLoG
	// KernelLaplacian is the 4-neighbour Laplacian with a positive centre.
	KernelLaplacian
	// KernelGaussian3 is the unnormalised 1-2-1 binomial kernel (sum 16).
	KernelGaussian3
	// KernelGaussian3Normalized is KernelGaussian3 divided by 16.
	KernelGaussian3Normalized
	// KernelSharpen is the 8-neighbour sharpening kernel (centre 9).
	KernelSharpen
	// KernelLaplacianSharpen is the 4-neighbour sharpening kernel (centre 5).
	KernelLaplacianSharpen
)

var kernelNames = [...]string{
	KernelSobelX:              "sobel-x",
	KernelSobelY:              "sobel-y",
	KernelPrewittX:            "prewitt-x",
	KernelPrewittY:            "prewitt-y",
	KernelRobertsX:            "roberts-x",
	KernelRobertsY:            "roberts-y",
	KernelLoG:                 "log",
	KernelLaplacian:           "laplacian",
	KernelGaussian3:           "gaussian3",
	KernelGaussian3Normalized: "gaussian3-normalized",
	KernelSharpen:             "sharpen",
	KernelLaplacianSharpen:    "laplacian-sharpen",
}

// String returns the kernel's short name.
func (n KernelName) String() string {
	if n < 0 || int(n) >= len(kernelNames) {
		return fmt.Sprintf("KernelName(%d)", int(n))
	}
	return kernelNames[n]
}

// Kernel returns a freshly allocated copy of the named kernel, or nil if
// the name is unknown. Callers may modify the result freely.
func (n KernelName) Kernel() *Kernel {
	switch n {
	case KernelSobelX:
		return NewKernel([][]float64{
			{-1, 0, 1},
			{-2, 0, 2},
			{-1, 0, 1},
		})
	case KernelSobelY:
		return NewKernel([][]float64{
			{-1, -2, -1},
			{0, 0, 0},
			{1, 2, 1},
		})
	case KernelPrewittX:
		return NewKernel([][]float64{
			{-1, 0, 1},
			{-1, 0, 1},
			{-1, 0, 1},
		})
	case KernelPrewittY:
		return NewKernel([][]float64{
			{-1, -1, -1},
			{0, 0, 0},
			{1, 1, 1},
		})
	case KernelRobertsX:
		return NewKernel([][]float64{
			{1, 0, 0},
			{0, -1, 0},
			{0, 0, 0},
		})
	case KernelRobertsY:
		return NewKernel([][]float64{
			{0, -1, 0},
			{1, 0, 0},
			{0, 0, 0},
		})
	case KernelLoG:
		return NewKernel([][]float64{
			{0, 1, 0},
			{1, -4, 1},
			{0, 1, 0},
		})
	case KernelLaplacian:
		return NewKernel([][]float64{
			{0, -1, 0},
			{-1, 4, -1},
			{0, -1, 0},
		})
	case KernelGaussian3:
		return NewKernel([][]float64{
			{1, 2, 1},
			{2, 4, 2},
			{1, 2, 1},
		})
	case KernelGaussian3Normalized:
		return NewKernel([][]float64{
			{1.0 / 16, 2.0 / 16, 1.0 / 16},
			{2.0 / 16, 4.0 / 16, 2.0 / 16},
			{1.0 / 16, 2.0 / 16, 1.0 / 16},
		})
	case KernelSharpen:
		return NewKernel([][]float64{
			{-1, -1, -1},
			{-1, 9, -1},
			{-1, -1, -1},
		})
	case KernelLaplacianSharpen:
		return NewKernel([][]float64{
			{0, -1, 0},
			{-1, 5, -1},
			{0, -1, 0},
		})
	}
	return nil
}
