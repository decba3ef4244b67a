package imageutil

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MagnitudeOperator selects the kernels whose responses are combined by
// GradientMagnitude. It is implemented only by SingleKernelMagnitude and
// DualKernelMagnitude.
type MagnitudeOperator interface {
	kernels() []*Kernel
}

// SingleKernelMagnitude yields |k * I|, e.g. for Laplacian-style filters.
type SingleKernelMagnitude struct {
	Kernel *Kernel
}

func (m SingleKernelMagnitude) kernels() []*Kernel {
	return []*Kernel{m.Kernel}
}

// DualKernelMagnitude yields sqrt((X * I)^2 + (Y * I)^2), e.g. for
// Sobel, Prewitt and Roberts operators.
type DualKernelMagnitude struct {
	X, Y *Kernel
}

func (m DualKernelMagnitude) kernels() []*Kernel {
	return []*Kernel{m.X, m.Y}
}

// GradientMagnitude runs the operator's kernels over the intensity of img
// with OmitOutOfRange and combines the responses into a single-channel
// magnitude image. Only pixels inside the one-pixel border ring are
// computed; the ring stays zero. Magnitudes are truncated and clamped to
// [0, 255].
func GradientMagnitude(img *Buffer, op MagnitudeOperator) (*Buffer, error) {
	if err := checkImage("gradient magnitude", img); err != nil {
		return nil, err
	}
	if op == nil {
		return nil, invalidArgument("gradient magnitude: nil operator")
	}
	kernels := op.kernels()
	for _, k := range kernels {
		if err := k.Validate(); err != nil {
			return nil, err
		}
	}

	responses := make([]*mat.Dense, len(kernels))
	for i, k := range kernels {
		r, err := Response(img, k, OmitOutOfRange)
		if err != nil {
			return nil, err
		}
		responses[i] = r
	}

	dst := newLike(img, 1)
	forEachRow(1, img.height-1, func(y int) {
		for x := 1; x < img.width-1; x++ {
			var sq float64
			for _, r := range responses {
				v := r.At(y, x)
				sq += v * v
			}
			dst.Pix[y*dst.Stride+x] = truncUint8(math.Sqrt(sq))
		}
	})
	return dst, nil
}
