package imgfilters

import "github.com/wbrown/imgfilters/imageutil"

func dual(x, y imageutil.KernelName) imageutil.MagnitudeOperator {
	return imageutil.DualKernelMagnitude{X: x.Kernel(), Y: y.Kernel()}
}

func single(k imageutil.KernelName) imageutil.MagnitudeOperator {
	return imageutil.SingleKernelMagnitude{Kernel: k.Kernel()}
}

// Sobel returns the Sobel gradient magnitude of img's intensity.
func Sobel(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	return imageutil.GradientMagnitude(img, dual(imageutil.KernelSobelX, imageutil.KernelSobelY))
}

// Prewitt returns the Prewitt gradient magnitude of img's intensity.
func Prewitt(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	return imageutil.GradientMagnitude(img, dual(imageutil.KernelPrewittX, imageutil.KernelPrewittY))
}

// Roberts returns the Roberts cross gradient magnitude of img's intensity.
func Roberts(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	return imageutil.GradientMagnitude(img, dual(imageutil.KernelRobertsX, imageutil.KernelRobertsY))
}

// LoG returns the absolute 4-neighbour Laplacian response.
func LoG(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	return imageutil.GradientMagnitude(img, single(imageutil.KernelLoG))
}

// MarrHildreth smooths with the unnormalised 3x3 binomial kernel, which
// saturates quickly, and then takes the absolute Laplacian of the result.
func MarrHildreth(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	smoothed, err := imageutil.GradientMagnitude(img, single(imageutil.KernelGaussian3))
	if err != nil {
		return nil, err
	}
	return imageutil.GradientMagnitude(smoothed, single(imageutil.KernelLaplacian))
}
