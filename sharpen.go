package imgfilters

import "github.com/wbrown/imgfilters/imageutil"

// LaplacianSharpen folds img to truncated BT.601 gray and applies the
// 4-neighbour sharpening kernel (centre 5). The result is single-channel
// with a zero one-pixel border.
func LaplacianSharpen(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	if err := checkImage("laplacian sharpen", img); err != nil {
		return nil, err
	}
	gray, err := imageutil.Grayscale(img, imageutil.GrayBT601Trunc)
	if err != nil {
		return nil, err
	}
	return imageutil.Correlate(gray, imageutil.KernelLaplacianSharpen.Kernel(), imageutil.SkipBorder)
}

// Sharpen applies the 8-neighbour sharpening kernel (centre 9) to every
// channel. The one-pixel border is left at zero.
func Sharpen(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	return imageutil.Correlate(img, imageutil.KernelSharpen.Kernel(), imageutil.SkipBorder)
}
