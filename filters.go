// Package imgfilters provides single-pass raster filters built on the
// imageutil core: tone curves, histogram operations, synthetic noise,
// smoothing, sharpening and edge detection. Every filter returns a new
// buffer and leaves its input untouched.
//
// Filters are also reachable by name through Lookup, which is how the
// imgfilter command drives them.
package imgfilters

import (
	"maps"
	"slices"

	"github.com/pkg/errors"
	"github.com/wbrown/imgfilters/imageutil"
)

// Params carries the numeric parameters of every registered filter. Each
// filter reads only the fields it needs.
type Params struct {
	// Canny
	Sigma   float64
	Low     float64
	High    float64
	Linking imageutil.Linking

	// Tone curves
	Gamma    float64
	InputMin int
	InputMax int

	// Smoothing window side
	Size int

	// Noise
	Amount float64
	Mean   float64
	StdDev float64
	Seed   uint64
}

// DefaultParams returns the parameters the imgfilter command starts from.
func DefaultParams() Params {
	return Params{
		Sigma:    imageutil.DefaultCannySigma,
		Low:      imageutil.DefaultCannyLow,
		High:     imageutil.DefaultCannyHigh,
		Linking:  imageutil.LinkSingleHop,
		Gamma:    2.2,
		InputMin: 0,
		InputMax: 255,
		Size:     3,
		Amount:   0.05,
		Mean:     0,
		StdDev:   25,
		Seed:     1,
	}
}

// Filter transforms an image according to p.
type Filter func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error)

var registry = map[string]Filter{
	"grayscale": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return imageutil.Grayscale(img, imageutil.GrayMean)
	},
	"luma": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return imageutil.Grayscale(img, imageutil.GrayLuma)
	},
	"bt601": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return imageutil.Grayscale(img, imageutil.GrayBT601)
	},
	"equalize": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return EqualizeHistogram(img)
	},
	"stretch": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return StretchHistogram(img)
	},
	"linear": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return LinearStretch(img, p.InputMin, p.InputMax)
	},
	"piecewise": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return PiecewiseLinear(img)
	},
	"power": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return PowerLaw(img, p.Gamma)
	},
	"logarithmic": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return Logarithmic(img)
	},
	"gamma": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return GammaCorrection(img, p.Gamma)
	},
	"gaussian-noise": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return AddGaussianNoise(img, p.Mean, p.StdDev, p.Seed)
	},
	"salt-pepper": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return AddSaltAndPepperNoise(img, p.Amount, p.Seed)
	},
	"poisson-noise": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return AddPoissonNoise(img, p.Seed)
	},
	"median": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return MedianFilter(img)
	},
	"average": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return AverageFilter(img, p.Size)
	},
	"gaussian-smooth": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return GaussianSmooth(img)
	},
	"gaussian-blur": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return imageutil.GaussianBlur(img, p.Sigma)
	},
	"laplacian-sharpen": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return LaplacianSharpen(img)
	},
	"sharpen": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return Sharpen(img)
	},
	"sobel": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return Sobel(img)
	},
	"prewitt": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return Prewitt(img)
	},
	"roberts": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return Roberts(img)
	},
	"log": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return LoG(img)
	},
	"marr-hildreth": func(img *imageutil.Buffer, _ Params) (*imageutil.Buffer, error) {
		return MarrHildreth(img)
	},
	"canny": func(img *imageutil.Buffer, p Params) (*imageutil.Buffer, error) {
		return imageutil.CannyWith(img, imageutil.CannyOptions{
			Sigma:   p.Sigma,
			Low:     p.Low,
			High:    p.High,
			Linking: p.Linking,
		})
	},
}

// Lookup returns the filter registered under name.
func Lookup(name string) (Filter, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered filter names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

func invalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(imageutil.ErrInvalidArgument, format, args...)
}

func checkImage(op string, img *imageutil.Buffer) error {
	if img == nil || img.Width() <= 0 || img.Height() <= 0 || len(img.Pix) < img.Height()*img.Stride {
		return invalidArgument("%s: empty image", op)
	}
	return nil
}
