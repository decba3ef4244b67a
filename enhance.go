package imgfilters

import (
	"math"

	"github.com/wbrown/imgfilters/imageutil"
)

// toneCurve maps every 8-bit sample value to a new one.
type toneCurve [256]uint8

func buildCurve(f func(v float64) float64) *toneCurve {
	var c toneCurve
	for i := range c {
		c[i] = truncSample(f(float64(i)))
	}
	return &c
}

// apply maps every sample of every channel through the curve.
func (c *toneCurve) apply(op string, img *imageutil.Buffer) (*imageutil.Buffer, error) {
	if err := checkImage(op, img); err != nil {
		return nil, err
	}
	dst := img.Clone()
	for i, v := range dst.Pix {
		dst.Pix[i] = c[v]
	}
	return dst, nil
}

// truncSample clamps v to [0, 255] and drops the fractional part.
func truncSample(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// LinearStretch maps [lo, hi] linearly onto [0, 255]. Values outside the
// input range saturate.
func LinearStretch(img *imageutil.Buffer, lo, hi int) (*imageutil.Buffer, error) {
	if hi <= lo {
		return nil, invalidArgument("linear stretch range [%d, %d] is empty", lo, hi)
	}
	var c toneCurve
	for i := range c {
		v := (i - lo) * 255 / (hi - lo)
		c[i] = uint8(clampInt(v, 0, 255))
	}
	return c.apply("linear stretch", img)
}

// PiecewiseLinear doubles every sample below 128 and keeps the rest.
func PiecewiseLinear(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	c := buildCurve(func(v float64) float64 {
		if v < 128 {
			return 2 * v
		}
		return v
	})
	return c.apply("piecewise linear", img)
}

// PowerLaw computes 255 * (v/255)^gamma. Gamma above 1 darkens.
func PowerLaw(img *imageutil.Buffer, gamma float64) (*imageutil.Buffer, error) {
	if !(gamma > 0) || math.IsInf(gamma, 1) {
		return nil, invalidArgument("gamma %v must be positive and finite", gamma)
	}
	c := buildCurve(func(v float64) float64 {
		return math.Pow(v/255, gamma) * 255
	})
	return c.apply("power law", img)
}

// Logarithmic computes 255 * log(1+v) / log(256).
func Logarithmic(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	c := buildCurve(func(v float64) float64 {
		return 255 * math.Log(1+v) / math.Log(256)
	})
	return c.apply("logarithmic", img)
}

// GammaCorrection computes 255 * (v/255)^(1/gamma), the inverse of
// PowerLaw. Gamma above 1 brightens.
func GammaCorrection(img *imageutil.Buffer, gamma float64) (*imageutil.Buffer, error) {
	if !(gamma > 0) || math.IsInf(gamma, 1) {
		return nil, invalidArgument("gamma %v must be positive and finite", gamma)
	}
	c := buildCurve(func(v float64) float64 {
		return math.Pow(v/255, 1/gamma) * 255
	})
	return c.apply("gamma correction", img)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
