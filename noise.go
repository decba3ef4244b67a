package imgfilters

import (
	"math/rand/v2"
	"slices"

	"github.com/wbrown/imgfilters/imageutil"
	"gonum.org/v1/gonum/stat/distuv"
)

// newSource returns the deterministic random source for seed. Equal seeds
// give equal noise.
func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// AddGaussianNoise adds an independent N(mean, stddev²) sample to every
// channel of every pixel. Noisy values are truncated and clamped to
// [0, 255].
func AddGaussianNoise(img *imageutil.Buffer, mean, stddev float64, seed uint64) (*imageutil.Buffer, error) {
	if err := checkImage("gaussian noise", img); err != nil {
		return nil, err
	}
	if !(stddev >= 0) {
		return nil, invalidArgument("noise stddev %v must be non-negative", stddev)
	}
	normal := distuv.Normal{Mu: mean, Sigma: stddev, Src: newSource(seed)}

	dst := img.Clone()
	for i, v := range dst.Pix {
		dst.Pix[i] = truncSample(float64(v) + normal.Rand())
	}
	return dst, nil
}

// AddSaltAndPepperNoise sets floor(width*height*amount) randomly chosen
// pixels to black or white with equal probability. A pixel may be chosen
// more than once.
func AddSaltAndPepperNoise(img *imageutil.Buffer, amount float64, seed uint64) (*imageutil.Buffer, error) {
	if err := checkImage("salt and pepper noise", img); err != nil {
		return nil, err
	}
	if !(amount >= 0 && amount <= 1) {
		return nil, invalidArgument("noise amount %v must be in [0, 1]", amount)
	}
	width, height := img.Width(), img.Height()
	rng := rand.New(newSource(seed))

	dst := img.Clone()
	n := int(float64(width*height) * amount)
	for k := 0; k < n; k++ {
		x, y := rng.IntN(width), rng.IntN(height)
		var v uint8
		if rng.Float64() >= 0.5 {
			v = 255
		}
		dst.SetGray(x, y, v)
	}
	return dst, nil
}

// AddPoissonNoise replaces every sample v with a draw from a Poisson
// distribution with mean v, clamped to 255. Zero samples stay zero.
func AddPoissonNoise(img *imageutil.Buffer, seed uint64) (*imageutil.Buffer, error) {
	if err := checkImage("poisson noise", img); err != nil {
		return nil, err
	}
	src := newSource(seed)

	dst := img.Clone()
	for i, v := range dst.Pix {
		if v == 0 {
			continue
		}
		p := distuv.Poisson{Lambda: float64(v), Src: src}
		dst.Pix[i] = truncSample(p.Rand())
	}
	return dst, nil
}

// MedianFilter replaces every channel of every pixel with the median of
// its 3x3 neighbourhood. The one-pixel border is left at zero.
func MedianFilter(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	if err := checkImage("median", img); err != nil {
		return nil, err
	}
	width, height, channels := img.Width(), img.Height(), img.Channels
	dst, err := imageutil.NewBuffer(width, height, channels)
	if err != nil {
		return nil, err
	}

	var window [9]uint8
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			for c := 0; c < channels; c++ {
				n := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						window[n] = img.At(x+dx, y+dy, c)
						n++
					}
				}
				slices.Sort(window[:])
				dst.Set(x, y, c, window[4])
			}
		}
	}
	return dst, nil
}
