package imageutil

import (
	"math"
	"time"
)

// Default Canny parameters.
const (
	DefaultCannySigma = 1.4
	DefaultCannyLow   = 20
	DefaultCannyHigh  = 40
)

// Linking selects how weak hysteresis candidates are promoted.
type Linking int

const (
	// LinkSingleHop promotes a weak pixel only if one of its eight
	// neighbours is strong in the thinned input.
	LinkSingleHop Linking = iota
	// LinkTraced promotes weak pixels transitively through chains of
	// weak pixels connected to a strong one.
	LinkTraced
)

// CannyOptions holds the Canny pipeline parameters.
type CannyOptions struct {
	Sigma   float64
	Low     float64
	High    float64
	Linking Linking
}

// GradientField is the output of ComputeGradient: co-indexed magnitude and
// direction images plus a mask telling which pixels carry a direction.
type GradientField struct {
	// Magnitude is the gradient magnitude, rounded and clamped to [0, 255].
	Magnitude *Buffer
	// Direction is the gradient angle in whole degrees, [0, 180].
	Direction *Buffer

	defined []bool
}

// Defined reports whether a gradient was computed at (x, y). Border-ring
// pixels are undefined even though Direction holds 0 there.
func (f *GradientField) Defined(x, y int) bool {
	if !f.Magnitude.In(x, y) {
		return false
	}
	return f.defined[y*f.Magnitude.width+x]
}

// Thin runs non-maximum suppression on the field.
func (f *GradientField) Thin() (*Buffer, error) {
	return SuppressNonMaxima(f.Magnitude, f.Direction)
}

// ComputeGradient runs the Sobel operators over the intensity of blurred
// and returns the gradient magnitude and direction of every pixel inside
// the one-pixel border ring.
//
// The angle is measured from the y axis: a step edge whose intensity
// changes along x reads as 90 degrees. Negative angles clamp to 0.
func ComputeGradient(blurred *Buffer) (*GradientField, error) {
	if err := checkImage("gradient", blurred); err != nil {
		return nil, err
	}
	gx, err := Response(blurred, KernelSobelX.Kernel(), OmitOutOfRange)
	if err != nil {
		return nil, err
	}
	gy, err := Response(blurred, KernelSobelY.Kernel(), OmitOutOfRange)
	if err != nil {
		return nil, err
	}

	width, height := blurred.width, blurred.height
	field := &GradientField{
		Magnitude: newLike(blurred, 1),
		Direction: newLike(blurred, 1),
		defined:   make([]bool, width*height),
	}
	forEachRow(1, height-1, func(y int) {
		for x := 1; x < width-1; x++ {
			dx, dy := gx.At(y, x), gy.At(y, x)
			i := y*width + x
			field.Magnitude.Pix[i] = clampUint8(math.Sqrt(dx*dx + dy*dy))
			angle := math.Trunc(math.Atan2(dx, dy) * 180 / math.Pi)
			field.Direction.Pix[i] = uint8(clampInt(int(angle), 0, 180))
			field.defined[i] = true
		}
	})
	return field, nil
}

// SuppressNonMaxima thins a magnitude image along the gradient direction.
// A pixel keeps its magnitude only if it is at least as large as both
// neighbours in the direction's sector; otherwise it becomes zero. Border
// pixels are always zero.
//
//	[0, 22.5) or [157.5, 180]  (x, y+1) and (x, y-1)
//	[22.5, 67.5)               (x+1, y-1) and (x-1, y+1)
//	[67.5, 112.5)              (x+1, y) and (x-1, y)
//	[112.5, 157.5)             (x-1, y-1) and (x+1, y+1)
func SuppressNonMaxima(magnitude, direction *Buffer) (*Buffer, error) {
	if err := checkImage("non-maximum suppression", magnitude); err != nil {
		return nil, err
	}
	if err := checkImage("non-maximum suppression", direction); err != nil {
		return nil, err
	}
	if !magnitude.SameSize(direction) {
		return nil, invalidArgument("magnitude %dx%d and direction %dx%d differ in size",
			magnitude.width, magnitude.height, direction.width, direction.height)
	}

	width, height := magnitude.width, magnitude.height
	suppressed := newLike(magnitude, 1)
	forEachRow(1, height-1, func(y int) {
		for x := 1; x < width-1; x++ {
			mag := magnitude.GrayAt(x, y)
			angle := float64(direction.GrayAt(x, y))

			var q, r uint8
			switch {
			case angle < 22.5 || angle >= 157.5:
				q = magnitude.GrayAt(x, y+1)
				r = magnitude.GrayAt(x, y-1)
			case angle < 67.5:
				q = magnitude.GrayAt(x+1, y-1)
				r = magnitude.GrayAt(x-1, y+1)
			case angle < 112.5:
				q = magnitude.GrayAt(x+1, y)
				r = magnitude.GrayAt(x-1, y)
			default:
				q = magnitude.GrayAt(x-1, y-1)
				r = magnitude.GrayAt(x+1, y+1)
			}

			if mag >= q && mag >= r {
				suppressed.Pix[y*suppressed.Stride+x] = mag
			}
		}
	})
	return suppressed, nil
}

func checkThresholds(low, high float64) error {
	if !(low >= 0) || !(high >= low) {
		return invalidArgument("thresholds must satisfy 0 <= low <= high, got low=%v high=%v", low, high)
	}
	return nil
}

// LinkHysteresis binarizes a thinned magnitude image. Pixels at or above
// high become 255, pixels below low become 0, and pixels in between become
// 255 only if one of their eight neighbours in thinned is at or above
// high. Promotion is a single hop: weak pixels never promote each other.
func LinkHysteresis(thinned *Buffer, low, high float64) (*Buffer, error) {
	if err := checkThresholds(low, high); err != nil {
		return nil, err
	}
	if err := checkImage("hysteresis", thinned); err != nil {
		return nil, err
	}

	width, height := thinned.width, thinned.height
	edges := newLike(thinned, 1)
	forEachRow(0, height, func(y int) {
		for x := 0; x < width; x++ {
			v := float64(thinned.GrayAt(x, y))
			switch {
			case v >= high:
				edges.Pix[y*edges.Stride+x] = 255
			case v < low:
			case hasStrongNeighbor(thinned, x, y, high):
				edges.Pix[y*edges.Stride+x] = 255
			}
		}
	})
	return edges, nil
}

// hasStrongNeighbor reports whether any 8-connected neighbour of (x, y)
// inside img is at or above high.
func hasStrongNeighbor(img *Buffer, x, y int, high float64) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !img.In(nx, ny) {
				continue
			}
			if float64(img.GrayAt(nx, ny)) >= high {
				return true
			}
		}
	}
	return false
}

// TraceHysteresis is the textbook variant of LinkHysteresis: weak pixels
// are kept if they are connected to a strong pixel through any chain of
// weak pixels.
func TraceHysteresis(thinned *Buffer, low, high float64) (*Buffer, error) {
	if err := checkThresholds(low, high); err != nil {
		return nil, err
	}
	if err := checkImage("hysteresis", thinned); err != nil {
		return nil, err
	}

	width, height := thinned.width, thinned.height
	edges := newLike(thinned, 1)

	// Seed with strong pixels, then grow through weak ones.
	var stack []int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if float64(thinned.GrayAt(x, y)) >= high {
				edges.Pix[y*edges.Stride+x] = 255
				stack = append(stack, y*width+x)
			}
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		px, py := p%width, p/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := px+dx, py+dy
				if !thinned.In(nx, ny) || edges.Pix[ny*edges.Stride+nx] == 255 {
					continue
				}
				if float64(thinned.GrayAt(nx, ny)) >= low {
					edges.Pix[ny*edges.Stride+nx] = 255
					stack = append(stack, ny*width+nx)
				}
			}
		}
	}
	return edges, nil
}

// Canny performs Canny edge detection: Gaussian blur with sigma, Sobel
// gradients, non-maximum suppression and single-hop hysteresis with low
// and high. The result is a single-channel image holding only 0 and 255.
func Canny(img *Buffer, sigma, low, high float64) (*Buffer, error) {
	return CannyWith(img, CannyOptions{Sigma: sigma, Low: low, High: high})
}

// CannyDefault performs Canny edge detection with sigma 1.4 and thresholds
// (20, 40).
func CannyDefault(img *Buffer) (*Buffer, error) {
	return Canny(img, DefaultCannySigma, DefaultCannyLow, DefaultCannyHigh)
}

// CannyWith runs the Canny pipeline with explicit options. All parameters
// are validated before any stage runs.
func CannyWith(img *Buffer, opts CannyOptions) (*Buffer, error) {
	if err := checkImage("canny", img); err != nil {
		return nil, err
	}
	if err := checkThresholds(opts.Low, opts.High); err != nil {
		return nil, err
	}
	var link func(*Buffer, float64, float64) (*Buffer, error)
	switch opts.Linking {
	case LinkSingleHop:
		link = LinkHysteresis
	case LinkTraced:
		link = TraceHysteresis
	default:
		return nil, invalidArgument("unknown linking mode %d", int(opts.Linking))
	}
	kernel, err := GaussianKernel(opts.Sigma)
	if err != nil {
		return nil, err
	}

	log := Logger()
	start := time.Now()
	stage := func(name string) {
		log.Debug().
			Str("stage", name).
			Int("width", img.width).
			Int("height", img.height).
			Dur("elapsed", time.Since(start)).
			Msg("canny stage done")
		start = time.Now()
	}

	// Step 1: Gaussian blur to reduce noise
	blurred, err := Correlate(img, kernel, SkipBorder)
	if err != nil {
		return nil, err
	}
	stage("blur")

	// Step 2: Sobel magnitude and direction
	field, err := ComputeGradient(blurred)
	if err != nil {
		return nil, err
	}
	stage("gradient")

	// Step 3: Non-maximum suppression
	thinned, err := field.Thin()
	if err != nil {
		return nil, err
	}
	stage("suppress")

	// Step 4: Hysteresis
	edges, err := link(thinned, opts.Low, opts.High)
	if err != nil {
		return nil, err
	}
	stage("hysteresis")

	return edges, nil
}

// SobelMagnitude computes the truncated Sobel gradient magnitude.
func SobelMagnitude(img *Buffer) (*Buffer, error) {
	return GradientMagnitude(img, DualKernelMagnitude{
		X: KernelSobelX.Kernel(),
		Y: KernelSobelY.Kernel(),
	})
}
