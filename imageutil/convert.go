package imageutil

// GrayMethod selects how three channels are folded into one.
type GrayMethod int

const (
	// GrayMean is the unweighted integer mean (R+G+B)/3, the intensity
	// used by the convolution core.
	GrayMean GrayMethod = iota
	// GrayLuma weights the channels 0.3, 0.59, 0.11 and truncates.
	GrayLuma
	// GrayBT601 weights the channels 0.299, 0.587, 0.114 and rounds,
	// matching OpenCV's COLOR_BGR2GRAY.
	GrayBT601
	// GrayBT601Trunc uses the BT.601 weights but truncates.
	GrayBT601Trunc
)

// Grayscale converts img to a single-channel buffer. Single-channel input
// is copied unchanged.
func Grayscale(img *Buffer, method GrayMethod) (*Buffer, error) {
	if err := checkImage("grayscale", img); err != nil {
		return nil, err
	}
	if img.Channels == 1 {
		return img.Clone(), nil
	}

	var fold func(c RGB) uint8
	switch method {
	case GrayMean:
		fold = func(c RGB) uint8 {
			return uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
		}
	case GrayLuma:
		fold = func(c RGB) uint8 {
			return truncUint8(float64(c.R)*0.3 + float64(c.G)*0.59 + float64(c.B)*0.11)
		}
	case GrayBT601:
		fold = func(c RGB) uint8 {
			// Integer math, scaled by 1000
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			return uint8(clampInt(lum, 0, 255))
		}
	case GrayBT601Trunc:
		fold = func(c RGB) uint8 {
			return truncUint8(float64(c.R)*0.299 + float64(c.G)*0.587 + float64(c.B)*0.114)
		}
	default:
		return nil, invalidArgument("unknown gray method %d", int(method))
	}

	gray := newLike(img, 1)
	forEachRow(0, img.height, func(y int) {
		for x := 0; x < img.width; x++ {
			gray.Pix[y*gray.Stride+x] = fold(img.RGBAt(x, y))
		}
	})
	return gray, nil
}

// ToRGB expands a buffer to three channels. Three-channel input is copied.
func ToRGB(img *Buffer) (*Buffer, error) {
	if err := checkImage("to rgb", img); err != nil {
		return nil, err
	}
	rgb := newLike(img, 3)
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			rgb.SetRGB(x, y, img.RGBAt(x, y))
		}
	}
	return rgb, nil
}
