package imgfilters

import "github.com/wbrown/imgfilters/imageutil"

// Histogram counts the pixels of a grayscale image per intensity.
type Histogram [256]int

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// CDF returns the cumulative distribution: CDF()[v] is the number of
// pixels with intensity <= v.
func (h *Histogram) CDF() [256]int {
	var cdf [256]int
	sum := 0
	for i, n := range h {
		sum += n
		cdf[i] = sum
	}
	return cdf
}

// Range returns the smallest and largest intensity present. ok is false
// for an empty histogram.
func (h *Histogram) Range() (lo, hi uint8, ok bool) {
	first, last := -1, -1
	for i, n := range h {
		if n == 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return 0, 0, false
	}
	return uint8(first), uint8(last), true
}

// lumaGray folds three-channel input with the 0.3/0.59/0.11 weights used by
// the histogram filters. Single-channel input is copied.
func lumaGray(op string, img *imageutil.Buffer) (*imageutil.Buffer, error) {
	if err := checkImage(op, img); err != nil {
		return nil, err
	}
	return imageutil.Grayscale(img, imageutil.GrayLuma)
}

// ComputeHistogram returns the intensity histogram of img. Colour images
// are folded to luma first.
func ComputeHistogram(img *imageutil.Buffer) (*Histogram, error) {
	gray, err := lumaGray("histogram", img)
	if err != nil {
		return nil, err
	}
	return histogramOf(gray), nil
}

func histogramOf(gray *imageutil.Buffer) *Histogram {
	var h Histogram
	for _, v := range gray.Pix {
		h[v]++
	}
	return &h
}

// EqualizeHistogram spreads the intensities of img over [0, 255] by
// remapping each level through the normalized cumulative histogram:
//
//	v' = trunc((cdf[v] - cdf[0]) / (total - cdf[0]) * 255)
//
// The result is single-channel. An image whose pixels are all 0 is
// returned unchanged.
func EqualizeHistogram(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	gray, err := lumaGray("equalize", img)
	if err != nil {
		return nil, err
	}
	h := histogramOf(gray)
	cdf := h.CDF()
	total, minCDF := h.Total(), cdf[0]
	if total == minCDF {
		return gray, nil
	}

	var c toneCurve
	for i := range c {
		c[i] = truncSample(float64(cdf[i]-minCDF) / float64(total-minCDF) * 255)
	}
	return c.apply("equalize", gray)
}

// StretchHistogram linearly maps the intensity range [min, max] present in
// img onto [0, 255]. The result is single-channel. A flat image is returned
// unchanged.
func StretchHistogram(img *imageutil.Buffer) (*imageutil.Buffer, error) {
	gray, err := lumaGray("stretch", img)
	if err != nil {
		return nil, err
	}
	lo, hi, _ := histogramOf(gray).Range()
	if lo == hi {
		return gray, nil
	}

	var c toneCurve
	for i := int(lo); i <= int(hi); i++ {
		c[i] = truncSample(float64(i-int(lo)) / float64(hi-lo) * 255)
	}
	return c.apply("stretch", gray)
}
