package imageutil

import "math"

// CreateGradientImage creates a horizontal gradient test image.
func CreateGradientImage(width, height int) *Buffer {
	img := newBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateVerticalGradientImage creates a vertical gradient test image.
func CreateVerticalGradientImage(width, height int) *Buffer {
	img := newBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		v := uint8(255 * y / (height - 1))
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard pattern for edge testing.
func CreateCheckerboardImage(width, height, squareSize int) *Buffer {
	img := newBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetGray(x, y, 255)
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *Buffer {
	img := newBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateStepImage creates a single-channel image that is lo left of
// column and hi from column onwards.
func CreateStepImage(width, height, column int, lo, hi uint8) *Buffer {
	img := newBuffer(width, height, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := lo
			if x >= column {
				v = hi
			}
			img.Pix[y*img.Stride+x] = v
		}
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *Buffer {
	img := newBuffer(width, height, 3)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := width / len(colors)
	if barWidth == 0 {
		barWidth = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := x / barWidth
			if colorIdx >= len(colors) {
				colorIdx = len(colors) - 1
			}
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// CreateEdgeImage creates an image with sharp edges for testing edge
// detection: a white rectangle on gray with a black diagonal.
func CreateEdgeImage(width, height int) *Buffer {
	img := CreateSolidImage(width, height, RGB{128, 128, 128})

	rx1, ry1 := width/4, height/4
	rx2, ry2 := 3*width/4, 3*height/4
	for y := ry1; y < ry2; y++ {
		for x := rx1; x < rx2; x++ {
			img.SetRGB(x, y, RGB{255, 255, 255})
		}
	}

	for i := 0; i < min(width, height)/2; i++ {
		img.SetRGB(i, i, RGB{0, 0, 0})
	}
	return img
}

// CalculateMSE calculates the mean squared error between two buffers of
// the same size and channel count.
func CalculateMSE(img1, img2 *Buffer) float64 {
	if !img1.SameSize(img2) || img1.Channels != img2.Channels {
		return math.MaxFloat64
	}
	var sumSq float64
	for i := range img1.Pix {
		d := float64(img1.Pix[i]) - float64(img2.Pix[i])
		sumSq += d * d
	}
	return sumSq / float64(len(img1.Pix))
}

// CalculateMaxDiff calculates the maximum sample difference between two
// buffers.
func CalculateMaxDiff(img1, img2 *Buffer) int {
	if !img1.SameSize(img2) || img1.Channels != img2.Channels {
		return 256
	}
	maxDiff := 0
	for i := range img1.Pix {
		d := int(img1.Pix[i]) - int(img2.Pix[i])
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

// CalculateJaccardIndex calculates the Jaccard similarity between two binary edge maps.
// Returns a value between 0 (no overlap) and 1 (perfect overlap).
func CalculateJaccardIndex(edges1, edges2 *Buffer) float64 {
	if !edges1.SameSize(edges2) {
		return 0
	}

	var intersection, union int
	for y := 0; y < edges1.Height(); y++ {
		for x := 0; x < edges1.Width(); x++ {
			e1 := edges1.GrayAt(x, y) > 128
			e2 := edges2.GrayAt(x, y) > 128
			if e1 && e2 {
				intersection++
			}
			if e1 || e2 {
				union++
			}
		}
	}

	if union == 0 {
		return 1.0 // Both empty
	}
	return float64(intersection) / float64(union)
}
