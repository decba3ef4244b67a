package imageutil

import (
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestNewBuffer(t *testing.T) {
	img, err := NewBuffer(100, 50, 3)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
	if len(img.Pix) != 100*50*3 || img.Stride != 300 {
		t.Errorf("Unexpected layout: len=%d stride=%d", len(img.Pix), img.Stride)
	}
}

func TestNewBufferInvalid(t *testing.T) {
	testCases := []struct {
		name                    string
		width, height, channels int
	}{
		{"zero width", 0, 10, 1},
		{"zero height", 10, 0, 1},
		{"negative", -3, 4, 3},
		{"two channels", 4, 4, 2},
		{"four channels", 4, 4, 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img, err := NewBuffer(tc.width, tc.height, tc.channels)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
			if img != nil {
				t.Error("No buffer should be returned on error")
			}
		})
	}
}

func TestBufferGetSetRGB(t *testing.T) {
	img, _ := NewBuffer(10, 10, 3)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	if got := img.RGBAt(5, 5); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if got := img.Intensity(5, 5); got != 150 {
		t.Errorf("Expected mean intensity 150, got %d", got)
	}
}

func TestIntensityTruncates(t *testing.T) {
	img, _ := NewBuffer(1, 1, 3)
	img.SetRGB(0, 0, RGB{R: 10, G: 20, B: 31})
	if got := img.Intensity(0, 0); got != 20 {
		t.Errorf("Expected integer mean 20, got %d", got)
	}
}

func TestGrayBufferAccess(t *testing.T) {
	img, _ := NewGrayBuffer(10, 10)
	img.Pix[5*img.Stride+5] = 128

	if got := img.GrayAt(5, 5); got != 128 {
		t.Errorf("Expected 128, got %d", got)
	}
	if got := img.RGBAt(5, 5); got != (RGB{128, 128, 128}) {
		t.Errorf("Gray pixel should replicate into RGB, got %v", got)
	}
	img.SetRGB(1, 1, RGB{R: 30, G: 60, B: 90})
	if got := img.GrayAt(1, 1); got != 60 {
		t.Errorf("SetRGB on gray buffer should store the mean, got %d", got)
	}
}

func TestBufferClone(t *testing.T) {
	img, _ := NewBuffer(10, 10, 3)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.RGBAt(5, 5) != img.RGBAt(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.RGBAt(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestBufferFromImage(t *testing.T) {
	gray := image.NewGray(image.Rect(2, 3, 6, 8))
	gray.SetGray(3, 4, color.Gray{Y: 77})
	buf, err := BufferFromImage(gray)
	if err != nil {
		t.Fatalf("BufferFromImage failed: %v", err)
	}
	if buf.Channels != 1 || buf.Width() != 4 || buf.Height() != 5 {
		t.Fatalf("Unexpected buffer %dx%dx%d", buf.Width(), buf.Height(), buf.Channels)
	}
	if got := buf.GrayAt(1, 1); got != 77 {
		t.Errorf("Expected 77 at translated origin, got %d", got)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, 3, 3))
	rgba.SetRGBA(2, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	buf, err = BufferFromImage(rgba)
	if err != nil {
		t.Fatalf("BufferFromImage failed: %v", err)
	}
	if buf.Channels != 3 {
		t.Fatalf("Expected 3 channels, got %d", buf.Channels)
	}
	if got := buf.RGBAt(2, 1); got != (RGB{1, 2, 3}) {
		t.Errorf("Expected {1 2 3}, got %v", got)
	}

	if _, err := BufferFromImage(image.NewRGBA(image.Rect(0, 0, 0, 4))); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Empty image should be rejected, got %v", err)
	}
}

func TestBufferImageRoundTrip(t *testing.T) {
	img := CreateColorBarsImage(64, 8)
	back, err := BufferFromImage(img.Image())
	if err != nil {
		t.Fatalf("BufferFromImage failed: %v", err)
	}
	if mse := CalculateMSE(img, back); mse != 0 {
		t.Errorf("Round trip through image.RGBA should be lossless, MSE=%f", mse)
	}
}

func TestGrayscale(t *testing.T) {
	img, _ := NewBuffer(1, 1, 3)
	testCases := []struct {
		name     string
		c        RGB
		method   GrayMethod
		min, max uint8
	}{
		{"white mean", RGB{255, 255, 255}, GrayMean, 255, 255},
		{"black bt601", RGB{0, 0, 0}, GrayBT601, 0, 0},
		{"red bt601", RGB{255, 0, 0}, GrayBT601, 75, 77},
		{"red mean", RGB{255, 0, 0}, GrayMean, 85, 85},
		{"red luma", RGB{255, 0, 0}, GrayLuma, 76, 76},
		{"green bt601 trunc", RGB{0, 255, 0}, GrayBT601Trunc, 149, 149},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img.SetRGB(0, 0, tc.c)
			gray, err := Grayscale(img, tc.method)
			if err != nil {
				t.Fatalf("Grayscale failed: %v", err)
			}
			if gray.Channels != 1 {
				t.Fatalf("Expected 1 channel, got %d", gray.Channels)
			}
			if v := gray.GrayAt(0, 0); v < tc.min || v > tc.max {
				t.Errorf("Expected %d..%d, got %d", tc.min, tc.max, v)
			}
		})
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	// Downscale
	resized, err := Resize(img, 50, 50, InterpolationArea)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if resized.Width() != 50 || resized.Height() != 50 || resized.Channels != 3 {
		t.Errorf("Expected 50x50x3, got %dx%dx%d", resized.Width(), resized.Height(), resized.Channels)
	}

	// Upscale a gray image
	gray, _ := Grayscale(img, GrayMean)
	resized, err = Resize(gray, 200, 120, InterpolationLinear)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if resized.Width() != 200 || resized.Height() != 120 || resized.Channels != 1 {
		t.Errorf("Expected 200x120x1, got %dx%dx%d", resized.Width(), resized.Height(), resized.Channels)
	}

	resized, err = ResizeToWidth(CreateGradientImage(80, 40), 20, InterpolationNearest)
	if err != nil {
		t.Fatalf("ResizeToWidth failed: %v", err)
	}
	if resized.Width() != 20 || resized.Height() != 10 {
		t.Errorf("Expected 20x10, got %dx%d", resized.Width(), resized.Height())
	}

	if _, err := Resize(img, 0, 10, InterpolationArea); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Zero target width should be rejected, got %v", err)
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()

	testCases := []struct {
		name string
		file string
		img  *Buffer
	}{
		{"png rgb", "test.png", CreateColorBarsImage(64, 64)},
		{"png gray", "gray.png", CreateStepImage(32, 16, 10, 20, 200)},
		{"bmp rgb", "test.bmp", CreateColorBarsImage(40, 24)},
		{"tiff rgb", "test.tiff", CreateCheckerboardImage(32, 32, 8)},
		{"tiff gray", "gray.tif", CreateStepImage(16, 16, 4, 0, 255)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tc.file)
			if err := SaveImage(tc.img, path); err != nil {
				t.Fatalf("Failed to save: %v", err)
			}
			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("Failed to load: %v", err)
			}
			if loaded.Channels != tc.img.Channels {
				t.Fatalf("Expected %d channels, got %d", tc.img.Channels, loaded.Channels)
			}
			// Lossless formats
			if mse := CalculateMSE(tc.img, loaded); mse > 0.01 {
				t.Errorf("Expected lossless round trip, MSE=%f", mse)
			}
		})
	}
}

func TestLoadImageMissing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("I/O errors should not be reported as invalid arguments")
	}
	if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("Expected a not-exist cause, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	testCases := map[string]Format{
		"a.png":  FormatPNG,
		"a.JPG":  FormatJPEG,
		"a.jpeg": FormatJPEG,
		"a.gif":  FormatGIF,
		"a.bmp":  FormatBMP,
		"a.tif":  FormatTIFF,
		"a.TIFF": FormatTIFF,
		"a.xyz":  FormatPNG,
	}
	for path, want := range testCases {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	img := CreateSolidImage(2, 2, RGB{1, 2, 3})
	err := Encode(io.Discard, img, Format("heic"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestCalculateMSE(t *testing.T) {
	img1 := CreateSolidImage(10, 10, RGB{0, 0, 0})
	img2 := CreateSolidImage(10, 10, RGB{0, 0, 0})

	if mse := CalculateMSE(img1, img2); mse != 0 {
		t.Errorf("Identical images should have MSE=0, got %f", mse)
	}

	img2 = CreateSolidImage(10, 10, RGB{10, 10, 10})
	if mse := CalculateMSE(img1, img2); mse != 100.0 {
		t.Errorf("Expected MSE=100, got %f", mse)
	}
	if d := CalculateMaxDiff(img1, img2); d != 10 {
		t.Errorf("Expected max diff 10, got %d", d)
	}
}

func TestCalculateJaccardIndex(t *testing.T) {
	edges1, _ := NewGrayBuffer(10, 10)
	edges2, _ := NewGrayBuffer(10, 10)

	// No edges - should be 1 (both empty)
	if j := CalculateJaccardIndex(edges1, edges2); j != 1.0 {
		t.Errorf("Empty images should have Jaccard=1, got %f", j)
	}

	for x := 0; x < 5; x++ {
		edges1.Pix[5*edges1.Stride+x] = 255
		edges2.Pix[5*edges2.Stride+x] = 255
	}
	if j := CalculateJaccardIndex(edges1, edges2); j != 1.0 {
		t.Errorf("Identical edges should have Jaccard=1, got %f", j)
	}

	edges2, _ = NewGrayBuffer(10, 10)
	for x := 5; x < 10; x++ {
		edges2.Pix[5*edges2.Stride+x] = 255
	}
	if j := CalculateJaccardIndex(edges1, edges2); j != 0.0 {
		t.Errorf("Non-overlapping edges should have Jaccard=0, got %f", j)
	}
}

// TestSaveTestImages saves test images to testdata directory for visual inspection.
// Run with: SAVE_TEST_IMAGES=1 go test -run TestSaveTestImages -v
func TestSaveTestImages(t *testing.T) {
	if os.Getenv("SAVE_TEST_IMAGES") != "1" {
		t.Skip("Set SAVE_TEST_IMAGES=1 to generate test images")
	}

	testdataDir := "../testdata"
	if err := os.MkdirAll(testdataDir, 0755); err != nil {
		t.Fatal(err)
	}

	edges := CreateEdgeImage(256, 256)
	canny, err := CannyDefault(edges)
	if err != nil {
		t.Fatal(err)
	}
	for name, img := range map[string]*Buffer{
		"gradient.png":     CreateGradientImage(256, 256),
		"vgradient.png":    CreateVerticalGradientImage(256, 256),
		"checkerboard.png": CreateCheckerboardImage(256, 256, 32),
		"colorbars.png":    CreateColorBarsImage(256, 256),
		"edges.png":        edges,
		"edges_canny.png":  canny,
	} {
		if err := SaveImage(img, filepath.Join(testdataDir, name)); err != nil {
			t.Fatal(err)
		}
	}

	t.Log("Test images saved to testdata/")
}
