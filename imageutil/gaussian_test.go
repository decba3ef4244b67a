package imageutil

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestGaussianKernelSize(t *testing.T) {
	testCases := []struct {
		sigma float64
		want  int
	}{
		{0.1, 3},
		{0.5, 3},
		{1.0, 7},
		{1.4, 9},
		{2.5, 15},
	}
	for _, tc := range testCases {
		if got := GaussianKernelSize(tc.sigma); got != tc.want {
			t.Errorf("sigma %v: expected size %d, got %d", tc.sigma, tc.want, got)
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.3, 1.0, 1.4, 3.2} {
		k, err := GaussianKernel(sigma)
		if err != nil {
			t.Fatalf("sigma %v: %v", sigma, err)
		}
		if err := k.Validate(); err != nil {
			t.Errorf("sigma %v: %v", sigma, err)
		}
		if sum := k.Sum(); math.Abs(sum-1) > 1e-6 {
			t.Errorf("sigma %v: weights sum to %v", sigma, sum)
		}

		// Symmetric, peaked in the centre.
		n, c := k.Width, k.Width/2
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if math.Abs(k.Values[y][x]-k.Values[x][y]) > 1e-12 ||
					math.Abs(k.Values[y][x]-k.Values[n-1-y][n-1-x]) > 1e-12 {
					t.Fatalf("sigma %v: kernel not symmetric at (%d,%d)", sigma, x, y)
				}
				if k.Values[y][x] > k.Values[c][c] {
					t.Fatalf("sigma %v: (%d,%d) exceeds the centre weight", sigma, x, y)
				}
			}
		}
	}
}

func TestGaussianKernelRejectsBadSigma(t *testing.T) {
	for _, sigma := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := GaussianKernel(sigma); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("sigma %v: expected ErrInvalidArgument, got %v", sigma, err)
		}
	}
}

func TestGaussianBlur(t *testing.T) {
	img := CreateCheckerboardImage(32, 32, 4)
	blurred, err := GaussianBlur(img, 1.0)
	if err != nil {
		t.Fatalf("GaussianBlur failed: %v", err)
	}
	if blurred.Channels != img.Channels || !blurred.SameSize(img) {
		t.Fatal("Blur should preserve size and channel count")
	}

	// 7x7 kernel: a three-pixel ring stays zero.
	for i := 0; i < 32; i++ {
		for _, p := range [][2]int{{i, 0}, {i, 2}, {0, i}, {31, i}, {i, 29}} {
			if v := blurred.At(p[0], p[1], 0); v != 0 {
				t.Fatalf("Border pixel %v should be 0, got %d", p, v)
			}
		}
	}

	// Interior contrast drops.
	var minV, maxV uint8 = 255, 0
	for y := 3; y < 29; y++ {
		for x := 3; x < 29; x++ {
			v := blurred.At(x, y, 0)
			minV = min(minV, v)
			maxV = max(maxV, v)
		}
	}
	if minV == 0 || maxV == 255 {
		t.Errorf("Blur should reduce contrast, interior range [%d,%d]", minV, maxV)
	}

	if _, err := GaussianBlur(img, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("sigma 0: expected ErrInvalidArgument, got %v", err)
	}
}
