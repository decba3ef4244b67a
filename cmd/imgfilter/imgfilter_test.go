package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/wbrown/imgfilters"
	"github.com/wbrown/imgfilters/imageutil"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	if err := imageutil.SaveImage(imageutil.CreateEdgeImage(64, 48), input); err != nil {
		t.Fatal(err)
	}

	filter, _ := imgfilters.Lookup("canny")
	output := filepath.Join(dir, "out.bmp")
	chart := filepath.Join(dir, "hist.png")
	err := run(zerolog.Nop(), filter, imgfilters.DefaultParams(), input, output, 32, "edges", chart)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out, err := imageutil.LoadImage(output)
	if err != nil {
		t.Fatalf("Failed to load output: %v", err)
	}
	if out.Width() != 32 || out.Height() <= 24 {
		t.Errorf("Expected a 32 wide image with a caption bar, got %dx%d", out.Width(), out.Height())
	}
	if info, err := os.Stat(chart); err != nil || info.Size() == 0 {
		t.Errorf("Histogram chart missing: %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	filter, _ := imgfilters.Lookup("sobel")
	err := run(zerolog.Nop(), filter, imgfilters.DefaultParams(),
		filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"), 0, "", "")
	if err == nil {
		t.Fatal("Expected an error for a missing input")
	}
}
