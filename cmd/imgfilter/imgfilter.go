package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/wbrown/imgfilters"
	"github.com/wbrown/imgfilters/imageutil"
)

func main() {
	defaults := imgfilters.DefaultParams()

	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the filtered image; format follows the extension")
	filterName := flag.String("filter", "canny",
		"Filter to apply (see -list)")
	sigma := flag.Float64("sigma", defaults.Sigma,
		"Gaussian sigma for canny and gaussian-blur")
	low := flag.Float64("low", defaults.Low,
		"Canny low threshold")
	high := flag.Float64("high", defaults.High,
		"Canny high threshold")
	linking := flag.String("linking", "single",
		"Canny hysteresis linking: single or traced")
	gamma := flag.Float64("gamma", defaults.Gamma,
		"Exponent for power and gamma")
	inMin := flag.Int("min", defaults.InputMin,
		"Input range minimum for linear")
	inMax := flag.Int("max", defaults.InputMax,
		"Input range maximum for linear")
	size := flag.Int("size", defaults.Size,
		"Window side for average")
	amount := flag.Float64("amount", defaults.Amount,
		"Fraction of pixels hit by salt-pepper")
	mean := flag.Float64("mean", defaults.Mean,
		"Mean of gaussian-noise")
	stddev := flag.Float64("stddev", defaults.StdDev,
		"Standard deviation of gaussian-noise")
	seed := flag.Uint64("seed", defaults.Seed,
		"Random seed for the noise filters")
	targetWidth := flag.Int("width", 0,
		"Resize the input to this width before filtering, 0 to keep")
	caption := flag.String("caption", "",
		"Caption drawn below the output image")
	histChart := flag.String("histchart", "",
		"Write a PNG histogram chart of the output to this path")
	list := flag.Bool("list", false,
		"List the available filters and exit")
	verbose := flag.Bool("v", false,
		"Log pipeline stages")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
	imageutil.SetLogger(log)

	if *list {
		for _, name := range imgfilters.Names() {
			fmt.Println(name)
		}
		return
	}

	// Validate required flags
	if *inputFile == "" || *outputFile == "" {
		fmt.Println("Please provide the image using the -input and -output flags")
		flag.PrintDefaults()
		os.Exit(2)
	}

	filter, ok := imgfilters.Lookup(*filterName)
	if !ok {
		log.Error().Str("filter", *filterName).
			Msgf("unknown filter, options are %s", strings.Join(imgfilters.Names(), ", "))
		os.Exit(1)
	}

	params := imgfilters.Params{
		Sigma:    *sigma,
		Low:      *low,
		High:     *high,
		Gamma:    *gamma,
		InputMin: *inMin,
		InputMax: *inMax,
		Size:     *size,
		Amount:   *amount,
		Mean:     *mean,
		StdDev:   *stddev,
		Seed:     *seed,
	}
	switch strings.ToLower(*linking) {
	case "single":
		params.Linking = imageutil.LinkSingleHop
	case "traced":
		params.Linking = imageutil.LinkTraced
	default:
		log.Error().Str("linking", *linking).Msg("invalid linking, options are single or traced")
		os.Exit(1)
	}

	if err := run(log, filter, params, *inputFile, *outputFile, *targetWidth, *caption, *histChart); err != nil {
		log.Error().Err(err).Str("filter", *filterName).Msg("failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, filter imgfilters.Filter, params imgfilters.Params,
	input, output string, width int, caption, histChart string) error {
	begin := time.Now()
	img, err := imageutil.LoadImage(input)
	if err != nil {
		return err
	}
	if width > 0 {
		img, err = imageutil.ResizeToWidth(img, width, imageutil.InterpolationArea)
		if err != nil {
			return err
		}
	}
	log.Debug().
		Str("input", input).
		Int("width", img.Width()).
		Int("height", img.Height()).
		Int("channels", img.Channels).
		Dur("elapsed", time.Since(begin)).
		Msg("loaded")

	start := time.Now()
	out, err := filter(img, params)
	if err != nil {
		return err
	}
	filterTime := time.Since(start)

	if histChart != "" {
		if err := writeHistogramChart(out, histChart); err != nil {
			return err
		}
		fmt.Printf("Histogram chart written to %s\n", histChart)
	}
	if caption != "" {
		if out, err = imgfilters.Annotate(out, caption); err != nil {
			return err
		}
	}

	if err := imageutil.SaveImage(out, output); err != nil {
		return err
	}
	fmt.Printf("Output written to %s\n", output)
	fmt.Printf("Image size: %dx%d, %d channel(s)\n", out.Width(), out.Height(), out.Channels)
	fmt.Printf("Filter time: %v\n", filterTime)
	fmt.Printf("Total time: %v\n", time.Since(begin))
	return nil
}

func writeHistogramChart(img *imageutil.Buffer, path string) error {
	h, err := imgfilters.ComputeHistogram(img)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create chart file")
	}
	if err := imgfilters.RenderHistogramChart(h, "Histogram", f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close chart file")
}
