package imgfilters

import (
	"io"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 1024
	chartHeight = 512
)

// RenderHistogramChart draws h as a filled curve of pixel count against
// intensity and writes it to w as PNG.
func RenderHistogramChart(h *Histogram, title string, w io.Writer) error {
	if h == nil || h.Total() == 0 {
		return invalidArgument("histogram chart: empty histogram")
	}

	xvalues := make([]float64, len(h))
	yvalues := make([]float64, len(h))
	peak := 0
	for i, n := range h {
		xvalues[i] = float64(i)
		yvalues[i] = float64(n)
		peak = max(peak, n)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "Intensity",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: 255.0,
			},
		},
		YAxis: chart.YAxis{
			Name: "Pixels",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: float64(peak),
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorAlternateBlue,
				},
				XValues: xvalues,
				YValues: yvalues,
			},
		},
	}
	return errors.Wrap(graph.Render(chart.PNG, w), "failed to render histogram chart")
}
