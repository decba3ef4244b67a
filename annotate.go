package imgfilters

import (
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"github.com/wbrown/imgfilters/imageutil"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	captionSize    = 12.0
	captionPadding = 4
)

var captionFont *truetype.Font

func init() {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		panic(err)
	}
	captionFont = f
}

// Annotate returns a three-channel copy of img with a black caption bar
// appended below it, holding text in white. Text that does not fit is
// clipped.
func Annotate(img *imageutil.Buffer, text string) (*imageutil.Buffer, error) {
	if err := checkImage("annotate", img); err != nil {
		return nil, err
	}

	face := truetype.NewFace(captionFont, &truetype.Options{
		Size:    captionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	barHeight := ascent + metrics.Descent.Ceil() + 2*captionPadding

	width, height := img.Width(), img.Height()
	canvas := image.NewRGBA(image.Rect(0, 0, width, height+barHeight))
	draw.Draw(canvas, canvas.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, width, height), img.Image(), image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(captionFont)
	ctx.SetFontSize(captionSize)
	ctx.SetClip(canvas.Bounds())
	ctx.SetDst(canvas)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	pt := freetype.Pt(captionPadding, height+captionPadding+ascent)
	if _, err := ctx.DrawString(text, pt); err != nil {
		return nil, errors.Wrap(err, "failed to draw caption")
	}
	return imageutil.BufferFromImage(canvas)
}
