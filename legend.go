package chromakey

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"chromakey/imageutil"

	"github.com/golang/freetype"
	"golang.org/x/image/font"
)

const (
	legendWidth    = 560
	legendSwatch   = 64
	legendFontSize = 14
	legendLineGap  = 6
	legendMargin   = 12
)

// RenderLegend renders the report into an image: the representative color
// and the dominantcolor cross-check as swatches, followed by the report
// text drawn with the given TrueType font.
func RenderLegend(r Report, fontPath string) (*imageutil.RGBAImage, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	lines := r.Lines()
	lineHeight := legendFontSize + legendLineGap
	height := legendMargin*3 + legendSwatch + len(lines)*lineHeight

	img := imageutil.NewRGBAImage(legendWidth, height)
	draw.Draw(img.RGBA, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Two swatches side by side: histogram pick, dominantcolor pick.
	drawSwatch(img, legendMargin, legendMargin, r.Color)
	drawSwatch(img, legendMargin*2+legendSwatch, legendMargin, r.AltColor)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(legendFontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img.RGBA)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	y := legendMargin*2 + legendSwatch + legendFontSize
	for _, line := range lines {
		if _, err := ctx.DrawString(line, freetype.Pt(legendMargin, y)); err != nil {
			return nil, fmt.Errorf("failed to draw legend text: %w", err)
		}
		y += lineHeight
	}

	return img, nil
}

func drawSwatch(img *imageutil.RGBAImage, x0, y0 int, c imageutil.RGB) {
	for y := y0; y < y0+legendSwatch; y++ {
		for x := x0; x < x0+legendSwatch; x++ {
			img.SetRGB(x, y, c)
		}
	}
}
