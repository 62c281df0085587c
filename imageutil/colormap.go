package imageutil

import "github.com/lucasb-eyer/go-colorful"

// turboAnchors approximate Google's Turbo colormap: dark blue through
// cyan, green and yellow to dark red. Intermediate entries are blended
// in Luv space, which keeps the ramp perceptually smooth.
var turboAnchors = []colorful.Color{
	{R: 48 / 255.0, G: 18 / 255.0, B: 59 / 255.0},
	{R: 70 / 255.0, G: 107 / 255.0, B: 227 / 255.0},
	{R: 27 / 255.0, G: 187 / 255.0, B: 212 / 255.0},
	{R: 49 / 255.0, G: 230 / 255.0, B: 132 / 255.0},
	{R: 164 / 255.0, G: 252 / 255.0, B: 60 / 255.0},
	{R: 237 / 255.0, G: 207 / 255.0, B: 58 / 255.0},
	{R: 251 / 255.0, G: 128 / 255.0, B: 34 / 255.0},
	{R: 210 / 255.0, G: 49 / 255.0, B: 5 / 255.0},
	{R: 122 / 255.0, G: 4 / 255.0, B: 3 / 255.0},
}

// TurboLUT returns a 256-entry lookup table mapping gray levels onto the
// turbo-style colormap.
func TurboLUT() [256]RGB {
	var lut [256]RGB
	segments := len(turboAnchors) - 1
	for i := 0; i < 256; i++ {
		t := float64(i) / 255.0 * float64(segments)
		seg := int(t)
		if seg >= segments {
			seg = segments - 1
		}
		frac := t - float64(seg)

		c := turboAnchors[seg].BlendLuv(turboAnchors[seg+1], frac).Clamped()
		lut[i] = RGB{
			R: uint8(c.R*255 + 0.5),
			G: uint8(c.G*255 + 0.5),
			B: uint8(c.B*255 + 0.5),
		}
	}
	return lut
}

// ApplyColormap maps a grayscale image through the turbo-style colormap,
// the pure Go counterpart of OpenCV's applyColorMap with COLORMAP_TURBO.
func ApplyColormap(gray *GrayImage) *RGBAImage {
	lut := TurboLUT()
	width, height := gray.Width(), gray.Height()
	dst := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.SetRGB(x, y, lut[gray.GrayAt(x, y).Y])
		}
	}
	return dst
}
