package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, the closest equivalent to
	// OpenCV's INTER_AREA for downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation (INTER_LINEAR).
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	InterpolationNearest
)

func scalerFor(interp Interpolation) draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	scalerFor(interp).Scale(dst.RGBA, image.Rect(0, 0, width, height), img.RGBA, img.Bounds(), draw.Over, nil)
	return dst
}

// ResizeGray resizes a grayscale image to the specified dimensions.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	dst := NewGrayImage(width, height)
	scalerFor(interp).Scale(dst.Gray, image.Rect(0, 0, width, height), img.Gray, img.Bounds(), draw.Over, nil)
	return dst
}

// FitWithin scales an image down so that neither dimension exceeds maxSide,
// preserving aspect ratio. Images already within the cap (and any call with
// maxSide <= 0) are returned unchanged, not copied. Used for display scaling
// only; the underlying pixel data is never modified.
func FitWithin(img *RGBAImage, maxSide int) *RGBAImage {
	w, h := img.Width(), img.Height()
	longest := w
	if h > longest {
		longest = h
	}
	if maxSide <= 0 || longest <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(longest)
	sw := int(float64(w) * scale)
	sh := int(float64(h) * scale)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	return Resize(img, sw, sh, InterpolationArea)
}
