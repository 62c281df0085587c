// Package matconv bridges imageutil images and gocv Mats for the
// interactive windows. gocv stores color Mats in BGR channel order;
// the converters here swap channels accordingly.
package matconv

import (
	"chromakey/imageutil"

	"gocv.io/x/gocv"
)

// ToMat converts an RGBAImage to a BGR gocv.Mat. The caller owns the Mat
// and must Close it.
func ToMat(img *imageutil.RGBAImage) gocv.Mat {
	mat := gocv.NewMatWithSize(img.Height(), img.Width(), gocv.MatTypeCV8UC3)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			mat.SetUCharAt(y, x*3, c.B)
			mat.SetUCharAt(y, x*3+1, c.G)
			mat.SetUCharAt(y, x*3+2, c.R)
		}
	}
	return mat
}

// ToRGBA converts a BGR gocv.Mat to an RGBAImage.
func ToRGBA(mat gocv.Mat) *imageutil.RGBAImage {
	height, width := mat.Rows(), mat.Cols()
	img := imageutil.NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			vec := mat.GetVecbAt(y, x)
			img.SetRGB(x, y, imageutil.RGB{R: vec[2], G: vec[1], B: vec[0]})
		}
	}
	return img
}

// GrayToMat converts a GrayImage to a single-channel gocv.Mat.
func GrayToMat(img *imageutil.GrayImage) gocv.Mat {
	mat := gocv.NewMatWithSize(img.Height(), img.Width(), gocv.MatTypeCV8U)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			mat.SetUCharAt(y, x, img.GetGray(x, y))
		}
	}
	return mat
}

// ShowScaled displays an image in the window, scaled down for display if
// its longest side exceeds maxSide. Scaling is display-only; the image
// itself is untouched.
func ShowScaled(window *gocv.Window, img *imageutil.RGBAImage, maxSide int) {
	mat := ToMat(imageutil.FitWithin(img, maxSide))
	defer mat.Close()
	window.IMShow(mat)
}

// ShowScaledGray displays a grayscale image with the same display cap.
func ShowScaledGray(window *gocv.Window, img *imageutil.GrayImage, maxSide int) {
	w, h := img.Width(), img.Height()
	longest := w
	if h > longest {
		longest = h
	}
	if maxSide > 0 && longest > maxSide {
		scale := float64(maxSide) / float64(longest)
		img = imageutil.ResizeGray(img, int(float64(w)*scale), int(float64(h)*scale), imageutil.InterpolationArea)
	}

	mat := GrayToMat(img)
	defer mat.Close()
	window.IMShow(mat)
}
