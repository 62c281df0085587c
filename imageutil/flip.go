package imageutil

// FlipVertical mirrors an image around its horizontal axis (top row becomes
// bottom row), matching OpenCV's flip with code 0.
func FlipVertical(img *RGBAImage) *RGBAImage {
	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		srcRow := img.Pix[y*img.Stride : y*img.Stride+width*4]
		dstRow := dst.Pix[(height-1-y)*dst.Stride:]
		copy(dstRow, srcRow)
	}
	return dst
}

// FlipHorizontal mirrors an image around its vertical axis (left column
// becomes right column), matching OpenCV's flip with code 1.
func FlipHorizontal(img *RGBAImage) *RGBAImage {
	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.SetRGBA(width-1-x, y, img.RGBAAt(x, y))
		}
	}
	return dst
}

// Rotate180 flips an image around both axes, matching OpenCV's flip with a
// negative code.
func Rotate180(img *RGBAImage) *RGBAImage {
	return FlipHorizontal(FlipVertical(img))
}
