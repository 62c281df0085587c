package imageutil

import "math"

// BilateralFilter smooths an image while preserving edges. Each output
// pixel is a weighted average of its neighborhood where weights fall off
// with both spatial distance (sigmaSpace) and color difference
// (sigmaColor), following OpenCV's bilateralFilter. diameter is the
// neighborhood width in pixels; even values are rounded up.
func BilateralFilter(img *RGBAImage, diameter int, sigmaColor, sigmaSpace float64) *RGBAImage {
	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(width, height)

	if diameter < 1 {
		diameter = 1
	}
	if diameter%2 == 0 {
		diameter++
	}
	radius := diameter / 2

	if sigmaColor <= 0 {
		sigmaColor = 1
	}
	if sigmaSpace <= 0 {
		sigmaSpace = 1
	}

	// Precompute the spatial weights; they depend only on the offset.
	spatial := make([][]float64, diameter)
	for dy := -radius; dy <= radius; dy++ {
		spatial[dy+radius] = make([]float64, diameter)
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[dy+radius][dx+radius] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}

	// Range weights are a function of the summed absolute channel
	// difference; a 766-entry table covers all possible values.
	rangeWeight := make([]float64, 3*255+1)
	for d := range rangeWeight {
		rangeWeight[d] = math.Exp(-float64(d*d) / (2 * sigmaColor * sigmaColor))
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := img.RGBAAt(x, y)
			var sumR, sumG, sumB, sumW float64

			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					sx := clampInt(x+dx, 0, width-1)
					sy := clampInt(y+dy, 0, height-1)
					c := img.RGBAAt(sx, sy)

					diff := absInt(int(c.R)-int(center.R)) +
						absInt(int(c.G)-int(center.G)) +
						absInt(int(c.B)-int(center.B))
					w := spatial[dy+radius][dx+radius] * rangeWeight[diff]

					sumR += float64(c.R) * w
					sumG += float64(c.G) * w
					sumB += float64(c.B) * w
					sumW += w
				}
			}

			dst.SetRGB(x, y, RGB{
				R: clampUint8(sumR / sumW),
				G: clampUint8(sumG / sumW),
				B: clampUint8(sumB / sumW),
			})
		}
	}

	return dst
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
