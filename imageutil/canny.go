package imageutil

import "math"

// Canny performs Canny edge detection on a grayscale image.
// lowThreshold and highThreshold control edge sensitivity.
func Canny(gray *GrayImage, lowThreshold, highThreshold float64) *GrayImage {
	width, height := gray.Width(), gray.Height()

	// Step 1: Gaussian blur to reduce noise (fixed 5x5, sigma ~1.4)
	blurred := ConvolveGray(gray, GaussianKernel5x5())

	// Step 2: Compute Sobel gradients
	gx, gy := sobelGradients(blurred)

	// Step 3: Compute magnitude and direction
	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			magnitude[y][x] = math.Sqrt(gx[y][x]*gx[y][x] + gy[y][x]*gy[y][x])
			direction[y][x] = math.Atan2(gy[y][x], gx[y][x])
		}
	}

	// Step 4: Non-maximum suppression
	suppressed := nonMaxSuppression(magnitude, direction, width, height)

	// Step 5: Double threshold
	strong, weak := doubleThreshold(suppressed, lowThreshold, highThreshold, width, height)

	// Step 6: Edge tracking by hysteresis
	return hysteresis(strong, weak, width, height)
}

// sobelGradients computes horizontal and vertical Sobel gradients.
func sobelGradients(img *GrayImage) (gx, gy [][]float64) {
	width, height := img.Width(), img.Height()

	sobelX := NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelY := NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = float64(img.GrayAt(x, y).Y)
		}
	}

	gx = ConvolveGrayFloat(gray, sobelX)
	gy = ConvolveGrayFloat(gray, sobelY)

	return gx, gy
}

// nonMaxSuppression keeps only pixels that are local maxima along the
// gradient direction.
func nonMaxSuppression(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y][x] * 180.0 / math.Pi
			if angle < 0 {
				angle += 180
			}
			mag := magnitude[y][x]

			// Quantize angle to 4 directions: 0, 45, 90, 135 degrees
			var q, r float64
			switch {
			case (angle >= 0 && angle < 22.5) || (angle >= 157.5 && angle <= 180):
				q = magnitude[y][x+1]
				r = magnitude[y][x-1]
			case angle >= 22.5 && angle < 67.5:
				q = magnitude[y+1][x+1]
				r = magnitude[y-1][x-1]
			case angle >= 67.5 && angle < 112.5:
				q = magnitude[y+1][x]
				r = magnitude[y-1][x]
			default:
				q = magnitude[y+1][x-1]
				r = magnitude[y-1][x+1]
			}

			if mag >= q && mag >= r {
				suppressed[y][x] = mag
			}
		}
	}

	return suppressed
}

// doubleThreshold classifies edges as strong or weak based on thresholds.
func doubleThreshold(suppressed [][]float64, low, high float64, width, height int) (strong, weak [][]bool) {
	strong = make([][]bool, height)
	weak = make([][]bool, height)

	for y := 0; y < height; y++ {
		strong[y] = make([]bool, width)
		weak[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= high {
				strong[y][x] = true
			} else if val >= low {
				weak[y][x] = true
			}
		}
	}

	return strong, weak
}

// hysteresis keeps weak edges only if they connect to strong edges.
func hysteresis(strong, weak [][]bool, width, height int) *GrayImage {
	edges := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if strong[y][x] {
				edges.Gray.Pix[y*edges.Stride+x] = 255
			}
		}
	}

	// Connect weak edges iteratively until no more changes occur
	changed := true
	for changed {
		changed = false
		for y := 1; y < height-1; y++ {
			for x := 1; x < width-1; x++ {
				if !weak[y][x] || edges.Gray.Pix[y*edges.Stride+x] != 0 {
					continue
				}
				connected := false
				for dy := -1; dy <= 1 && !connected; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if edges.Gray.Pix[(y+dy)*edges.Stride+(x+dx)] == 255 {
							connected = true
							break
						}
					}
				}
				if connected {
					edges.Gray.Pix[y*edges.Stride+x] = 255
					changed = true
				}
			}
		}
	}

	return edges
}
