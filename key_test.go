package chromakey

import (
	"testing"

	"chromakey/imageutil"
)

var (
	green = imageutil.RGB{G: 200}
	blue  = imageutil.RGB{B: 200}
	red   = imageutil.RGB{R: 200}
)

func TestCompositeFullReplacementAtMaxTolerance(t *testing.T) {
	fg := imageutil.CreateGradientImage(40, 40)
	bg := imageutil.CreateSolidImage(40, 40, blue)

	out := Composite(fg, bg, imageutil.RGB{R: 128, G: 128, B: 128}, 255)

	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if out.GetRGB(x, y) != blue {
				t.Fatalf("pixel (%d,%d): Expected full replacement at tolerance 255, got %v",
					x, y, out.GetRGB(x, y))
			}
		}
	}
}

func TestCompositeZeroToleranceExactMatchOnly(t *testing.T) {
	fg := imageutil.NewRGBAImage(3, 1)
	fg.SetRGB(0, 0, green)
	fg.SetRGB(1, 0, imageutil.RGB{G: 201}) // one off
	fg.SetRGB(2, 0, green)
	bg := imageutil.CreateSolidImage(3, 1, blue)

	out := Composite(fg, bg, green, 0)

	if out.GetRGB(0, 0) != blue {
		t.Errorf("Expected exact match replaced, got %v", out.GetRGB(0, 0))
	}
	if out.GetRGB(1, 0) != (imageutil.RGB{G: 201}) {
		t.Errorf("Expected near-miss kept, got %v", out.GetRGB(1, 0))
	}
	if out.GetRGB(2, 0) != blue {
		t.Errorf("Expected exact match replaced, got %v", out.GetRGB(2, 0))
	}
}

func TestCompositeChebyshevNotEuclidean(t *testing.T) {
	// Each channel is off by 10; the Euclidean distance is ~17.3 but the
	// Chebyshev distance is 10, so tolerance 10 must replace the pixel.
	fg := imageutil.CreateSolidImage(1, 1, imageutil.RGB{R: 110, G: 110, B: 110})
	bg := imageutil.CreateSolidImage(1, 1, blue)
	key := imageutil.RGB{R: 100, G: 100, B: 100}

	out := Composite(fg, bg, key, 10)
	if out.GetRGB(0, 0) != blue {
		t.Errorf("Expected replacement under Chebyshev threshold, got %v", out.GetRGB(0, 0))
	}

	// One channel over the bound blocks the match regardless of the rest.
	fg.SetRGB(0, 0, imageutil.RGB{R: 100, G: 100, B: 111})
	out = Composite(fg, bg, key, 10)
	if out.GetRGB(0, 0) != (imageutil.RGB{R: 100, G: 100, B: 111}) {
		t.Errorf("Expected pixel kept when one channel exceeds tolerance, got %v", out.GetRGB(0, 0))
	}
}

func TestCompositeMonotonicInTolerance(t *testing.T) {
	fg := imageutil.CreateGradientImage(32, 32)
	bg := imageutil.CreateSolidImage(8, 8, blue)
	key := imageutil.RGB{R: 128, G: 128, B: 128}

	replacedAt := func(tol int) map[[2]int]bool {
		out := Composite(fg, bg, key, tol)
		set := make(map[[2]int]bool)
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				if out.GetRGB(x, y) != fg.GetRGB(x, y) {
					set[[2]int{x, y}] = true
				}
			}
		}
		return set
	}

	prev := replacedAt(0)
	for _, tol := range []int{10, 40, 120, 255} {
		next := replacedAt(tol)
		for p := range prev {
			if !next[p] {
				t.Fatalf("tolerance %d removed pixel %v from the replaced set", tol, p)
			}
		}
		prev = next
	}
}

func TestCompositeTiling(t *testing.T) {
	fg := imageutil.CreateSolidImage(10, 10, green)
	// 3x2 background with a distinct color per position.
	bg := imageutil.NewRGBAImage(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			bg.SetRGB(x, y, imageutil.RGB{R: uint8(10 * x), G: uint8(10 * y), B: 99})
		}
	}

	out := Composite(fg, bg, green, 0)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := bg.GetRGB(x%3, y%2)
			if got := out.GetRGB(x, y); got != want {
				t.Fatalf("pixel (%d,%d): Expected tiled %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestCompositeDegenerateBackground(t *testing.T) {
	fg := imageutil.CreateSolidImage(5, 5, green)
	bg := imageutil.NewRGBAImage(0, 0)

	out := Composite(fg, bg, green, 255)

	if !out.Equal(fg) {
		t.Error("Expected foreground passed through unchanged for zero-extent background")
	}
}

func TestCompositeIdempotent(t *testing.T) {
	fg := imageutil.CreateCheckerboardImage(50, 30, 5)
	bg := imageutil.CreateGradientImage(20, 20)
	key := imageutil.RGB{R: 255, G: 255, B: 255}

	a := Composite(fg, bg, key, 30)
	b := Composite(fg, bg, key, 30)

	if !a.Equal(b) {
		t.Error("Expected byte-identical output for identical inputs")
	}
}

func TestCompositeEndToEndGreenScreen(t *testing.T) {
	// 100x100 uniform green foreground, 50x50 uniform blue background,
	// buckets = 4. The green sits exactly at its bin center (32, 224, 32),
	// so the derived representative color matches every pixel even at
	// tolerance 0.
	chromaGreen := imageutil.RGB{R: 32, G: 224, B: 32}
	fg := imageutil.CreateSolidImage(100, 100, chromaGreen)
	bg := imageutil.CreateSolidImage(50, 50, blue)

	hist := BuildHistogram(fg, 4)
	bin, count := hist.DominantBin()

	if count != 100*100 {
		t.Errorf("Expected all pixels in dominant bin, got %d", count)
	}
	if want := hist.IndexOf(chromaGreen); bin != want {
		t.Errorf("Expected dominant bin %v (green's bucket), got %v", want, bin)
	}

	key := bin.Center(hist.BucketSize())
	if key != chromaGreen {
		t.Fatalf("Expected representative color %v, got %v", chromaGreen, key)
	}

	out := Composite(fg, bg, key, 0)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if out.GetRGB(x, y) != blue {
				t.Fatalf("pixel (%d,%d): Expected uniform blue output, got %v", x, y, out.GetRGB(x, y))
			}
		}
	}

	// A single red outlier survives tolerance 0 while all else turns blue.
	fg.SetRGB(42, 17, red)
	out = Composite(fg, bg, key, 0)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			want := blue
			if x == 42 && y == 17 {
				want = red
			}
			if got := out.GetRGB(x, y); got != want {
				t.Fatalf("pixel (%d,%d): Expected %v, got %v", x, y, want, got)
			}
		}
	}
}
