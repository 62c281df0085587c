package chromakey

import (
	"testing"

	"chromakey/imageutil"
)

func TestParseKeyColorMethod(t *testing.T) {
	cases := map[string]KeyColorMethod{
		"histogram": MethodHistogram,
		"dominant":  MethodDominant,
		"kmeans":    MethodKMeans,
	}
	for s, want := range cases {
		got, err := ParseKeyColorMethod(s)
		if err != nil {
			t.Errorf("%q: unexpected error %v", s, err)
		}
		if got != want {
			t.Errorf("%q: Expected %v, got %v", s, want, got)
		}
	}

	if _, err := ParseKeyColorMethod("euclid"); err == nil {
		t.Error("Expected an error for an unknown method")
	}
}

func TestEstimateKeyColorHistogram(t *testing.T) {
	chromaGreen := imageutil.RGB{R: 32, G: 224, B: 32}
	img := imageutil.CreateSolidImage(32, 32, chromaGreen)
	hist := BuildHistogram(img, 4)

	got := EstimateKeyColor(img, hist, MethodHistogram)
	if got != chromaGreen {
		t.Errorf("Expected %v, got %v", chromaGreen, got)
	}
}

func TestEstimateKeyColorDominant(t *testing.T) {
	c := imageutil.RGB{R: 10, G: 180, B: 40}
	img := imageutil.CreateSolidImage(64, 64, c)
	hist := BuildHistogram(img, 4)

	got := EstimateKeyColor(img, hist, MethodDominant)
	if chebyshev(got, c) > 8 {
		t.Errorf("Expected roughly %v from a uniform image, got %v", c, got)
	}
}

func TestEstimateKeyColorKMeans(t *testing.T) {
	c := imageutil.RGB{R: 10, G: 180, B: 40}
	img := imageutil.CreateSolidImage(64, 64, c)
	hist := BuildHistogram(img, 4)

	got := EstimateKeyColor(img, hist, MethodKMeans)
	if chebyshev(got, c) > 8 {
		t.Errorf("Expected roughly %v from a uniform image, got %v", c, got)
	}
}

func chebyshev(a, b imageutil.RGB) int {
	maxDiff := 0
	for _, d := range [3]int{
		absInt(int(a.R) - int(b.R)),
		absInt(int(a.G) - int(b.G)),
		absInt(int(a.B) - int(b.B)),
	} {
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}
