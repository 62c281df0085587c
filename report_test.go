package chromakey

import (
	"strings"
	"testing"

	"chromakey/imageutil"
)

func TestBuildReportUniformImage(t *testing.T) {
	chromaGreen := imageutil.RGB{R: 32, G: 224, B: 32}
	img := imageutil.CreateSolidImage(20, 10, chromaGreen)
	hist := BuildHistogram(img, 4)

	r := BuildReport(img, hist)

	if r.Count != 200 || r.Total != 200 {
		t.Errorf("Expected 200/200 pixels in the dominant bin, got %d/%d", r.Count, r.Total)
	}
	if r.Share() != 1.0 {
		t.Errorf("Expected share 1.0, got %f", r.Share())
	}
	if r.Color != chromaGreen {
		t.Errorf("Expected representative color %v, got %v", chromaGreen, r.Color)
	}
	// A single occupied bin has zero entropy.
	if r.Entropy != 0 {
		t.Errorf("Expected zero entropy for a uniform image, got %f", r.Entropy)
	}
	// The cross-check should land close to the same color.
	if r.DeltaE > 0.15 {
		t.Errorf("Expected small Lab dE on a uniform image, got %f", r.DeltaE)
	}
}

func TestBuildReportEmptyImage(t *testing.T) {
	img := imageutil.NewRGBAImage(0, 0)
	r := BuildReport(img, BuildHistogram(img, 4))

	if r.Share() != 0 {
		t.Errorf("Expected zero share for an empty image, got %f", r.Share())
	}
}

func TestReportString(t *testing.T) {
	img := imageutil.CreateSolidImage(4, 4, imageutil.RGB{R: 32, G: 224, B: 32})
	r := BuildReport(img, BuildHistogram(img, 4))

	s := r.String()
	for _, want := range []string{
		"Most common bin (R,G,B):  [0, 3, 0]",
		"Representative color:     [32, 224, 32]",
		"Pixel count:              16",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, s)
		}
	}
}
