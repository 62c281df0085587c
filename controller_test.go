package chromakey

import (
	"os"
	"path/filepath"
	"testing"

	"chromakey/imageutil"
)

func newTestController(t *testing.T, tolMax int) (*Controller, string, *int) {
	t.Helper()

	fg := imageutil.CreateGradientImage(16, 16)
	bg := imageutil.CreateSolidImage(4, 4, imageutil.RGB{B: 200})
	out := filepath.Join(t.TempDir(), "overlay.png")

	displayed := 0
	ctrl := NewController(fg, bg, imageutil.RGB{R: 128, G: 128, B: 128},
		32, tolMax, out, func(*imageutil.RGBAImage) { displayed++ })
	return ctrl, out, &displayed
}

func TestControllerInitialTolerance(t *testing.T) {
	ctrl, _, _ := newTestController(t, 255)
	if got := ctrl.Tolerance(); got != 32 {
		t.Errorf("Expected initial tolerance 32, got %d", got)
	}
	if ctrl.Result() != nil {
		t.Error("Expected no result before the first event")
	}
}

func TestControllerClampsTolerance(t *testing.T) {
	ctrl, _, _ := newTestController(t, 255)

	ctrl.SetTolerance(-10)
	if got := ctrl.Tolerance(); got != 0 {
		t.Errorf("Expected tolerance clamped to 0, got %d", got)
	}

	ctrl.SetTolerance(999)
	if got := ctrl.Tolerance(); got != 255 {
		t.Errorf("Expected tolerance clamped to 255, got %d", got)
	}
}

func TestControllerRecomputesAndPersists(t *testing.T) {
	ctrl, out, displayed := newTestController(t, 255)

	ctrl.SetTolerance(32)

	if ctrl.Result() == nil {
		t.Fatal("Expected a result after the first event")
	}
	if *displayed != 1 {
		t.Errorf("Expected 1 display call, got %d", *displayed)
	}

	saved, err := imageutil.LoadImage(out)
	if err != nil {
		t.Fatalf("Expected persisted output, got %v", err)
	}
	if !saved.Equal(ctrl.Result()) {
		t.Error("Persisted output differs from the computed result")
	}
}

func TestControllerOverwritesOnChange(t *testing.T) {
	ctrl, out, _ := newTestController(t, 255)

	ctrl.SetTolerance(0)
	first, err := imageutil.LoadImage(out)
	if err != nil {
		t.Fatalf("Expected persisted output, got %v", err)
	}

	ctrl.SetTolerance(255)
	second, err := imageutil.LoadImage(out)
	if err != nil {
		t.Fatalf("Expected persisted output, got %v", err)
	}

	if first.Equal(second) {
		t.Error("Expected the persisted output to change with the tolerance")
	}
	if !second.Equal(ctrl.Result()) {
		t.Error("Persisted output differs from the latest result")
	}
}

func TestControllerShutdownPersists(t *testing.T) {
	ctrl, out, _ := newTestController(t, 255)

	ctrl.SetTolerance(64)
	if err := os.Remove(out); err != nil {
		t.Fatal(err)
	}

	ctrl.Shutdown()
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected shutdown to persist the last output, got %v", err)
	}
}

func TestControllerPersistenceFailureIsNonFatal(t *testing.T) {
	fg := imageutil.CreateGradientImage(8, 8)
	bg := imageutil.CreateSolidImage(4, 4, imageutil.RGB{B: 200})
	// Directory path that cannot exist as a file.
	out := filepath.Join(t.TempDir(), "missing", "sub", "overlay.png")

	ctrl := NewController(fg, bg, imageutil.RGB{}, 10, 255, out, nil)

	// Must warn, not panic or crash.
	ctrl.SetTolerance(10)
	ctrl.Shutdown()
}
