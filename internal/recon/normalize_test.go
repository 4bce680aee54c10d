package recon

import "testing"

func TestNormalize_RoundTrip(t *testing.T) {
	f := NewDensityField(2, 2)
	f.Cells = []float64{0.25, 0.5, 1.0, 0.75}

	out := Normalize(f, 0.25, 1.0)
	if got := out.At(0, 0); got != 0 {
		t.Fatalf("min cell mapped to %d, want 0", got)
	}
	if got := out.At(0, 1); got != OutputMax {
		t.Fatalf("max cell mapped to %d, want %d", got, OutputMax)
	}
	// (0.5-0.25)/(1.0-0.25) = 1/3 of the range.
	if got, want := out.At(1, 0), uint16(21845); got != want {
		t.Fatalf("interior cell mapped to %d, want %d", got, want)
	}
}

// A flat field has no intensity scale: the output is all zero, never
// NaN/Inf garbage from a division by zero.
func TestNormalize_DegenerateRange(t *testing.T) {
	f := NewDensityField(3, 3)
	for i := range f.Cells {
		f.Cells[i] = 0.42
	}

	out := Normalize(f, 0.42, 0.42)
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("cell %d: got %d, want 0 for degenerate range", i, v)
		}
	}
}
