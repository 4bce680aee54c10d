package recon

import "math"

// OutputMax is the top of the 16-bit output intensity range.
const OutputMax = 65535

// Normalize rescales a fully populated density field into [0, OutputMax]
// using the global minimum and maximum produced by the reduction. Cells at
// the minimum map to 0 and cells at the maximum map to OutputMax.
//
// A flat field (max == min, e.g. an all-zero source image) has no
// meaningful intensity scale; it deterministically maps to an all-zero
// output instead of dividing by zero.
func Normalize(field *DensityField, min, max float64) *OutputGrid {
	out := NewOutputGrid(field.W, field.H)
	if !(max > min) {
		return out
	}

	scale := OutputMax / (max - min)
	for i, d := range field.Cells {
		v := math.Round((d - min) * scale)
		if v < 0 {
			v = 0
		}
		if v > OutputMax {
			v = OutputMax
		}
		out.Pix[i] = uint16(v)
	}
	return out
}
