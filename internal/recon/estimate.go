package recon

import "math"

// EstimateDensity computes the smoothed intensity at (x, y): the
// Gaussian-weighted sum of all event counts within maxPixelDistance of the
// pixel, divided by the number of pixels the window actually covered.
//
// Window bounds are inclusive on both ends and clamped to the grid, and the
// edge-correction divisor is exactly the number of samples iterated,
// (maxX-minX+1)*(maxY-minY+1). Keeping the loop limits and the divisor on
// the same convention prevents the systematic intensity bias at image
// borders that a mismatched count would introduce.
//
// The result is zero when no events fall inside the window.
func EstimateDensity(src Source, x, y int, bandwidthSquare float64, maxPixelDistance int) float64 {
	w, h := src.Width(), src.Height()

	minX := x - maxPixelDistance
	if minX < 0 {
		minX = 0
	}
	maxX := x + maxPixelDistance
	if maxX > w-1 {
		maxX = w - 1
	}
	minY := y - maxPixelDistance
	if minY < 0 {
		minY = 0
	}
	maxY := y + maxPixelDistance
	if maxY > h-1 {
		maxY = h - 1
	}

	sum := 0.0
	for yi := minY; yi <= maxY; yi++ {
		for xi := minX; xi <= maxX; xi++ {
			events := src.At(xi, yi)
			if events == 0 {
				continue
			}
			dx := float64(x - xi)
			dy := float64(y - yi)
			sum += math.Exp(-0.5*(dx*dx+dy*dy)/bandwidthSquare) * float64(events)
		}
	}

	samples := (maxX - minX + 1) * (maxY - minY + 1)
	return sum / float64(samples)
}
