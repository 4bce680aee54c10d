package recon

import (
	"math"
	"sort"
	"testing"
)

// singleEventGrid builds a w×h grid with one event of the given count.
func singleEventGrid(w, h, x, y int, count uint32) *SourceGrid {
	g := NewSourceGrid(w, h)
	g.Set(x, y, count)
	return g
}

// A 9x9 grid with a single event at the centre and bandwidth 1.0 must
// produce a density surface that is radially symmetric around the centre
// and strictly decreasing with Euclidean distance from it.
func TestEstimateDensity_SingleEventRadialDecay(t *testing.T) {
	const w, h = 9, 9
	const cx, cy = 4, 4
	g := singleEventGrid(w, h, cx, cy, 1)

	p := KernelParams{Bandwidth: 1.0}
	bw2 := p.BandwidthSquare()
	r := p.MaxPixelDistance()

	// Collect density per squared distance from the centre.
	byDist := make(map[int][]float64)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d2 := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			byDist[d2] = append(byDist[d2], EstimateDensity(g, x, y, bw2, r))
		}
	}

	// Radial symmetry: pixels at equal distance get equal density.
	for d2, vals := range byDist {
		for _, v := range vals[1:] {
			if math.Abs(v-vals[0]) > 1e-15 {
				t.Fatalf("distance² %d: asymmetric densities %v", d2, vals)
			}
		}
	}

	// Strict decay with distance.
	dists := make([]int, 0, len(byDist))
	for d2 := range byDist {
		dists = append(dists, d2)
	}
	sort.Ints(dists)
	for i := 1; i < len(dists); i++ {
		prev, cur := byDist[dists[i-1]][0], byDist[dists[i]][0]
		if cur >= prev {
			t.Fatalf("density not strictly decreasing: d²=%d → %g, d²=%d → %g",
				dists[i-1], prev, dists[i], cur)
		}
	}
}

func TestEstimateDensity_EmptyWindowIsZero(t *testing.T) {
	g := NewSourceGrid(16, 16)
	if v := EstimateDensity(g, 8, 8, 25.0, 25); v != 0 {
		t.Fatalf("expected zero density on empty grid, got %g", v)
	}
}

// The divisor must count exactly the samples iterated so that the same
// local event density yields comparable intensity at the border and in the
// interior (no systematic attenuation near edges).
func TestEstimateDensity_BorderCorrection(t *testing.T) {
	const w, h = 21, 21
	p := KernelParams{Bandwidth: 1.0}
	bw2 := p.BandwidthSquare()
	r := p.MaxPixelDistance()

	interior := singleEventGrid(w, h, 10, 10, 1)
	border := singleEventGrid(w, h, 0, 10, 1)

	vi := EstimateDensity(interior, 10, 10, bw2, r)
	vb := EstimateDensity(border, 0, 10, bw2, r)

	// The border window covers fewer samples, so with the matching divisor
	// the border peak must not come out attenuated relative to the interior.
	if vb < vi {
		t.Fatalf("border peak %g attenuated below interior peak %g", vb, vi)
	}
	if vb > 4*vi {
		t.Fatalf("border peak %g implausibly amplified vs interior %g", vb, vi)
	}
}

// The weight contributed by one event must match the kernel formula.
func TestEstimateDensity_MatchesClosedForm(t *testing.T) {
	const w, h = 31, 31
	g := singleEventGrid(w, h, 15, 15, 3)

	p := KernelParams{Bandwidth: 2.0}
	bw2 := p.BandwidthSquare()
	r := p.MaxPixelDistance()

	// Pixel (12, 11): dx=3, dy=4, full interior window of (2r+1)².
	got := EstimateDensity(g, 12, 11, bw2, r)
	want := math.Exp(-0.5*25.0/bw2) * 3 / float64((2*r+1)*(2*r+1))
	if math.Abs(got-want) > 1e-18 {
		t.Fatalf("EstimateDensity=%g want %g", got, want)
	}
}
