package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/smlm-data/gsdrecon/internal/recon"
)

// fieldGrid adapts a DensityField to plotter.GridXYZ. Rows are flipped so
// the image's top row renders at the top of the plot.
type fieldGrid struct {
	f *recon.DensityField
}

func (g fieldGrid) Dims() (c, r int)   { return g.f.W, g.f.H }
func (g fieldGrid) X(c int) float64    { return float64(c) }
func (g fieldGrid) Y(r int) float64    { return float64(r) }
func (g fieldGrid) Z(c, r int) float64 { return g.f.At(c, g.f.H-1-r) }

// SaveHeatmapPNG renders the density field as a PNG heatmap.
func SaveHeatmapPNG(path string, field *recon.DensityField) error {
	p := plot.New()
	p.Title.Text = "Reconstructed density"
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"

	hm := plotter.NewHeatMap(fieldGrid{f: field}, palette.Heat(16, 1))
	p.Add(hm)

	// Keep pixel aspect ratio roughly square regardless of grid shape.
	w := 8 * vg.Inch
	h := vg.Length(float64(w) * float64(field.H) / float64(field.W))
	if h > 16*vg.Inch {
		h = 16 * vg.Inch
	}
	return p.Save(w, h, path)
}
