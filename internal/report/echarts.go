package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/smlm-data/gsdrecon/internal/recon"
)

// maxHeatmapCells bounds the number of cells embedded in the HTML heatmap;
// larger grids are downsampled by stride to keep the page responsive.
const maxHeatmapCells = 65536

// viridis-like ramp, same palette used across our debug charts.
var heatmapColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// RenderHeatmapHTML writes a standalone HTML page with an interactive
// heatmap of the reconstructed output grid.
func RenderHeatmapHTML(w io.Writer, out *recon.OutputGrid, meta Meta) error {
	stride := 1
	for (out.W/stride)*(out.H/stride) > maxHeatmapCells {
		stride++
	}

	cols := (out.W + stride - 1) / stride
	rows := (out.H + stride - 1) / stride

	xs := make([]int, cols)
	for c := range xs {
		xs[c] = c * stride
	}

	data := make([]opts.HeatMapData, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := out.At(c*stride, r*stride)
			// ECharts heatmaps draw row 0 at the bottom; flip to image order.
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, rows - 1 - r, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Density reconstruction",
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Reconstructed density",
			Subtitle: fmt.Sprintf("source=%s bandwidth=%.2f run=%s stride=%d",
				meta.Source, meta.Bandwidth, meta.RunID, stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(recon.OutputMax),
			InRange:    &opts.VisualMapInRange{Color: heatmapColors},
		}),
	)
	hm.SetXAxis(xs).AddSeries("density", data)

	return hm.Render(w)
}
