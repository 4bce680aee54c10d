// Package report produces post-reconstruction artefacts: summary statistics
// of the density field, a PNG heatmap rendered with gonum/plot, and a
// standalone HTML heatmap rendered with go-echarts.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smlm-data/gsdrecon/internal/recon"
)

// Meta labels a report with the run it came from.
type Meta struct {
	RunID     string
	Source    string
	Bandwidth float64
}

// Generate writes heatmap.png, heatmap.html and summary.json into dir,
// creating it if needed.
func Generate(dir string, res *recon.Result, meta Meta) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	if err := SaveHeatmapPNG(filepath.Join(dir, "heatmap.png"), res.Field); err != nil {
		return fmt.Errorf("heatmap png: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "heatmap.html"))
	if err != nil {
		return err
	}
	if err := RenderHeatmapHTML(f, res.Output, meta); err != nil {
		f.Close()
		return fmt.Errorf("heatmap html: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := writeSummaryJSON(filepath.Join(dir, "summary.json"), res, meta); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	return nil
}
