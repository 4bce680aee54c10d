package report

import (
	"encoding/json"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/smlm-data/gsdrecon/internal/recon"
)

// Summary holds descriptive statistics of a density field.
type Summary struct {
	RunID     string  `json:"run_id,omitempty"`
	Source    string  `json:"source,omitempty"`
	Bandwidth float64 `json:"bandwidth"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`

	MinDensity    float64 `json:"min_density"`
	MaxDensity    float64 `json:"max_density"`
	MeanDensity   float64 `json:"mean_density"`
	StdDevDensity float64 `json:"stddev_density"`
	MedianDensity float64 `json:"median_density"`
	P95Density    float64 `json:"p95_density"`
}

// Summarize computes descriptive statistics over the density field.
func Summarize(res *recon.Result, meta Meta) Summary {
	cells := res.Field.Cells
	sorted := make([]float64, len(cells))
	copy(sorted, cells)
	sort.Float64s(sorted)

	return Summary{
		RunID:         meta.RunID,
		Source:        meta.Source,
		Bandwidth:     meta.Bandwidth,
		Width:         res.Field.W,
		Height:        res.Field.H,
		MinDensity:    res.MinDensity,
		MaxDensity:    res.MaxDensity,
		MeanDensity:   stat.Mean(cells, nil),
		StdDevDensity: stat.StdDev(cells, nil),
		MedianDensity: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95Density:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
}

func writeSummaryJSON(path string, res *recon.Result, meta Meta) error {
	s := Summarize(res, meta)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
