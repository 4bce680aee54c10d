package recon

// Source is a read-only view of an event-count image. Implementations must
// be safe for concurrent reads; reconstruction never mutates the source.
type Source interface {
	Width() int
	Height() int
	// At returns the event count at (x, y), 0 <= x < Width, 0 <= y < Height.
	At(x, y int) uint32
}

// SourceGrid is the canonical in-memory Source: a flat row-major grid of
// per-pixel event counts.
type SourceGrid struct {
	W, H   int
	Counts []uint32 // len = W*H, row-major
}

// NewSourceGrid allocates a zeroed w×h event-count grid.
func NewSourceGrid(w, h int) *SourceGrid {
	return &SourceGrid{W: w, H: h, Counts: make([]uint32, w*h)}
}

// Idx maps (x, y) to the flat slice index.
func (g *SourceGrid) Idx(x, y int) int { return y*g.W + x }

func (g *SourceGrid) Width() int  { return g.W }
func (g *SourceGrid) Height() int { return g.H }

func (g *SourceGrid) At(x, y int) uint32 { return g.Counts[y*g.W+x] }

// Set stores an event count. Only valid while building the grid, before it
// is handed to Reconstruct.
func (g *SourceGrid) Set(x, y int, count uint32) { g.Counts[y*g.W+x] = count }

// Add accumulates count events at (x, y).
func (g *SourceGrid) Add(x, y int, count uint32) { g.Counts[y*g.W+x] += count }

// DensityField holds the unnormalized smoothed intensity per pixel. Each
// cell is written exactly once, by the pixel task that owns it, so the
// field needs no per-cell locking.
type DensityField struct {
	W, H  int
	Cells []float64 // len = W*H, row-major
}

// NewDensityField allocates a zeroed w×h density field.
func NewDensityField(w, h int) *DensityField {
	return &DensityField{W: w, H: h, Cells: make([]float64, w*h)}
}

// Idx maps (x, y) to the flat slice index.
func (f *DensityField) Idx(x, y int) int { return y*f.W + x }

func (f *DensityField) At(x, y int) float64 { return f.Cells[y*f.W+x] }

// OutputGrid is the externally visible result: 16-bit intensities in
// [0, 65535], same dimensions as the source.
type OutputGrid struct {
	W, H int
	Pix  []uint16 // len = W*H, row-major
}

// NewOutputGrid allocates a zeroed w×h output grid.
func NewOutputGrid(w, h int) *OutputGrid {
	return &OutputGrid{W: w, H: h, Pix: make([]uint16, w*h)}
}

// Idx maps (x, y) to the flat slice index.
func (o *OutputGrid) Idx(x, y int) int { return y*o.W + x }

func (o *OutputGrid) At(x, y int) uint16 { return o.Pix[y*o.W+x] }

func (o *OutputGrid) Set(x, y int, v uint16) { o.Pix[y*o.W+x] = v }
