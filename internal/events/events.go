// Package events models localization event tables: the per-pixel detection
// counts a GSD/SMLM acquisition produces before reconstruction. Events can
// be parsed from CSV exports and rasterized onto a source grid.
package events

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/smlm-data/gsdrecon/internal/recon"
)

// Event is one binned localization: integer pixel coordinates and the
// number of detections at that pixel.
type Event struct {
	X, Y  int
	Count uint32
}

// Rasterize accumulates events onto a w×h event-count grid. Events outside
// the grid are dropped; the number dropped is returned so callers can warn
// about mis-sized grids.
func Rasterize(evs []Event, w, h int) (*recon.SourceGrid, int) {
	g := recon.NewSourceGrid(w, h)
	dropped := 0
	for _, e := range evs {
		if e.X < 0 || e.X >= w || e.Y < 0 || e.Y >= h {
			dropped++
			continue
		}
		g.Add(e.X, e.Y, e.Count)
	}
	return g, dropped
}

// ReadCSV parses an event table with rows "x,y" or "x,y,count". A header
// row is skipped if the first field does not parse as an integer. A missing
// count column means one detection per row.
func ReadCSV(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow 2- and 3-column rows
	cr.TrimLeadingSpace = true

	var evs []Event
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read events csv: %w", err)
		}
		line++

		if len(rec) < 2 {
			return nil, fmt.Errorf("events csv line %d: want 2 or 3 columns, got %d", line, len(rec))
		}

		x, err := strconv.Atoi(rec[0])
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("events csv line %d: bad x %q", line, rec[0])
		}
		y, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("events csv line %d: bad y %q", line, rec[1])
		}

		count := uint32(1)
		if len(rec) >= 3 && rec[2] != "" {
			c, err := strconv.ParseUint(rec[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("events csv line %d: bad count %q", line, rec[2])
			}
			count = uint32(c)
		}

		evs = append(evs, Event{X: x, Y: y, Count: count})
	}
	return evs, nil
}

// WriteCSV writes an event table with a header row.
func WriteCSV(w io.Writer, evs []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "count"}); err != nil {
		return err
	}
	for _, e := range evs {
		rec := []string{
			strconv.Itoa(e.X),
			strconv.Itoa(e.Y),
			strconv.FormatUint(uint64(e.Count), 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
