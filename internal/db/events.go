package db

import (
	"fmt"

	"github.com/smlm-data/gsdrecon/internal/events"
)

// ImportEvents stores a localization event table under a dataset label.
// Re-importing a dataset replaces it.
func (db *DB) ImportEvents(dataset string, evs []events.Event) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("import events: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM localization_events WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("import events: clear dataset: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO localization_events (dataset, x, y, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("import events: %w", err)
	}
	defer stmt.Close()

	for _, e := range evs {
		if _, err := stmt.Exec(dataset, e.X, e.Y, e.Count); err != nil {
			return fmt.Errorf("import events: insert: %w", err)
		}
	}
	return tx.Commit()
}

// LoadEvents returns the event table stored under a dataset label.
func (db *DB) LoadEvents(dataset string) ([]events.Event, error) {
	rows, err := db.Query(`
		SELECT x, y, count FROM localization_events WHERE dataset = ?`, dataset)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var evs []events.Event
	for rows.Next() {
		var e events.Event
		if err := rows.Scan(&e.X, &e.Y, &e.Count); err != nil {
			return nil, err
		}
		evs = append(evs, e)
	}
	return evs, rows.Err()
}

// ListDatasets returns the distinct dataset labels with their event counts.
func (db *DB) ListDatasets() (map[string]int, error) {
	rows, err := db.Query(`
		SELECT dataset, COUNT(*) FROM localization_events GROUP BY dataset`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, rows.Err()
}
