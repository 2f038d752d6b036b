// Package export writes repayment schedules for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"mortgage-planner/domain"
)

// Separator is the CSV field separator. Norwegian spreadsheets expect ';'.
const Separator = ';'

// WriteCSV writes a header with the column names and one record per row.
func WriteCSV(w io.Writer, rows []domain.DisplayRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator

	if err := cw.Write(domain.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.Period, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []domain.DisplayRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
