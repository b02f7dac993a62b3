package churn

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// exportHeader is the column order shared by the CSV and XLSX exports.
var exportHeader = []string{
	"entity_id", "display_name", "mount", "lifecycle", "pattern",
	"ephemeral", "confidence", "logins", "files_active",
	"first_file", "last_file", "first_seen", "last_seen", "reasons",
}

func exportRow(e *Entity) []string {
	firstSeen, lastSeen := "", ""
	if !e.FirstSeen.IsZero() {
		firstSeen = e.FirstSeen.UTC().Format("2006-01-02T15:04:05Z")
	}
	if !e.LastSeen.IsZero() {
		lastSeen = e.LastSeen.UTC().Format("2006-01-02T15:04:05Z")
	}
	return []string{
		e.ID,
		e.DisplayName,
		e.MountKey,
		e.Lifecycle.String(),
		e.Pattern.String(),
		strconv.FormatBool(e.Ephemeral),
		strconv.FormatFloat(e.Confidence, 'f', 2, 64),
		strconv.FormatInt(e.Logins, 10),
		strconv.Itoa(len(e.Files)),
		strconv.Itoa(e.FirstFile),
		strconv.Itoa(e.LastFile),
		firstSeen,
		lastSeen,
		strings.Join(e.Reasons, "; "),
	}
}

// WriteCSV writes the report's entities as CSV.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("churn: write csv header: %w", err)
	}
	for _, e := range r.Entities {
		if err := cw.Write(exportRow(e)); err != nil {
			return fmt.Errorf("churn: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteXLSX writes the report's entities as an Excel workbook.
func WriteXLSX(path string, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Entities"
	f.SetSheetName("Sheet1", sheet)

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("churn: write xlsx header: %w", err)
	}

	for i, e := range r.Entities {
		row := exportRow(e)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("churn: xlsx cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("churn: write xlsx row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("churn: save xlsx: %w", err)
	}
	return nil
}
