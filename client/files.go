package client

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pricewise/corolla-pricer/models"
)

// Table is a parsed upload: the header row as the file carried it, plus one
// RawRecord per data row.
type Table struct {
	Headers []string
	Rows    []RawRecord
}

// ReadTableFile parses a CSV or XLSX file, dispatching on the extension.
func ReadTableFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not read file: %w", err)
		}
		defer f.Close()
		return ReadTableCSV(f)
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not read file: %w", err)
		}
		defer f.Close()
		return ReadTableXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q: want .csv or .xlsx", filepath.Ext(path))
	}
}

// ReadTableCSV parses CSV content with a header row.
func ReadTableCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	return tableFromRows(rows), nil
}

// ReadTableXLSX parses the first sheet of a spreadsheet with a header row.
func ReadTableXLSX(r io.Reader) (*Table, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read file: %w", err)
	}
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *Table {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Headers: headers}
	for _, cells := range rows[1:] {
		row := make(RawRecord, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// TemplateRecord is the example fully-populated record shipped in the
// downloadable batch template.
func TemplateRecord() models.FeatureRecord {
	row := RawRecord{
		"Model":         "Other",
		"Fuel_Type":     "Petrol",
		"Color":         "Black",
		"Age_08_04":     "40",
		"KM":            "3000",
		"HP":            "92",
		"Doors":         "5",
		"Gears":         "5",
		"Quarterly_Tax": "100",
		"Weight":        "1070",
		"CC":            "1600",
	}
	return ReconcileOne(row)
}

// WriteTemplateCSV writes the one-row batch template with every recognized
// column in canonical order.
func WriteTemplateCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.RequiredFields); err != nil {
		return err
	}

	record := TemplateRecord()
	row := make([]string, 0, len(models.RequiredFields))
	for _, field := range models.RequiredFields {
		row = append(row, formatCell(&record, field))
	}
	if err := writer.Write(row); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// WritePredictionsCSV writes the original uploaded rows augmented with a
// Predicted_Price column. Prices must be aligned with table.Rows.
func WritePredictionsCSV(w io.Writer, table *Table, prices []float64) error {
	if len(prices) != len(table.Rows) {
		return fmt.Errorf("have %d prices for %d rows", len(prices), len(table.Rows))
	}

	writer := csv.NewWriter(w)
	headers := append(append([]string{}, table.Headers...), "Predicted_Price")
	if err := writer.Write(headers); err != nil {
		return err
	}

	for i, row := range table.Rows {
		cells := make([]string, 0, len(headers))
		for _, h := range table.Headers {
			cells = append(cells, row[h])
		}
		cells = append(cells, strconv.FormatFloat(prices[i], 'f', 2, 64))
		if err := writer.Write(cells); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCell(record *models.FeatureRecord, field string) string {
	if models.IsCategorical(field) {
		v, _ := record.Categorical(field)
		return v
	}
	v, _ := record.Numeric(field)
	return strconv.FormatFloat(v, 'f', -1, 64)
}
