package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// TemplateHeader is the fixed header of the downloadable import template.
var TemplateHeader = []string{
	"question", "optionA", "optionB", "optionC", "optionD",
	"correctAnswer", "category", "difficulty",
}

// templateSample is the single example row shipped with the template.
var templateSample = []string{
	"What is the chemical symbol for water?",
	"H2O", "CO2", "NaCl", "O2",
	"H2O", "Science", "easy",
}

// ReadRows parses a CSV stream into rows. The first record is the header;
// each subsequent record becomes one Row keyed by the header cells. Short
// records are padded with empty cells by the csv reader configuration.
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(Row, len(header))
		for i, key := range header {
			if i < len(record) {
				row[key] = record[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// WriteTemplate writes the fixed-header import template with one sample row.
func WriteTemplate(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(TemplateHeader); err != nil {
		return fmt.Errorf("failed to write template header: %w", err)
	}
	if err := writer.Write(templateSample); err != nil {
		return fmt.Errorf("failed to write template row: %w", err)
	}
	writer.Flush()
	return writer.Error()
}
