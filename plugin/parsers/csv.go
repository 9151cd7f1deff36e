package parsers

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/agentic-research/nest/plugin"
)

// CSV parses *.csv files into a list of row lists of raw strings.
// Options: "delimiter" (single-character string, default ","), "comment"
// (line prefix to skip, default "#").
type CSV struct{}

func (p *CSV) Name() string        { return "csv" }
func (p *CSV) FilePattern() string { return "*.csv" }

func (p *CSV) Parse(r io.Reader, opts plugin.Options) (any, error) {
	return parseCSV(r, opts, func(tok string) any { return tok })
}

// CSVLiteral parses *.literal.csv files like CSV but coerces each cell
// to int64, float64, bool or string.
type CSVLiteral struct{}

func (p *CSVLiteral) Name() string        { return "csv.literal" }
func (p *CSVLiteral) FilePattern() string { return "*.literal.csv" }

func (p *CSVLiteral) Parse(r io.Reader, opts plugin.Options) (any, error) {
	return parseCSV(r, opts, coerceScalar)
}

func parseCSV(r io.Reader, opts plugin.Options, cell func(string) any) (any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if d, ok := opts["delimiter"].(string); ok && len(d) > 0 {
		reader.Comma = []rune(d)[0]
	}
	comment := "#"
	if c, ok := opts["comment"].(string); ok {
		comment = c
	}
	if len(comment) > 0 {
		reader.Comment = []rune(comment)[0]
	}

	rows := []any{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]any, len(record))
		for i, tok := range record {
			row[i] = cell(strings.TrimSpace(tok))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
