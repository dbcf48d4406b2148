package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/charset"
	"github.com/MrJamesThe3rd/rounds/internal/customer"
)

var (
	ErrNoHeader = errors.New("no header row found: expected forename and surname columns")
	ErrEmpty    = errors.New("nothing to import")
)

// CSVParser reads customer spreadsheets exported as CSV. It detects the
// charset and delimiter and skips any preamble above the header row.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

type record struct {
	line   int
	fields []string
}

func (p *CSVParser) Parse(r io.Reader) (*Batch, error) {
	utf8r, name, err := charset.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	for _, delim := range delimiters {
		records, err := readRecords(data, delim)
		if err != nil {
			continue
		}

		for i, rec := range records {
			l, ok := matchHeader(rec.fields)
			if !ok {
				continue
			}

			return &Batch{
				Rows:      buildRows(l, records[i+1:]),
				Charset:   name,
				Delimiter: delim,
			}, nil
		}
	}

	return nil, ErrNoHeader
}

func readRecords(data []byte, delim rune) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
}

// buildRows skips blank lines. Address fields only produce an address when
// at least one of them is filled in.
func buildRows(l layout, records []record) []customer.ImportRow {
	rows := make([]customer.ImportRow, 0, len(records))

	for _, rec := range records {
		if blank(rec.fields) {
			continue
		}

		row := customer.ImportRow{
			Line: rec.line,
			Params: customer.Params{
				Forename:  l.value(rec.fields, fieldForename),
				Surname:   l.value(rec.fields, fieldSurname),
				Email:     l.value(rec.fields, fieldEmail),
				Telephone: l.value(rec.fields, fieldTelephone),
			},
		}

		addr := address.Params{
			HouseNumName: l.value(rec.fields, fieldHouse),
			StreetName:   l.value(rec.fields, fieldStreet),
			Postcode:     l.value(rec.fields, fieldPostcode),
		}

		if !addr.IsZero() {
			row.Address = &addr
		}

		rows = append(rows, row)
	}

	return rows
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}
