package region

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/mockuments/internal/encoding"
)

const (
	colRegion = "region"
	colKind   = "kind"
	colValue  = "value"

	kindSupplier = "supplier"
	kindAddress  = "address"
)

// ReadPools parses a semicolon separated pool file with the header
// "region;kind;value", where kind is supplier or address. Files exported
// from spreadsheets in legacy code pages are decoded to UTF-8 first.
func ReadPools(r io.Reader) (map[string]Pool, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("pool file is empty")
	}

	cols := make(map[string]int)
	for i, cell := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	for _, name := range []string{colRegion, colKind, colValue} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("pool file header is missing column %q", name)
		}
	}

	pools := make(map[string]Pool)

	for i, row := range rows[1:] {
		line := i + 2

		code := strings.ToUpper(cell(row, cols[colRegion]))
		kind := strings.ToLower(cell(row, cols[colKind]))
		value := cell(row, cols[colValue])

		if code == "" && kind == "" && value == "" {
			continue
		}

		if code == "" || value == "" {
			return nil, fmt.Errorf("line %d: region and value are required", line)
		}

		p := pools[code]

		switch kind {
		case kindSupplier:
			p.Suppliers = append(p.Suppliers, value)
		case kindAddress:
			p.Addresses = append(p.Addresses, value)
		default:
			return nil, fmt.Errorf("line %d: unknown kind %q", line, kind)
		}

		pools[code] = p
	}

	return pools, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
