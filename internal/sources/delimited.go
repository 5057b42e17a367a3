package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// DelimitedConfig describes one delimited file format
type DelimitedConfig struct {
	Comma     rune
	Comment   rune
	HasHeader bool
	NullToken string // sentinel treated as an absent value, e.g. `\N`
}

// Record is one decoded row. Fields addressed out of range or equal to the
// null token come back as "".
type Record struct {
	fields  []string
	columns map[string]int
	null    string
}

// Get returns the field at a position
func (r Record) Get(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	v := strings.TrimSpace(r.fields[i])
	if r.null != "" && v == r.null {
		return ""
	}
	return v
}

// GetNamed returns the field under a header column name. Files without a
// header have no named columns.
func (r Record) GetNamed(name string) string {
	i, ok := r.columns[name]
	if !ok {
		return ""
	}
	return r.Get(i)
}

// Len returns the number of fields in the row
func (r Record) Len() int {
	return len(r.fields)
}

// EachRecord streams a delimited file row by row. Rows are handed to fn as
// they are read, so route-scale files never sit in memory whole. fn
// returning an error stops the scan.
func EachRecord(path string, cfg DelimitedConfig, fn func(rec Record) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return eachRecordFromReader(file, cfg, fn)
}

func eachRecordFromReader(r io.Reader, cfg DelimitedConfig, fn func(rec Record) error) error {
	reader := csv.NewReader(r)
	if cfg.Comma != 0 {
		reader.Comma = cfg.Comma
	}
	if cfg.Comment != 0 {
		reader.Comment = cfg.Comment
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var columns map[string]int
	first := true

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// One mangled line must not sink the dataset
			continue
		}

		if first && cfg.HasHeader {
			first = false
			columns = make(map[string]int, len(fields))
			for i, name := range fields {
				columns[strings.TrimSpace(name)] = i
			}
			continue
		}
		first = false

		rec := Record{fields: fields, columns: columns, null: cfg.NullToken}
		if err := fn(rec); err != nil {
			return err
		}
	}
}
