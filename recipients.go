package mailmerge

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Record is one recipient row: named string fields kept in source
// column order. Records are immutable once loaded.
type Record struct {
	names  []string
	values map[string]string
}

// NewRecord creates an empty record. Fields are added with Set and keep
// insertion order.
func NewRecord() Record {
	return Record{values: make(map[string]string)}
}

// Set adds or replaces a field. A new field name is appended to the
// record's field order.
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get returns the value of the named field, or "" if the record does
// not carry it. Field names are case sensitive.
func (r Record) Get(name string) string {
	return r.values[name]
}

// Lookup returns the value of the named field and whether the record
// carries it.
func (r Record) Lookup(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Fields returns the record's field names in source column order.
func (r Record) Fields() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.names)
}

// LoadRecipients reads the delimited recipient list at path. The header
// row defines the field names; every following row becomes one Record.
// Rows with fewer cells than headers yield empty-string values for the
// missing fields. No field validation happens here; the campaign runner
// decides per record whether an Email value is usable.
// The returned error wraps fs.ErrNotExist when the file is missing.
func LoadRecipients(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recipient list %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recipient list %s: %w", path, err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("recipient list %s: %w", path, err)
		}

		rec := NewRecord()
		for i, name := range header {
			var value string
			if i < len(row) {
				value = row[i]
			}
			rec.Set(name, value)
		}
		records = append(records, rec)
	}

	return records, nil
}
