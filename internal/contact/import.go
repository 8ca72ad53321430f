package contact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default names applied to single-column CSV rows, which carry only a phone number.
const (
	DefaultFirstName = "John"
	DefaultLastName  = "Doe"
)

// ErrUnsupportedFormat indicates a contact file extension that cannot be imported.
var ErrUnsupportedFormat = errors.New("contact: unsupported file format")

// ReadCSV decodes contact rows from CSV.
// Rows are "first,last,phone" or a single phone column. A leading header row
// naming the columns is skipped, as are lines starting with '#'.
// Rows are returned unvalidated; Import applies the field rules.
func ReadCSV(r io.Reader) ([]Contact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows []Contact
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("contact: reading csv: %w", err)
		}
		if row == 1 && isHeader(rec) {
			continue
		}
		switch len(rec) {
		case 1:
			rows = append(rows, Contact{FirstName: DefaultFirstName, LastName: DefaultLastName, PhoneNumber: rec[0]})
		case 3:
			rows = append(rows, Contact{FirstName: rec[0], LastName: rec[1], PhoneNumber: rec[2]})
		default:
			return nil, fmt.Errorf("contact: csv row %d: want 1 or 3 columns, got %d", row, len(rec))
		}
	}
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(rec[0])) {
	case "first_name", "firstname", "phone_number", "phonenumber", "phone":
		return true
	}
	return false
}

// contactFile is the YAML document layout for contact files.
type contactFile struct {
	Contacts []Contact `yaml:"contacts"`
}

// ReadYAML decodes a YAML document with a top-level "contacts" list.
// Unknown fields are rejected. An empty document yields no rows.
func ReadYAML(r io.Reader) ([]Contact, error) {
	var doc contactFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("contact: parsing yaml: %w", err)
	}
	return doc.Contacts, nil
}

// Import adds rows in order and returns how many were added.
// It stops at the first invalid row; rows before it stay added.
func (m *Manager) Import(rows []Contact) (int, error) {
	for i, c := range rows {
		if err := m.AddContact(c.FirstName, c.LastName, c.PhoneNumber); err != nil {
			return i, fmt.Errorf("contact: row %d: %w", i+1, err)
		}
	}
	return len(rows), nil
}

// ImportFile reads name from fsys and imports its contacts into m.
// The format is chosen by extension: .csv, .yaml or .yml.
func ImportFile(fsys fs.FS, name string, m *Manager) (int, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return 0, fmt.Errorf("contact: opening %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	var rows []Contact
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		rows, err = ReadCSV(f)
	case ".yaml", ".yml":
		rows, err = ReadYAML(f)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	n, err := m.Import(rows)
	if err != nil {
		return n, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
