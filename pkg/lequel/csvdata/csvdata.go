// Package csvdata reads and writes the quoted CSV dialect used for
// language catalogs and trigram tables.
//
// Reading is lenient: a quote opens a quoted section anywhere in a field,
// a doubled quote inside it is a literal quote, and both '\n' and '\r'
// end a record even inside quotes. Records with no fields are dropped, so
// blank lines and CRLF endings need no special casing.
//
// The standard library's encoding/csv rejects bare quotes and quotes that
// open mid-field, which makes one damaged row fail a whole trigram table
// instead of being skipped, so the dialect is implemented here.
package csvdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read parses every record from r.
func Read(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	var (
		records  [][]string
		fields   []string
		field    strings.Builder
		inQuotes bool
		quoted   bool
	)

	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
		quoted = false
	}
	endRecord := func() {
		if field.Len() > 0 || quoted || len(fields) > 0 {
			endField()
		}
		if len(fields) > 0 {
			records = append(records, fields)
		}
		fields = nil
		inQuotes = false
	}

	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch {
		case c == '\n' || c == '\r':
			endRecord()
		case inQuotes && c == '"':
			next, err := br.ReadByte()
			if err == nil && next == '"' {
				field.WriteByte('"')
				continue
			}
			if err == nil {
				br.UnreadByte()
			}
			inQuotes = false
		case inQuotes:
			field.WriteByte(c)
		case c == '"':
			inQuotes = true
			quoted = true
		case c == ',':
			endField()
		default:
			field.WriteByte(c)
		}
	}
	endRecord()

	return records, nil
}

// ReadFile parses the CSV file at path.
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// Write emits records with every field quoted and inner quotes doubled.
func Write(w io.Writer, records [][]string) error {
	bw := bufio.NewWriter(w)
	for _, fields := range records {
		for i, field := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(field, `"`, `""`))
			bw.WriteByte('"')
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes records to path, replacing any existing file.
func WriteFile(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
