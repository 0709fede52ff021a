package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the statement in its wide on-disk form: a "Metrics" column
// holding the row labels, then one column per period.
func WriteCSV(w io.Writer, s *Statement) error {
	cw := csv.NewWriter(w)
	header := append([]string{MetricsColumn}, s.Periods...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, it := range s.Items {
		rec := make([]string, 0, len(it.Values)+1)
		rec = append(rec, it.Name)
		for _, v := range it.Values {
			rec = append(rec, v.String())
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the statement to path, replacing any existing file.
func WriteFile(path string, s *Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, s); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV reads a statement back from its wide on-disk form.
func ReadCSV(r io.Reader) (*Statement, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 || header[0] != MetricsColumn {
		return nil, fmt.Errorf("first column is %q, want %q", headerLabel(header), MetricsColumn)
	}
	st := New(header[1:]...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		values := make([]Value, 0, len(rec)-1)
		for _, cell := range rec[1:] {
			v, err := ParseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("row %q: %w", rec[0], err)
			}
			values = append(values, v)
		}
		st.Append(rec[0], values...)
	}
	return st, nil
}

// ReadFile reads a statement CSV from disk. A missing file surfaces as the
// underlying *os* error so callers can treat it as fatal.
func ReadFile(path string) (*Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

func headerLabel(header []string) string {
	if len(header) == 0 {
		return ""
	}
	return header[0]
}
