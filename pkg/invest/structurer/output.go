package structurer

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

func writeCSV(path string, w *Wide) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(w.Header()); err != nil {
		f.Close()
		return err
	}
	for _, k := range w.Keys {
		rec := make([]string, 0, len(w.Columns)+3)
		rec = append(rec, k.Year, k.Ticker, k.Company)
		for _, col := range w.Columns {
			rec = append(rec, w.Cells[k][col].String())
		}
		if err := cw.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeXLSX(path string, w *Wide) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for i, h := range w.Header() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, k := range w.Keys {
		for c, text := range []string{k.Year, k.Ticker, k.Company} {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return err
			}
		}
		for c, col := range w.Columns {
			v := w.Cells[k][col]
			if !v.Valid {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+4, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v.Float); err != nil {
				return err
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
