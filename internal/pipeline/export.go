package pipeline

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes header and rows with every field quoted and CRLF line
// endings.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	bw := bufio.NewWriter(w)
	if err := writeCSVRecord(bw, header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeCSVRecord(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSVRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

// ExportRowsToCSV writes to a temp file next to outputPath and renames it
// into place, so a failed run leaves no partial export.
func ExportRowsToCSV(header []string, rows [][]string, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*.csv")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := WriteCSV(tmp, header, rows); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// ExportRowsToXLSX writes header and rows to the first sheet of a new
// workbook. Excel cells hold at most excelize.TotalCellChars characters;
// longer values are cut by excelize and the returned slice names their
// cells.
func ExportRowsToXLSX(header []string, rows [][]string, outputPath string) (truncated []string, err error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		r := i + 2
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r)
			if err != nil {
				return truncated, err
			}
			if utf8.RuneCountInString(value) > excelize.TotalCellChars {
				truncated = append(truncated, cell)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return truncated, err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return truncated, err
	}
	return truncated, f.SaveAs(outputPath)
}
