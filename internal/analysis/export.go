package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// CSVHeader is the first line of every exported profile.
var CSVHeader = []string{"R", "avg", "samples"}

// WriteCSV writes p as "R,avg,samples" lines. avg is printed with precision
// decimals and left blank when the sample has no data.
func WriteCSV(w io.Writer, p Profile, precision int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, s := range p {
		avg := ""
		if s.Valid() {
			avg = strconv.FormatFloat(s.Average, 'f', precision, 64)
		}
		if err := cw.Write([]string{strconv.Itoa(s.Radius), avg, strconv.Itoa(s.Samples)}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses a profile written by WriteCSV. A blank avg reads back as
// NaN.
func ReadCSV(r io.Reader) (Profile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i, name := range CSVHeader {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("unexpected csv header %q", strings.Join(header, ","))
		}
	}

	var p Profile
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		radius, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid radius %q: %w", rec[0], err)
		}
		avg := math.NaN()
		if t := strings.TrimSpace(rec[1]); t != "" {
			if avg, err = strconv.ParseFloat(t, 64); err != nil {
				return nil, fmt.Errorf("invalid avg %q: %w", rec[1], err)
			}
		}
		samples, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid sample count %q: %w", rec[2], err)
		}
		p = append(p, RadialSample{Radius: radius, Average: avg, Samples: samples})
	}
	return p, nil
}

// profileRow is the Parquet schema of one radial sample; avg is null when
// the sample has no data.
type profileRow struct {
	Radius  int64    `parquet:"r"`
	Average *float64 `parquet:"avg,optional"`
	Samples int64    `parquet:"samples"`
}

// WriteParquet writes p as a single Parquet file to w.
func WriteParquet(w io.Writer, p Profile) error {
	rows := make([]profileRow, len(p))
	for i, s := range p {
		rows[i] = profileRow{Radius: int64(s.Radius), Samples: int64(s.Samples)}
		if s.Valid() {
			avg := s.Average
			rows[i].Average = &avg
		}
	}

	writer := parquet.NewGenericWriter[profileRow](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// ReadParquet reads a profile written by WriteParquet.
func ReadParquet(r io.ReaderAt, size int64) (Profile, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[profileRow](pf)
	defer reader.Close()

	p := make(Profile, 0, pf.NumRows())
	rows := make([]profileRow, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			s := RadialSample{Radius: int(row.Radius), Samples: int(row.Samples), Average: math.NaN()}
			if row.Average != nil {
				s.Average = *row.Average
			}
			p = append(p, s)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
	return p, nil
}

// Format selects an export encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// FormatFromPath picks Parquet for a ".parquet" extension and CSV otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet
	}
	return FormatCSV
}

// Export writes p to path in the format implied by its extension.
func Export(path string, p Profile, precision int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	format := FormatFromPath(path)
	switch format {
	case FormatParquet:
		err = WriteParquet(f, p)
	default:
		err = WriteCSV(f, p, precision)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close export file: %w", cerr)
	}
	if err != nil {
		return err
	}

	slog.Debug("profile exported", "path", path, "format", format, "rows", len(p))
	return nil
}

// Import reads a profile from path in the format implied by its extension.
func Import(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	if FormatFromPath(path) == FormatParquet {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		return ReadParquet(f, info.Size())
	}
	return ReadCSV(f)
}
