package curve

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"filmimport/internal/logging"
)

// Reader loads curve files, logging recoverable failures instead of returning them.
type Reader struct {
	logger *slog.Logger
}

// NewReader constructs a Reader. A nil logger discards diagnostics.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logging.NewComponentLogger(logger, "curve")}
}

// Points reads the first two numeric columns of path. A missing file yields an
// empty curve; any other failure is logged and also yields an empty curve.
func (r *Reader) Points(path string) Curve {
	file, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.warnUnreadable(path, err)
		}
		return Curve{}
	}
	defer file.Close()

	points, err := ParsePoints(file)
	if err != nil {
		r.warnUnreadable(path, err)
		return Curve{}
	}
	return points
}

// Columns reads every numeric column of path. Rows that contain a
// non-numeric field or fewer than two columns are skipped. All returned rows
// are truncated to the width of the narrowest accepted row.
func (r *Reader) Columns(path string) [][]float64 {
	file, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.warnUnreadable(path, err)
		}
		return nil
	}
	defer file.Close()

	rows, err := ParseColumns(file)
	if err != nil {
		r.warnUnreadable(path, err)
		return nil
	}
	return rows
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (r *Reader) warnUnreadable(path string, err error) {
	logging.WarnWithContext(r.logger, "curve file unreadable", "curve_read_failed",
		logging.String(logging.FieldPath, path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the file permissions and CSV encoding"),
		logging.String(logging.FieldImpact, "curve treated as empty"),
	)
}

// ParsePoints decodes two-column numeric CSV data. Rows with fewer than two
// fields or non-finite values are skipped; extra columns are ignored.
func ParsePoints(src io.Reader) (Curve, error) {
	points := Curve{}
	err := eachRecord(src, func(record []string) {
		if len(record) < 2 {
			return
		}
		x, ok := parseFinite(record[0])
		if !ok {
			return
		}
		y, ok := parseFinite(record[1])
		if !ok {
			return
		}
		points = append(points, Point{X: x, Y: y})
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// ParseColumns decodes multi-column numeric CSV data.
func ParseColumns(src io.Reader) ([][]float64, error) {
	var rows [][]float64
	width := math.MaxInt
	err := eachRecord(src, func(record []string) {
		if len(record) < 2 {
			return
		}
		row := make([]float64, 0, len(record))
		for _, field := range record {
			value, ok := parseFinite(field)
			if !ok {
				return
			}
			row = append(row, value)
		}
		width = min(width, len(row))
		rows = append(rows, row)
	})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i] = rows[i][:width]
	}
	return rows, nil
}

func eachRecord(src io.Reader, fn func([]string)) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// A malformed line (stray quote) is skipped like any other bad row.
				continue
			}
			return fmt.Errorf("read csv: %w", err)
		}
		fn(record)
	}
}

func parseFinite(field string) (float64, bool) {
	field = strings.TrimSpace(strings.TrimPrefix(field, "\ufeff"))
	value, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
