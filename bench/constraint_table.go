package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Column names of the persisted constraint table.
const (
	colOptimalVal    = "optimal_val"
	colFeasibleRatio = "feasible_ratio"
	colTop10Overlap  = "top_10%_overlap"
	colTop1Overlap   = "top_1%_overlap"

	quantileSuffix  = "_quantile"
	thresholdSuffix = "_threshold"
)

// ConstraintRow is one quantile combination of a ConstraintTable.
// Levels and Thresholds are aligned with ConstraintTable.Dims.
type ConstraintRow struct {
	Levels        []float64
	Thresholds    []float64
	OptimalVal    float64 // NaN when no configuration is feasible
	FeasibleRatio float64
	Top10Overlap  float64
	Top1Overlap   float64
}

// HasOptimal reports whether at least one configuration was feasible when
// the row was built.
func (r ConstraintRow) HasOptimal() bool {
	return !math.IsNaN(r.OptimalVal)
}

// ConstraintTable is the per-dataset grid of quantile combinations over one
// or two auxiliary objectives. Built offline, read-only afterwards.
type ConstraintTable struct {
	Dims []string
	Rows []ConstraintRow
}

// DimIndex returns the column position of objective name, or -1.
func (t *ConstraintTable) DimIndex(name string) int {
	for i, d := range t.Dims {
		if d == name {
			return i
		}
	}
	return -1
}

// ConstraintTablePath returns the conventional location of a dataset's table.
func ConstraintTablePath(metadataDir, dataset string) string {
	return filepath.Join(metadataDir, dataset+".csv")
}

// LoadConstraintTable reads a persisted constraint table from path.
func LoadConstraintTable(path string) (*ConstraintTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open constraint table: %w", err)
	}
	defer file.Close()

	table, err := ReadConstraintTable(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logrus.Infof("Loaded constraint table %s: dims=%v, %d rows", path, table.Dims, len(table.Rows))
	return table, nil
}

// ReadConstraintTable parses the CSV form of a constraint table. Structural
// problems wrap ErrConfiguration.
func ReadConstraintTable(r io.Reader) (*ConstraintTable, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read constraint table CSV: %v", ErrConfiguration, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: constraint table CSV missing header", ErrConfiguration)
	}

	header := records[0]
	var dims []string
	var quantileCols, thresholdCols []int
	statCols := map[string]int{}
	for i := 0; i < len(header); i++ {
		col := header[i]
		switch {
		case strings.HasSuffix(col, quantileSuffix):
			name := strings.TrimSuffix(col, quantileSuffix)
			if i+1 >= len(header) || header[i+1] != name+thresholdSuffix {
				return nil, fmt.Errorf("%w: column %q must be followed by %q", ErrConfiguration, col, name+thresholdSuffix)
			}
			for _, d := range dims {
				if d == name {
					return nil, fmt.Errorf("%w: duplicate constraint dimension %q", ErrConfiguration, name)
				}
			}
			dims = append(dims, name)
			quantileCols = append(quantileCols, i)
			thresholdCols = append(thresholdCols, i+1)
			i++
		case col == colOptimalVal || col == colFeasibleRatio || col == colTop10Overlap || col == colTop1Overlap:
			if _, dup := statCols[col]; dup {
				return nil, fmt.Errorf("%w: duplicate constraint table column %q", ErrConfiguration, col)
			}
			statCols[col] = i
		default:
			return nil, fmt.Errorf("%w: unexpected constraint table column %q", ErrConfiguration, col)
		}
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: constraint table has no quantile columns", ErrConfiguration)
	}
	for _, col := range []string{colOptimalVal, colFeasibleRatio, colTop10Overlap, colTop1Overlap} {
		if _, ok := statCols[col]; !ok {
			return nil, fmt.Errorf("%w: constraint table missing column %q", ErrConfiguration, col)
		}
	}

	table := &ConstraintTable{Dims: dims, Rows: make([]ConstraintRow, 0, len(records)-1)}
	for i, record := range records[1:] { // Skip header
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: constraint table row %d: expected %d columns", ErrConfiguration, i+2, len(header))
		}
		row := ConstraintRow{
			Levels:     make([]float64, len(dims)),
			Thresholds: make([]float64, len(dims)),
		}
		for d := range dims {
			if row.Levels[d], err = parseCell(record[quantileCols[d]], false); err != nil {
				return nil, fmt.Errorf("%w: constraint table row %d: invalid %s: %v", ErrConfiguration, i+2, header[quantileCols[d]], err)
			}
			if row.Thresholds[d], err = parseCell(record[thresholdCols[d]], false); err != nil {
				return nil, fmt.Errorf("%w: constraint table row %d: invalid %s: %v", ErrConfiguration, i+2, header[thresholdCols[d]], err)
			}
		}
		if row.OptimalVal, err = parseCell(record[statCols[colOptimalVal]], true); err != nil {
			return nil, fmt.Errorf("%w: constraint table row %d: invalid %s: %v", ErrConfiguration, i+2, colOptimalVal, err)
		}
		if row.FeasibleRatio, err = parseCell(record[statCols[colFeasibleRatio]], false); err != nil {
			return nil, fmt.Errorf("%w: constraint table row %d: invalid %s: %v", ErrConfiguration, i+2, colFeasibleRatio, err)
		}
		if row.Top10Overlap, err = parseCell(record[statCols[colTop10Overlap]], true); err != nil {
			return nil, fmt.Errorf("%w: constraint table row %d: invalid %s: %v", ErrConfiguration, i+2, colTop10Overlap, err)
		}
		if row.Top1Overlap, err = parseCell(record[statCols[colTop1Overlap]], true); err != nil {
			return nil, fmt.Errorf("%w: constraint table row %d: invalid %s: %v", ErrConfiguration, i+2, colTop1Overlap, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// WriteConstraintTable writes t in CSV form. A missing optimal value is
// written as an empty cell.
func WriteConstraintTable(w io.Writer, t *ConstraintTable) error {
	writer := csv.NewWriter(w)
	header := make([]string, 0, 2*len(t.Dims)+4)
	for _, d := range t.Dims {
		header = append(header, d+quantileSuffix, d+thresholdSuffix)
	}
	header = append(header, colOptimalVal, colFeasibleRatio, colTop10Overlap, colTop1Overlap)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write constraint table header: %w", err)
	}
	for i, row := range t.Rows {
		if len(row.Levels) != len(t.Dims) || len(row.Thresholds) != len(t.Dims) {
			return fmt.Errorf("constraint table row %d: expected %d dims", i, len(t.Dims))
		}
		record := make([]string, 0, len(header))
		for d := range t.Dims {
			record = append(record, formatCell(row.Levels[d]), formatCell(row.Thresholds[d]))
		}
		record = append(record,
			formatCell(row.OptimalVal),
			formatCell(row.FeasibleRatio),
			formatCell(row.Top10Overlap),
			formatCell(row.Top1Overlap),
		)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write constraint table row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveConstraintTable writes t to path, creating parent directories.
func SaveConstraintTable(path string, t *ConstraintTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metadata dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create constraint table: %w", err)
	}
	if err := WriteConstraintTable(file, t); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func parseCell(s string, allowMissing bool) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		if allowMissing {
			return math.NaN(), nil
		}
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(s, 64)
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
