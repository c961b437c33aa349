package tabular

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"github.com/sirupsen/logrus"

	"github.com/chpobench/chpobench/bench"
)

// Backing-data file extensions, in lookup order.
const (
	ExtSnappyJSON = ".json.sz"
	ExtJSON       = ".json"
)

// FindDataFile returns the backing-data file of dataset under dir, preferring
// the snappy-compressed form.
func FindDataFile(dir, dataset string) (string, error) {
	for _, ext := range []string{ExtSnappyJSON, ExtJSON} {
		path := filepath.Join(dir, dataset+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("no backing data for %q in %s (want %s or %s)", dataset, dir, dataset+ExtSnappyJSON, dataset+ExtJSON)
}

// LoadJSON decodes a JSON object of key -> entry. Files ending in .sz are
// read as a snappy framed stream.
func LoadJSON[E any](path string) (map[string]E, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backing data: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".sz") {
		r = snappy.NewReader(file)
	}
	var rows map[string]E
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode backing data %s: %w", path, err)
	}
	logrus.Infof("Loaded backing data %s: %d configurations", path, len(rows))
	return rows, nil
}

// WriteJSON encodes rows to w, snappy-compressed when compress is set.
func WriteJSON[E any](w io.Writer, rows map[string]E, compress bool) error {
	if !compress {
		return json.NewEncoder(w).Encode(rows)
	}
	sw := snappy.NewBufferedWriter(w)
	if err := json.NewEncoder(sw).Encode(rows); err != nil {
		sw.Close()
		return fmt.Errorf("encode backing data: %w", err)
	}
	return sw.Close()
}

// LoadGridCSV reads a grid of configurations and their metrics. Every
// parameter of space must have a column; metricCols name the value columns.
// Rows are keyed with SerializedKey.
func LoadGridCSV(path string, space bench.Space, metricCols []string) (map[string]map[string]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grid CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read grid CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("grid CSV empty or missing header")
	}

	colOf := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		colOf[name] = i
	}
	for _, p := range space {
		if _, ok := colOf[p.Name]; !ok {
			return nil, fmt.Errorf("grid CSV missing parameter column %q", p.Name)
		}
	}
	for _, m := range metricCols {
		if _, ok := colOf[m]; !ok {
			return nil, fmt.Errorf("grid CSV missing metric column %q", m)
		}
	}

	rows := make(map[string]map[string]float64, len(records)-1)
	for i, record := range records[1:] { // Skip header
		if len(record) != len(records[0]) {
			return nil, fmt.Errorf("grid CSV row %d: expected %d columns", i+2, len(records[0]))
		}
		cfg := make(bench.Config, len(space))
		for _, p := range space {
			v, err := parseChoice(p.Domain, record[colOf[p.Name]])
			if err != nil {
				return nil, fmt.Errorf("grid CSV row %d: %s: %w", i+2, p.Name, err)
			}
			cfg[p.Name] = v
		}
		key, err := SerializedKey(space, cfg)
		if err != nil {
			return nil, fmt.Errorf("grid CSV row %d: %w", i+2, err)
		}
		if _, dup := rows[key]; dup {
			return nil, fmt.Errorf("%w: grid CSV row %d duplicates configuration %s", bench.ErrConfiguration, i+2, key)
		}
		metrics := make(map[string]float64, len(metricCols))
		for _, m := range metricCols {
			v, err := strconv.ParseFloat(record[colOf[m]], 64)
			if err != nil {
				return nil, fmt.Errorf("grid CSV row %d: invalid %s: %w", i+2, m, err)
			}
			metrics[m] = v
		}
		rows[key] = metrics
	}
	logrus.Infof("Loaded grid %s: %d configurations", path, len(rows))
	return rows, nil
}

// parseChoice maps a CSV cell to the matching declared choice of d.
func parseChoice(d bench.Domain, cell string) (any, error) {
	values := d.Spec().Values
	if len(values) == 0 {
		return nil, fmt.Errorf("domain %s has no discrete choices", d)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		if idx, ok := bench.ChoiceIndex(d, f); ok {
			return values[idx], nil
		}
	}
	for _, v := range values {
		if strings.EqualFold(fmt.Sprint(v), cell) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not in %s", bench.ErrInvalidValue, cell, d)
}
