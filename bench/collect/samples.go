package collect

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/chpobench/chpobench/bench"
)

// ReadSamplesCSV reads objective columns from a CSV with a header row.
// rename maps raw column names (e.g. "valid_mse") to objective names; columns
// that are not objectives after renaming (configuration columns, for
// instance) are skipped.
func ReadSamplesCSV(r io.Reader, rename map[string]string) (Samples, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read samples CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("samples CSV empty or missing header")
	}

	header := records[0]
	cols := make(map[int]string)
	for i, raw := range header {
		name := raw
		if renamed, ok := rename[raw]; ok {
			name = renamed
		}
		if !bench.IsKnownObjective(name) {
			logrus.Debugf("Samples CSV: skipping non-objective column %q", raw)
			continue
		}
		for _, existing := range cols {
			if existing == name {
				return nil, fmt.Errorf("samples CSV: objective %q appears twice", name)
			}
		}
		cols[i] = name
	}

	samples := make(Samples, len(cols))
	for _, name := range cols {
		samples[name] = make([]float64, 0, len(records)-1)
	}
	for i, record := range records[1:] { // Skip header
		if len(record) != len(header) {
			return nil, fmt.Errorf("samples CSV row %d: expected %d columns", i+2, len(header))
		}
		for c, name := range cols {
			v, err := strconv.ParseFloat(record[c], 64)
			if err != nil {
				return nil, fmt.Errorf("samples CSV row %d: invalid %s: %w", i+2, header[c], err)
			}
			samples[name] = append(samples[name], v)
		}
	}
	if _, err := samples.Len(); err != nil {
		return nil, err
	}
	return samples, nil
}

// LoadSamplesCSV opens path and reads it with ReadSamplesCSV.
func LoadSamplesCSV(path string, rename map[string]string) (Samples, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples CSV: %w", err)
	}
	defer file.Close()

	samples, err := ReadSamplesCSV(file, rename)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logrus.Infof("Loaded %d samples from %s", len(samples[bench.Loss]), path)
	return samples, nil
}
