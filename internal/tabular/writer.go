package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"poker-tracker/internal/domain"
)

// WriteDerived writes the fixed username+metric header followed by one
// row per record. Undefined metrics are written as empty cells so the
// distinction between "0%" and "never had the chance" survives the file.
func WriteDerived(w io.Writer, records []domain.DerivedStats) error {
	cw := csv.NewWriter(w)

	header := append([]string{derivedUsernameColumn}, domain.MetricColumns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		row := make([]string, 0, len(header))
		row = append(row, rec.Username)
		for _, m := range rec.Metrics() {
			row = append(row, formatMetric(m))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDerivedFile is WriteDerived into a file on disk.
func WriteDerivedFile(path string, records []domain.DerivedStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteDerived(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatMetric(m domain.Metric) string {
	if !m.Valid {
		return ""
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}
