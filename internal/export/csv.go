package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/fieldsim/internal/grid"
)

// WriteFieldCSV writes b as ny rows of nx comma separated values.
func WriteFieldCSV(w io.Writer, b *grid.Buffer) error {
	cw := csv.NewWriter(w)

	row := make([]string, b.NX())
	for j := 0; j < b.NY(); j++ {
		for i := range row {
			row[i] = strconv.FormatFloat(b.At(i, j), 'f', 6, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes a time,value table with a header.
func WriteSeriesCSV(w io.Writer, name string, times, values []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", name}); err != nil {
		return err
	}
	for i := range values {
		t := 0.0
		if i < len(times) {
			t = times[i]
		}
		rec := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(values[i], 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
