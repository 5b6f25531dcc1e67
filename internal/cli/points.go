package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// readPoints reads a two-column CSV file of x,y coordinates.
// A non-numeric first row is treated as a header and skipped.
func readPoints(path string) (xs, ys []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return parsePoints(f)
}

func parsePoints(r io.Reader) (xs, ys []float64, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read points: %w", err)
		}
		line++

		x, errX := strconv.ParseFloat(rec[0], 64)
		y, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			// Tolerate a header on the first row only.
			if line == 1 {
				continue
			}
			return nil, nil, fmt.Errorf("line %d: not a coordinate pair: %q,%q", line, rec[0], rec[1])
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("no points found")
	}
	return xs, ys, nil
}
