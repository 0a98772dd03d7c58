// Package points parses the uploaded waypoint file. The format is a
// delimited text file whose header names the columns id, X and Y
// (case-insensitive, any order); the delimiter is a comma if the header
// line contains one, otherwise a tab.
package points

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadPointsFile is returned for any malformed points upload.
var ErrBadPointsFile = errors.New("bad points file")

// RawPoint is one input waypoint. X is longitude, Y is latitude.
type RawPoint struct {
	ID int
	X  float64
	Y  float64
}

// Parse decodes a CSV/TSV points upload. Points are returned in file order.
func Parse(data []byte) ([]RawPoint, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrBadPointsFile)
	}

	headerLine, _, _ := strings.Cut(string(data), "\n")
	delim := byte('\t')
	if strings.Contains(headerLine, ",") {
		delim = ','
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = rune(delim)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPointsFile, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrBadPointsFile)
	}

	idCol, xCol, yCol := -1, -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			idCol = i
		case "x":
			xCol = i
		case "y":
			yCol = i
		}
	}
	if idCol < 0 || xCol < 0 || yCol < 0 {
		return nil, fmt.Errorf("%w: header must contain columns id, X, Y (got %v)",
			ErrBadPointsFile, records[0])
	}

	pts := make([]RawPoint, 0, len(records)-1)
	for line, rec := range records[1:] {
		id, err := strconv.Atoi(strings.TrimSpace(rec[idCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad id %q", ErrBadPointsFile, line+2, rec[idCol])
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[xCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad X %q", ErrBadPointsFile, line+2, rec[xCol])
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(rec[yCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad Y %q", ErrBadPointsFile, line+2, rec[yCol])
		}
		pts = append(pts, RawPoint{ID: id, X: x, Y: y})
	}

	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrBadPointsFile)
	}

	return pts, nil
}
