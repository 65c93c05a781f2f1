// Package source reads the list of career pages to search.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoURLs is returned when the input has a header but no data rows.
var ErrNoURLs = errors.New("source: no URLs found")

// ReadURLs returns the first column of every data row of a CSV document.
// The first row is a header and is skipped. Rows whose first cell is blank
// are skipped too. At most limit URLs are returned; limit <= 0 means all.
func ReadURLs(r io.Reader, limit int) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoURLs
		}
		return nil, fmt.Errorf("source: reading header: %w", err)
	}

	var urls []string
	for limit <= 0 || len(urls) < limit {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: reading row %d: %w", len(urls)+2, err)
		}
		if len(record) == 0 {
			continue
		}
		u := strings.TrimSpace(record[0])
		if u == "" {
			continue
		}
		urls = append(urls, u)
	}

	if len(urls) == 0 {
		return nil, ErrNoURLs
	}
	return urls, nil
}
