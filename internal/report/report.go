// Package report renders lookup outcomes for people and spreadsheets.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bahjat/formsearch/internal/model"
)

// WriteText writes the "Searching ..." header and the outcome's lines,
// followed by a blank line.
func WriteText(w io.Writer, query string, o model.Outcome) error {
	if _, err := fmt.Fprintf(w, "Searching %s on: %s\n", query, o.PageURL); err != nil {
		return err
	}
	for _, line := range o.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

var csvHeader = []string{"URL", "Outcome", "Label", "Result URL", "Error Kind", "Detail"}

// WriteCSV writes one row per result link, or a single row with empty link
// columns for outcomes that have none. Failures carry their error kind and
// detail in the last two columns.
func WriteCSV(w io.Writer, outcomes []model.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, o := range outcomes {
		if len(o.Results) == 0 {
			if err := cw.Write([]string{o.PageURL, string(o.Kind), "", "", o.ErrorKind, o.Detail}); err != nil {
				return err
			}
			continue
		}
		for _, r := range o.Results {
			if err := cw.Write([]string{o.PageURL, string(o.Kind), r.Label, r.URL, "", ""}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// UniquePath returns path when no file exists there, otherwise the first of
// name_1.ext, name_2.ext, ... that is free.
func UniquePath(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	} else if err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// SaveCSV writes outcomes to a fresh file next to path and returns its name.
func SaveCSV(path string, outcomes []model.Outcome) (string, error) {
	target, err := UniquePath(path)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(f, outcomes); err != nil {
		_ = f.Close()
		return "", err
	}
	return target, f.Close()
}
