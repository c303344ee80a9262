package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteColumns writes cols as a whitespace separated table, one column per
// slice, preceded by a commented header line if header is non-empty. All
// columns must have the same length.
func WriteColumns(w io.Writer, header []string, cols ...[]float64) error {
	if len(cols) == 0 {
		return fmt.Errorf("No columns to write.")
	}
	if len(header) > 0 && len(header) != len(cols) {
		return fmt.Errorf(
			"Header has %d names, but there are %d columns.",
			len(header), len(cols),
		)
	}
	rows := len(cols[0])
	for i, col := range cols {
		if len(col) != rows {
			return fmt.Errorf(
				"Column %d has %d rows, but column 0 has %d.", i, len(col), rows,
			)
		}
	}

	bw := bufio.NewWriter(w)
	if len(header) > 0 {
		fmt.Fprintf(bw, "# %s\n", strings.Join(header, " "))
	}
	for j := 0; j < rows; j++ {
		for i, col := range cols {
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%.10g", col[j])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteColumnsFile is WriteColumns into a newly created file.
func WriteColumnsFile(fname string, header []string, cols ...[]float64) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteColumns(f, header, cols...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteMatrixFile writes rows as a table whose first column is key[i] and
// whose remaining columns are rows[i]. The header line lists the values
// labelling the remaining columns.
func WriteMatrixFile(
	fname, keyName string, key, labels []float64, rows [][]float64,
) error {
	if len(key) != len(rows) {
		return fmt.Errorf(
			"Matrix has %d rows, but %d keys.", len(rows), len(key),
		)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	fmt.Fprintf(bw, "# %s", keyName)
	for _, l := range labels {
		fmt.Fprintf(bw, " %g", l)
	}
	bw.WriteByte('\n')

	for i, row := range rows {
		if len(row) != len(labels) {
			f.Close()
			return fmt.Errorf(
				"Row %d has %d values, but there are %d labels.",
				i, len(row), len(labels),
			)
		}
		fmt.Fprintf(bw, "%.10g", key[i])
		for _, x := range row {
			fmt.Fprintf(bw, " %.10g", x)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
