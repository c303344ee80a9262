package atmosphere

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ParseInfo describes how much of an atmospheric table was read.
type ParseInfo struct {
	Rows int
	// Truncated is set if parsing stopped before the end of input because
	// of a malformed or incomplete record. Reason says why.
	Truncated bool
	Reason    string
}

// Parse reads whitespace separated records of altitude, density, depth and
// delta until the end of r. Records need not be on separate lines. A '#'
// starts a comment which runs to the end of its line.
//
// A malformed or incomplete record ends the table: the rows before it are
// kept, and the returned ParseInfo reports the truncation. Only read errors
// from r are returned as errors.
func Parse(r io.Reader) (*Profile, ParseInfo, error) {
	sc := bufio.NewScanner(r)
	sc.Split(scanFields)

	info := ParseInfo{}
	layers := []Layer{}
	var rec [4]float64

records:
	for {
		for i := range rec {
			if !sc.Scan() {
				if i > 0 {
					info.Truncated = true
					info.Reason = fmt.Sprintf(
						"record %d has %d of 4 fields", len(layers)+1, i,
					)
				}
				break records
			}

			x, err := strconv.ParseFloat(sc.Text(), 64)
			if err != nil {
				info.Truncated = true
				info.Reason = fmt.Sprintf(
					"record %d field %d: %q is not a number",
					len(layers)+1, i+1, sc.Text(),
				)
				break records
			}
			rec[i] = x
		}
		layers = append(layers, Layer{rec[0], rec[1], rec[2], rec[3]})
	}

	if err := sc.Err(); err != nil {
		return nil, info, err
	}

	info.Rows = len(layers)
	if info.Truncated {
		log.Warnf("atmospheric table truncated after %d rows: %s",
			info.Rows, info.Reason)
	}

	p, err := New(layers)
	return p, info, err
}

// scanFields is bufio.ScanWords with '#' comments skipped.
func scanFields(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for {
		for start < len(data) && isSpace(data[start]) {
			start++
		}
		if start == len(data) || data[start] != '#' {
			break
		}
		nl := bytes.IndexByte(data[start:], '\n')
		if nl < 0 {
			if atEOF {
				return len(data), nil, nil
			}
			return start, nil, nil
		}
		start += nl + 1
	}

	advance, token, err = bufio.ScanWords(data[start:], atEOF)
	return start + advance, token, err
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
