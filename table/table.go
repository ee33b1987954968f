// Copyright 2024 Boardmill Authors

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table implements the normalized tabular form of board data: typed
// cells, one row per item, and CSV / aligned text rendering.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
)

// Row is a single table row of cells. Within a Table, every row has exactly
// one cell per header column.
type Row []Cell

// CSV is the encoding/csv compatible representation of the row.
func (r Row) CSV() []string {
	res := make([]string, len(r))
	for i, c := range r {
		res[i] = c.String()
	}
	return res
}

// Table is an ordered sequence of rows under a fixed header.
//
// A typical use:
//
//	t := NewTable("Item", "Status", "Points")
//	t.AddRow(Row{String("Task A"), String("Done"), Number(5)})
type Table struct {
	Header []string
	Rows   []Row
}

// NewTable creates a new Table instance with the given column headers.
func NewTable(header ...string) *Table {
	return &Table{Header: header}
}

// AddRow adds one or more rows to the table.
func (t *Table) AddRow(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Record returns row i as a mapping from column title to cell value. Every
// record of a table has the same key set, the table's header.
func (t *Table) Record(i int) map[string]Cell {
	rec := make(map[string]Cell, len(t.Header))
	for j, title := range t.Header {
		rec[title] = t.Rows[i][j]
	}
	return rec
}

// Params are parameters for pretty-printing or CSV export of Table data.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
}

// limit returns the number of rows to write under p.
func (t *Table) limit(p Params) int {
	n := len(t.Rows)
	if p.Rows > 0 && p.Rows < n {
		n = p.Rows
	}
	return n
}

// WriteCSV writes the entire table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if !p.NoHeader && len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for _, r := range t.Rows[:t.limit(p)] {
		if err := cw.Write(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// WriteText writes the table as a text formatted for ease of reading: cells
// right-aligned to the column width, columns separated by " | ", and a dashed
// separator under the header.
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	var lines [][]string
	if !p.NoHeader && len(t.Header) > 0 {
		lines = append(lines, t.Header)
	}
	for _, r := range t.Rows[:t.limit(p)] {
		lines = append(lines, r.CSV())
	}
	if len(lines) == 0 {
		return nil
	}

	widths := make([]int, len(lines[0]))
	for _, line := range lines {
		if len(line) != len(widths) {
			return errors.Reason("row size [%d] != expected size [%d]",
				len(line), len(widths))
		}
		for i, s := range line {
			if widths[i] < len(s) {
				widths[i] = len(s)
				if p.MaxColWidth > 0 && widths[i] > p.MaxColWidth {
					widths[i] = p.MaxColWidth
				}
			}
		}
	}

	write := func(line []string) error {
		padded := make([]string, len(line))
		for i, s := range line {
			if len([]rune(s)) > widths[i] {
				s = string([]rune(s)[:widths[i]-2]) + ".."
			}
			padded[i] = fmt.Sprintf("%[2]*[1]s", s, widths[i])
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.Join(padded, " | "))
		return err
	}

	if !p.NoHeader && len(t.Header) > 0 {
		if err := write(lines[0]); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
		separator := make([]string, len(widths))
		for i, width := range widths {
			separator[i] = strings.Repeat("-", width)
		}
		if err := write(separator); err != nil {
			return errors.Annotate(err, "failed to write header separator")
		}
		lines = lines[1:]
	}
	for _, line := range lines {
		if err := write(line); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	return nil
}
