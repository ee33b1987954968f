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

package table

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of one numeric table column, computed
// over its non-null numeric cells.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	StdDev float64 // 0 when Count < 2
	Min    float64
	Max    float64
}

// Summarize computes a Summary for every column of t that has at least one
// numeric cell, in header order. Null and non-numeric cells do not contribute.
func Summarize(t *Table) []Summary {
	var res []Summary
	for i, title := range t.Header {
		var xs []float64
		for _, r := range t.Rows {
			if x, ok := r[i].Float(); ok {
				xs = append(xs, x)
			}
		}
		if len(xs) == 0 {
			continue
		}
		s := Summary{
			Column: title,
			Count:  len(xs),
			Mean:   stat.Mean(xs, nil),
			Min:    floats.Min(xs),
			Max:    floats.Max(xs),
		}
		if len(xs) > 1 {
			s.StdDev = stat.StdDev(xs, nil)
		}
		res = append(res, s)
	}
	return res
}

// SummaryTable renders per-column statistics as a table, for printing next to
// the data itself.
func SummaryTable(t *Table) *Table {
	st := NewTable("Column", "Count", "Mean", "StdDev", "Min", "Max")
	for _, s := range Summarize(t) {
		st.AddRow(Row{
			String(s.Column),
			Number(float64(s.Count)),
			Number(s.Mean),
			Number(s.StdDev),
			Number(s.Min),
			Number(s.Max),
		})
	}
	return st
}
