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

// Package extract converts raw Monday.com board payloads into typed tables.
//
// Raw column values arrive as type-tagged JSON fragments. Normalize decodes
// each fragment according to its column's declared type and assembles one
// table row per item. Decode failures of individual cells degrade to null
// cells and never fail the board.
package extract

import (
	"strconv"
	"strings"

	"github.com/boardmill/boardmill/monday"
	"github.com/boardmill/boardmill/table"
)

// BoardData is a fully normalized board: its identity, column definitions and
// the items as a typed table.
type BoardData struct {
	ID      monday.BoardID
	Name    string
	Columns []monday.Column
	Table   *table.Table
}

// labelColumn is the title of the synthetic first column holding item names.
const labelColumn = "Item"

// Normalize converts a fetched board into a BoardData. The resulting table
// has one row per item: the item's name (or id, if the name is empty)
// followed by one typed cell per board column, in board order. Columns
// missing from an item and values that fail to decode become null cells.
func Normalize(board *monday.Board) (*BoardData, error) {
	if board == nil {
		return nil, &monday.DecodeError{Reason: "no board to normalize"}
	}
	header := make([]string, len(board.Columns)+1)
	header[0] = labelColumn
	for i, col := range board.Columns {
		header[i+1] = col.Title
	}
	tbl := table.NewTable(header...)
	for _, item := range board.Items {
		row := make(table.Row, 0, len(header))
		label := item.Name
		if label == "" {
			label = item.ID
		}
		row = append(row, table.String(label))
		for _, col := range board.Columns {
			row = append(row, cell(item.ColumnValues[col.ID], col.Type))
		}
		tbl.AddRow(row)
	}
	return &BoardData{
		ID:      board.ID,
		Name:    board.Name,
		Columns: board.Columns,
		Table:   tbl,
	}, nil
}

// cell decodes a single raw column value according to the column type.
func cell(v monday.RawValue, t monday.ColumnType) table.Cell {
	switch t {
	case monday.TypeStatus:
		if v.Label == nil {
			return table.Null()
		}
		return table.String(*v.Label)
	case monday.TypeDropdown:
		if len(v.Labels) == 0 {
			return table.Null()
		}
		return table.String(strings.Join(v.Labels, ", "))
	case monday.TypeText, monday.TypeLongText:
		if v.Text == nil || *v.Text == "" {
			return table.Null()
		}
		return table.String(*v.Text)
	case monday.TypeNumeric:
		if v.Text == nil || *v.Text == "" {
			return table.Null()
		}
		x, err := strconv.ParseFloat(*v.Text, 64)
		if err != nil {
			return table.Null()
		}
		return table.Number(x)
	case monday.TypeDate:
		if v.Date == nil || *v.Date == "" {
			return table.Null()
		}
		d, err := table.NewDateFromString(*v.Date)
		if err != nil {
			return table.Null()
		}
		return table.DateCell(d)
	case monday.TypeCheckbox:
		if v.Checked == nil {
			return table.Null()
		}
		return table.Bool(*v.Checked)
	case monday.TypeFile:
		if len(v.Files) == 0 {
			return table.Null()
		}
		names := make([]string, len(v.Files))
		for i, f := range v.Files {
			names[i] = f.Name
		}
		return table.String(strings.Join(names, ", "))
	}
	// Unknown column types fall back to whatever text the fragment carries.
	if v.Text != nil && *v.Text != "" {
		return table.String(*v.Text)
	}
	if v.Label != nil {
		return table.String(*v.Label)
	}
	return table.Null()
}
