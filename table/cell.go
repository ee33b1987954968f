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
	"strconv"
)

// cellKind discriminates the value stored in a Cell.
type cellKind uint8

const (
	kindNull cellKind = iota
	kindBool
	kindNumber
	kindDate
	kindString
)

// Cell is a single table value: a union of string, number, date or bool. The
// zero value is the null cell, which renders as an empty string.
type Cell struct {
	kind   cellKind
	number float64
	string string
	date   Date
	bool   bool
}

// Null creates a null cell, same as the zero value.
func Null() Cell {
	return Cell{}
}

// String creates a string cell.
func String(s string) Cell {
	return Cell{kind: kindString, string: s}
}

// Number creates a numeric cell.
func Number(x float64) Cell {
	return Cell{kind: kindNumber, number: x}
}

// DateCell creates a date cell.
func DateCell(d Date) Cell {
	return Cell{kind: kindDate, date: d}
}

// Bool creates a boolean cell.
func Bool(b bool) Cell {
	return Cell{kind: kindBool, bool: b}
}

// IsNull tests whether the cell holds no value.
func (c Cell) IsNull() bool {
	return c.kind == kindNull
}

// Float returns the numeric value, and whether the cell is numeric.
func (c Cell) Float() (float64, bool) {
	return c.number, c.kind == kindNumber
}

// Date returns the date value, and whether the cell is a date.
func (c Cell) Date() (Date, bool) {
	return c.date, c.kind == kindDate
}

// Value returns the cell's value as one of nil, bool, float64, Date or string.
func (c Cell) Value() interface{} {
	switch c.kind {
	case kindBool:
		return c.bool
	case kindNumber:
		return c.number
	case kindDate:
		return c.date
	case kindString:
		return c.string
	}
	return nil
}

// String renders the cell's value; the null cell renders as "".
func (c Cell) String() string {
	switch c.kind {
	case kindBool:
		return strconv.FormatBool(c.bool)
	case kindNumber:
		return strconv.FormatFloat(c.number, 'g', -1, 64)
	case kindDate:
		return c.date.String()
	case kindString:
		return c.string
	}
	return ""
}

// Less orders cells for sorting: null < bool < number < date < string, and
// natural ordering within each kind. Null first makes unset values float to
// the top of an ascending sort.
func (c Cell) Less(c2 Cell) bool {
	if c.kind != c2.kind {
		return c.kind < c2.kind
	}
	switch c.kind {
	case kindBool:
		return !c.bool && c2.bool
	case kindNumber:
		return c.number < c2.number
	case kindDate:
		return c.date.Before(c2.date)
	case kindString:
		return c.string < c2.string
	}
	return false // two nulls are equal
}
