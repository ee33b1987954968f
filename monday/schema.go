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

package monday

// BoardID identifies a board. The API does not validate ids locally; an
// unknown id surfaces as an error only in the reply.
type BoardID int64

// ColumnType is the declared value type of a board column, which determines
// how the column's raw values are decoded. Types not listed here decode
// through the raw-text fallback.
type ColumnType string

const (
	TypeStatus   ColumnType = "status"
	TypeText     ColumnType = "text"
	TypeLongText ColumnType = "long_text"
	TypeNumeric  ColumnType = "numeric"
	TypeDate     ColumnType = "date"
	TypeCheckbox ColumnType = "checkbox"
	TypeDropdown ColumnType = "dropdown"
	TypeFile     ColumnType = "file"
)

// Column is the definition of a single board column.
type Column struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Type  ColumnType `json:"type"`
}

// FileRef is one attachment in a file column's value.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RawValue is the column-type-specific encoding of a single cell as returned
// by the API. Which field is set depends on the column type; the zero value
// is an unset cell.
type RawValue struct {
	Label   *string   `json:"label,omitempty"`   // status
	Labels  []string  `json:"labels,omitempty"`  // dropdown
	Text    *string   `json:"text,omitempty"`    // text, long_text, numeric
	Date    *string   `json:"date,omitempty"`    // date
	Checked *bool     `json:"checked,omitempty"` // checkbox
	Files   []FileRef `json:"files,omitempty"`   // file
}

// LabelValue creates a status RawValue.
func LabelValue(label string) RawValue { return RawValue{Label: &label} }

// TextValue creates a text or numeric RawValue.
func TextValue(text string) RawValue { return RawValue{Text: &text} }

// DateValue creates a date RawValue.
func DateValue(date string) RawValue { return RawValue{Date: &date} }

// CheckedValue creates a checkbox RawValue.
func CheckedValue(checked bool) RawValue { return RawValue{Checked: &checked} }

// Item is a single board item with its cell values keyed by column id. A
// column missing from ColumnValues is an unset cell.
type Item struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	ColumnValues map[string]RawValue `json:"column_values"`
}

// Board is the raw payload of one board after all item pages are drained.
type Board struct {
	ID      BoardID
	Name    string
	Columns []Column
	Items   []Item
}

// itemsPage is one page of a board's items, with the cursor linking to the
// next page; an empty cursor means the last page.
type itemsPage struct {
	Cursor string `json:"cursor"`
	Items  []Item `json:"items"`
}

// boardPayload is the per-board part of a boards query reply.
type boardPayload struct {
	Name      string    `json:"name"`
	Columns   []Column  `json:"columns"`
	ItemsPage itemsPage `json:"items_page"`
}

// payload is the data object of a reply; which field is present depends on
// the query.
type payload struct {
	Boards        []boardPayload `json:"boards,omitempty"`
	NextItemsPage *itemsPage     `json:"next_items_page,omitempty"`
}

// apiError is one entry of the GraphQL errors list.
type apiError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code       string `json:"code"`
		StatusCode int    `json:"status_code"`
	} `json:"extensions"`
}

// envelope is the top-level shape of every API reply. Errors come either as
// a GraphQL errors list or, from older endpoints, as top-level error fields.
type envelope struct {
	Data         *payload   `json:"data,omitempty"`
	Errors       []apiError `json:"errors,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	ErrorCode    string     `json:"error_code,omitempty"`
	StatusCode   int        `json:"status_code,omitempty"`
	AccountID    int64      `json:"account_id,omitempty"`
}

// apiErr converts the envelope's error fields, if any, to an APIError.
// status is the HTTP status of the reply.
func (e *envelope) apiErr(status int) *APIError {
	if len(e.Errors) > 0 {
		first := e.Errors[0]
		st := first.Extensions.StatusCode
		if st == 0 {
			st = status
		}
		return &APIError{
			Message:    first.Message,
			Code:       first.Extensions.Code,
			StatusCode: st,
		}
	}
	if e.ErrorMessage != "" {
		st := e.StatusCode
		if st == 0 {
			st = status
		}
		return &APIError{Message: e.ErrorMessage, Code: e.ErrorCode, StatusCode: st}
	}
	return nil
}
