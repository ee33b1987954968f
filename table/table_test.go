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
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	t.Parallel()

	Convey("Table methods work", t, func() {
		tbl := NewTable("Item", "Status", "Points")
		tbl.AddRow(
			Row{String("Task A"), String("Done"), Number(5)},
			Row{String("Task B"), Null(), Number(12.5)},
		)

		Convey("AddRow worked", func() {
			So(tbl.Header, ShouldResemble, []string{"Item", "Status", "Points"})
			So(len(tbl.Rows), ShouldEqual, 2)
		})

		Convey("Record maps titles to cells", func() {
			So(tbl.Record(1), ShouldResemble, map[string]Cell{
				"Item":   String("Task B"),
				"Status": Null(),
				"Points": Number(12.5),
			})
		})

		Convey("WriteCSV", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(tbl.WriteCSV(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Item,Status,Points
Task A,Done,5
Task B,,12.5
`)
			})

			Convey("Limited rows, no header", func() {
				var buf bytes.Buffer
				So(tbl.WriteCSV(&buf, Params{Rows: 1, NoHeader: true}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Task A,Done,5
`)
			})
		})

		Convey("WriteText", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(tbl.WriteText(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
  Item | Status | Points
------ | ------ | ------
Task A |   Done |      5
Task B |        |   12.5
`)
			})

			Convey("Headless", func() {
				headless := &Table{Rows: tbl.Rows}
				var buf bytes.Buffer
				So(headless.WriteText(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Task A | Done |    5
Task B |      | 12.5
`)
			})

			Convey("Limited rows and width, no header", func() {
				var buf bytes.Buffer
				p := Params{Rows: 1, NoHeader: true, MaxColWidth: 4}
				So(tbl.WriteText(&buf, p), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Ta.. | Done | 5
`)
			})

			Convey("Too small MaxColWidth is an error", func() {
				var buf bytes.Buffer
				err := tbl.WriteText(&buf, Params{MaxColWidth: 3})
				So(err, ShouldNotBeNil)
			})

			Convey("Ragged rows are an error", func() {
				ragged := NewTable("One", "Two")
				ragged.AddRow(Row{String("only one")})
				var buf bytes.Buffer
				So(ragged.WriteText(&buf, Params{}), ShouldNotBeNil)
			})
		})

		Convey("Empty table writes nothing", func() {
			var buf bytes.Buffer
			So((&Table{}).WriteText(&buf, Params{}), ShouldBeNil)
			So(buf.String(), ShouldEqual, "")
		})
	})
}
