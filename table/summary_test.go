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

func TestSummary(t *testing.T) {
	t.Parallel()

	Convey("Summarize works", t, func() {
		tbl := NewTable("Item", "Points", "Effort")
		tbl.AddRow(
			Row{String("Task A"), Number(5), Number(1)},
			Row{String("Task B"), Number(10), Null()},
			Row{String("Task C"), Number(15), Null()},
		)

		Convey("numeric columns only, nulls skipped", func() {
			So(Summarize(tbl), ShouldResemble, []Summary{
				{Column: "Points", Count: 3, Mean: 10, StdDev: 5, Min: 5, Max: 15},
				{Column: "Effort", Count: 1, Mean: 1, StdDev: 0, Min: 1, Max: 1},
			})
		})

		Convey("no numeric cells means no summaries", func() {
			empty := NewTable("Item", "Status")
			empty.AddRow(Row{String("Task A"), String("Done")})
			So(Summarize(empty), ShouldBeNil)
		})

		Convey("SummaryTable renders", func() {
			var buf bytes.Buffer
			So(SummaryTable(tbl).WriteCSV(&buf, Params{}), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
Column,Count,Mean,StdDev,Min,Max
Points,3,10,5,5,15
Effort,1,1,0,1,1
`)
		})
	})
}
