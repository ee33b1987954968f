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

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/boardmill/boardmill/monday"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	Convey("Config defaults and validation", t, func() {
		Convey("defaults", func() {
			var c Config
			So(c.InitMessage(testutil.JSON(`{"boards": [42, 43]}`)), ShouldBeNil)
			So(c, ShouldResemble, Config{
				Boards: []int64{42, 43}, PerPage: 100, Parallel: 1})
		})

		Convey("boards are required", func() {
			var c Config
			So(c.InitMessage(testutil.JSON(`{}`)), ShouldNotBeNil)
			So(c.InitMessage(testutil.JSON(`{"boards": []}`)), ShouldNotBeNil)
		})

		Convey("page size and parallelism must be positive", func() {
			var c Config
			So(c.InitMessage(testutil.JSON(`{"boards": [1], "per_page": 0}`)),
				ShouldNotBeNil)
			So(c.InitMessage(testutil.JSON(`{"boards": [1], "parallel": 0}`)),
				ShouldNotBeNil)
		})
	})
}

func TestBoards(t *testing.T) {
	t.Parallel()

	Convey("Boards extraction works", t, func() {
		server := fetch.NewTestServer()
		defer server.Close()

		monday.URL = server.URL()
		client := monday.NewClient("testkey")
		client.HTTP = server.Client()
		ctx := monday.WithClient(context.Background(), client)

		sprint := monday.Board{
			Name: "Sprint 1",
			Columns: []monday.Column{
				{ID: "c1", Title: "Status", Type: monday.TypeStatus},
				{ID: "c2", Title: "Points", Type: monday.TypeNumeric},
			},
			Items: []monday.Item{
				{ID: "i1", Name: "Task A", ColumnValues: map[string]monday.RawValue{
					"c1": monday.LabelValue("Done"),
					"c2": monday.TextValue("5"),
				}},
			},
		}
		boardPage, err := monday.TestBoardResponse(sprint, "")
		So(err, ShouldBeNil)
		errorPage, err := monday.TestErrorResponse(
			"Not Authenticated", "authentication_error")
		So(err, ShouldBeNil)

		Convey("single board", func() {
			server.ResponseBody = []string{boardPage}

			data, err := Board(ctx, 42)
			So(err, ShouldBeNil)
			So(data.ID, ShouldEqual, monday.BoardID(42))
			So(data.Name, ShouldEqual, "Sprint 1")
			So(len(data.Table.Rows), ShouldEqual, 1)
		})

		Convey("sequential multi-board in input order", func() {
			server.ResponseBody = []string{boardPage, boardPage}
			cfg := Config{Boards: []int64{42, 43}, PerPage: 50, Parallel: 1}

			results, err := Boards(ctx, &cfg)
			So(err, ShouldBeNil)
			So(len(results), ShouldEqual, 2)
			So(results[0].ID, ShouldEqual, monday.BoardID(42))
			So(results[1].ID, ShouldEqual, monday.BoardID(43))
			So(results[0].Err, ShouldBeNil)
			So(results[0].Board.Name, ShouldEqual, "Sprint 1")
			So(results[1].Board.ID, ShouldEqual, monday.BoardID(43))
		})

		Convey("a failing board does not disturb the others", func() {
			server.ResponseBody = []string{errorPage, boardPage}
			cfg := Config{Boards: []int64{41, 42}, PerPage: 100, Parallel: 1}

			results, err := Boards(ctx, &cfg)
			So(err, ShouldBeNil)
			So(len(results), ShouldEqual, 2)
			var apiErr *monday.APIError
			So(errors.As(results[0].Err, &apiErr), ShouldBeTrue)
			So(apiErr.Message, ShouldEqual, "Not Authenticated")
			So(results[0].Board, ShouldBeNil)
			So(results[1].Err, ShouldBeNil)
			So(results[1].Board.Name, ShouldEqual, "Sprint 1")
		})

		Convey("FailFast stops at the first failure", func() {
			server.ResponseBody = []string{boardPage, errorPage, boardPage}
			cfg := Config{Boards: []int64{42, 41, 43},
				PerPage: 100, Parallel: 1, FailFast: true}

			results, err := Boards(ctx, &cfg)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "board 41")
			So(len(results), ShouldEqual, 1)
			So(results[0].ID, ShouldEqual, monday.BoardID(42))
		})

		Convey("parallel mode preserves input order", func() {
			// Overlapping requests may consume the replies in any order, so
			// all of them are the same page.
			server.ResponseBody = []string{boardPage, boardPage, boardPage}
			cfg := Config{Boards: []int64{42, 43, 44}, PerPage: 100, Parallel: 3}

			results, err := Boards(ctx, &cfg)
			So(err, ShouldBeNil)
			So(len(results), ShouldEqual, 3)
			for i, id := range []monday.BoardID{42, 43, 44} {
				So(results[i].ID, ShouldEqual, id)
				So(results[i].Err, ShouldBeNil)
				So(results[i].Board.ID, ShouldEqual, id)
				So(results[i].Board.Name, ShouldEqual, "Sprint 1")
			}
		})
	})
}
