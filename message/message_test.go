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

package message

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stockparfait/testutil"
)

type Task struct {
	Name     string  `json:"name" required:"true"`
	Owner    string  `json:"owner" default:"unassigned"`
	State    string  `choices:"open,done" default:"open"`
	Points   float64 `default:"1.5"`
	Retries  *int    `default:"2"`
	Board    int64   `json:"board"`
	Urgent   bool    `default:"true"`
	Archived bool
	Subtasks []*Task           `json:"subtasks,omitempty"`
	Tags     map[string]string `json:"tags"`
	Ignored  int               `json:"-"`
	hidden   int
}

func (t *Task) InitMessage(js interface{}) error {
	return Init(t, js)
}

type BadChoice struct {
	Choice string `choices:"foo,bar"` // no default
}

func (b *BadChoice) InitMessage(js interface{}) error {
	return Init(b, js)
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_message")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("Init() works", t, func() {
		Convey("with required fields only", func() {
			var task Task
			So(task.InitMessage(testutil.JSON(`{"name": "Fix the build"}`)),
				ShouldBeNil)
			So(task.Name, ShouldEqual, "Fix the build")
			So(task.Owner, ShouldEqual, "unassigned")
			So(task.State, ShouldEqual, "open")
			So(task.Points, ShouldEqual, 1.5)
			So(*task.Retries, ShouldEqual, 2)
			So(task.Board, ShouldEqual, 0)
			So(task.Urgent, ShouldBeTrue)
			So(task.Archived, ShouldBeFalse)
			So(len(task.Subtasks), ShouldEqual, 0)
		})

		Convey("with recursive Message entries", func() {
			var task Task
			So(task.InitMessage(testutil.JSON(`{
        "name": "Release", "Retries": null, "Urgent": false, "Points": 5.2,
        "board": 4171623417, "Archived": true,
        "tags": {"team": "infra", "quarter": "Q3"},
        "subtasks": [
          {"name": "Tag the commit", "Points": 0.5, "State": "done"},
          {"name": "Write the changelog", "Retries": 3}]
      }`)), ShouldBeNil)
			So(task.Name, ShouldEqual, "Release")
			So(task.Retries, ShouldBeNil)
			So(task.Urgent, ShouldBeFalse)
			So(task.Points, ShouldEqual, 5.2)
			So(task.Board, ShouldEqual, 4171623417)
			So(task.Archived, ShouldBeTrue)
			So(task.Tags, ShouldResemble,
				map[string]string{"team": "infra", "quarter": "Q3"})
			So(len(task.Subtasks), ShouldEqual, 2)
			So(task.Subtasks[0].State, ShouldEqual, "done")
			So(task.Subtasks[0].Points, ShouldEqual, 0.5)
			So(*task.Subtasks[0].Retries, ShouldEqual, 2)
			So(task.Subtasks[1].State, ShouldEqual, "open")
			So(*task.Subtasks[1].Retries, ShouldEqual, 3)
			So(task.hidden, ShouldEqual, 0)
		})

		Convey("with missing fields in recursive call", func() {
			var task Task
			// A subtask is missing its name.
			So(task.InitMessage(testutil.JSON(
				`{"name": "Release", "subtasks": [{"Points": 0.1}]}`)), ShouldNotBeNil)
		})

		Convey("with ignored fields", func() {
			var task Task
			err := task.InitMessage(testutil.JSON(`{"name": "T", "Ignored": 5}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring,
				"unsupported fields for Task: Ignored")
		})

		Convey("with unexported fields", func() {
			var task Task
			err := task.InitMessage(testutil.JSON(`{"name": "T", "hidden": 5}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring,
				"unsupported fields for Task: hidden")
		})

		Convey("with an invalid choice", func() {
			var task Task
			err := task.InitMessage(testutil.JSON(`{"name": "T", "State": "stuck"}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring,
				"value for State is not in its choice list: 'stuck'")
		})

		Convey("with an invalid zero-value choice", func() {
			var b BadChoice
			err := b.InitMessage(testutil.JSON(`{}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring,
				"value for Choice is not in its choice list: ''")
		})

		Convey("with a non-numeric board id", func() {
			var task Task
			So(task.InitMessage(testutil.JSON(`{"name": "T", "board": "42"}`)),
				ShouldNotBeNil)
		})
	})

	Convey("FromJSON works", t, func() {
		var task Task
		So(FromJSON(&task, `{"name": "Inline"}`), ShouldBeNil)
		So(task.Name, ShouldEqual, "Inline")
		So(FromJSON(&task, `{"name": `), ShouldNotBeNil)
	})

	Convey("FromFile works", t, func() {
		var task Task
		path := filepath.Join(tmpdir, "task.json")
		So(testutil.WriteFile(path, `{"name": "From a file", "board": 7}`),
			ShouldBeNil)
		So(FromFile(&task, path), ShouldBeNil)
		So(task.Name, ShouldEqual, "From a file")
		So(task.Board, ShouldEqual, 7)

		So(FromFile(&task, filepath.Join(tmpdir, "no such file.json")),
			ShouldNotBeNil)
	})

	Convey("StringIn works", t, func() {
		So(StringIn("status", "text", "status", "date"), ShouldBeTrue)
		So(StringIn("people", "text", "status", "date"), ShouldBeFalse)
	})
}
