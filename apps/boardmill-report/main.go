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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/boardmill/boardmill/extract"
	"github.com/boardmill/boardmill/message"
	"github.com/boardmill/boardmill/monday"
	"github.com/boardmill/boardmill/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"golang.org/x/exp/slices"
)

type Flags struct {
	Config   string // config file (required)
	LogLevel logging.Level
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("boardmill-report", flag.ExitOnError)
	fs.StringVar(&flags.Config, "conf", "", "JSON config file (required)")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	if flags.Config == "" {
		return nil, errors.Reason("missing required -conf argument")
	}
	return &flags, err
}

type Config struct {
	Key      string          `json:"key" required:"true"`
	Extract  *extract.Config `json:"extract" required:"true"`
	Columns  []string        `json:"columns"` // column titles to keep; default: all
	Summary  bool            `json:"summary"` // print numeric column summaries
	CSV      bool            `json:"csv"`     // dump CSV format; default: text
	Rows     int             `json:"rows"`
	MaxWidth int             `json:"max_width"`
}

var _ message.Message = &Config{}

func (c *Config) InitMessage(js interface{}) error {
	if err := message.Init(c, js); err != nil {
		return errors.Annotate(err, "failed to init Config")
	}
	return nil
}

// filterColumns keeps the item label column and the columns whose titles are
// listed in titles, preserving the table's column order.
func filterColumns(t *table.Table, titles []string) *table.Table {
	var keep []int
	for i, h := range t.Header {
		if i == 0 || slices.Contains(titles, h) {
			keep = append(keep, i)
		}
	}
	header := make([]string, len(keep))
	for j, i := range keep {
		header[j] = t.Header[i]
	}
	out := table.NewTable(header...)
	for _, r := range t.Rows {
		row := make(table.Row, len(keep))
		for j, i := range keep {
			row[j] = r[i]
		}
		out.AddRow(row)
	}
	return out
}

func writeTable(t *table.Table, w io.Writer, p table.Params, csv bool) error {
	if csv {
		return t.WriteCSV(w, p)
	}
	return t.WriteText(w, p)
}

func printReport(ctx context.Context, flags *Flags, w io.Writer) error {
	var config Config
	if err := message.FromFile(&config, flags.Config); err != nil {
		return errors.Annotate(err, "failed to read config '%s'", flags.Config)
	}
	// A client injected by the caller takes precedence over the config key.
	if monday.GetClient(ctx) == nil {
		ctx = monday.UseClient(ctx, config.Key)
	}
	results, err := extract.Boards(ctx, config.Extract)
	if err != nil {
		return errors.Annotate(err, "failed to extract boards")
	}
	params := table.Params{Rows: config.Rows, MaxColWidth: config.MaxWidth}
	var failed int
	for _, r := range results {
		if r.Err != nil {
			// Already logged by extract.Boards.
			failed++
			continue
		}
		tbl := r.Board.Table
		if len(config.Columns) > 0 {
			tbl = filterColumns(tbl, config.Columns)
		}
		fmt.Fprintf(w, "%s\n", r.Board.Name)
		if err := writeTable(tbl, w, params, config.CSV); err != nil {
			return errors.Annotate(err, "failed to print board %d", r.ID)
		}
		if config.Summary {
			if s := table.SummaryTable(tbl); len(s.Rows) > 0 {
				fmt.Fprintln(w)
				if err := writeTable(s, w, table.Params{}, config.CSV); err != nil {
					return errors.Annotate(err, "failed to print summary for board %d", r.ID)
				}
			}
		}
		fmt.Fprintln(w)
	}
	if failed > 0 {
		return errors.Reason("%d board(s) failed", failed)
	}
	return nil
}

// main is not tested, keep it short.
func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printReport(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
