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
	"strconv"
	"strings"

	"github.com/boardmill/boardmill/extract"
	"github.com/boardmill/boardmill/monday"
	"github.com/boardmill/boardmill/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"

	toml "github.com/pelletier/go-toml/v2"
)

type Flags struct {
	Config   string // config file (required)
	Boards   string // comma-separated board ids overriding the config
	LogLevel logging.Level
	CSV      bool // dump CSV format; default: text
	Rows     int  // print at most this many rows per board; 0 = all
	MaxWidth int  // maximum column width in text format; 0 = unlimited
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("boardmill-fetch", flag.ExitOnError)
	fs.StringVar(&flags.Config, "conf", "", "TOML config file (required)")
	fs.StringVar(&flags.Boards, "boards", "",
		"comma-separated board ids overriding the config")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.BoolVar(&flags.CSV, "csv", false, "print tables in CSV format; default: text")
	fs.IntVar(&flags.Rows, "rows", 0, "print at most this many rows per board; 0 = all")
	fs.IntVar(&flags.MaxWidth, "max-width", 0,
		"maximum column width in text format; 0 = unlimited")

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
	Key     string  `toml:"key"`      // Monday.com API key
	Boards  []int64 `toml:"boards"`   // board ids to fetch
	PerPage int     `toml:"per_page"` // items per page; default: 100
}

func parseConfig(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sample := `key = "YourSecretMondayKey"
boards = [4171623417]
`
			err = errors.Annotate(err,
				"config file '%s' does not exist.\nPlease create config file containing:\n%s",
				filePath, sample)
			return nil, err
		} else {
			return nil, errors.Annotate(err,
				"cannot check config file for existence: '%s'", filePath)
		}
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	var c Config
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	if c.Key == "" {
		return nil, errors.Reason("config file %s must set the API key", filePath)
	}
	return &c, nil
}

func parseBoards(s string) ([]int64, error) {
	var ids []int64
	for _, f := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Annotate(err, "invalid board id '%s'", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printBoards(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := parseConfig(flags.Config)
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	boards := config.Boards
	if flags.Boards != "" {
		if boards, err = parseBoards(flags.Boards); err != nil {
			return errors.Annotate(err, "failed to parse -boards")
		}
	}
	if len(boards) == 0 {
		return errors.Reason("no boards to fetch")
	}
	// A client injected by the caller takes precedence over the config key.
	if monday.GetClient(ctx) == nil {
		ctx = monday.UseClient(ctx, config.Key)
	}
	cfg := extract.Config{Boards: boards, PerPage: config.PerPage, Parallel: 1}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 100
	}
	results, err := extract.Boards(ctx, &cfg)
	if err != nil {
		return errors.Annotate(err, "failed to extract boards")
	}
	params := table.Params{Rows: flags.Rows, MaxColWidth: flags.MaxWidth}
	var failed int
	for _, r := range results {
		if r.Err != nil {
			// Already logged by extract.Boards.
			failed++
			continue
		}
		fmt.Fprintf(w, "%s\n", r.Board.Name)
		if flags.CSV {
			if err := r.Board.Table.WriteCSV(w, params); err != nil {
				return errors.Annotate(err, "failed to print CSV for board %d", r.ID)
			}
		} else {
			if err := r.Board.Table.WriteText(w, params); err != nil {
				return errors.Annotate(err, "failed to print text for board %d", r.ID)
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

	if err := printBoards(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
