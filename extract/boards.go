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

	"github.com/boardmill/boardmill/message"
	"github.com/boardmill/boardmill/monday"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
	"golang.org/x/exp/slices"
)

// Config configures multi-board extraction.
type Config struct {
	Boards   []int64 `json:"boards" required:"true"`
	PerPage  int     `json:"per_page" default:"100"`
	Parallel int     `json:"parallel" default:"1"`
	FailFast bool    `json:"fail_fast"`
}

var _ message.Message = &Config{}

func (c *Config) InitMessage(js interface{}) error {
	if err := message.Init(c, js); err != nil {
		return errors.Annotate(err, "failed to init Config")
	}
	if len(c.Boards) == 0 {
		return errors.Reason("boards must list at least one board id")
	}
	if c.PerPage < 1 {
		return errors.Reason("per_page = %d must be >= 1", c.PerPage)
	}
	if c.Parallel < 1 {
		return errors.Reason("parallel = %d must be >= 1", c.Parallel)
	}
	return nil
}

// Result pairs a board id with its extraction outcome. Exactly one of Board
// or Err is set.
type Result struct {
	ID    monday.BoardID
	Board *BoardData
	Err   error
}

func fetchBoard(ctx context.Context, id monday.BoardID, perPage int) (*BoardData, error) {
	q := monday.NewBoardQuery(id)
	if perPage > 0 {
		q = q.PerPage(perPage)
	}
	b, err := q.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(b)
}

// Board fetches a single board using the client in ctx and normalizes its
// items. The page size is the query default. Client errors are returned
// as their original typed values, suitable for errors.As.
func Board(ctx context.Context, id monday.BoardID) (*BoardData, error) {
	return fetchBoard(ctx, id, 0)
}

// Boards extracts every board in cfg and returns one Result per board id, in
// the caller's order. By default a failing board is logged, recorded in its
// Result and does not disturb the other boards. With FailFast the first
// failure aborts the run; the results of boards extracted so far are returned
// along with the error. FailFast implies sequential processing.
func Boards(ctx context.Context, cfg *Config) ([]Result, error) {
	if cfg.Parallel > 1 && !cfg.FailFast {
		return boardsParallel(ctx, cfg), nil
	}
	results := []Result{}
	for _, id := range cfg.Boards {
		r := Result{ID: monday.BoardID(id)}
		r.Board, r.Err = fetchBoard(ctx, r.ID, cfg.PerPage)
		if r.Err != nil {
			if cfg.FailFast {
				return results, errors.Annotate(r.Err, "failed to extract board %d", id)
			}
			logging.Warningf(ctx, "failed to extract board %d: %s", id, r.Err.Error())
		}
		results = append(results, r)
	}
	return results, nil
}

func boardsParallel(ctx context.Context, cfg *Config) []Result {
	f := func(id int64) Result {
		r := Result{ID: monday.BoardID(id)}
		r.Board, r.Err = fetchBoard(ctx, r.ID, cfg.PerPage)
		if r.Err != nil {
			logging.Warningf(ctx, "failed to extract board %d: %s", id, r.Err.Error())
		}
		return r
	}
	pm := iterator.ParallelMap(ctx, cfg.Parallel, iterator.FromSlice(cfg.Boards), f)
	defer pm.Close()

	results := iterator.Reduce[Result, []Result](pm, []Result{},
		func(r Result, rs []Result) []Result { return append(rs, r) })

	// ParallelMap yields results as they complete; restore the input order.
	order := make(map[monday.BoardID]int, len(cfg.Boards))
	for i, id := range cfg.Boards {
		order[monday.BoardID(id)] = i
	}
	slices.SortFunc(results, func(a, b Result) bool {
		return order[a.ID] < order[b.ID]
	})
	return results
}
