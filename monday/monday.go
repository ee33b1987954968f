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

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// URL is the default API endpoint. It may be overwritten in tests before
// creating a new client.
var URL = "https://api.monday.com/v2"

// Client issues authenticated queries to the API endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewClient creates a client for the default endpoint using the default HTTP
// transport.
func NewClient(apiKey string) *Client {
	return &Client{BaseURL: URL, APIKey: apiKey, HTTP: http.DefaultClient}
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client based on the API key and injects it into the
// context.
func UseClient(ctx context.Context, apiKey string) context.Context {
	return WithClient(ctx, NewClient(apiKey))
}

// WithClient injects a preconfigured client into the context; tests use it to
// point the client at a test server.
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientContextKey, c)
}

// graphQLRequest is the POST body of every API call.
type graphQLRequest struct {
	Query string `json:"query"`
}

// query POSTs a GraphQL query and decodes the reply into env. The error, when
// not nil, is a *TransportError, *APIError or *DecodeError.
func (c *Client) query(ctx context.Context, gql string, env *envelope) error {
	body, err := json.Marshal(graphQLRequest{Query: gql})
	if err != nil {
		return errors.Annotate(err, "failed to marshal query")
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return errors.Annotate(err, "failed to create request")
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{URL: c.BaseURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: c.BaseURL, Err: err}
	}
	if err := json.Unmarshal(data, env); err != nil {
		if resp.StatusCode/100 != 2 {
			return &APIError{
				Message:    http.StatusText(resp.StatusCode),
				StatusCode: resp.StatusCode,
			}
		}
		return &DecodeError{Reason: fmt.Sprintf("invalid JSON in reply: %s", err)}
	}
	if apiErr := env.apiErr(resp.StatusCode); apiErr != nil {
		return apiErr
	}
	if resp.StatusCode/100 != 2 {
		return &APIError{
			Message:    http.StatusText(resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	if env.Data == nil {
		return &DecodeError{Reason: "reply has no data"}
	}
	return nil
}

// BoardQuery is a builder for a single-board query.
type BoardQuery struct {
	id      BoardID
	perPage int
}

// NewBoardQuery creates a query for the given board with the default page
// size of 100 items.
func NewBoardQuery(id BoardID) *BoardQuery {
	return &BoardQuery{id: id, perPage: 100}
}

// Copy creates a copy of the query. It is primarily used in its builder
// methods, which leave the original intact.
func (q *BoardQuery) Copy() *BoardQuery {
	q2 := *q
	return &q2
}

// PerPage sets the number of items per page, [1..500].
func (q *BoardQuery) PerPage(size int) *BoardQuery {
	if size < 1 {
		size = 1
	}
	if size > 500 {
		size = 500
	}
	q2 := q.Copy()
	q2.perPage = size
	return q2
}

// boardGQL is the query for the board's name, column definitions and the
// first page of items.
func (q *BoardQuery) boardGQL() string {
	return fmt.Sprintf(
		`{boards(ids: [%d]) {name columns {id title type} items_page (limit: %d) {cursor items {id name column_values}}}}`,
		q.id, q.perPage)
}

// nextPageGQL is the query for a subsequent page of items.
func (q *BoardQuery) nextPageGQL(cursor string) string {
	return fmt.Sprintf(
		`{next_items_page (cursor: %q, limit: %d) {cursor items {id name column_values}}}`,
		cursor, q.perPage)
}

// Fetch executes the query using the Client from the context: one call for
// the board's name, columns and first page of items, then one call per
// remaining page until the cursor is exhausted. No retries are performed; a
// failed call fails the fetch.
func (q *BoardQuery) Fetch(ctx context.Context) (*Board, error) {
	client := GetClient(ctx)
	if client == nil {
		return nil, errors.Reason("BoardQuery.Fetch: no client in context")
	}
	var env envelope
	if err := client.query(ctx, q.boardGQL(), &env); err != nil {
		return nil, err
	}
	if len(env.Data.Boards) == 0 {
		return nil, &DecodeError{
			Reason: fmt.Sprintf("no board in reply for id %d", q.id)}
	}
	first := env.Data.Boards[0]
	board := &Board{
		ID:      q.id,
		Name:    first.Name,
		Columns: first.Columns,
		Items:   first.ItemsPage.Items,
	}
	cursor := first.ItemsPage.Cursor
	logging.Infof(ctx, "board %d: fetched page 1 with %d items; cursor: %s",
		q.id, len(first.ItemsPage.Items), cursor)
	for page := 2; cursor != ""; page++ {
		var env envelope
		if err := client.query(ctx, q.nextPageGQL(cursor), &env); err != nil {
			return nil, err
		}
		next := env.Data.NextItemsPage
		if next == nil {
			return nil, &DecodeError{
				Reason: fmt.Sprintf("no items page in reply for board %d", q.id)}
		}
		board.Items = append(board.Items, next.Items...)
		cursor = next.Cursor
		logging.Infof(ctx, "board %d: fetched page %d with %d items; cursor: %s",
			q.id, page, len(next.Items), cursor)
	}
	return board, nil
}

// DownloadAsset fetches the contents of a file attachment by its public URL,
// e.g. from a file column's RawValue. The caller must close the returned
// reader.
func DownloadAsset(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := fetch.GetRetry(ctx, url, nil, nil)
	if err != nil {
		return nil, errors.Annotate(err, "failed to download asset")
	}
	if resp.StatusCode/100 != 2 {
		resp.Body.Close()
		return nil, errors.Reason("asset download returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// TestBoardResponse generates the JSON reply of a boards query as returned by
// the API, with the given cursor linking to the next items page. For use in
// tests.
func TestBoardResponse(b Board, cursor string) (string, error) {
	env := envelope{Data: &payload{Boards: []boardPayload{{
		Name:      b.Name,
		Columns:   b.Columns,
		ItemsPage: itemsPage{Cursor: cursor, Items: b.Items},
	}}}}
	js, err := json.Marshal(&env)
	return string(js), err
}

// TestItemsResponse generates the JSON reply of a next_items_page query. For
// use in tests.
func TestItemsResponse(items []Item, cursor string) (string, error) {
	env := envelope{Data: &payload{
		NextItemsPage: &itemsPage{Cursor: cursor, Items: items}}}
	js, err := json.Marshal(&env)
	return string(js), err
}

// TestErrorResponse generates the JSON reply of a failed query. For use in
// tests.
func TestErrorResponse(message, code string) (string, error) {
	var env envelope
	env.Errors = []apiError{{Message: message}}
	env.Errors[0].Extensions.Code = code
	js, err := json.Marshal(&env)
	return string(js), err
}
