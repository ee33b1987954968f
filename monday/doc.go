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

// Package monday implements the board query API of the Monday.com
// work-management system.
//
// Official documentation is at https://developer.monday.com/api-reference .
//
// Each board carries its column definitions (id, title and value type) and a
// list of items; every item holds one raw value per column, encoded according
// to the column's type. The API returns items in pages linked by a cursor.
// This package implements transparent paging in BoardQuery.Fetch, which
// drains all pages of a board into a single Board value.
//
// All queries are authenticated with an API key and go through a Client
// carried in the context; see UseClient. The per-column-type decoding of raw
// values into normalized tables is implemented in the extract package.
package monday
