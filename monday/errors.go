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

import "fmt"

// TransportError indicates a network-level failure: the request could not be
// sent, or no response was received. The API itself was never reached.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %s", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error { return e.Err }

// APIError is an explicit error reply from the API, such as an invalid board
// id, an authentication failure or a rate limit. Message and Code are as
// reported by the API; StatusCode is the HTTP status of the reply.
type APIError struct {
	Message    string
	Code       string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("API error: %s", e.Message)
}

// DecodeError indicates a structurally malformed reply: a body that is not
// valid JSON, or a reply missing the fields the query asked for. Cell-level
// values never cause a DecodeError; they degrade to nulls during
// normalization instead.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode error: " + e.Reason
}
