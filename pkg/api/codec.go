// Package api defines the Money Mate Connect services: the JSON messages,
// the procedure names, and constructors for handlers and clients.
//
// Messages are plain Go structs encoded as JSON, so any HTTP client can call
// a procedure with a POST of a JSON body to its path.
package api

import (
	"connectrpc.com/connect"
	"github.com/goccy/go-json"
)

// Codec encodes messages as JSON. It registers under the name "json",
// which serves the application/json content type.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
