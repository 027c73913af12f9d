package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
)

// File is a binary part of a multipart request.
type File struct {
	Field   string
	Name    string
	Content []byte
}

// Request describes one call against the private API. Path is relative to the
// configured API base URL.
//
// A request with File set is sent as multipart/form-data. A Signed request
// has its Fields JSON-encoded and signed into a form body. Anything else is
// sent with Fields as a plain form (POST) or ignored (GET).
type Request struct {
	// Name labels the request in logs and metrics.
	Name   string
	Method string
	Path   string
	Query  map[string]string
	Signed bool
	Fields map[string]any
	File   *File
}

// Response is the raw platform reply. Non-2xx replies are still responses:
// the platform reports failures through the JSON status field.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if r == nil {
		return errors.NewWithCode(errors.CodeDecode, "empty response")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeDecode, fmt.Sprintf("failed to decode response (http %d)", r.StatusCode))
	}
	return nil
}

//go:generate go run go.uber.org/mock/mockgen -source=transport.go -destination=mocks/mock.go

type Transport interface {
	Execute(ctx context.Context, req Request) (*Response, error)
	CookieValue(name string) string
}
