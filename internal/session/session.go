package session

import (
	"context"
	"net/http"
)

//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=mocks/mock.go

// Manager owns the authenticated account session. The cookie jar it returns
// is shared with the transport.
type Manager interface {
	Login(ctx context.Context) error
	Jar() http.CookieJar
	Username() string
}
