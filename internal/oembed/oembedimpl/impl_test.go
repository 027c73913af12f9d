package oembedimpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postURL = "https://www.instagram.com/p/BxYz123/"

func newTestResolver(t *testing.T, endpoint string) *OembedImpl {
	t.Helper()

	cfg := &config.Config{}
	cfg.Instagram.OembedURL = endpoint
	cfg.Instagram.Timeout = 5 * time.Second

	r, err := New(Opts{Config: cfg, Logger: logger.NewNop()})
	require.NoError(t, err)
	return r
}

func TestResolve(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/oembed", r.URL.Path)
		assert.Equal(t, postURL, r.URL.Query().Get("url"))
		assert.Empty(t, r.Header.Get("Cookie"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"version": "1.0",
			"author_name": "someone",
			"author_id": 42,
			"media_id": "1234567890_42",
			"provider_name": "Instagram",
			"width": 658,
			"height": null,
			"thumbnail_url": "https://cdn.example/t.jpg"
		}`))
	}))
	defer srv.Close()

	r := newTestResolver(t, srv.URL+"/oembed")

	out, err := r.Resolve(context.Background(), postURL)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "someone", out.AuthorName)
	assert.Equal(t, int64(42), out.AuthorID)
	assert.Equal(t, "1234567890_42", out.MediaID)
	assert.Nil(t, out.Height)

	id, err := r.MediaID(context.Background(), postURL)
	require.NoError(t, err)
	assert.Equal(t, "1234567890_42", id)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMediaIDMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version":"1.0"}`))
	}))
	defer srv.Close()

	r := newTestResolver(t, srv.URL)

	_, err := r.MediaID(context.Background(), postURL)
	require.ErrorIs(t, err, oembed.ErrNoMediaID)
}

func TestResolveFailures(t *testing.T) {
	testCases := []struct {
		description string
		status      int
		body        string
		code        string
	}{
		{"http error is a transport failure", http.StatusNotFound, `No Media Match`, errors.CodeTransport},
		{"malformed body is a decode failure", http.StatusOK, `<html>`, errors.CodeDecode},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(testCase.body))
			}))
			defer srv.Close()

			r := newTestResolver(t, srv.URL)

			_, err := r.Resolve(context.Background(), postURL)
			require.Error(t, err)
			assert.Equal(t, testCase.code, errors.GetCode(err))
		})
	}
}

func TestResolveRejectsRelativeURL(t *testing.T) {
	r := newTestResolver(t, "https://api.instagram.com/oembed")

	_, err := r.Resolve(context.Background(), "/p/BxYz123/")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalid, errors.GetCode(err))
}

func TestNewRejectsRelativeEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.Instagram.OembedURL = "oembed"

	_, err := New(Opts{Config: cfg, Logger: logger.NewNop()})
	require.Error(t, err)
}
