package transportimpl

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/insta-media-telegram-bot/internal/transport"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	jar http.CookieJar
}

func (f fakeSession) Login(context.Context) error { return nil }
func (f fakeSession) Jar() http.CookieJar        { return f.jar }
func (f fakeSession) Username() string           { return "tester" }

func newTestTransport(t *testing.T, baseURL string) (*TransportImpl, http.CookieJar) {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Instagram.APIBaseURL = baseURL
	cfg.Instagram.SigKey = "secret"
	cfg.Instagram.SigKeyVersion = "4"
	cfg.Instagram.UserAgent = "test-agent"
	cfg.Instagram.Timeout = 5 * time.Second

	tr, err := New(Opts{Config: cfg, Logger: logger.NewNop(), Session: fakeSession{jar: jar}})
	require.NoError(t, err)
	return tr, jar
}

func TestExecuteMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/upload/photo/", r.URL.Path)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		assert.Equal(t, "media", r.FormValue("type"))
		assert.Equal(t, "1700000000000", r.FormValue("upload_id"))
		assert.Equal(t, `{"quality":"92"}`, r.FormValue("image_compression"))

		file, header, err := r.FormFile("photo")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "pending_media_1700000000000.jpg", header.Filename)
		assert.Equal(t, []byte{0xff, 0xd8, 0xff}, content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"upload_id":"1700000000000","status":"ok"}`))
	}))
	defer srv.Close()

	tr, _ := newTestTransport(t, srv.URL+"/api/v1/")

	resp, err := tr.Execute(context.Background(), transport.Request{
		Name: "upload_photo",
		Path: "upload/photo/",
		Fields: map[string]any{
			"type":              "media",
			"upload_id":         int64(1700000000000),
			"image_compression": map[string]string{"quality": "92"},
		},
		File: &transport.File{Field: "photo", Name: "pending_media_1700000000000.jpg", Content: []byte{0xff, 0xd8, 0xff}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		UploadID string `json:"upload_id"`
		Status   string `json:"status"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "ok", out.Status)
}

func TestExecuteSigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/media/42_7/delete/", r.URL.Path)
		assert.Equal(t, "PHOTO", r.URL.Query().Get("media_type"))
		if !assert.NoError(t, r.ParseForm()) {
			return
		}

		assert.Equal(t, "4", r.PostForm.Get("ig_sig_key_version"))
		signed := r.PostForm.Get("signed_body")
		sig, body, found := strings.Cut(signed, ".")
		if !assert.True(t, found) {
			return
		}

		mac := hmac.New(sha256.New, []byte("secret"))
		mac.Write([]byte(body))
		assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), sig)

		var fields map[string]any
		if !assert.NoError(t, json.Unmarshal([]byte(body), &fields)) {
			return
		}
		assert.Equal(t, "42_7", fields["media_id"])
		assert.Equal(t, map[string]any{"model": "X"}, fields["device"])

		_, _ = w.Write([]byte(`{"did_delete":true,"status":"ok"}`))
	}))
	defer srv.Close()

	tr, _ := newTestTransport(t, srv.URL+"/api/v1/")

	resp, err := tr.Execute(context.Background(), transport.Request{
		Name:   "media_delete",
		Path:   "media/42_7/delete/",
		Query:  map[string]string{"media_type": "PHOTO"},
		Signed: true,
		Fields: map[string]any{
			"media_id": "42_7",
			"device":   map[string]string{"model": "X"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, string(resp.Body), `"did_delete":true`)
}

func TestExecuteReturnsNonSuccessResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"fail","message":"media not found"}`))
	}))
	defer srv.Close()

	tr, _ := newTestTransport(t, srv.URL+"/api/v1/")

	resp, err := tr.Execute(context.Background(), transport.Request{Name: "media_info", Path: "media/1/info/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExecuteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL + "/api/v1/"
	srv.Close()

	tr, _ := newTestTransport(t, base)

	_, err := tr.Execute(context.Background(), transport.Request{Name: "media_info", Path: "media/1/info/"})
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}

func TestExecuteRejectsAbsolutePath(t *testing.T) {
	tr, _ := newTestTransport(t, "https://i.instagram.com/api/v1/")

	_, err := tr.Execute(context.Background(), transport.Request{Path: "https://evil.example/x"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalid, errors.GetCode(err))
}

func TestExecuteRejectsMultipartGet(t *testing.T) {
	tr, _ := newTestTransport(t, "https://i.instagram.com/api/v1/")

	_, err := tr.Execute(context.Background(), transport.Request{
		Method: http.MethodGet,
		Path:   "upload/photo/",
		File:   &transport.File{Field: "photo", Name: "a.jpg"},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalid, errors.GetCode(err))
}

func TestCookieValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "from-server", Path: "/"})
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	tr, jar := newTestTransport(t, srv.URL+"/api/v1/")
	assert.Equal(t, "", tr.CookieValue("csrftoken"))

	base, _ := url.Parse(srv.URL + "/api/v1/")
	jar.SetCookies(base, []*http.Cookie{{Name: "mid", Value: "abc", Path: "/"}})
	assert.Equal(t, "abc", tr.CookieValue("mid"))

	_, err := tr.Execute(context.Background(), transport.Request{Path: "si/fetch_headers/"})
	require.NoError(t, err)
	assert.Equal(t, "from-server", tr.CookieValue("csrftoken"))
}

func TestFieldString(t *testing.T) {
	testCases := []struct {
		description string
		in          any
		out         string
	}{
		{"string passes through", "4", "4"},
		{"int64 uses decimal form", int64(1700000000000), "1700000000000"},
		{"bool", true, "true"},
		{"float without exponent", 1.5, "1.5"},
		{"nil is empty", nil, ""},
		{"map is json", map[string]string{"a": "b"}, `{"a":"b"}`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			out, err := fieldString(testCase.in)
			require.NoError(t, err)
			assert.Equal(t, testCase.out, out)
		})
	}
}

func TestResponseDecodeError(t *testing.T) {
	resp := &transport.Response{StatusCode: http.StatusBadGateway, Body: []byte("<html>")}
	var v map[string]any
	err := resp.Decode(&v)
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}
