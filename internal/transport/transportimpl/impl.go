package transportimpl

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-media-telegram-bot/internal/metrics"
	"github.com/orgball2608/insta-media-telegram-bot/internal/session"
	"github.com/orgball2608/insta-media-telegram-bot/internal/transport"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Session session.Manager
}

type TransportImpl struct {
	client  *resty.Client
	baseURL *url.URL
	jar     http.CookieJar
	signer  signer
	logger  logger.Logger
}

var _ transport.Transport = (*TransportImpl)(nil)

func New(opts Opts) (*TransportImpl, error) {
	ig := opts.Config.Instagram

	base, err := url.Parse(ig.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid instagram api url %q: %w", ig.APIBaseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("instagram api url %q must be absolute", ig.APIBaseURL)
	}

	jar := opts.Session.Jar()
	client := resty.New().
		SetCookieJar(jar).
		SetTimeout(ig.Timeout).
		SetHeader("User-Agent", ig.UserAgent).
		SetHeader("Accept", "*/*").
		SetHeader("Accept-Language", "en-US").
		SetHeader("X-IG-Capabilities", "3brTBw==").
		SetHeader("X-IG-Connection-Type", "WIFI")

	return &TransportImpl{
		client:  client,
		baseURL: base,
		jar:     jar,
		signer:  signer{key: []byte(ig.SigKey), version: ig.SigKeyVersion},
		logger:  opts.Logger.WithComponent("Transport"),
	}, nil
}

func (t *TransportImpl) Execute(ctx context.Context, req transport.Request) (*transport.Response, error) {
	target, err := t.resolve(req.Path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalid, "invalid request path")
	}

	method := methodFor(req)
	r, err := t.build(ctx, method, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := r.Execute(method, target)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordRequest(req.Name, "error", elapsed.Seconds())
		t.logger.Error("Request failed", "request", req.Name, "method", method, "path", req.Path, "error", err)
		return nil, errors.WrapWithCode(err, errors.CodeTransport, fmt.Sprintf("%s %s failed", method, req.Path))
	}

	metrics.RecordRequest(req.Name, strconv.Itoa(resp.StatusCode()), elapsed.Seconds())
	t.logger.Debug("Request completed",
		"request", req.Name,
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode(),
		"duration", elapsed.Round(time.Millisecond).String())

	return &transport.Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}

// CookieValue returns the named cookie for the API host, or "" if unset.
func (t *TransportImpl) CookieValue(name string) string {
	if t.jar == nil {
		return ""
	}
	for _, c := range t.jar.Cookies(t.baseURL) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (t *TransportImpl) resolve(path string) (string, error) {
	if path == "" {
		return t.baseURL.String(), nil
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("path %q must be relative", path)
	}
	return t.baseURL.ResolveReference(ref).String(), nil
}

func methodFor(req transport.Request) string {
	switch {
	case req.Method != "":
		return req.Method
	case req.File != nil || req.Signed:
		return http.MethodPost
	default:
		return http.MethodGet
	}
}

func (t *TransportImpl) build(ctx context.Context, method string, req transport.Request) (*resty.Request, error) {
	r := t.client.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}

	switch {
	case req.File != nil:
		if method != http.MethodPost {
			return nil, errors.NewWithCode(errors.CodeInvalid, "multipart requests must be POST")
		}
		form, err := formFields(req.Fields)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalid, "failed to encode multipart fields")
		}
		r.SetMultipartFormData(form).
			SetFileReader(req.File.Field, req.File.Name, bytes.NewReader(req.File.Content))
	case req.Signed:
		form, err := t.signer.sign(req.Fields)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalid, "failed to sign request")
		}
		r.SetFormData(form)
	case len(req.Fields) > 0 && method == http.MethodPost:
		form, err := formFields(req.Fields)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalid, "failed to encode form fields")
		}
		r.SetFormData(form)
	}

	return r, nil
}
