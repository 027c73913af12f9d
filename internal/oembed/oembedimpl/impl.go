package oembedimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/metrics"
	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

const requestName = "oembed"

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// OembedImpl talks to the public endpoint without the session cookies.
type OembedImpl struct {
	client   *resty.Client
	endpoint string
	logger   logger.Logger
}

var _ oembed.Resolver = (*OembedImpl)(nil)

func New(opts Opts) (*OembedImpl, error) {
	ig := opts.Config.Instagram

	endpoint, err := url.Parse(ig.OembedURL)
	if err != nil || !endpoint.IsAbs() {
		return nil, fmt.Errorf("invalid oembed url %q", ig.OembedURL)
	}

	client := resty.New().
		SetTimeout(ig.Timeout).
		SetHeader("Accept", "application/json")
	if ig.UserAgent != "" {
		client.SetHeader("User-Agent", ig.UserAgent)
	}

	return &OembedImpl{
		client:   client,
		endpoint: endpoint.String(),
		logger:   opts.Logger.WithComponent("Oembed"),
	}, nil
}

func (o *OembedImpl) Resolve(ctx context.Context, postURL string) (*domain.OembedResponse, error) {
	if err := validatePostURL(postURL); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := o.client.R().
		SetContext(ctx).
		SetQueryParam("url", postURL).
		Get(o.endpoint)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordRequest(requestName, "error", elapsed.Seconds())
		o.logger.Error("oEmbed lookup failed", "url", postURL, "error", err)
		return nil, errors.WrapWithCode(err, errors.CodeTransport, "oembed lookup failed")
	}
	metrics.RecordRequest(requestName, strconv.Itoa(resp.StatusCode()), elapsed.Seconds())

	if resp.IsError() {
		o.logger.Warn("oEmbed lookup rejected", "url", postURL, "status", resp.StatusCode())
		return nil, errors.NewWithCode(errors.CodeTransport, fmt.Sprintf("oembed lookup returned http %d", resp.StatusCode()))
	}

	var out domain.OembedResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDecode, "failed to decode oembed response")
	}

	o.logger.Debug("oEmbed lookup completed", "url", postURL, "media_id", out.MediaID)
	return &out, nil
}

// MediaID resolves postURL to the platform's internal media id.
func (o *OembedImpl) MediaID(ctx context.Context, postURL string) (string, error) {
	out, err := o.Resolve(ctx, postURL)
	if err != nil {
		return "", err
	}
	if out.MediaID == "" {
		return "", oembed.ErrNoMediaID
	}
	return out.MediaID, nil
}

func validatePostURL(postURL string) error {
	u, err := url.Parse(postURL)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalid, "invalid post url")
	}
	if !u.IsAbs() || u.Host == "" {
		return errors.NewWithCode(errors.CodeInvalid, fmt.Sprintf("post url %q must be absolute", postURL))
	}
	return nil
}
