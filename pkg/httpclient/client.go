package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "riskfeed/1.0 (+https://github.com/skywatch-ops/riskfeed)"

// Response is the minimal read surface adapters need from an HTTP reply.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client is the single network primitive the aggregation core and the
// outbound sinks rely on.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	GetWithQuery(ctx context.Context, url string, query map[string]string, headers map[string]string) (Response, error)
	Post(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error)
}

type restyClient struct {
	c *resty.Client
}

// NewRestyClient builds a tuned resty client with the given per-request
// timeout.
func NewRestyClient(timeout time.Duration) Client {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", defaultUserAgent).
		SetRetryCount(0)
	return &restyClient{c: c}
}

type restyResponse struct {
	r *resty.Response
}

func (r restyResponse) Body() []byte    { return r.r.Body() }
func (r restyResponse) StatusCode() int { return r.r.StatusCode() }

func (rc *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return rc.GetWithQuery(ctx, url, nil, headers)
}

func (rc *restyClient) GetWithQuery(ctx context.Context, url string, query map[string]string, headers map[string]string) (Response, error) {
	req := rc.c.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return restyResponse{r: resp}, nil
}

func (rc *restyClient) Post(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error) {
	req := rc.c.R().SetContext(ctx).SetBody(body)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	return restyResponse{r: resp}, nil
}
