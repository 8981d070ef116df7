package mister

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"misterstats-backend/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// ErrUnavailable covers every transport-level failure: network errors,
// timeouts and non-2xx statuses. An expired session looks exactly the
// same from here, the upstream does not signal auth errors distinctly.
var ErrUnavailable = fmt.Errorf("could not retrieve data from upstream")

// ErrEnvelope is returned when a JSON response arrives intact but its
// envelope status is anything other than "ok".
var ErrEnvelope = fmt.Errorf("upstream envelope status is not ok")

// SessionConfig carries the pre-obtained browser session material the
// upstream expects on every request. The client never refreshes it.
type SessionConfig struct {
	PhpSessId    string `json:"phpsessid"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	XAuth        string `json:"x_auth"`
}

type ClientOptions struct {
	BaseUrl string
	Session SessionConfig
	// Transport overrides the default cloudflare-bypass transport,
	// used by tests that run against local fixture servers.
	Transport http.RoundTripper
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	jar.SetCookies(baseUrl, []*http.Cookie{
		{Name: "PHPSESSID", Value: opts.Session.PhpSessId},
		{Name: "token", Value: opts.Session.Token},
		{Name: "refresh-token", Value: opts.Session.RefreshToken},
	})
	client.SetCookieJar(jar)
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	} else {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36")
	client.SetHeader("accept", "*/*")
	client.SetHeader("accept-language", "es-ES,es;q=0.9,en;q=0.8")
	client.SetHeader("origin", opts.BaseUrl)
	client.SetHeader("referer", opts.BaseUrl+"/")
	client.SetHeader("x-auth", opts.Session.XAuth)
	client.SetHeader("x-requested-with", "XMLHttpRequest")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, "scrapers/mister/http", restyInstrumentOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

type PayloadKind int

const (
	PayloadFailure PayloadKind = iota
	PayloadJson
	PayloadMarkup
)

// Payload is the tagged result of an upstream call: a JSON document, a
// raw HTML page, or a failure. Some endpoints reply JSON and others
// full HTML pages, so the caller branches on Kind instead of sniffing.
type Payload struct {
	Kind   PayloadKind
	Json   json.RawMessage
	Markup string
	Err    error
}

func failure(err error) Payload {
	return Payload{Kind: PayloadFailure, Err: err}
}

// Request executes a GET or form POST against a logical endpoint and
// classifies the response body as JSON or markup.
func (c *Client) Request(ctx context.Context, method, endpoint string, form map[string]string) Payload {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("client:%s %s", method, endpoint))
	defer span.End()

	req := c.Http.R().SetContext(ctx)
	if form != nil {
		req.SetFormData(form)
	}

	var res *resty.Response
	var err error
	switch method {
	case http.MethodPost:
		res, err = req.Post(endpoint)
	default:
		res, err = req.Get(endpoint)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return failure(fmt.Errorf("%w: %w", ErrUnavailable, err))
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		span.SetStatus(codes.Error, "non-2xx status")
		return failure(fmt.Errorf("%w: status %d on %s", ErrUnavailable, res.StatusCode(), endpoint))
	}

	body := res.Body()
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		return Payload{Kind: PayloadJson, Json: json.RawMessage(trimmed)}
	}
	return Payload{Kind: PayloadMarkup, Markup: string(body)}
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// DecodeEnvelope unwraps the `{status, data}` convention every JSON
// endpoint follows. Anything but status "ok" means no data.
func DecodeEnvelope(p Payload, out any) error {
	if p.Kind == PayloadFailure {
		return p.Err
	}
	if p.Kind != PayloadJson {
		return fmt.Errorf("%w: expected json, got markup", ErrUnavailable)
	}
	var env envelope
	if err := json.Unmarshal(p.Json, &env); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if env.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrEnvelope, env.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (c *Client) Balance(ctx context.Context) Payload {
	return c.Request(ctx, http.MethodGet, "/ajax/balance", nil)
}

func (c *Client) Team(ctx context.Context) Payload {
	return c.Request(ctx, http.MethodGet, "/team", nil)
}

func (c *Client) Market(ctx context.Context) Payload {
	return c.Request(ctx, http.MethodGet, "/market", nil)
}

func (c *Client) Standings(ctx context.Context) Payload {
	return c.Request(ctx, http.MethodGet, "/standings", nil)
}

func (c *Client) PlayerDetail(ctx context.Context, id string) (PlayerDetail, error) {
	payload := c.Request(ctx, http.MethodPost, "/ajax/sw/players", map[string]string{
		"post": "players",
		"id":   id,
	})
	var detail PlayerDetail
	if err := DecodeEnvelope(payload, &detail); err != nil {
		return PlayerDetail{}, err
	}
	return detail, nil
}

func (c *Client) TeamDetail(ctx context.Context, id, slug string) (json.RawMessage, error) {
	payload := c.Request(ctx, http.MethodPost, "/ajax/sw/teams", map[string]string{
		"post":     "teams",
		"id":       id,
		"slug":     slug,
		"comments": "true",
	})
	var data json.RawMessage
	if err := DecodeEnvelope(payload, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) UserDetail(ctx context.Context, id, slug string) (UserDetail, error) {
	payload := c.Request(ctx, http.MethodPost, "/ajax/sw/users", map[string]string{
		"post":     "users",
		"id":       id,
		"slug":     slug,
		"comments": "true",
	})
	var detail UserDetail
	if err := DecodeEnvelope(payload, &detail); err != nil {
		return UserDetail{}, err
	}
	return detail, nil
}

func (c *Client) CommunityCheck(ctx context.Context) (json.RawMessage, error) {
	payload := c.Request(ctx, http.MethodPost, "/ajax/community-check", nil)
	if payload.Kind == PayloadFailure {
		return nil, payload.Err
	}
	if payload.Kind != PayloadJson {
		return nil, fmt.Errorf("%w: expected json, got markup", ErrUnavailable)
	}
	return payload.Json, nil
}
