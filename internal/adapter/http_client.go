package adapter

import (
	"context"
	"net/url"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-clinic-client/internal/config"
	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/internal/utils"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator

	mu          sync.RWMutex
	tokenSource TokenSource
	subscribers []unauthorizedSubscriber
	nextSubID   int

	logger *logger.Logger
}

type unauthorizedSubscriber struct {
	id int
	fn func(UnauthorizedEvent)
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. The base URL is normalised from adapterCfg.HTTPAddress and
// every request is bounded by adapterCfg.RequestTimeout.
//
// The adapter has no token source until [Interceptor.SetTokenSource] is
// called; until then authenticated endpoints are sent anonymously.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) ServerAdapter {
	h := &httpServerAdapter{
		client: utils.NewHTTPClient(adapterCfg.HTTPAddress, adapterCfg.RequestTimeout),
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}

	h.client.
		OnBeforeRequest(h.attachCredentials).
		OnAfterResponse(h.inspectResponse)

	return h
}

// SetTokenSource implements [Interceptor].
func (h *httpServerAdapter) SetTokenSource(source TokenSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokenSource = source
}

// OnUnauthorized implements [Interceptor]. Listeners are called in
// registration order.
func (h *httpServerAdapter) OnUnauthorized(fn func(UnauthorizedEvent)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSubID
	h.nextSubID++
	h.subscribers = append(h.subscribers, unauthorizedSubscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, sub := range h.subscribers {
				if sub.id == id {
					h.subscribers = append(h.subscribers[:i:i], h.subscribers[i+1:]...)
					break
				}
			}
		})
	}
}

func (h *httpServerAdapter) currentToken(ctx context.Context) string {
	if token, ok := utils.BearerTokenFromContext(ctx); ok {
		return token
	}

	h.mu.RLock()
	source := h.tokenSource
	h.mu.RUnlock()

	if source == nil {
		return ""
	}
	return source.Token()
}

// attachCredentials runs before every request.
func (h *httpServerAdapter) attachCredentials(_ *resty.Client, r *resty.Request) error {
	if token := h.currentToken(r.Context()); token != "" {
		r.SetAuthToken(token)
	}
	if r.Header.Get(utils.RequestIDHeader) == "" {
		r.SetHeader(utils.RequestIDHeader, h.ids.Generate())
	}
	return nil
}

// inspectResponse runs after every response that reached the server.
func (h *httpServerAdapter) inspectResponse(_ *resty.Client, resp *resty.Response) error {
	req := resp.Request

	logger.FromContext(req.Context()).Debug().
		Str("func", "httpServerAdapter.inspectResponse").
		Str("request_id", req.Header.Get(utils.RequestIDHeader)).
		Str("method", req.Method).
		Str("url", req.URL).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("api response")

	if resp.StatusCode() == 401 {
		h.publishUnauthorized(UnauthorizedEvent{
			Token:  req.Token,
			Method: req.Method,
			Path:   requestPath(req.URL),
		})
	}
	return nil
}

func (h *httpServerAdapter) publishUnauthorized(evt UnauthorizedEvent) {
	h.mu.RLock()
	subscribers := make([]unauthorizedSubscriber, len(h.subscribers))
	copy(subscribers, h.subscribers)
	h.mu.RUnlock()

	h.logger.Warn().
		Str("func", "httpServerAdapter.publishUnauthorized").
		Str("method", evt.Method).
		Str("path", evt.Path).
		Bool("had_token", evt.Token != "").
		Msg("server rejected request with 401")

	for _, sub := range subscribers {
		sub.fn(evt)
	}
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

// anonymousRequest never carries a token, whatever the session holds.
func (h *httpServerAdapter) anonymousRequest(ctx context.Context) *resty.Request {
	return h.request(utils.WithBearerToken(ctx, ""))
}

func requestPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}
