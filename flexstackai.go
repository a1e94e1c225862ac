// Package flexstackai is the Go client SDK for the FlexStack generative
// AI platform.
//
// Usage:
//
//	import "github.com/FlexStackAI/flexstackai"
//
//	client := flexstackai.New("https://api.flexstack.ai",
//	    flexstackai.WithHeaders(map[string]string{"Authorization": "Bearer " + token}),
//	)
//	resp, err := client.Text.Generate(ctx, &text.GenerateRequest{
//	    Messages: []types.Message{{Role: types.RoleUser, Content: "Hello"}},
//	})
//
// The four facades (Text, Image, Audio, Info) are stateless and safe for
// concurrent use; they share one HTTP transport and hold nothing but the
// base URL and default headers. Each facade package can also be used on
// its own when only one task family is needed.
package flexstackai

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FlexStackAI/flexstackai/audio"
	"github.com/FlexStackAI/flexstackai/config"
	"github.com/FlexStackAI/flexstackai/image"
	"github.com/FlexStackAI/flexstackai/info"
	"github.com/FlexStackAI/flexstackai/internal/metrics"
	"github.com/FlexStackAI/flexstackai/internal/tlsutil"
	"github.com/FlexStackAI/flexstackai/text"
)

// Client bundles the platform facades behind one construction point.
type Client struct {
	Text  *text.Client
	Image *image.Client
	Audio *audio.Client
	Info  *info.Client
}

type options struct {
	headers    map[string]string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// Option configures the client created by [New].
type Option func(*options)

// WithHeaders sets default headers sent with every request, commonly an
// auth token. The map is copied; later mutation does not leak in.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) { o.headers = headers }
}

// WithHeader sets one default header.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithTimeout bounds each request through the default transport.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithHTTPClient injects a custom HTTP transport. Timeouts, TLS and
// redirects then belong to the injected client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLogger sets a custom zap logger. Requests are logged at Debug.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics registers request metrics (count, duration) on reg under
// the "flexstack" namespace.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New creates a client for the platform at baseURL.
func New(baseURL string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		timeout := o.timeout
		if timeout == 0 {
			timeout = 120 * time.Second
		}
		// One transport shared by all facades so connections are reused
		// across task families.
		o.httpClient = tlsutil.SecureHTTPClient(timeout)
	}

	var collector *metrics.Collector
	if o.registerer != nil {
		collector = metrics.NewCollector("flexstack", o.registerer)
	}

	return &Client{
		Text: text.New(text.Config{
			BaseURL: baseURL, Headers: o.headers, HTTPClient: o.httpClient,
			Logger: o.logger, Metrics: collector,
		}),
		Image: image.New(image.Config{
			BaseURL: baseURL, Headers: o.headers, HTTPClient: o.httpClient,
			Logger: o.logger, Metrics: collector,
		}),
		Audio: audio.New(audio.Config{
			BaseURL: baseURL, Headers: o.headers, HTTPClient: o.httpClient,
			Logger: o.logger, Metrics: collector,
		}),
		Info: info.New(info.Config{
			BaseURL: baseURL, Headers: o.headers, HTTPClient: o.httpClient,
			Logger: o.logger, Metrics: collector,
		}),
	}
}

// FromConfig creates a client from a loaded [config.Config], building a
// logger at the configured level.
func FromConfig(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := buildLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithHeaders(cfg.Headers),
		WithTimeout(cfg.Timeout),
		WithLogger(logger),
	}
	return New(cfg.BaseURL, append(base, opts...)...), nil
}

func buildLogger(level string) (*zap.Logger, error) {
	if level == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
