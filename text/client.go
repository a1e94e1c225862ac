package text

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/FlexStackAI/flexstackai/internal/httpclient"
	"github.com/FlexStackAI/flexstackai/internal/metrics"
	"github.com/FlexStackAI/flexstackai/types"
)

const (
	completionPath = "/ai/text_completion"
	embeddingPath  = "/ai/text_embedding"
)

// Config configures the text generation client.
type Config struct {
	BaseURL string
	// Headers are sent with every request; commonly an auth token.
	Headers    map[string]string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger

	// Metrics is wired by the umbrella flexstackai client; leave nil to
	// disable request metrics.
	Metrics *metrics.Collector
}

// Client shapes and sends chat-completion and embedding requests.
type Client struct {
	http *httpclient.Client
}

// New creates a text generation client.
func New(cfg Config) *Client {
	return &Client{
		http: httpclient.New(httpclient.Config{
			BaseURL:    cfg.BaseURL,
			Headers:    cfg.Headers,
			Timeout:    cfg.Timeout,
			HTTPClient: cfg.HTTPClient,
			Logger:     cfg.Logger,
			Metrics:    cfg.Metrics,
		}),
	}
}

// GenerateRequest is a chat-completion request. Zero-valued sampling
// fields take the platform defaults: model "gemma-7b", temperature 0.7,
// top_k 50, top_p 0.95, max_new_tokens 256.
type GenerateRequest struct {
	Messages    []types.Message
	Model       string
	Temperature float64
	TopK        int
	TopP        float64
	MaxTokens   int

	// Headers are merged into this call's outbound headers, never
	// inspected or mutated.
	Headers map[string]string
}

type completionConfigs struct {
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	TopK         int     `json:"top_k"`
	TopP         float64 `json:"top_p"`
	MaxNewTokens int     `json:"max_new_tokens"`
}

type completionPayload struct {
	Messages []types.Message   `json:"messages"`
	Configs  completionConfigs `json:"configs"`
}

// defaultsApplied returns req's configs with defaults filled in for
// omitted fields: model "gemma-7b", temperature 0.7, top_k 50,
// top_p 0.95, max_new_tokens 256.
func (req *GenerateRequest) defaultsApplied() completionConfigs {
	cfg := completionConfigs{
		Model:        req.Model,
		Temperature:  req.Temperature,
		TopK:         req.TopK,
		TopP:         req.TopP,
		MaxNewTokens: req.MaxTokens,
	}
	if cfg.Model == "" {
		cfg.Model = "gemma-7b"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.TopK == 0 {
		cfg.TopK = 50
	}
	if cfg.TopP == 0 {
		cfg.TopP = 0.95
	}
	if cfg.MaxNewTokens == 0 {
		cfg.MaxNewTokens = 256
	}
	return cfg
}

// Generate runs a synchronous chat completion. Messages are validated
// locally before any network call.
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (types.Response, error) {
	if err := types.ValidateMessages(req.Messages); err != nil {
		return nil, err
	}
	payload := completionPayload{
		Messages: req.Messages,
		Configs:  req.defaultsApplied(),
	}
	return c.http.DoJSON(ctx, http.MethodPost, completionPath, nil, payload, req.Headers)
}

// GenerateStream runs a streaming chat completion. Same validation as
// Generate; the returned channel yields raw non-empty response lines and
// closes when the server finishes. A non-2xx status fails here, before
// any line is yielded. Cancel ctx to stop consuming early; that releases
// the underlying connection.
func (c *Client) GenerateStream(ctx context.Context, req *GenerateRequest) (<-chan types.StreamChunk, error) {
	if err := types.ValidateMessages(req.Messages); err != nil {
		return nil, err
	}
	payload := completionPayload{
		Messages: req.Messages,
		Configs:  req.defaultsApplied(),
	}
	query := url.Values{"stream": {"true"}}
	return c.http.Stream(ctx, completionPath, query, payload, req.Headers)
}

// EmbeddingRequest is a text embedding request.
type EmbeddingRequest struct {
	Text    string
	Model   string // default "mistral"
	Headers map[string]string
}

type embeddingPayload struct {
	Text    string `json:"text"`
	Configs struct {
		Model string `json:"model"`
	} `json:"configs"`
}

// CreateEmbedding submits a text embedding task.
func (c *Client) CreateEmbedding(ctx context.Context, req *EmbeddingRequest) (types.Response, error) {
	payload := embeddingPayload{Text: req.Text}
	payload.Configs.Model = req.Model
	if payload.Configs.Model == "" {
		payload.Configs.Model = "mistral"
	}
	return c.http.DoJSON(ctx, http.MethodPost, embeddingPath, nil, payload, req.Headers)
}

// EmbeddingResult fetches the result of an embedding task by its handle.
func (c *Client) EmbeddingResult(ctx context.Context, taskID string, headers map[string]string) (types.Response, error) {
	return c.http.Get(ctx, embeddingPath+"/"+url.PathEscape(taskID), nil, headers)
}
