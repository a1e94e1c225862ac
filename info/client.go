package info

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/FlexStackAI/flexstackai/internal/httpclient"
	"github.com/FlexStackAI/flexstackai/internal/metrics"
	"github.com/FlexStackAI/flexstackai/types"
)

const (
	allModelsPath  = "/ai/models"
	taskModelsPath = "/models/"
)

// Task names the platform lists models for.
const (
	TaskImageGeneration = "image_generation"
	TaskVideoGeneration = "video_generation"
	TaskTextCompletion  = "text_completion"
	TaskAudioGeneration = "audio_generation"
	TaskTextEmbedding   = "text_embedding"
)

// tasks is the accepted task-name enum, in the order it is reported in
// validation errors.
var tasks = []string{
	TaskImageGeneration,
	TaskVideoGeneration,
	TaskTextCompletion,
	TaskAudioGeneration,
	TaskTextEmbedding,
}

// Config configures the platform info client.
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

// Client answers model-catalog queries.
type Client struct {
	http *httpclient.Client
}

// New creates a platform info client.
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

// ValidTask reports whether task is one of the accepted task names.
func ValidTask(task string) bool {
	for _, t := range tasks {
		if task == t {
			return true
		}
	}
	return false
}

// AllModels lists every model the platform serves.
func (c *Client) AllModels(ctx context.Context, headers map[string]string) (types.Response, error) {
	return c.http.Get(ctx, allModelsPath, nil, headers)
}

// Models lists the models available for one task. The task name is
// validated locally before any network call.
func (c *Client) Models(ctx context.Context, task string, headers map[string]string) (types.Response, error) {
	if !ValidTask(task) {
		return nil, types.NewValidationError(
			"task must be one of [%s], got %q", strings.Join(tasks, ", "), task)
	}
	return c.http.Get(ctx, taskModelsPath+task, nil, headers)
}
