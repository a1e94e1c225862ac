package audio

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/FlexStackAI/flexstackai/internal/httpclient"
	"github.com/FlexStackAI/flexstackai/internal/metrics"
	"github.com/FlexStackAI/flexstackai/types"
)

const audioPath = "/ai/audio_generation"

// Audio model names accepted by the platform.
const (
	ModelAudiogen = "audiogen"
	ModelMusicgen = "musicgen"
	ModelBark     = "bark"
)

// Config configures the audio generation client.
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

// Client shapes and sends audio generation requests.
type Client struct {
	http *httpclient.Client
}

// New creates an audio generation client.
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

// GenerateRequest is a text-to-audio request. Options are optional
// per-model tuning fields; each model accepts its own subset (see
// modelOptions) and a set field outside that subset is a validation
// error. Unset fields are backfilled with the model defaults.
type GenerateRequest struct {
	Prompt   string
	Model    string // default "musicgen"
	Duration *int
	TopK     *int
	TopP     *float64
	Headers  map[string]string
}

// modelOptions is the per-model allow-list of tuning options. bark takes
// none.
var modelOptions = map[string][]string{
	ModelAudiogen: {"duration", "top_k", "top_p"},
	ModelMusicgen: {"duration", "top_k", "top_p"},
	ModelBark:     {},
}

type audioConfigs struct {
	Model    string   `json:"model"`
	Duration *int     `json:"duration,omitempty"`
	TopK     *int     `json:"top_k,omitempty"`
	TopP     *float64 `json:"top_p,omitempty"`
}

type audioPayload struct {
	Prompt  string       `json:"prompt"`
	Configs audioConfigs `json:"configs"`
}

// setOptions returns the names of the options the caller set.
func (req *GenerateRequest) setOptions() []string {
	var set []string
	if req.Duration != nil {
		set = append(set, "duration")
	}
	if req.TopK != nil {
		set = append(set, "top_k")
	}
	if req.TopP != nil {
		set = append(set, "top_p")
	}
	return set
}

// configs validates the request against the model's allow-list and
// returns the configs with defaults backfilled for unset options.
func (req *GenerateRequest) configs() (audioConfigs, error) {
	model := req.Model
	if model == "" {
		model = ModelMusicgen
	}
	allowed, ok := modelOptions[model]
	if !ok {
		names := make([]string, 0, len(modelOptions))
		for name := range modelOptions {
			names = append(names, name)
		}
		sort.Strings(names)
		return audioConfigs{}, types.NewValidationError(
			"model must be one of [%s], got %q", strings.Join(names, ", "), model)
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = true
	}
	for _, name := range req.setOptions() {
		if !allowedSet[name] {
			accepted := append(append([]string{}, allowed...), "prompt", "model")
			return audioConfigs{}, types.NewValidationError(
				"model %q does not support keyword argument %q. Only supported: [%s]",
				model, name, strings.Join(accepted, ", "))
		}
	}

	cfg := audioConfigs{
		Model:    model,
		Duration: req.Duration,
		TopK:     req.TopK,
		TopP:     req.TopP,
	}
	// Backfill defaults for unset options only.
	if model == ModelAudiogen || model == ModelMusicgen {
		if cfg.Duration == nil {
			cfg.Duration = ptr(5)
		}
		if cfg.TopK == nil {
			cfg.TopK = ptr(15)
		}
		if cfg.TopP == nil {
			cfg.TopP = ptr(0.9)
		}
	}
	return cfg, nil
}

func ptr[T any](v T) *T { return &v }

// CreateTxt2Audio submits a text-to-audio task. Option validation runs
// locally before any network call.
func (c *Client) CreateTxt2Audio(ctx context.Context, req *GenerateRequest) (types.Response, error) {
	cfg, err := req.configs()
	if err != nil {
		return nil, err
	}
	payload := audioPayload{Prompt: req.Prompt, Configs: cfg}
	return c.http.DoJSON(ctx, http.MethodPost, audioPath, nil, payload, req.Headers)
}

// Txt2AudioResult retrieves a text-to-audio result by task handle.
func (c *Client) Txt2AudioResult(ctx context.Context, taskID string, headers map[string]string) (types.Response, error) {
	return c.http.Get(ctx, audioPath+"/"+url.PathEscape(taskID), nil, headers)
}
