package image

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
	sdTaskPath     = "/ai/create_sd_task"
	sdResultPath   = "/ai/get_result_sd_task"
	sdxlTaskPath   = "/ai/create_sdxl_task"
	sdxlResultPath = "/ai/get_result_sdxl_task"
	txt2ImgPath    = "/ai/image_generation"
	txt2VidPath    = "/ai/video_generation"
	loraTypesPath  = "/lora/types"
	loraCatesPath  = "/lora/cates"
	loraModelsPath = "/lora/"

	// Route spelling matches the server.
	loraTrainerPath       = "/ai/create_lora_trainner_task"
	loraTrainerResultPath = "/ai/get_result_lora_trainner_task"
)

// Config configures the image generation client.
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

// Client shapes and sends image, video and LoRA task requests.
type Client struct {
	http *httpclient.Client
}

// New creates an image generation client.
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

// taskIDPayload is the body of the POST-style result endpoints.
type taskIDPayload struct {
	TaskID string `json:"task_id"`
}

// SDTaskRequest creates an SD 1.5 or SDXL-turbo image task. Fields map
// onto NewTaskConfig's parameters; zero values take the builder defaults.
type SDTaskRequest struct {
	Prompt         string
	Rotation       string
	Steps          int
	NegativePrompt string
	EnhancePrompt  bool
	Headers        map[string]string
}

type sdTaskPayload struct {
	Prompt string     `json:"prompt"`
	Config TaskConfig `json:"config"`
}

func (req *SDTaskRequest) payload() sdTaskPayload {
	return sdTaskPayload{
		Prompt: req.Prompt,
		Config: NewTaskConfig(req.Rotation, req.Steps, req.NegativePrompt, req.EnhancePrompt),
	}
}

// CreateSDTask creates an SD 1.5 image task.
func (c *Client) CreateSDTask(ctx context.Context, req *SDTaskRequest) (types.Response, error) {
	return c.http.DoJSON(ctx, http.MethodPost, sdTaskPath, nil, req.payload(), req.Headers)
}

// SDTaskResult retrieves the result of an SD 1.5 task. The result
// endpoint takes the task handle in a POSTed body, unlike the GET-style
// result endpoints of the newer task types.
func (c *Client) SDTaskResult(ctx context.Context, taskID string, headers map[string]string) (types.Response, error) {
	return c.http.DoJSON(ctx, http.MethodPost, sdResultPath, nil, taskIDPayload{TaskID: taskID}, headers)
}

// CreateSDXLTask creates an SDXL-turbo image task.
func (c *Client) CreateSDXLTask(ctx context.Context, req *SDTaskRequest) (types.Response, error) {
	return c.http.DoJSON(ctx, http.MethodPost, sdxlTaskPath, nil, req.payload(), req.Headers)
}

// SDXLTaskResult retrieves the result of an SDXL-turbo task. POST-style,
// like SDTaskResult.
func (c *Client) SDXLTaskResult(ctx context.Context, taskID string, headers map[string]string) (types.Response, error) {
	return c.http.DoJSON(ctx, http.MethodPost, sdxlResultPath, nil, taskIDPayload{TaskID: taskID}, headers)
}

// Txt2ImgRequest creates a text-to-image task. Zero-valued fields take
// the platform defaults: model "sdxl-lightning", width/height 1024,
// steps 8, seed -1.
type Txt2ImgRequest struct {
	Prompt         string
	Model          string
	Lora           string
	Width          int
	Height         int
	Steps          int
	Seed           int
	NegativePrompt string
	EnhancePrompt  bool
	Headers        map[string]string
}

type txt2ImgConfigs struct {
	Model          string `json:"model"`
	Lora           string `json:"lora"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Steps          int    `json:"steps"`
	Seed           int    `json:"seed"`
	NegativePrompt string `json:"negative_prompt"`
	EnhancePrompt  bool   `json:"enhance_prompt"`
}

type txt2ImgPayload struct {
	Prompt  string         `json:"prompt"`
	Configs txt2ImgConfigs `json:"configs"`
}

func (req *Txt2ImgRequest) configs() txt2ImgConfigs {
	cfg := txt2ImgConfigs{
		Model:          req.Model,
		Lora:           req.Lora,
		Width:          req.Width,
		Height:         req.Height,
		Steps:          req.Steps,
		Seed:           req.Seed,
		NegativePrompt: req.NegativePrompt,
		EnhancePrompt:  req.EnhancePrompt,
	}
	if cfg.Model == "" {
		cfg.Model = "sdxl-lightning"
	}
	if cfg.Width == 0 {
		cfg.Width = 1024
	}
	if cfg.Height == 0 {
		cfg.Height = 1024
	}
	if cfg.Steps == 0 {
		cfg.Steps = 8
	}
	if cfg.Seed == 0 {
		cfg.Seed = -1
	}
	return cfg
}

// CreateTxt2Img creates a text-to-image generation task.
func (c *Client) CreateTxt2Img(ctx context.Context, req *Txt2ImgRequest) (types.Response, error) {
	payload := txt2ImgPayload{Prompt: req.Prompt, Configs: req.configs()}
	return c.http.DoJSON(ctx, http.MethodPost, txt2ImgPath, nil, payload, req.Headers)
}

// Txt2ImgResult retrieves a text-to-image result by task handle.
func (c *Client) Txt2ImgResult(ctx context.Context, taskID string, headers map[string]string) (types.Response, error) {
	return c.http.Get(ctx, txt2ImgPath+"/"+url.PathEscape(taskID), nil, headers)
}

// Txt2VidRequest creates a text-to-video task. Zero-valued fields take
// the platform defaults: model "damo-text-to-video", width/height 256,
// fps 8, num_frames 16, steps 25, seed -1.
type Txt2VidRequest struct {
	Prompt         string
	Model          string
	Width          int
	Height         int
	FPS            int
	NumFrames      int
	Steps          int
	Seed           int
	NegativePrompt string
	EnhancePrompt  bool
	Headers        map[string]string
}

type txt2VidConfigs struct {
	Model          string `json:"model"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	FPS            int    `json:"fps"`
	NumFrames      int    `json:"num_frames"`
	Steps          int    `json:"steps"`
	NegativePrompt string `json:"negative_prompt"`
	Seed           int    `json:"seed"`
	EnhancePrompt  bool   `json:"enhance_prompt"`
}

type txt2VidPayload struct {
	Prompt  string         `json:"prompt"`
	Configs txt2VidConfigs `json:"configs"`
}

func (req *Txt2VidRequest) configs() txt2VidConfigs {
	cfg := txt2VidConfigs{
		Model:          req.Model,
		Width:          req.Width,
		Height:         req.Height,
		FPS:            req.FPS,
		NumFrames:      req.NumFrames,
		Steps:          req.Steps,
		NegativePrompt: req.NegativePrompt,
		Seed:           req.Seed,
		EnhancePrompt:  req.EnhancePrompt,
	}
	if cfg.Model == "" {
		cfg.Model = "damo-text-to-video"
	}
	if cfg.Width == 0 {
		cfg.Width = 256
	}
	if cfg.Height == 0 {
		cfg.Height = 256
	}
	if cfg.FPS == 0 {
		cfg.FPS = 8
	}
	if cfg.NumFrames == 0 {
		cfg.NumFrames = 16
	}
	if cfg.Steps == 0 {
		cfg.Steps = 25
	}
	if cfg.Seed == 0 {
		cfg.Seed = -1
	}
	return cfg
}

// CreateTxt2Vid creates a text-to-video generation task.
func (c *Client) CreateTxt2Vid(ctx context.Context, req *Txt2VidRequest) (types.Response, error) {
	payload := txt2VidPayload{Prompt: req.Prompt, Configs: req.configs()}
	return c.http.DoJSON(ctx, http.MethodPost, txt2VidPath, nil, payload, req.Headers)
}

// Txt2VidResult retrieves a text-to-video result by task handle.
func (c *Client) Txt2VidResult(ctx context.Context, taskID string, headers map[string]string) (types.Response, error) {
	return c.http.Get(ctx, txt2VidPath+"/"+url.PathEscape(taskID), nil, headers)
}
