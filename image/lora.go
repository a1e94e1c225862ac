package image

import (
	"context"
	"net/http"
	"net/url"

	"github.com/FlexStackAI/flexstackai/internal/httpclient"
	"github.com/FlexStackAI/flexstackai/types"
)

// LoraTypes lists the LoRA adapter types known to the platform.
func (c *Client) LoraTypes(ctx context.Context, headers map[string]string) (types.Response, error) {
	return c.http.Get(ctx, loraTypesPath, nil, headers)
}

// LoraCates lists the LoRA adapter categories.
func (c *Client) LoraCates(ctx context.Context, headers map[string]string) (types.Response, error) {
	return c.http.Get(ctx, loraCatesPath, nil, headers)
}

// LoraModels lists LoRA models, optionally filtered by type and category.
// Both parameters are always present in the query; an empty value means
// "any" to the platform, so unset filters are sent as empty rather than
// omitted.
func (c *Client) LoraModels(ctx context.Context, typ, cate string, headers map[string]string) (types.Response, error) {
	query := url.Values{
		"type": {typ},
		"cate": {cate},
	}
	return c.http.Get(ctx, loraModelsPath, query, headers)
}

// LoraTrainerRequest creates a LoRA fine-tuning task from a prompt and a
// set of training image URLs.
type LoraTrainerRequest struct {
	Prompt  string
	Images  []string
	Headers map[string]string
}

// CreateLoraTrainerTask submits a LoRA training task. The body is a
// multipart form: one "files" file part per image URL plus a "prompt"
// text field.
func (c *Client) CreateLoraTrainerTask(ctx context.Context, req *LoraTrainerRequest) (types.Response, error) {
	fields := make([]httpclient.FormField, 0, len(req.Images)+1)
	for _, image := range req.Images {
		fields = append(fields, httpclient.FormField{Name: "files", Value: image, File: true})
	}
	fields = append(fields, httpclient.FormField{Name: "prompt", Value: req.Prompt})
	return c.http.PostMultipart(ctx, loraTrainerPath, fields, req.Headers)
}

// LoraTrainerTaskResult retrieves the result of a LoRA training task.
// POST-style, like the SD/SDXL result endpoints.
func (c *Client) LoraTrainerTaskResult(ctx context.Context, taskID string, headers map[string]string) (types.Response, error) {
	return c.http.DoJSON(ctx, http.MethodPost, loraTrainerResultPath, nil, taskIDPayload{TaskID: taskID}, headers)
}
