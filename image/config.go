package image

// Rotation presets accepted by the SD/SDXL task config.
const (
	RotationSquare     = "square"
	RotationHorizontal = "horizontal"
	RotationVertical   = "vertical"
)

// TaskConfig is the fixed-shape configuration of an SD/SDXL image task.
// It is model-independent; lora_weight_url is reserved by the platform
// and always sent empty.
type TaskConfig struct {
	Rotation       string `json:"rotation"`
	Steps          int    `json:"steps"`
	NegativePrompt string `json:"negative_prompt"`
	LoraWeightURL  string `json:"lora_weight_url"`
	EnhancePrompt  bool   `json:"enhance_prompt"`
}

// NewTaskConfig builds a TaskConfig. It is a pure builder: no validation,
// zero values replaced by the defaults rotation "square" and steps 50.
func NewTaskConfig(rotation string, steps int, negativePrompt string, enhancePrompt bool) TaskConfig {
	if rotation == "" {
		rotation = RotationSquare
	}
	if steps == 0 {
		steps = 50
	}
	return TaskConfig{
		Rotation:       rotation,
		Steps:          steps,
		NegativePrompt: negativePrompt,
		LoraWeightURL:  "",
		EnhancePrompt:  enhancePrompt,
	}
}
