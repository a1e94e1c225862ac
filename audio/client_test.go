package audio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlexStackAI/flexstackai/types"
)

func TestCreateTxt2Audio(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/ai/audio_generation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"task_id":"aud-1"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	t.Run("musicgen with no options gets all defaults", func(t *testing.T) {
		resp, err := c.CreateTxt2Audio(context.Background(), &GenerateRequest{Prompt: "soft piano"})
		require.NoError(t, err)
		assert.Equal(t, "aud-1", resp.TaskID())
		assert.Equal(t, "soft piano", payload["prompt"])
		assert.Equal(t, map[string]any{
			"model":    "musicgen",
			"duration": float64(5),
			"top_k":    float64(15),
			"top_p":    0.9,
		}, payload["configs"])
	})

	t.Run("explicit option preserved, others defaulted", func(t *testing.T) {
		_, err := c.CreateTxt2Audio(context.Background(), &GenerateRequest{
			Prompt: "soft piano",
			Model:  ModelMusicgen,
			TopK:   ptr(99),
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"model":    "musicgen",
			"duration": float64(5),
			"top_k":    float64(99),
			"top_p":    0.9,
		}, payload["configs"])
	})

	t.Run("audiogen gets the same defaults", func(t *testing.T) {
		_, err := c.CreateTxt2Audio(context.Background(), &GenerateRequest{
			Prompt: "birdsong",
			Model:  ModelAudiogen,
		})
		require.NoError(t, err)
		configs := payload["configs"].(map[string]any)
		assert.Equal(t, "audiogen", configs["model"])
		assert.Equal(t, float64(5), configs["duration"])
	})

	t.Run("bark sends model only", func(t *testing.T) {
		_, err := c.CreateTxt2Audio(context.Background(), &GenerateRequest{
			Prompt: "hello there",
			Model:  ModelBark,
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"model": "bark"}, payload["configs"])
	})
}

func TestCreateTxt2AudioValidation(t *testing.T) {
	// Validation failures never reach the network.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	}))
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})

	t.Run("bark rejects duration", func(t *testing.T) {
		_, err := c.CreateTxt2Audio(context.Background(), &GenerateRequest{
			Prompt:   "hello",
			Model:    ModelBark,
			Duration: ptr(5),
		})
		require.Error(t, err)
		assert.True(t, types.IsValidation(err))
		assert.Contains(t, err.Error(), `"duration"`)
		assert.Contains(t, err.Error(), "prompt, model")
	})

	t.Run("bark rejects top_k and top_p", func(t *testing.T) {
		_, err := c.CreateTxt2Audio(context.Background(), &GenerateRequest{
			Prompt: "hello",
			Model:  ModelBark,
			TopK:   ptr(10),
			TopP:   ptr(0.5),
		})
		require.Error(t, err)
		assert.True(t, types.IsValidation(err))
	})

	t.Run("unknown model rejected with choices", func(t *testing.T) {
		_, err := c.CreateTxt2Audio(context.Background(), &GenerateRequest{
			Prompt: "hello",
			Model:  "jukebox",
		})
		require.Error(t, err)
		assert.True(t, types.IsValidation(err))
		assert.Contains(t, err.Error(), "audiogen, bark, musicgen")
	})
}

func TestTxt2AudioResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/ai/audio_generation/aud-3", r.URL.Path)
		w.Write([]byte(`{"status":"done","url":"http://cdn/aud-3.wav"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	resp, err := c.Txt2AudioResult(context.Background(), "aud-3", nil)
	require.NoError(t, err)
	assert.Equal(t, "done", resp["status"])
}
