package info

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlexStackAI/flexstackai/types"
)

func TestAllModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/ai/models", r.URL.Path)
		w.Write([]byte(`{"models":["gemma-7b","musicgen"]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	resp, err := c.AllModels(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, resp["models"], 2)
}

func TestModels(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})

	for _, task := range []string{
		TaskImageGeneration,
		TaskVideoGeneration,
		TaskTextCompletion,
		TaskAudioGeneration,
		TaskTextEmbedding,
	} {
		t.Run(task, func(t *testing.T) {
			_, err := c.Models(context.Background(), task, nil)
			require.NoError(t, err)
			assert.Equal(t, "/models/"+task, path)
		})
	}
}

func TestModelsInvalidTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	}))
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})

	for _, task := range []string{"bogus", "", "image", "IMAGE_GENERATION"} {
		t.Run("rejects "+task, func(t *testing.T) {
			_, err := c.Models(context.Background(), task, nil)
			require.Error(t, err)
			assert.True(t, types.IsValidation(err))
			assert.Contains(t, err.Error(), "image_generation, video_generation, text_completion, audio_generation, text_embedding")
		})
	}
}

func TestValidTask(t *testing.T) {
	assert.True(t, ValidTask("text_completion"))
	assert.False(t, ValidTask("text completion"))
	assert.False(t, ValidTask(""))
}
