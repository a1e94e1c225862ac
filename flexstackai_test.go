package flexstackai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FlexStackAI/flexstackai/audio"
	"github.com/FlexStackAI/flexstackai/config"
	"github.com/FlexStackAI/flexstackai/types"
)

func TestNew(t *testing.T) {
	client := New("http://localhost:8080")
	require.NotNil(t, client.Text)
	require.NotNil(t, client.Image)
	require.NotNil(t, client.Audio)
	require.NotNil(t, client.Info)
}

func TestDefaultHeadersReachEveryFacade(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL,
		WithHeader("Authorization", "Bearer shared-token"),
		WithLogger(zap.NewNop()),
	)

	_, err := client.Info.AllModels(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer shared-token", auth)

	_, err = client.Image.LoraTypes(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer shared-token", auth)

	// Per-call headers still win.
	_, err = client.Info.AllModels(context.Background(), map[string]string{
		"Authorization": "Bearer per-call",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer per-call", auth)
}

func TestWithMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	client := New(srv.URL, WithMetrics(reg))

	_, err := client.Info.AllModels(context.Background(), nil)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestFromConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		client, err := FromConfig(config.Config{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
			Headers: map[string]string{"Authorization": "Bearer tok"},
			Log:     config.LogConfig{Level: "error"},
		})
		require.NoError(t, err)
		require.NotNil(t, client.Text)
	})

	t.Run("missing base url", func(t *testing.T) {
		_, err := FromConfig(config.Config{})
		require.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := FromConfig(config.Config{
			BaseURL: "http://localhost:8080",
			Log:     config.LogConfig{Level: "chatty"},
		})
		require.Error(t, err)
	})
}

func TestEndToEndTaskFlow(t *testing.T) {
	// Create an audio task through the umbrella client, then poll its
	// result, covering the shared transport across both call shapes.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ai/audio_generation":
			w.Write([]byte(`{"task_id":"aud-1"}`))
		case "/ai/audio_generation/aud-1":
			w.Write([]byte(`{"status":"done"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := New(srv.URL)
	created, err := client.Audio.CreateTxt2Audio(context.Background(), &audio.GenerateRequest{Prompt: "lofi beats"})
	require.NoError(t, err)
	require.Equal(t, "aud-1", created.TaskID())

	result, err := client.Audio.Txt2AudioResult(context.Background(), created.TaskID(), nil)
	require.NoError(t, err)
	assert.Equal(t, "done", result["status"])

	var apiErr *types.Error
	_, err = client.Audio.Txt2AudioResult(context.Background(), "missing", nil)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
}
