package elevenlabs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"echoeats/app/config"

	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server, apiKey string) *Client {
	t.Helper()

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	baseURL := ""
	if srv != nil {
		baseURL = srv.URL
	}

	do.ProvideValue(di, &config.Config{
		Voice: config.Voice{
			APIKey:  apiKey,
			VoiceID: "test-voice",
			BaseURL: baseURL,
		},
	})
	do.Provide(di, NewClient)

	return do.MustInvoke[*Client](di)
}

func TestTextToSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/text-to-speech/test-voice", r.URL.Path)
		require.Equal(t, "mp3_44100_128", r.URL.Query().Get("output_format"))
		require.Equal(t, "secret", r.Header.Get("xi-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), `"text":"hello"`)

		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, "secret")

	audio, err := client.TextToSpeech(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, []byte("mp3-bytes"), audio)
}

func TestTextToSpeechProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": {"status": "invalid_api_key"}}`))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, "wrong")

	_, err := client.TextToSpeech(context.Background(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestSpeechToText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/speech-to-text", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get("xi-api-key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "scribe_v1", r.FormValue("model_id"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		audio, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte("wave-bytes"), audio)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "two cheese pizzas please"}`))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, "secret")

	text, err := client.SpeechToText(context.Background(), []byte("wave-bytes"))
	require.NoError(t, err)
	require.Equal(t, "two cheese pizzas please", text)
}

func TestDisabledClientFails(t *testing.T) {
	client := newTestClient(t, nil, "")

	_, err := client.TextToSpeech(context.Background(), "hello")
	require.Error(t, err)

	_, err = client.SpeechToText(context.Background(), []byte("x"))
	require.Error(t, err)
}
