package embedder

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/smart-faq/internal/infra/llm/chatgpt"
)

func TestDeterministicEmbedderStable(t *testing.T) {
	e := NewDeterministicEmbedder(8)
	ctx := context.Background()

	a, err := e.Embed(ctx, "What is the refund policy?")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "  what is the REFUND policy ")
	require.NoError(t, err)
	c, err := e.Embed(ctx, "opening hours")
	require.NoError(t, err)

	require.Len(t, a, 8)
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}

func TestDeterministicEmbedderDefaultDimension(t *testing.T) {
	v, err := NewDeterministicEmbedder(0).Embed(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, v, 32)
}

func newEmbedder(t *testing.T, body string) *ChatGPTEmbedder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client, err := chatgpt.NewClient("key", srv.URL)
	require.NoError(t, err)
	return NewChatGPTEmbedder(client, "text-embedding-3-small", nil)
}

func TestChatGPTEmbedder(t *testing.T) {
	e := newEmbedder(t, `{"data":[{"index":0,"embedding":[0.5,-0.25]}]}`)
	v, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, []float32{0.5, -0.25}, v)
}

func TestChatGPTEmbedderRejectsEmptyResponse(t *testing.T) {
	e := newEmbedder(t, `{"data":[]}`)
	_, err := e.Embed(context.Background(), "hello")
	require.Error(t, err)
}

func TestChatGPTEmbedderRejectsNonNumericResponse(t *testing.T) {
	e := newEmbedder(t, `{"data":[{"embedding":["a","b"]}]}`)
	_, err := e.Embed(context.Background(), "hello")
	require.Error(t, err)
}

func TestCheckVectorRejectsNaN(t *testing.T) {
	_, err := checkVector([]float32{1, float32(math.NaN())})
	require.Error(t, err)
}
