//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestComposer_Integration_ReturnsMessage(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	composer := gemini.NewComposer(client, nil)

	node := &relgraph.Node{
		ID:       "alice-chen",
		Name:     "Alice Chen",
		Headline: "Staff Engineer at Google",
		Company:  "Google",
		Skills:   []string{"Go", "Kubernetes"},
	}
	reasons := []string{"1st-degree connection", "matched 'Go' in skills"}

	message, err := composer.ComposeOutreach(ctx, node, reasons)

	require.NoError(t, err)
	assert.NotEmpty(t, message)
	assert.Contains(t, message, "Alice")
}

func TestTokenCounter_Integration_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	count, err := tc.CountTokens(context.Background(), "Hello, world!")
	require.NoError(t, err)
	assert.Positive(t, count)

	count, err = tc.CountTokens(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, count)
}
