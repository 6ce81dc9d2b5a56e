package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ relgraph.ContentExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts main text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Post</title></head>
<body>
<nav><a href="/">Home</a><a href="/feed">Feed</a></nav>
<article>
<h1>Announcement</h1>
<p>We shipped the new ingestion pipeline this week after months of work.</p>
</article>
<aside>Suggested for you</aside>
<footer>Copyright 2026</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "shipped the new ingestion pipeline")
	})

	t.Run("drops navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Post</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/network">Network</a></li>
</ul>
</nav>
<main>
<h1>Update</h1>
<p>This paragraph contains the actual content we want.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "actual content we want")
		assert.NotContains(t, text, "Network")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.ExtractText("")

		require.Error(t, err)
		assert.Equal(t, relgraph.EINVALID, relgraph.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Simple content")
	})
}
