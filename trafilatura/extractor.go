// Package trafilatura recovers readable text from HTML fragments when
// locator-based extraction yields nothing.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/relgraph"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ relgraph.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull main text content out of HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the main text content of an HTML fragment.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", relgraph.Errorf(relgraph.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	if text := strings.TrimSpace(result.ContentText); text != "" {
		return text, nil
	}
	if result.ContentNode != nil {
		return strings.TrimSpace(textContent(result.ContentNode)), nil
	}
	return "", nil
}

// textContent concatenates the text nodes under n in document order.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
