// Package gemini drafts outreach messages with Google Gemini. It sits
// strictly downstream of ranking and is never called during harvesting
// or scoring.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/relgraph"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxPromptTokens caps the outreach prompt. Profiles are small so this
// only trips on pathological skill lists or reasoning clauses.
const maxPromptTokens = 4096

// Ensure Composer implements relgraph.Composer at compile time.
var _ relgraph.Composer = (*Composer)(nil)

// Composer implements relgraph.Composer using Google Gemini.
type Composer struct {
	client *genai.Client
	tokens relgraph.TokenCounter
}

// NewComposer creates a new Composer. The token counter is optional;
// when nil the prompt budget is not enforced.
func NewComposer(client *genai.Client, tokens relgraph.TokenCounter) *Composer {
	return &Composer{client: client, tokens: tokens}
}

// ComposeOutreach drafts a short outreach message to the given node,
// grounded in the ranking engine's reasoning clauses.
func (c *Composer) ComposeOutreach(ctx context.Context, node *relgraph.Node, reasons []string) (string, error) {
	if node == nil {
		return "", relgraph.Errorf(relgraph.EINVALID, "node required")
	}
	if node.Name == "" {
		return "", relgraph.Errorf(relgraph.EINVALID, "node name required")
	}

	prompt := BuildOutreachPrompt(node, reasons)

	if c.tokens != nil {
		count, err := c.tokens.CountTokens(ctx, prompt)
		if err != nil {
			return "", err
		}
		if count > maxPromptTokens {
			return "", relgraph.Errorf(relgraph.EINVALID, "outreach prompt is %d tokens, limit is %d", count, maxPromptTokens)
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", relgraph.Errorf(relgraph.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You write short, warm professional outreach messages. Use only the profile details and match reasons provided. Keep the message under 120 words, address the person by first name, and end without a signature.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildOutreachPrompt builds the user prompt from the profile and the
// reasons the ranking engine surfaced for it.
func BuildOutreachPrompt(node *relgraph.Node, reasons []string) string {
	var sb strings.Builder
	sb.WriteString("<profile>\n")
	fmt.Fprintf(&sb, "<name>%s</name>\n", node.Name)
	if node.Headline != "" {
		fmt.Fprintf(&sb, "<headline>%s</headline>\n", node.Headline)
	}
	if node.Company != "" {
		fmt.Fprintf(&sb, "<company>%s</company>\n", node.Company)
	}
	if node.Role != "" {
		fmt.Fprintf(&sb, "<role>%s</role>\n", node.Role)
	}
	if node.Location != "" {
		fmt.Fprintf(&sb, "<location>%s</location>\n", node.Location)
	}
	if len(node.Skills) > 0 {
		fmt.Fprintf(&sb, "<skills>%s</skills>\n", strings.Join(node.Skills, ", "))
	}
	sb.WriteString("</profile>\n")

	if len(reasons) > 0 {
		sb.WriteString("<match-reasons>\n")
		for _, reason := range reasons {
			fmt.Fprintf(&sb, "<reason>%s</reason>\n", reason)
		}
		sb.WriteString("</match-reasons>\n")
	}

	sb.WriteString("\nWrite an outreach message to this person.")
	return sb.String()
}
