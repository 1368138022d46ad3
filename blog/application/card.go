package application

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	maxSnippetLength = 200
	cardDateLayout   = "02 Jan 2006"
)

// Card is the display form of a post
type Card struct {
	Post             domain.Post
	CategoryLabel    string
	PublishDateLabel string
	Snippet          string
	DescriptionHTML  []byte
}

// CardRenderer turns posts into display cards.
type CardRenderer interface {
	Render(p domain.Post) (*Card, error)
}

type CardRendererImpl struct {
	renderer goldmark.Markdown
}

func NewCardRenderer() CardRenderer {
	// raw HTML in descriptions is omitted from the output
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &CardRendererImpl{
		renderer: renderer,
	}
}

func (r *CardRendererImpl) Render(p domain.Post) (*Card, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert([]byte(p.Description), &buf); err != nil {
		return nil, fmt.Errorf("failed to render description of post %s: %w", p.ID, err)
	}

	return &Card{
		Post:             p,
		CategoryLabel:    p.Category.Label(),
		PublishDateLabel: formatPublishDate(p.PublishDate),
		Snippet:          extractSnippet(p.Description),
		DescriptionHTML:  buf.Bytes(),
	}, nil
}

// RenderAll renders every post, stopping at the first failure.
func RenderAll(r CardRenderer, posts []domain.Post) ([]*Card, error) {
	cards := make([]*Card, 0, len(posts))
	for _, p := range posts {
		card, err := r.Render(p)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func formatPublishDate(raw string) string {
	t, err := time.Parse(domain.PublishDateLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(cardDateLayout)
}

// extractSnippet returns the first paragraph of text, cut at a word boundary when it is too long.
func extractSnippet(text string) string {
	lines := strings.Split(text, "\n")
	var paragraphLines []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		if trimmed == "" {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		// Stop at code blocks, horizontal rules, lists, tables
		if strings.HasPrefix(trimmed, "```") ||
			strings.HasPrefix(trimmed, "---") ||
			strings.HasPrefix(trimmed, "***") ||
			strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "+ ") ||
			strings.HasPrefix(trimmed, "|") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		paragraphLines = append(paragraphLines, trimmed)
	}

	if len(paragraphLines) == 0 {
		return ""
	}

	snippet := strings.Join(paragraphLines, " ")

	if len(snippet) > maxSnippetLength {
		snippet = truncateRunes(snippet, maxSnippetLength)
		if lastSpace := strings.LastIndexAny(snippet, " \t"); lastSpace > 0 {
			snippet = snippet[:lastSpace]
		}
		snippet += "..."
	}

	return snippet
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}
