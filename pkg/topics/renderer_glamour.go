package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics through glamour for rich
// terminal output. Non-markdown topics pass through untouched.
type GlamourRenderer struct {
	// Style is a glamour style name or a path to a custom style
	// file. Empty or "auto" picks a style from the terminal
	// background.
	Style string

	// Width wraps output at the given column, 0 for auto-detect.
	Width int
}

// NewGlamourRenderer creates a markdown renderer with terminal
// auto-detection for style and width.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown content to styled terminal output. Any
// rendering problem falls back to the raw content rather than losing
// the page.
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
