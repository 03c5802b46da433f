// Package utils provides small helpers for terminal output and naming.
package utils

import (
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/goombaio/namegenerator"
)

// GenerateRunLabel creates a random, memorable label for an export run
// using namegenerator, e.g. "wispy-dust"
func GenerateRunLabel() string {
	seed := time.Now().UTC().UnixNano()
	nameGenerator := namegenerator.NewNameGenerator(seed)

	name := nameGenerator.Generate()

	// Some names might have underscores; convert to hyphens for consistency
	return strings.ReplaceAll(name, "_", "-")
}

// RenderMarkdown renders markdown for terminal display. Falls back to
// the raw text when the renderer cannot be constructed.
func RenderMarkdown(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
