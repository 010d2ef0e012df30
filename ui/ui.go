// Package ui embeds the shell document the loopback server hands to the
// system browser.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed shell.html
var files embed.FS

var shell = template.Must(template.ParseFS(files, "shell.html"))

// Params fills the shell template.
type Params struct {
	HomeURL    string // Initial address of the viewing surface
	SearchName string // Search provider display name shown in the hint
}

// shellData is what the template actually executes against. HomeURL is
// typed template.URL so opaque schemes (about:, data:, blob:) pass into
// the iframe src verbatim instead of being sanitized to #ZgotmplZ. The
// value always comes from the classifier/navigator or config, never raw
// user text.
type shellData struct {
	HomeURL    template.URL
	SearchName string
}

// RenderShell writes the shell document for the given parameters.
func RenderShell(w io.Writer, p Params) error {
	data := shellData{
		HomeURL:    template.URL(p.HomeURL),
		SearchName: p.SearchName,
	}
	if err := shell.Execute(w, data); err != nil {
		return fmt.Errorf("rendering shell: %w", err)
	}
	return nil
}

// Shell returns the rendered shell document as a string.
func Shell(p Params) (string, error) {
	var b strings.Builder
	if err := RenderShell(&b, p); err != nil {
		return "", err
	}
	return b.String(), nil
}
