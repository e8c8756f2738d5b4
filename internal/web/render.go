package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/aryanwebd35/portfolio/internal/assistant"
	"github.com/aryanwebd35/portfolio/internal/content"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"slug": content.Slug,
	"join": strings.Join,
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}

// markdown renders the profile's markdown fields. Raw HTML in the source is
// dropped by goldmark's default renderer.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

type messageView struct {
	Role     string
	Segments []assistant.Segment
}

type chatView struct {
	Open     bool
	Typing   bool
	Messages []messageView
}

func newChatView(chat *assistant.Chat) chatView {
	msgs := chat.Messages()
	v := chatView{
		Open:     chat.IsOpen(),
		Typing:   chat.Typing(),
		Messages: make([]messageView, len(msgs)),
	}
	for i, m := range msgs {
		v.Messages[i] = messageView{Role: string(m.Role), Segments: assistant.Linkify(m.Text)}
	}
	return v
}
