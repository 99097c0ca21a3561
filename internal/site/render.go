package site

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/pagetree/internal/content"
)

const layout = `<!DOCTYPE html>
<html lang="{{ .Lang }}">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
</head>
<body>
{{- if .Parents }}
<nav class="breadcrumbs">
{{- range .Parents }}
<a href="{{ .URL }}">{{ .Title }}</a> /
{{- end }}
</nav>
{{- end }}
<main>
<h1>{{ .Title }}</h1>
{{ .Content }}
</main>
{{- if .Children }}
<nav class="children">
<ul>
{{- range .Children }}
<li><a href="{{ .URL }}">{{ .Title }}</a></li>
{{- end }}
</ul>
</nav>
{{- end }}
</body>
</html>
`

type link struct {
	URL   string
	Title string
}

type pageView struct {
	Lang     string
	Title    string
	Content  template.HTML
	Parents  []link
	Children []link
}

// Renderer turns a page into a standalone HTML document with breadcrumbs
// built from its ancestors and a list of its children.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		tmpl: template.Must(template.New("page").Parse(layout)),
	}
}

// Render returns the HTML document for p.
func (r *Renderer) Render(p *content.Page) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert(p.Body, &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	view := pageView{
		Lang:     p.Lang,
		Title:    p.Title,
		Content:  template.HTML(body.String()), //nolint:gosec // page bodies are trusted site content
		Parents:  links(p.Parents),
		Children: links(p.Children),
	}

	var out bytes.Buffer
	if err := r.tmpl.Execute(&out, view); err != nil {
		return nil, fmt.Errorf("render layout: %w", err)
	}
	return out.Bytes(), nil
}

func links(pages []*content.Page) []link {
	out := make([]link, 0, len(pages))
	for _, p := range pages {
		out = append(out, link{URL: href(p.EffectiveURL()), Title: p.Title})
	}
	return out
}

// href roots a site-relative URL. URLs that are already rooted or carry a
// scheme are returned unchanged.
func href(url string) string {
	if strings.HasPrefix(url, "/") || strings.Contains(url, "://") {
		return url
	}
	return "/" + url
}
