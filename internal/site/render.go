package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed assets/index.html.tmpl assets/static
var assets embed.FS

// Static returns the files served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "assets/static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Markdown renders md to HTML. Raw HTML in the source is dropped and links
// open in a new tab.
func Markdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(md))

	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML | html.HrefTargetBlank | html.NoopenerLinks | html.NoreferrerLinks,
	})
	return template.HTML(bytes.TrimSpace(markdown.Render(doc, r)))
}

// PageOptions are server settings the page needs.
type PageOptions struct {
	StreamPath  string
	Interactive bool
}

type page struct {
	*Content
	AboutHTML  template.HTML
	Projects   []projectView
	Experience []experienceView
	Opts       PageOptions
}

type projectView struct {
	Project
	DescriptionHTML template.HTML
}

type experienceView struct {
	Experience
	DescriptionHTML template.HTML
}

// Renderer renders the portfolio page from prepared content.
type Renderer struct {
	tmpl *template.Template
	page page
}

// NewRenderer parses the page template and pre-renders the markdown fields.
func NewRenderer(c *Content, opts PageOptions) (*Renderer, error) {
	tmpl, err := template.New("index.html.tmpl").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).ParseFS(assets, "assets/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	p := page{Content: c, AboutHTML: Markdown(c.About.Body), Opts: opts}
	for _, pr := range c.Projects {
		p.Projects = append(p.Projects, projectView{Project: pr, DescriptionHTML: Markdown(pr.Description)})
	}
	for _, ex := range c.Experience {
		p.Experience = append(p.Experience, experienceView{Experience: ex, DescriptionHTML: Markdown(ex.Description)})
	}

	return &Renderer{tmpl: tmpl, page: p}, nil
}

// Render writes the page to w.
func (r *Renderer) Render(w io.Writer) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, r.page); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
