// Package markdown renders report Markdown to HTML and extracts its heading
// outline for navigation.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// Heading is one entry of a document outline.
type Heading struct {
	Level int    // Markdown heading level (1-6)
	Title string // Heading text
	ID    string // Auto-generated anchor ID
	Path  string // Hierarchy: "# Report > ## Papers"
}

// Renderer converts Markdown with GitHub extensions (tables, strikethrough,
// autolinks) and auto-generated heading IDs.
type Renderer struct {
	md       goldmark.Markdown
	maxDepth int
}

// NewRenderer creates a renderer whose outline includes headings up to maxDepth.
// A maxDepth below 1 defaults to 3.
func NewRenderer(maxDepth int) *Renderer {
	if maxDepth < 1 {
		maxDepth = 3
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Renderer{md: md, maxDepth: maxDepth}
}

// ToHTML renders source to an HTML fragment.
func (r *Renderer) ToHTML(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Outline returns the document's headings in order, each with its ancestor path.
func (r *Renderer) Outline(source []byte) ([]Heading, error) {
	doc := r.md.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(1),
		toc.MaxDepth(r.maxDepth),
		toc.Compact(true),
	)
	if err != nil {
		return nil, fmt.Errorf("inspect TOC: %w", err)
	}

	var headings []Heading
	collect(doc, tree.Items, nil, &headings)
	return headings, nil
}

// Document renders source as a standalone HTML page with a navigation
// outline ahead of the content.
func (r *Renderer) Document(title string, source []byte) ([]byte, error) {
	body, err := r.ToHTML(source)
	if err != nil {
		return nil, err
	}
	outline, err := r.Outline(source)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("<style>body{font-family:sans-serif;max-width:60rem;margin:2rem auto;padding:0 1rem}" +
		"table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:.25rem .5rem}" +
		"nav ul{list-style:none;padding-left:0}</style>\n")
	buf.WriteString("</head>\n<body>\n")

	if len(outline) > 0 {
		buf.WriteString("<nav>\n<ul>\n")
		for _, h := range outline {
			fmt.Fprintf(&buf, "<li style=\"margin-left:%drem\"><a href=\"#%s\">%s</a></li>\n",
				h.Level-1, html.EscapeString(h.ID), html.EscapeString(h.Title))
		}
		buf.WriteString("</ul>\n</nav>\n")
	}

	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// collect walks TOC items depth-first, recording each heading with its path.
func collect(doc ast.Node, items toc.Items, ancestors []string, out *[]Heading) {
	for _, item := range items {
		title := string(item.Title)
		id := string(item.ID)

		level := len(ancestors) + 1
		if node := findHeaderByID(doc, id); node != nil {
			level = node.(*ast.Heading).Level
		}

		path := append(append([]string(nil), ancestors...), strings.Repeat("#", level)+" "+title)
		*out = append(*out, Heading{
			Level: level,
			Title: title,
			ID:    id,
			Path:  strings.Join(path, " > "),
		})

		if len(item.Items) > 0 {
			collect(doc, item.Items, path, out)
		}
	}
}

// findHeaderByID locates a heading node by its auto-generated ID.
func findHeaderByID(node ast.Node, id string) ast.Node {
	if id == "" {
		return nil
	}
	var found ast.Node
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			headingID, ok := n.AttributeString("id")
			if ok {
				if b, isBytes := headingID.([]byte); isBytes && string(b) == id {
					found = n
					return ast.WalkStop, nil
				}
			}
		}
		return ast.WalkContinue, nil
	})
	return found
}
