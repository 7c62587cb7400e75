package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Parser renders content bodies to HTML. Front matter is stripped from the
// output and can be decoded into a typed struct.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Parse renders a markdown fragment without front matter.
func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render converts source to HTML and decodes its front matter into meta.
// A document without front matter leaves meta untouched.
func (p *Parser) Render(source []byte, meta any) ([]byte, error) {
	context := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert(source, &buf, parser.WithContext(context))
	if err != nil {
		return nil, err
	}

	data := frontmatter.Get(context)
	if data != nil && meta != nil {
		err = data.Decode(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to decode front matter: %w", err)
		}
	}

	return buf.Bytes(), nil
}
