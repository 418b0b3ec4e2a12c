package markdown

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// styledNodeRenderer overrides goldmark's HTML output for the constructs in
// its style table. It is registered ahead of the default renderer.
type styledNodeRenderer struct {
	html.Config
	styles StyleTable
}

func newStyledNodeRenderer(styles StyleTable) *styledNodeRenderer {
	return &styledNodeRenderer{Config: html.NewConfig(), styles: styles}
}

// SetOption forwards renderer options such as hard wraps and XHTML.
func (r *styledNodeRenderer) SetOption(name renderer.OptionName, value any) {
	r.Config.SetOption(name, value)
}

func (r *styledNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

func (r *styledNodeRenderer) open(w util.BufWriter, style Style) {
	_, _ = w.WriteString("<" + style.Tag)
	if style.Class != "" {
		_, _ = w.WriteString(` class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(style.Class)))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
}

func (r *styledNodeRenderer) close(w util.BufWriter, style Style) {
	_, _ = w.WriteString("</" + style.Tag + ">")
}

func (r *styledNodeRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	style, ok := r.styles.lookup(headingConstruct(n.Level))
	if !ok {
		style = Style{Tag: fmt.Sprintf("h%d", n.Level)}
	}
	if entering {
		r.open(w, style)
	} else {
		r.close(w, style)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func headingConstruct(level int) Construct {
	switch level {
	case 1:
		return Heading1
	case 2:
		return Heading2
	case 3:
		return Heading3
	default:
		return ""
	}
}

func (r *styledNodeRenderer) renderParagraph(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	style, ok := r.styles.lookup(Paragraph)
	if !ok {
		style = Style{Tag: "p"}
	}
	if entering {
		r.open(w, style)
	} else {
		r.close(w, style)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *styledNodeRenderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	construct, fallback := UnorderedList, Style{Tag: "ul"}
	if n.IsOrdered() {
		construct, fallback = OrderedList, Style{Tag: "ol"}
	}
	style, ok := r.styles.lookup(construct)
	if !ok {
		style = fallback
	}
	if !entering {
		r.close(w, style)
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<" + style.Tag)
	if n.IsOrdered() && n.Start != 1 {
		_, _ = fmt.Fprintf(w, ` start="%d"`, n.Start)
	}
	if style.Class != "" {
		_, _ = w.WriteString(` class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(style.Class)))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(">\n")
	return ast.WalkContinue, nil
}

func (r *styledNodeRenderer) renderListItem(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	style, ok := r.styles.lookup(ListItem)
	if !ok {
		style = Style{Tag: "li"}
	}
	if !entering {
		r.close(w, style)
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}
	r.open(w, style)
	if fc := node.FirstChild(); fc != nil {
		if _, tight := fc.(*ast.TextBlock); !tight {
			_ = w.WriteByte('\n')
		}
	}
	return ast.WalkContinue, nil
}

func (r *styledNodeRenderer) renderEmphasis(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Emphasis)
	construct, fallback := Emphasis, Style{Tag: "em"}
	if n.Level == 2 {
		construct, fallback = Strong, Style{Tag: "strong"}
	}
	style, ok := r.styles.lookup(construct)
	if !ok {
		style = fallback
	}
	if entering {
		r.open(w, style)
	} else {
		r.close(w, style)
	}
	return ast.WalkContinue, nil
}

func (r *styledNodeRenderer) renderBlockquote(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	style, ok := r.styles.lookup(Blockquote)
	if !ok {
		style = Style{Tag: "blockquote"}
	}
	if entering {
		r.open(w, style)
		_ = w.WriteByte('\n')
	} else {
		r.close(w, style)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *styledNodeRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	style, ok := r.styles.lookup(InlineCode)
	if !ok {
		style = Style{Tag: "code"}
	}
	if !entering {
		r.close(w, style)
		return ast.WalkContinue, nil
	}
	r.open(w, style)
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(source)
		case *ast.String:
			value = t.Value
		default:
			continue
		}
		if len(value) > 0 && value[len(value)-1] == '\n' {
			r.Writer.RawWrite(w, value[:len(value)-1])
			r.Writer.RawWrite(w, []byte(" "))
			continue
		}
		r.Writer.RawWrite(w, value)
	}
	return ast.WalkSkipChildren, nil
}

func (r *styledNodeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	r.writeCodeBlock(w, source, n, n.Language(source))
	return ast.WalkSkipChildren, nil
}

func (r *styledNodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	r.writeCodeBlock(w, source, node, nil)
	return ast.WalkSkipChildren, nil
}

func (r *styledNodeRenderer) writeCodeBlock(w util.BufWriter, source []byte, node ast.Node, language []byte) {
	style, ok := r.styles.lookup(CodeBlock)
	if !ok {
		style = Style{Tag: "pre"}
	}
	r.open(w, style)
	_, _ = w.WriteString("<code")
	if len(language) > 0 {
		_, _ = w.WriteString(` class="language-`)
		r.Writer.Write(w, language)
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.Writer.RawWrite(w, line.Value(source))
	}
	_, _ = w.WriteString("</code>")
	r.close(w, style)
	_ = w.WriteByte('\n')
}
