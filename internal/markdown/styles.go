package markdown

// Construct names a Markdown construct with a fixed presentation.
type Construct string

const (
	Heading1      Construct = "heading1"
	Heading2      Construct = "heading2"
	Heading3      Construct = "heading3"
	Paragraph     Construct = "paragraph"
	UnorderedList Construct = "unordered_list"
	OrderedList   Construct = "ordered_list"
	ListItem      Construct = "list_item"
	Strong        Construct = "strong"
	Emphasis      Construct = "emphasis"
	Blockquote    Construct = "blockquote"
	InlineCode    Construct = "inline_code"
	CodeBlock     Construct = "code_block"
)

// Style is the element and class a construct renders to.
type Style struct {
	Tag   string
	Class string
}

// StyleTable maps each supported construct to its element. Constructs not in
// the table fall through to goldmark's HTML renderer.
type StyleTable map[Construct]Style

// DefaultStyles is the site's construct-to-style mapping.
func DefaultStyles() StyleTable {
	return StyleTable{
		Heading1:      {Tag: "h1", Class: "text-3xl font-bold text-foreground mt-8 mb-4"},
		Heading2:      {Tag: "h2", Class: "text-2xl font-semibold text-foreground mt-6 mb-3"},
		Heading3:      {Tag: "h3", Class: "text-xl font-semibold text-foreground mt-4 mb-2"},
		Paragraph:     {Tag: "p", Class: "text-muted-foreground leading-relaxed mb-4"},
		UnorderedList: {Tag: "ul", Class: "list-disc list-inside space-y-2 mb-4 text-muted-foreground"},
		OrderedList:   {Tag: "ol", Class: "list-decimal list-inside space-y-2 mb-4 text-muted-foreground"},
		ListItem:      {Tag: "li", Class: "leading-relaxed"},
		Strong:        {Tag: "strong", Class: "font-semibold text-foreground"},
		Emphasis:      {Tag: "em", Class: "italic"},
		Blockquote:    {Tag: "blockquote", Class: "border-l-4 border-primary pl-4 italic text-muted-foreground my-4"},
		InlineCode:    {Tag: "code", Class: "bg-muted px-1.5 py-0.5 rounded text-sm font-mono"},
		CodeBlock:     {Tag: "pre", Class: "bg-muted p-4 rounded-lg overflow-x-auto mb-4 text-sm font-mono"},
	}
}

func (t StyleTable) lookup(c Construct) (Style, bool) {
	style, ok := t[c]
	if !ok || style.Tag == "" {
		return Style{}, false
	}
	return style, true
}

func (t StyleTable) clone() StyleTable {
	out := make(StyleTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
