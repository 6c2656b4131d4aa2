package content

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// RenderMode selects how block text is emitted. The create-flow
// preview historically showed raw text while the edit preview and the
// public page interpret inline markers; both behaviors are kept.
type RenderMode int

const (
	// RenderPlain emits text verbatim, markers and all.
	RenderPlain RenderMode = iota
	// RenderRich translates **bold**, *italic* and literal <u> spans.
	RenderRich
)

var htmlPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("target", "rel").OnElements("a")
	p.AllowAttrs("class", "width", "height").OnElements("img")
	p.AllowAttrs("class").OnElements("div")
	return p
}()

var (
	boldMarker   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicMarker = regexp.MustCompile(`\*([^*]+)\*`)
)

// RenderHTML renders blocks to sanitized HTML. An empty block list
// yields the empty string; callers show their own "no content" state.
func RenderHTML(blocks []Block, mode RenderMode) string {
	var sb strings.Builder
	for _, node := range RenderAll(blocks) {
		writeNode(&sb, node, mode)
	}
	return htmlPolicy.Sanitize(sb.String())
}

func writeNode(sb *strings.Builder, n RenderNode, mode RenderMode) {
	switch n.Kind {
	case NodeParagraph:
		sb.WriteString("<p>")
		sb.WriteString(inlineText(n.Text, mode))
		sb.WriteString("</p>")
	case NodeHeading:
		fmt.Fprintf(sb, "<h%d>", n.Level)
		sb.WriteString(inlineText(n.Text, mode))
		fmt.Fprintf(sb, "</h%d>", n.Level)
	case NodeImage:
		writeImage(sb, n)
	case NodeImagePlaceholder:
		sb.WriteString(`<div class="image-placeholder"></div>`)
	case NodeList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		sb.WriteString("<" + tag + ">")
		for _, c := range n.Children {
			writeNode(sb, c, mode)
		}
		sb.WriteString("</" + tag + ">")
	case NodeListItem:
		sb.WriteString("<li>")
		for _, c := range n.Children {
			writeNode(sb, c, mode)
		}
		sb.WriteString("</li>")
	case NodeLink:
		fmt.Fprintf(sb, `<a href="%s" target="_blank" rel="noopener noreferrer">`,
			html.EscapeString(n.URL))
		for _, c := range n.Children {
			writeNode(sb, c, mode)
		}
		sb.WriteString("</a>")
	}
}

func writeImage(sb *strings.Builder, n RenderNode) {
	sb.WriteString(`<img src="` + html.EscapeString(n.URL) + `"`)
	if n.Alt != "" {
		sb.WriteString(` alt="` + html.EscapeString(n.Alt) + `"`)
	}
	switch n.Size {
	case SizeSmall:
		sb.WriteString(` class="img-small"`)
	case SizeLarge:
		sb.WriteString(` class="img-large"`)
	case SizeCustom:
		if n.Width > 0 {
			fmt.Fprintf(sb, ` width="%d"`, n.Width)
		}
		if n.Height > 0 {
			fmt.Fprintf(sb, ` height="%d"`, n.Height)
		}
	}
	sb.WriteString("/>")
}

// inlineText escapes text and, in rich mode, translates the inline
// markers. Escaping happens first so only the marker translations
// introduce markup; bold runs before italic so ** pairs are not eaten
// as two italics.
func inlineText(s string, mode RenderMode) string {
	escaped := html.EscapeString(s)
	if mode != RenderRich {
		return escaped
	}
	escaped = boldMarker.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = italicMarker.ReplaceAllString(escaped, "<em>$1</em>")
	escaped = strings.ReplaceAll(escaped, "&lt;u&gt;", "<u>")
	escaped = strings.ReplaceAll(escaped, "&lt;/u&gt;", "</u>")
	return escaped
}
