package content

// NodeKind classifies a node in the rendered tree.
type NodeKind string

const (
	NodeParagraph        NodeKind = "paragraph"
	NodeHeading          NodeKind = "heading"
	NodeImage            NodeKind = "image"
	NodeImagePlaceholder NodeKind = "image_placeholder"
	NodeList             NodeKind = "list"
	NodeListItem         NodeKind = "list_item"
	NodeLink             NodeKind = "link"
)

// RenderNode is one node of the presentational tree produced by
// Render. The tree is independent of the output medium; the HTML
// emitter in this package is one consumer.
type RenderNode struct {
	Kind     NodeKind
	Level    int    // heading rank, 1-3
	Text     string // raw text, inline markers not yet interpreted
	URL      string // image source or link target
	Name     string // link display name
	Alt      string
	Size     ImageSize
	Width    int // applied only for SizeCustom
	Height   int
	Ordered  bool
	Children []RenderNode
}

// Render turns a block into its presentational node. It is a pure
// function of the block: no side effects, deterministic output.
//
// Link precedence for list items: an item's own affiliate link wins;
// the block-level link is the per-item fallback, never applied twice.
// For text and image blocks the block-level link wraps the whole node.
// Nested lists are rendered honoring their declared ordered/unordered
// kind.
func Render(b Block) RenderNode {
	var node RenderNode
	switch {
	case b.Type == BlockText:
		node = renderText(b)
	case b.Type == BlockImage:
		node = renderImage(b)
	case b.Type.IsList():
		// The block link is distributed to items as a fallback, so
		// the list node itself is never link-wrapped.
		return renderList(b)
	default:
		return RenderNode{Kind: NodeParagraph, Text: b.Content}
	}
	return wrapLink(node, b.Affiliate)
}

// RenderAll renders every block in order.
func RenderAll(blocks []Block) []RenderNode {
	out := make([]RenderNode, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, Render(b))
	}
	return out
}

func renderText(b Block) RenderNode {
	level := 0
	if b.Text != nil {
		level = b.Text.HeadingLevel
	}
	if level >= 1 && level <= 3 {
		return RenderNode{Kind: NodeHeading, Level: level, Text: b.Content}
	}
	return RenderNode{Kind: NodeParagraph, Text: b.Content}
}

func renderImage(b Block) RenderNode {
	if b.Content == "" {
		return RenderNode{Kind: NodeImagePlaceholder}
	}
	node := RenderNode{Kind: NodeImage, URL: b.Content, Size: SizeMedium}
	if b.Image != nil {
		node.Alt = b.Image.Alt
		if b.Image.Size != "" {
			node.Size = b.Image.Size
		}
		if b.Image.Size == SizeCustom {
			node.Width = b.Image.Width
			node.Height = b.Image.Height
		}
	}
	return node
}

func renderList(b Block) RenderNode {
	node := RenderNode{
		Kind:    NodeList,
		Ordered: b.Type == BlockOrderedList,
	}
	for _, it := range b.ListItems {
		node.Children = append(node.Children, renderItem(it, b.Affiliate))
	}
	return node
}

func renderItem(it ListItem, blockLink AffiliateLink) RenderNode {
	var inner RenderNode
	switch it.Type {
	case ItemImage:
		inner = renderItemImage(it)
	default:
		inner = RenderNode{Kind: NodeParagraph, Text: it.Content}
	}

	// Item link wins; the block link is only the fallback.
	link := it.Affiliate.normalized()
	if !linkable(link) {
		link = blockLink
	}
	inner = wrapLink(inner, link)

	item := RenderNode{Kind: NodeListItem, Children: []RenderNode{inner}}
	if it.Nested != nil && len(it.Nested.Items) > 0 {
		nested := RenderNode{
			Kind:    NodeList,
			Ordered: it.Nested.Kind == BlockOrderedList,
		}
		for _, sub := range it.Nested.Items {
			nested.Children = append(nested.Children, renderItem(sub, blockLink))
		}
		item.Children = append(item.Children, nested)
	}
	return item
}

func renderItemImage(it ListItem) RenderNode {
	if it.Content == "" {
		return RenderNode{Kind: NodeImagePlaceholder}
	}
	node := RenderNode{Kind: NodeImage, URL: it.Content, Size: SizeMedium}
	if it.Image != nil {
		node.Alt = it.Image.Alt
		if it.Image.Size != "" {
			node.Size = it.Image.Size
		}
		if it.Image.Size == SizeCustom {
			node.Width = it.Image.Width
			node.Height = it.Image.Height
		}
	}
	return node
}

// linkable reports whether the annotation carries a usable URL. The
// renderer only checks for a non-empty URL; format validation happens
// at input time.
func linkable(link AffiliateLink) bool {
	return link.Kind != LinkNone && link.URL != ""
}

// wrapLink wraps node in a link node when the annotation is usable.
func wrapLink(node RenderNode, link AffiliateLink) RenderNode {
	link = link.normalized()
	if !linkable(link) {
		return node
	}
	return RenderNode{
		Kind:     NodeLink,
		URL:      link.URL,
		Name:     link.Name,
		Children: []RenderNode{node},
	}
}
