package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textBlock(level int, text string) Block {
	return Block{
		ID:        "t",
		Type:      BlockText,
		Content:   text,
		Text:      &TextMetadata{HeadingLevel: level},
		Affiliate: AffiliateLink{Kind: LinkNone},
	}
}

func TestRenderTextLevels(t *testing.T) {
	tests := []struct {
		level    int
		wantKind NodeKind
		wantRank int
	}{
		{0, NodeParagraph, 0},
		{1, NodeHeading, 1},
		{2, NodeHeading, 2},
		{3, NodeHeading, 3},
	}
	for _, tt := range tests {
		node := Render(textBlock(tt.level, "hello"))
		assert.Equal(t, tt.wantKind, node.Kind)
		assert.Equal(t, tt.wantRank, node.Level)
		assert.Equal(t, "hello", node.Text)
	}
}

func TestRenderImageEmptyContentIsPlaceholder(t *testing.T) {
	b := Block{ID: "i", Type: BlockImage, Image: &ImageMetadata{Size: SizeLarge}}
	node := Render(b)
	assert.Equal(t, NodeImagePlaceholder, node.Kind)
}

func TestRenderImageSizes(t *testing.T) {
	b := Block{
		ID:      "i",
		Type:    BlockImage,
		Content: "https://cdn/x.png",
		Image:   &ImageMetadata{Size: SizeCustom, Width: 320, Height: 200, Alt: "x"},
	}
	node := Render(b)
	require.Equal(t, NodeImage, node.Kind)
	assert.Equal(t, SizeCustom, node.Size)
	assert.Equal(t, 320, node.Width)
	assert.Equal(t, 200, node.Height)
	assert.Equal(t, "x", node.Alt)

	b.Image = &ImageMetadata{Size: SizeLarge, Width: 320}
	node = Render(b)
	assert.Equal(t, SizeLarge, node.Size)
	assert.Zero(t, node.Width, "pixel size applies only to custom")
}

func TestRenderBlockLinkWrapsNode(t *testing.T) {
	b := textBlock(2, "deal of the day")
	b.Affiliate = AffiliateLink{Kind: LinkCustom, Name: "shop", URL: "https://shop.example.com"}

	node := Render(b)
	require.Equal(t, NodeLink, node.Kind)
	assert.Equal(t, "https://shop.example.com", node.URL)
	require.Len(t, node.Children, 1)
	assert.Equal(t, NodeHeading, node.Children[0].Kind)
}

func TestRenderDanglingCustomLinkNotWrapped(t *testing.T) {
	b := textBlock(0, "plain")
	b.Affiliate = AffiliateLink{Kind: LinkCustom, Name: "no url"}
	node := Render(b)
	assert.Equal(t, NodeParagraph, node.Kind)
}

func TestRenderItemLinkWinsOverBlockLink(t *testing.T) {
	b := Block{
		ID:        "l",
		Type:      BlockUnorderedList,
		Affiliate: AffiliateLink{Kind: LinkCustom, URL: "https://block.example.com"},
		ListItems: []ListItem{
			{ID: "a", Type: ItemText, Content: "own link",
				Affiliate: AffiliateLink{Kind: LinkCustom, URL: "https://item.example.com"}},
			{ID: "b", Type: ItemText, Content: "fallback",
				Affiliate: AffiliateLink{Kind: LinkNone}},
		},
	}
	node := Render(b)
	require.Equal(t, NodeList, node.Kind)
	require.Len(t, node.Children, 2)

	first := node.Children[0].Children[0]
	require.Equal(t, NodeLink, first.Kind)
	assert.Equal(t, "https://item.example.com", first.URL, "item link wins")

	second := node.Children[1].Children[0]
	require.Equal(t, NodeLink, second.Kind)
	assert.Equal(t, "https://block.example.com", second.URL, "block link is the fallback")
}

func TestRenderNestedListHonorsDeclaredKind(t *testing.T) {
	b := Block{
		ID:   "l",
		Type: BlockUnorderedList,
		ListItems: []ListItem{{
			ID: "a", Type: ItemText, Content: "top",
			Nested: &NestedList{Kind: BlockOrderedList, Items: []ListItem{
				{ID: "n", Type: ItemText, Content: "numbered"},
			}},
		}},
	}
	node := Render(b)
	assert.False(t, node.Ordered)
	item := node.Children[0]
	require.Len(t, item.Children, 2, "content plus nested list")
	nested := item.Children[1]
	assert.Equal(t, NodeList, nested.Kind)
	assert.True(t, nested.Ordered)
}

func TestRenderEmptyNestedListOmitted(t *testing.T) {
	b := Block{
		ID:   "l",
		Type: BlockUnorderedList,
		ListItems: []ListItem{{
			ID: "a", Type: ItemText, Content: "top",
			Nested: &NestedList{Kind: BlockUnorderedList, Items: []ListItem{}},
		}},
	}
	node := Render(b)
	assert.Len(t, node.Children[0].Children, 1, "empty nested list is not rendered")
}

func TestRenderIsPureAndDeterministic(t *testing.T) {
	b := Block{
		ID: "l", Type: BlockOrderedList,
		Affiliate: AffiliateLink{Kind: LinkCustom, URL: "https://b.example.com"},
		ListItems: []ListItem{{ID: "a", Type: ItemText, Content: "x"}},
	}
	before := b.ListItems[0]
	first := Render(b)
	second := Render(b)
	assert.Equal(t, first, second)
	assert.Equal(t, before, b.ListItems[0], "rendering does not mutate the block")
}

func TestRenderHTMLModes(t *testing.T) {
	blocks := []Block{textBlock(0, "a **bold** and *sly* <u>move</u>")}

	plain := RenderHTML(blocks, RenderPlain)
	assert.Contains(t, plain, "**bold**", "plain mode leaves markers verbatim")
	assert.NotContains(t, plain, "<strong>")

	rich := RenderHTML(blocks, RenderRich)
	assert.Contains(t, rich, "<strong>bold</strong>")
	assert.Contains(t, rich, "<em>sly</em>")
	assert.Contains(t, rich, "<u>move</u>")
}

func TestRenderHTMLHeadingsAndImages(t *testing.T) {
	blocks := []Block{
		textBlock(2, "Section"),
		{ID: "i", Type: BlockImage, Content: "https://cdn/x.png",
			Image: &ImageMetadata{Size: SizeSmall, Alt: "pic"}},
		{ID: "p", Type: BlockImage, Image: &ImageMetadata{Size: SizeMedium}},
	}
	out := RenderHTML(blocks, RenderRich)
	assert.Contains(t, out, "<h2>Section</h2>")
	assert.Contains(t, out, `src="https://cdn/x.png"`)
	assert.Contains(t, out, `class="img-small"`)
	assert.Contains(t, out, `alt="pic"`)
	assert.Contains(t, out, "image-placeholder")
}

func TestRenderHTMLLinkOpensNewTab(t *testing.T) {
	b := textBlock(0, "shop")
	b.Affiliate = AffiliateLink{Kind: LinkCustom, URL: "https://shop.example.com"}
	out := RenderHTML([]Block{b}, RenderRich)
	assert.Contains(t, out, `href="https://shop.example.com"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noopener")
	assert.Contains(t, out, "noreferrer")
}

func TestRenderHTMLSanitizesScripts(t *testing.T) {
	blocks := []Block{textBlock(0, `<script>alert(1)</script>`)}
	out := RenderHTML(blocks, RenderRich)
	assert.NotContains(t, out, "<script>")

	// A hostile image URL must not break out of the src attribute.
	img := Block{ID: "i", Type: BlockImage, Content: `https://cdn/x.png" onerror="alert(1)`}
	out = RenderHTML([]Block{img}, RenderRich)
	assert.NotContains(t, out, `onerror="alert`)
}

func TestRenderHTMLEmptyDocument(t *testing.T) {
	assert.Empty(t, strings.TrimSpace(RenderHTML(nil, RenderRich)))
}
