package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	d := New(CreatePolicy)
	d.UpdateBlock(d.Blocks()[0].ID, BlockPatch{Content: Ptr("Welcome **back**")})

	imgID := d.AddBlock(BlockImage)
	d.UpdateBlock(imgID, BlockPatch{
		Content: Ptr("https://cdn.example.com/hero.png"),
		Size:    Ptr(SizeCustom),
		Width:   Ptr(640),
		Height:  Ptr(360),
		Alt:     Ptr("hero"),
	})

	ulID := d.AddBlock(BlockUnorderedList)
	top := d.Block(ulID).ListItems[0].ID
	d.UpdateListItem(ulID, top, "", ItemPatch{
		Content:   Ptr("first"),
		Affiliate: Ptr(AffiliateLink{Kind: LinkCustom, Name: "deal", URL: "https://shop.example.com"}),
	})
	nested := d.AddListItem(ulID, top)
	d.UpdateListItem(ulID, nested, top, ItemPatch{Content: Ptr("inside")})

	olID := d.AddBlock(BlockOrderedList)
	d.UpdateBlock(olID, BlockPatch{
		Affiliate: Ptr(AffiliateLink{Kind: LinkCustom, URL: "https://block.example.com"}),
	})

	raw, err := d.Serialize()
	require.NoError(t, err)

	parsed, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, d.Blocks(), parsed, "round trip preserves structure, order and ids")
}

func TestSerializeBlockNoMatchesPosition(t *testing.T) {
	d := New(CreatePolicy)
	d.AddBlock(BlockImage)
	d.AddBlock(BlockText)

	raw, err := d.Serialize()
	require.NoError(t, err)

	var wire []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))
	require.Len(t, wire, 3)
	for i, w := range wire {
		assert.EqualValues(t, i+1, w["blockNo"])
	}
}

func TestParseIgnoresStoredBlockNo(t *testing.T) {
	// Array order is authoritative; blockNo is informational only.
	payload := `[
		{"id":"b","blockNo":99,"type":"text","content":"second","affiliateLink":{"type":null}},
		{"id":"a","blockNo":1,"type":"text","content":"third","affiliateLink":{"type":null}}
	]`
	blocks, err := Parse(payload)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "second", blocks[0].Content)
	assert.Equal(t, "third", blocks[1].Content)
}

func TestSerializeNormalizesDanglingCustomLink(t *testing.T) {
	d := New(CreatePolicy)
	id := d.Blocks()[0].ID
	// Stale UI state: custom kind with a display name but no URL.
	d.UpdateBlock(id, BlockPatch{
		Affiliate: Ptr(AffiliateLink{Kind: LinkCustom, Name: "stale name"}),
	})

	raw, err := d.Serialize()
	require.NoError(t, err)

	var wire []struct {
		AffiliateLink struct {
			Type *string `json:"type"`
			Name string  `json:"name"`
			URL  string  `json:"url"`
		} `json:"affiliateLink"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))
	require.Len(t, wire, 1)
	assert.Nil(t, wire[0].AffiliateLink.Type, "dangling custom link persists as none")
	assert.Empty(t, wire[0].AffiliateLink.Name)
	assert.Empty(t, wire[0].AffiliateLink.URL)
}

func TestParseFillsMissingFields(t *testing.T) {
	blocks, err := Parse(`[{"type":"text","content":"hi"}]`)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.NotEmpty(t, b.ID, "missing id is generated")
	assert.Equal(t, LinkNone, b.Affiliate.Kind)
	require.NotNil(t, b.Text)
	assert.Equal(t, 0, b.Text.HeadingLevel)
	assert.Equal(t, "hi", b.Content)
}

func TestParseFillsListDefaults(t *testing.T) {
	blocks, err := Parse(`[{"id":"l1","type":"ul","content":""}]`)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.NotNil(t, blocks[0].ListItems, "missing listItems defaults to empty, not nil")
	assert.Empty(t, blocks[0].ListItems)

	blocks, err = Parse(`[{"id":"l2","type":"ol","listItems":[{"content":"a"}]}]`)
	require.NoError(t, err)
	require.Len(t, blocks[0].ListItems, 1)
	item := blocks[0].ListItems[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, ItemText, item.Type)
	assert.Equal(t, LinkNone, item.Affiliate.Kind)
}

func TestParsePreservesDeepNesting(t *testing.T) {
	// Depth beyond one level is never produced by the editor but must
	// survive a round trip untouched.
	payload := `[{"id":"l","type":"ul","listItems":[
		{"id":"i1","type":"text","content":"top","affiliateLink":{"type":null},
		 "nestedList":{"type":"ol","items":[
			{"id":"i2","type":"text","content":"mid","affiliateLink":{"type":null},
			 "nestedList":{"type":"ul","items":[
				{"id":"i3","type":"text","content":"deep","affiliateLink":{"type":null}}
			 ]}}
		 ]}}
	],"affiliateLink":{"type":null}}]`

	blocks, err := Parse(payload)
	require.NoError(t, err)
	d := FromBlocks(blocks, EditPolicy)
	raw, err := d.Serialize()
	require.NoError(t, err)
	again, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, blocks, again)

	mid := blocks[0].ListItems[0].Nested.Items[0]
	require.NotNil(t, mid.Nested)
	assert.Equal(t, "deep", mid.Nested.Items[0].Content)
}

func TestParsePreservesReservedAffiliateKind(t *testing.T) {
	payload := `[{"id":"b","type":"text","content":"x",
		"affiliateLink":{"type":"affiliate","name":"catalog","url":"https://aff.example.com"}}]`
	blocks, err := Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, LinkAffiliate, blocks[0].Affiliate.Kind)
	assert.Equal(t, "catalog", blocks[0].Affiliate.Name)
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "not json"},
		{"json object", `{"type":"text"}`},
		{"json null", "null"},
		{"truncated array", `[{"type":"text"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.payload)
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseFailureFallbackDocument(t *testing.T) {
	_, err := Parse("not json")
	require.Error(t, err)

	// Caller-level fallback: a fresh document with exactly one empty
	// paragraph block.
	d := New(EditPolicy)
	require.Equal(t, 1, d.Len())
	b := d.Blocks()[0]
	assert.Equal(t, BlockText, b.Type)
	assert.Empty(t, b.Content)
	assert.Equal(t, 0, b.Text.HeadingLevel)
}

// The end-to-end authoring scenario: default document, an image block,
// a list with two items, serialized to a 3-element array.
func TestAuthoringScenario(t *testing.T) {
	d := New(CreatePolicy)

	imgID := d.AddBlock(BlockImage)
	d.UpdateBlock(imgID, BlockPatch{
		Content: Ptr("https://x/y.png"),
		Size:    Ptr(SizeLarge),
		Alt:     Ptr("cat"),
	})

	ulID := d.AddBlock(BlockUnorderedList)
	second := d.AddListItem(ulID, "")
	d.UpdateListItem(ulID, second, "", ItemPatch{Content: Ptr("second")})

	raw, err := d.Serialize()
	require.NoError(t, err)

	var wire []struct {
		BlockNo  int    `json:"blockNo"`
		Type     string `json:"type"`
		Content  string `json:"content"`
		Metadata struct {
			HeadingLevel *int   `json:"headingLevel"`
			Size         string `json:"size"`
			Alt          string `json:"alt"`
		} `json:"metadata"`
		ListItems []struct {
			Content string `json:"content"`
		} `json:"listItems"`
		AffiliateLink struct {
			Type *string `json:"type"`
		} `json:"affiliateLink"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))
	require.Len(t, wire, 3)

	assert.Equal(t, "text", wire[0].Type)
	assert.Empty(t, wire[0].Content)
	require.NotNil(t, wire[0].Metadata.HeadingLevel)
	assert.Equal(t, 1, *wire[0].Metadata.HeadingLevel)

	assert.Equal(t, "image", wire[1].Type)
	assert.Equal(t, "https://x/y.png", wire[1].Content)
	assert.Equal(t, "large", wire[1].Metadata.Size)
	assert.Equal(t, "cat", wire[1].Metadata.Alt)

	assert.Equal(t, "ul", wire[2].Type)
	require.Len(t, wire[2].ListItems, 2)
	assert.Empty(t, wire[2].ListItems[0].Content)
	assert.Equal(t, "second", wire[2].ListItems[1].Content)

	for i, w := range wire {
		assert.Equal(t, i+1, w.BlockNo)
		assert.Nil(t, w.AffiliateLink.Type, "every block serializes with no link")
	}
}
