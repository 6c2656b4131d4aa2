package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsSingleTextBlock(t *testing.T) {
	tests := []struct {
		name      string
		policy    HeadingPolicy
		wantLevel int
	}{
		{"create flow opens with a heading", CreatePolicy, 1},
		{"edit flow opens with a paragraph", EditPolicy, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.policy)
			require.Equal(t, 1, d.Len())
			b := d.Blocks()[0]
			assert.Equal(t, BlockText, b.Type)
			assert.Empty(t, b.Content)
			assert.NotEmpty(t, b.ID)
			require.NotNil(t, b.Text)
			assert.Equal(t, tt.wantLevel, b.Text.HeadingLevel)
			assert.Equal(t, LinkNone, b.Affiliate.Kind)
		})
	}
}

func TestAddBlockDefaults(t *testing.T) {
	d := New(CreatePolicy)

	textID := d.AddBlock(BlockText)
	text := d.Block(textID)
	require.NotNil(t, text)
	assert.Equal(t, 3, text.Text.HeadingLevel, "subsequent text blocks use the Next level")

	imgID := d.AddBlock(BlockImage)
	img := d.Block(imgID)
	require.NotNil(t, img)
	require.NotNil(t, img.Image)
	assert.Equal(t, SizeMedium, img.Image.Size)
	assert.Empty(t, img.Content)

	ulID := d.AddBlock(BlockUnorderedList)
	ul := d.Block(ulID)
	require.NotNil(t, ul)
	require.Len(t, ul.ListItems, 1, "lists are seeded with one empty item")
	assert.Equal(t, ItemText, ul.ListItems[0].Type)
	assert.Empty(t, ul.ListItems[0].Content)

	assert.Equal(t, 4, d.Len())
}

func TestBlockIDsUnique(t *testing.T) {
	d := New(CreatePolicy)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[d.AddBlock(BlockText)] = true
	}
	assert.Len(t, seen, 20)
}

func TestUpdateBlockMergesMetadata(t *testing.T) {
	d := New(EditPolicy)
	id := d.AddBlock(BlockImage)
	d.UpdateBlock(id, BlockPatch{
		Content: Ptr("https://cdn.example.com/cat.png"),
		Size:    Ptr(SizeLarge),
		Alt:     Ptr("a cat"),
	})
	// Updating one field must not clobber its siblings.
	d.UpdateBlock(id, BlockPatch{Size: Ptr(SizeSmall)})

	b := d.Block(id)
	require.NotNil(t, b)
	assert.Equal(t, "https://cdn.example.com/cat.png", b.Content)
	assert.Equal(t, SizeSmall, b.Image.Size)
	assert.Equal(t, "a cat", b.Image.Alt)
}

func TestUpdateBlockIgnoresInvalidValues(t *testing.T) {
	d := New(EditPolicy)
	id := d.Blocks()[0].ID
	d.UpdateBlock(id, BlockPatch{HeadingLevel: Ptr(2)})
	d.UpdateBlock(id, BlockPatch{HeadingLevel: Ptr(7)})
	assert.Equal(t, 2, d.Block(id).Text.HeadingLevel, "out-of-range level is dropped")

	imgID := d.AddBlock(BlockImage)
	d.UpdateBlock(imgID, BlockPatch{Size: Ptr(SizeCustom), Width: Ptr(300), Height: Ptr(-5)})
	assert.Equal(t, 300, d.Block(imgID).Image.Width)
	assert.Equal(t, 0, d.Block(imgID).Image.Height, "negative height is dropped")
}

func TestMutationsOnUnknownIDsAreNoOps(t *testing.T) {
	d := New(CreatePolicy)
	before := d.Len()

	d.UpdateBlock("nope", BlockPatch{Content: Ptr("x")})
	d.RemoveBlock("nope")
	d.MoveBlock("nope", MoveUp)
	assert.Equal(t, "", d.AddListItem("nope", ""))
	d.UpdateListItem("nope", "also-nope", "", ItemPatch{Content: Ptr("x")})
	d.RemoveListItem("nope", "also-nope", "")

	assert.Equal(t, before, d.Len())
	assert.Empty(t, d.Blocks()[0].Content)
}

func TestRemoveBlockMayEmptyDocument(t *testing.T) {
	d := New(CreatePolicy)
	d.RemoveBlock(d.Blocks()[0].ID)
	assert.Equal(t, 0, d.Len(), "removing the last block does not reseed")
}

func TestMoveBlock(t *testing.T) {
	d := New(CreatePolicy)
	first := d.Blocks()[0].ID
	second := d.AddBlock(BlockImage)
	third := d.AddBlock(BlockText)

	order := func() []string {
		ids := make([]string, 0, d.Len())
		for _, b := range d.Blocks() {
			ids = append(ids, b.ID)
		}
		return ids
	}

	d.MoveBlock(second, MoveUp)
	assert.Equal(t, []string{second, first, third}, order())

	d.MoveBlock(first, MoveDown)
	assert.Equal(t, []string{second, third, first}, order())

	// Boundary moves are no-ops.
	d.MoveBlock(second, MoveUp)
	assert.Equal(t, []string{second, third, first}, order())
	d.MoveBlock(first, MoveDown)
	assert.Equal(t, []string{second, third, first}, order())
}

func TestListItemLifecycle(t *testing.T) {
	d := New(EditPolicy)
	ulID := d.AddBlock(BlockUnorderedList)
	firstItem := d.Block(ulID).ListItems[0].ID

	secondItem := d.AddListItem(ulID, "")
	require.NotEmpty(t, secondItem)
	d.UpdateListItem(ulID, secondItem, "", ItemPatch{Content: Ptr("second")})

	items := d.Block(ulID).ListItems
	require.Len(t, items, 2)
	assert.Empty(t, items[0].Content)
	assert.Equal(t, "second", items[1].Content)

	d.RemoveListItem(ulID, firstItem, "")
	items = d.Block(ulID).ListItems
	require.Len(t, items, 1)
	assert.Equal(t, "second", items[0].Content)
}

func TestTopLevelRemovalAlwaysReseeds(t *testing.T) {
	d := New(EditPolicy)
	olID := d.AddBlock(BlockOrderedList)
	d.AddListItem(olID, "")
	d.AddListItem(olID, "")

	// Strip the list down repeatedly; it must never reach zero items.
	for i := 0; i < 10; i++ {
		items := d.Block(olID).ListItems
		require.NotEmpty(t, items)
		d.RemoveListItem(olID, items[0].ID, "")
	}
	items := d.Block(olID).ListItems
	require.Len(t, items, 1)
	assert.Equal(t, ItemText, items[0].Type)
	assert.Empty(t, items[0].Content)
}

func TestNestedListItems(t *testing.T) {
	d := New(EditPolicy)
	olID := d.AddBlock(BlockOrderedList)
	parent := d.Block(olID).ListItems[0].ID
	sibling := d.AddListItem(olID, "")

	nested := d.AddListItem(olID, parent)
	require.NotEmpty(t, nested)
	p := d.Block(olID).ListItems[0]
	require.NotNil(t, p.Nested)
	assert.Equal(t, BlockOrderedList, p.Nested.Kind, "nested list inherits the block kind")
	require.Len(t, p.Nested.Items, 1)

	// Scoped update: only the nested item changes.
	d.UpdateListItem(olID, nested, parent, ItemPatch{Content: Ptr("deep")})
	p = d.Block(olID).ListItems[0]
	assert.Equal(t, "deep", p.Nested.Items[0].Content)
	assert.Empty(t, p.Content)
	assert.Empty(t, d.Block(olID).ListItems[1].Content)
	_ = sibling

	// Nested removal may leave the nested list empty, no reseed.
	d.RemoveListItem(olID, nested, parent)
	p = d.Block(olID).ListItems[0]
	assert.Empty(t, p.Nested.Items)
}

func TestNestedUpdateWrongParentIsNoOp(t *testing.T) {
	d := New(EditPolicy)
	ulID := d.AddBlock(BlockUnorderedList)
	parent := d.Block(ulID).ListItems[0].ID
	other := d.AddListItem(ulID, "")
	nested := d.AddListItem(ulID, parent)

	d.UpdateListItem(ulID, nested, other, ItemPatch{Content: Ptr("misdirected")})
	assert.Empty(t, d.Block(ulID).ListItems[0].Nested.Items[0].Content)
}
