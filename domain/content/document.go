package content

import "github.com/google/uuid"

// HeadingPolicy sets the default heading level given to new text
// blocks: First applies when the document is empty, Next to every text
// block added after that.
type HeadingPolicy struct {
	First int
	Next  int
}

var (
	// CreatePolicy is the new-post authoring default: the opening
	// block is a level-1 heading, later text blocks level 3.
	CreatePolicy = HeadingPolicy{First: 1, Next: 3}

	// EditPolicy is the edit-flow default: plain paragraphs.
	EditPolicy = HeadingPolicy{First: 0, Next: 0}
)

// Direction is the direction of a block move.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Document holds the ordered block list for a single post body. It is
// owned by one editor at a time and is not safe for concurrent use.
//
// Mutation operations addressed at an unknown block or item id are
// silent no-ops so the document stays safe to call from stale UI event
// handlers; only Serialize and Parse report errors.
type Document struct {
	blocks []Block
	policy HeadingPolicy
}

// New creates a document seeded with one empty text block whose
// heading level follows the policy's First default.
func New(policy HeadingPolicy) *Document {
	d := &Document{policy: policy}
	d.AddBlock(BlockText)
	return d
}

// FromBlocks wraps an already-parsed block list, typically the result
// of Parse when editing an existing post.
func FromBlocks(blocks []Block, policy HeadingPolicy) *Document {
	return &Document{blocks: blocks, policy: policy}
}

// Len returns the number of blocks.
func (d *Document) Len() int { return len(d.blocks) }

// Blocks returns the ordered block list. The slice is the document's
// backing storage; callers must not modify it.
func (d *Document) Blocks() []Block { return d.blocks }

// Block returns the block with the given id, or nil.
func (d *Document) Block(id string) *Block {
	if i := d.indexOf(id); i >= 0 {
		return &d.blocks[i]
	}
	return nil
}

func (d *Document) indexOf(id string) int {
	for i := range d.blocks {
		if d.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// AddBlock appends a new block of the given type with type-appropriate
// defaults and returns its id. List blocks are seeded with a single
// empty text item so a list is never presented without items.
func (d *Document) AddBlock(t BlockType) string {
	b := Block{
		ID:        uuid.NewString(),
		Type:      t,
		Affiliate: AffiliateLink{Kind: LinkNone},
	}
	switch {
	case t == BlockText:
		level := d.policy.Next
		if len(d.blocks) == 0 {
			level = d.policy.First
		}
		b.Text = &TextMetadata{HeadingLevel: level}
	case t == BlockImage:
		b.Image = &ImageMetadata{Size: SizeMedium}
	case t.IsList():
		b.ListItems = []ListItem{newTextItem()}
	}
	d.blocks = append(d.blocks, b)
	return b.ID
}

func newTextItem() ListItem {
	return ListItem{
		ID:        uuid.NewString(),
		Type:      ItemText,
		Affiliate: AffiliateLink{Kind: LinkNone},
	}
}

// BlockPatch carries partial block updates. Nil fields are left
// untouched, so editing one metadata field never clobbers its
// siblings.
type BlockPatch struct {
	Content *string

	// Text metadata. HeadingLevel outside 0..3 is ignored.
	HeadingLevel *int
	Bold         *bool
	Italic       *bool
	Underline    *bool

	// Image metadata. Negative Width/Height are ignored.
	Size   *ImageSize
	Width  *int
	Height *int
	Alt    *string

	Affiliate *AffiliateLink
}

// UpdateBlock merges the patch into the block with the given id.
// Unknown ids are a no-op. Metadata fields are merged per field, never
// replaced wholesale.
func (d *Document) UpdateBlock(id string, patch BlockPatch) {
	b := d.Block(id)
	if b == nil {
		return
	}
	if patch.Content != nil {
		b.Content = *patch.Content
	}
	if b.Type == BlockText {
		if b.Text == nil {
			b.Text = &TextMetadata{}
		}
		if patch.HeadingLevel != nil && *patch.HeadingLevel >= 0 && *patch.HeadingLevel <= 3 {
			b.Text.HeadingLevel = *patch.HeadingLevel
		}
		if patch.Bold != nil {
			b.Text.Bold = *patch.Bold
		}
		if patch.Italic != nil {
			b.Text.Italic = *patch.Italic
		}
		if patch.Underline != nil {
			b.Text.Underline = *patch.Underline
		}
	}
	if b.Type == BlockImage {
		if b.Image == nil {
			b.Image = &ImageMetadata{Size: SizeMedium}
		}
		mergeImageMeta(b.Image, patch)
	}
	if patch.Affiliate != nil {
		b.Affiliate = *patch.Affiliate
	}
}

func mergeImageMeta(m *ImageMetadata, patch BlockPatch) {
	if patch.Size != nil {
		m.Size = *patch.Size
	}
	if patch.Width != nil && *patch.Width >= 0 {
		m.Width = *patch.Width
	}
	if patch.Height != nil && *patch.Height >= 0 {
		m.Height = *patch.Height
	}
	if patch.Alt != nil {
		m.Alt = *patch.Alt
	}
}

// RemoveBlock deletes the block with the given id. A document may
// legitimately end up with zero blocks; the renderer shows the empty
// state, nothing is reseeded here.
func (d *Document) RemoveBlock(id string) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}
	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
}

// MoveBlock swaps the block with its neighbor in the given direction.
// Moving the first block up or the last block down is a no-op.
func (d *Document) MoveBlock(id string, dir Direction) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}
	switch dir {
	case MoveUp:
		if i == 0 {
			return
		}
		d.blocks[i-1], d.blocks[i] = d.blocks[i], d.blocks[i-1]
	case MoveDown:
		if i == len(d.blocks)-1 {
			return
		}
		d.blocks[i], d.blocks[i+1] = d.blocks[i+1], d.blocks[i]
	}
}

// AddListItem appends a new empty text item to the block's top-level
// items, or, when parentItemID is non-empty, to that item's nested
// list. The nested list container is created on demand and inherits
// the owning block's list kind. Returns the new item's id, or "" when
// the block or parent item cannot be found.
func (d *Document) AddListItem(blockID, parentItemID string) string {
	b := d.Block(blockID)
	if b == nil || !b.Type.IsList() {
		return ""
	}
	item := newTextItem()
	if parentItemID == "" {
		b.ListItems = append(b.ListItems, item)
		return item.ID
	}
	parent := findItem(b.ListItems, parentItemID)
	if parent == nil {
		return ""
	}
	if parent.Nested == nil {
		parent.Nested = &NestedList{Kind: b.Type}
	}
	parent.Nested.Items = append(parent.Nested.Items, item)
	return item.ID
}

func findItem(items []ListItem, id string) *ListItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// ItemPatch carries partial list-item updates; nil fields are left
// untouched.
type ItemPatch struct {
	Type    *ItemType
	Content *string

	// Image metadata for image items.
	Size   *ImageSize
	Width  *int
	Height *int
	Alt    *string

	Affiliate *AffiliateLink
}

// UpdateListItem merges the patch into the matching item. With an
// empty parentItemID the block's top-level items are searched,
// otherwise one level of the parent's nested list. Unknown ids are a
// no-op.
func (d *Document) UpdateListItem(blockID, itemID, parentItemID string, patch ItemPatch) {
	item := d.findListItem(blockID, itemID, parentItemID)
	if item == nil {
		return
	}
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.Content != nil {
		item.Content = *patch.Content
	}
	if patch.Size != nil || patch.Width != nil || patch.Height != nil || patch.Alt != nil {
		if item.Image == nil {
			item.Image = &ImageMetadata{Size: SizeMedium}
		}
		mergeImageMeta(item.Image, BlockPatch{
			Size:   patch.Size,
			Width:  patch.Width,
			Height: patch.Height,
			Alt:    patch.Alt,
		})
	}
	if patch.Affiliate != nil {
		item.Affiliate = *patch.Affiliate
	}
}

func (d *Document) findListItem(blockID, itemID, parentItemID string) *ListItem {
	b := d.Block(blockID)
	if b == nil || !b.Type.IsList() {
		return nil
	}
	if parentItemID == "" {
		return findItem(b.ListItems, itemID)
	}
	parent := findItem(b.ListItems, parentItemID)
	if parent == nil || parent.Nested == nil {
		return nil
	}
	return findItem(parent.Nested.Items, itemID)
}

// RemoveListItem removes the matching item. Removing the last
// top-level item reseeds a single empty text item so the list is never
// visually empty; an emptied nested list is left empty and simply not
// rendered.
func (d *Document) RemoveListItem(blockID, itemID, parentItemID string) {
	b := d.Block(blockID)
	if b == nil || !b.Type.IsList() {
		return
	}
	if parentItemID == "" {
		b.ListItems = removeItem(b.ListItems, itemID)
		if len(b.ListItems) == 0 {
			b.ListItems = []ListItem{newTextItem()}
		}
		return
	}
	parent := findItem(b.ListItems, parentItemID)
	if parent == nil || parent.Nested == nil {
		return
	}
	parent.Nested.Items = removeItem(parent.Nested.Items, itemID)
}

func removeItem(items []ListItem, id string) []ListItem {
	for i := range items {
		if items[i].ID == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
