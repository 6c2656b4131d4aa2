package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseError reports a persisted content payload that could not be
// parsed: malformed JSON or a payload that is not an array of blocks.
// Callers recover by falling back to a fresh single-paragraph document
// rather than failing the whole page.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("content: invalid content format: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Wire shapes. These mirror the persisted JSON exactly and exist only
// at the serialize/parse boundary; the rest of the package works on
// Block/ListItem.

type wireBlock struct {
	ID            string         `json:"id"`
	BlockNo       int            `json:"blockNo"`
	Type          BlockType      `json:"type"`
	Content       string         `json:"content"`
	Metadata      *wireMetadata  `json:"metadata,omitempty"`
	ListItems     []wireListItem `json:"listItems,omitempty"`
	AffiliateLink wireAffiliate  `json:"affiliateLink"`
}

// wireMetadata is the single loose metadata object of the persisted
// form; which fields are meaningful depends on the block type.
type wireMetadata struct {
	HeadingLevel *int       `json:"headingLevel,omitempty"`
	Bold         *bool      `json:"bold,omitempty"`
	Italic       *bool      `json:"italic,omitempty"`
	Underline    *bool      `json:"underline,omitempty"`
	Size         *ImageSize `json:"size,omitempty"`
	Width        *int       `json:"width,omitempty"`
	Height       *int       `json:"height,omitempty"`
	Alt          *string    `json:"alt,omitempty"`
}

type wireListItem struct {
	ID            string          `json:"id"`
	Type          ItemType        `json:"type"`
	Content       string          `json:"content"`
	ImageMetadata *wireMetadata   `json:"imageMetadata,omitempty"`
	NestedList    *wireNestedList `json:"nestedList,omitempty"`
	AffiliateLink wireAffiliate   `json:"affiliateLink"`
}

type wireNestedList struct {
	Type  BlockType      `json:"type"`
	Items []wireListItem `json:"items"`
}

// wireAffiliate uses a nullable type field: null means no link.
type wireAffiliate struct {
	Type *LinkKind `json:"type"`
	Name string    `json:"name,omitempty"`
	URL  string    `json:"url,omitempty"`
}

// Serialize produces the persisted JSON array for the document's
// blocks in their current order. blockNo is recomputed as the 1-based
// position; affiliate links are normalized so a custom link without a
// URL is persisted as no link at all.
func (d *Document) Serialize() (string, error) {
	out := make([]wireBlock, 0, len(d.blocks))
	for i, b := range d.blocks {
		out = append(out, encodeBlock(b, i+1))
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("content: serialize: %w", err)
	}
	return string(raw), nil
}

func encodeBlock(b Block, blockNo int) wireBlock {
	w := wireBlock{
		ID:            b.ID,
		BlockNo:       blockNo,
		Type:          b.Type,
		Content:       b.Content,
		AffiliateLink: encodeAffiliate(b.Affiliate),
	}
	switch {
	case b.Type == BlockText && b.Text != nil:
		w.Metadata = encodeTextMeta(b.Text)
	case b.Type == BlockImage && b.Image != nil:
		w.Metadata = encodeImageMeta(b.Image)
	case b.Type.IsList():
		w.ListItems = encodeItems(b.ListItems)
	}
	return w
}

func encodeTextMeta(m *TextMetadata) *wireMetadata {
	w := &wireMetadata{HeadingLevel: Ptr(m.HeadingLevel)}
	if m.Bold {
		w.Bold = Ptr(true)
	}
	if m.Italic {
		w.Italic = Ptr(true)
	}
	if m.Underline {
		w.Underline = Ptr(true)
	}
	return w
}

func encodeImageMeta(m *ImageMetadata) *wireMetadata {
	w := &wireMetadata{Size: Ptr(m.Size)}
	if m.Size == SizeCustom {
		w.Width = Ptr(m.Width)
		w.Height = Ptr(m.Height)
	}
	if m.Alt != "" {
		w.Alt = Ptr(m.Alt)
	}
	return w
}

func encodeItems(items []ListItem) []wireListItem {
	out := make([]wireListItem, 0, len(items))
	for _, it := range items {
		w := wireListItem{
			ID:            it.ID,
			Type:          it.Type,
			Content:       it.Content,
			AffiliateLink: encodeAffiliate(it.Affiliate),
		}
		if it.Type == ItemImage && it.Image != nil {
			w.ImageMetadata = encodeImageMeta(it.Image)
		}
		if it.Nested != nil {
			w.NestedList = &wireNestedList{
				Type:  it.Nested.Kind,
				Items: encodeItems(it.Nested.Items),
			}
		}
		out = append(out, w)
	}
	return out
}

func encodeAffiliate(l AffiliateLink) wireAffiliate {
	l = l.normalized()
	if l.Kind == LinkNone {
		return wireAffiliate{Type: nil}
	}
	return wireAffiliate{Type: Ptr(l.Kind), Name: l.Name, URL: l.URL}
}

// Parse decodes a persisted content payload into blocks. Array order
// is authoritative; the stored blockNo is informational and ignored.
// Missing ids are generated, missing affiliate links default to none
// and list blocks without items get an empty item list, so documents
// written by older schema versions still load. Malformed JSON or a
// non-array payload fails with *ParseError.
func Parse(payload string) ([]Block, error) {
	if !strings.HasPrefix(strings.TrimSpace(payload), "[") {
		return nil, &ParseError{Err: fmt.Errorf("payload is not an array")}
	}
	var raw []wireBlock
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	blocks := make([]Block, 0, len(raw))
	for _, w := range raw {
		blocks = append(blocks, decodeBlock(w))
	}
	return blocks, nil
}

func decodeBlock(w wireBlock) Block {
	b := Block{
		ID:        w.ID,
		Type:      w.Type,
		Content:   w.Content,
		Affiliate: decodeAffiliate(w.AffiliateLink),
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	switch {
	case b.Type == BlockText:
		b.Text = decodeTextMeta(w.Metadata)
	case b.Type == BlockImage:
		b.Image = decodeImageMeta(w.Metadata)
	case b.Type.IsList():
		b.ListItems = decodeItems(w.ListItems)
		if b.ListItems == nil {
			b.ListItems = []ListItem{}
		}
	}
	return b
}

func decodeTextMeta(w *wireMetadata) *TextMetadata {
	m := &TextMetadata{}
	if w == nil {
		return m
	}
	if w.HeadingLevel != nil && *w.HeadingLevel >= 0 && *w.HeadingLevel <= 3 {
		m.HeadingLevel = *w.HeadingLevel
	}
	if w.Bold != nil {
		m.Bold = *w.Bold
	}
	if w.Italic != nil {
		m.Italic = *w.Italic
	}
	if w.Underline != nil {
		m.Underline = *w.Underline
	}
	return m
}

func decodeImageMeta(w *wireMetadata) *ImageMetadata {
	m := &ImageMetadata{Size: SizeMedium}
	if w == nil {
		return m
	}
	if w.Size != nil && *w.Size != "" {
		m.Size = *w.Size
	}
	if w.Width != nil && *w.Width >= 0 {
		m.Width = *w.Width
	}
	if w.Height != nil && *w.Height >= 0 {
		m.Height = *w.Height
	}
	if w.Alt != nil {
		m.Alt = *w.Alt
	}
	return m
}

func decodeItems(items []wireListItem) []ListItem {
	if items == nil {
		return nil
	}
	out := make([]ListItem, 0, len(items))
	for _, w := range items {
		it := ListItem{
			ID:        w.ID,
			Type:      w.Type,
			Content:   w.Content,
			Affiliate: decodeAffiliate(w.AffiliateLink),
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if it.Type == "" {
			it.Type = ItemText
		}
		if w.ImageMetadata != nil {
			it.Image = decodeImageMeta(w.ImageMetadata)
		}
		if w.NestedList != nil {
			it.Nested = &NestedList{
				Kind:  w.NestedList.Type,
				Items: decodeItems(w.NestedList.Items),
			}
			if it.Nested.Items == nil {
				it.Nested.Items = []ListItem{}
			}
		}
		out = append(out, it)
	}
	return out
}

func decodeAffiliate(w wireAffiliate) AffiliateLink {
	if w.Type == nil || *w.Type == "" || *w.Type == LinkNone {
		return AffiliateLink{Kind: LinkNone}
	}
	return AffiliateLink{Kind: *w.Type, Name: w.Name, URL: w.URL}
}
