package content

// BlockType identifies the kind of a top-level content block. The
// values match the persisted wire format.
type BlockType string

const (
	BlockText          BlockType = "text"
	BlockImage         BlockType = "image"
	BlockUnorderedList BlockType = "ul"
	BlockOrderedList   BlockType = "ol"
)

// IsList reports whether the type carries list items.
func (t BlockType) IsList() bool {
	return t == BlockUnorderedList || t == BlockOrderedList
}

// ItemType identifies the kind of a list item.
type ItemType string

const (
	ItemText  ItemType = "text"
	ItemImage ItemType = "image"
)

// ImageSize selects the presentational width of an image.
type ImageSize string

const (
	SizeSmall  ImageSize = "small"
	SizeMedium ImageSize = "medium"
	SizeLarge  ImageSize = "large"
	SizeCustom ImageSize = "custom"
)

// LinkKind is the variant of an affiliate link annotation. The
// "affiliate" catalog kind is reserved in the wire format but never
// produced by the editor; it is preserved on parse.
type LinkKind string

const (
	LinkNone      LinkKind = "none"
	LinkCustom    LinkKind = "custom"
	LinkAffiliate LinkKind = "affiliate"
)

// AffiliateLink is an optional outbound-link annotation on a block or
// list item.
type AffiliateLink struct {
	Kind LinkKind
	Name string
	URL  string
}

// normalized collapses a custom link with no URL to the none kind,
// dropping any stale name or URL left over from a previous edit. A
// dangling custom link is never persisted.
func (l AffiliateLink) normalized() AffiliateLink {
	if l.Kind == LinkCustom && l.URL == "" {
		return AffiliateLink{Kind: LinkNone}
	}
	if l.Kind == "" {
		return AffiliateLink{Kind: LinkNone}
	}
	return l
}

// TextMetadata is the metadata variant of text blocks. HeadingLevel 0
// renders a paragraph, 1-3 a heading of that rank. The boolean flags
// are a legacy styling mechanism superseded by inline markers in the
// content itself; they are preserved for older documents.
type TextMetadata struct {
	HeadingLevel int
	Bold         bool
	Italic       bool
	Underline    bool
}

// ImageMetadata is the metadata variant of image blocks and image list
// items. Width and Height apply only when Size is SizeCustom.
type ImageMetadata struct {
	Size   ImageSize
	Width  int
	Height int
	Alt    string
}

// NestedList is a list nested under a list item. The editor only ever
// produces one level of nesting, but the type is recursive so deeper
// structures survive a parse/serialize round trip untouched.
type NestedList struct {
	Kind  BlockType
	Items []ListItem
}

// ListItem is an element of a list block or of a nested list.
type ListItem struct {
	ID        string
	Type      ItemType
	Content   string
	Image     *ImageMetadata
	Nested    *NestedList
	Affiliate AffiliateLink
}

// Block is a top-level unit of post content. Exactly one of Text and
// Image is set, matching Type; ListItems is populated only for list
// types.
type Block struct {
	ID        string
	Type      BlockType
	Content   string
	Text      *TextMetadata
	Image     *ImageMetadata
	ListItems []ListItem
	Affiliate AffiliateLink
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T { return &v }
