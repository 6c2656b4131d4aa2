/*
Package content implements the structured block document used for post
bodies: an ordered list of blocks (paragraphs, headings, images and
lists with one observed level of nesting), each optionally annotated
with an affiliate link.

A Document is built empty or parsed from the persisted JSON form,
mutated through its operations and serialized back on save:

	doc := content.New(content.CreatePolicy)
	id := doc.AddBlock(content.BlockImage)
	doc.UpdateBlock(id, content.BlockPatch{Content: content.Ptr("https://cdn/x.png")})
	raw, err := doc.Serialize()

Parsing is defensive: blocks produced by older schema versions may lack
ids, affiliate links or list items, and those are filled with defaults.
A payload that is not valid JSON or not an array fails with *ParseError
and callers fall back to a single empty paragraph block.

Rendering walks the block tree into a RenderNode tree which the HTML
emitter turns into sanitized markup for the public site and the editor
preview.

A Document is owned by a single editor at a time and is not safe for
concurrent use.
*/
package content
