package wallet

import (
	"encoding/json"
	"fmt"
)

// ContentHashSize is the width of an asset's content hash buffer.
const ContentHashSize = 1024

// Category tags the kind of content an asset refers to.
type Category uint8

const (
	CategoryImage Category = iota
	CategoryVideo
	CategoryAudio
	CategoryDocument
	CategoryPost
	CategoryArt
)

var categoryNames = [...]string{
	CategoryImage:    "Image",
	CategoryVideo:    "Video",
	CategoryAudio:    "Audio",
	CategoryDocument: "Document",
	CategoryPost:     "Post",
	CategoryArt:      "Art",
}

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

func (c Category) Valid() bool { return int(c) < len(categoryNames) }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// ParseCategory maps a category name back to its value.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, newError(KindEncoding, "ZW-ENC-003", fmt.Sprintf("unknown category %q", name))
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, newError(KindEncoding, "ZW-ENC-003", fmt.Sprintf("unknown category %d", uint8(c)))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// AssetRecord describes one owned digital asset. Records are treated as
// immutable once built; the store hands out copies.
type AssetRecord struct {
	Owner       Identity
	ContentHash [ContentHashSize]byte
	Signature   [SignatureSize]byte
	Category    Category
}

// WellFormed reports whether the owner identity is well-formed. The content
// hash and signature are left to the Verifier.
func (r AssetRecord) WellFormed() bool {
	return r.Owner.WellFormed()
}

type assetJSON struct {
	Owner       Identity `json:"owner"`
	ContentHash []byte   `json:"content_hash"`
	Signature   []byte   `json:"signature"`
	Category    Category `json:"category"`
}

func (r AssetRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(assetJSON{
		Owner:       r.Owner,
		ContentHash: r.ContentHash[:],
		Signature:   r.Signature[:],
		Category:    r.Category,
	})
}

func (r *AssetRecord) UnmarshalJSON(b []byte) error {
	var raw assetJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return encodingError("invalid asset json", err)
	}
	var out AssetRecord
	out.Owner = raw.Owner
	out.Category = raw.Category
	if err := copyExact(out.ContentHash[:], raw.ContentHash, "content_hash"); err != nil {
		return err
	}
	if err := copyExact(out.Signature[:], raw.Signature, "signature"); err != nil {
		return err
	}
	*r = out
	return nil
}
