package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Document represents the parsed fields of a metadata JSON file that the
// toolkit cares about. Only a subset of the marketplace metadata shape is
// modeled; unknown fields are ignored by encoding/json.
type Document struct {
	// Name is the display name of the token, if present.
	Name string `json:"name,omitempty"`

	// Image is the image reference field. It is declared as interface{}
	// (rather than string) because the consistency check must distinguish
	// three cases: field absent (nil), present but not a string, and a
	// proper string value.
	Image interface{} `json:"image,omitempty"`

	// Attributes is the ordered trait list. Order is preserved exactly as
	// it appears in the file — two documents with the same traits in a
	// different order are treated as different combinations.
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attribute is a single trait entry in the "attributes" array.
type Attribute struct {
	// TraitType is the trait category (e.g. "Background").
	TraitType string `json:"trait_type"`

	// Value is the trait value. Declared as interface{} because real-world
	// metadata mixes strings and JSON numbers here.
	Value interface{} `json:"value"`
}

// Load reads and parses a metadata document from disk.
//
// Read and parse errors are returned to the caller unwrapped into a single
// error; the validator records them as per-token findings rather than
// aborting the run.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}
	return Parse(data)
}

// Parse parses raw metadata JSON into a Document using strict encoding/json.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse metadata JSON: %w", err)
	}
	return &doc, nil
}

// ImageString returns the image field as a string, along with whether the
// field held a string at all. The second return is false both when the
// field is absent and when it holds a non-string value.
func (d *Document) ImageString() (string, bool) {
	s, ok := d.Image.(string)
	return s, ok
}

// ImageRefersTo reports whether the image field points at the given token's
// image file: the lower-cased value must end with "<id>.<ext>", with or
// without a preceding path separator ("ipfs://x/5.png" and "5.png" both
// match token 5 with ext "png").
func (d *Document) ImageRefersTo(id int, ext string) bool {
	s, ok := d.ImageString()
	if !ok {
		return false
	}
	suffix := fmt.Sprintf("%d.%s", id, strings.ToLower(ext))
	return strings.HasSuffix(strings.ToLower(s), suffix)
}

// TraitKey returns the canonical serialization of the attribute list,
// used to detect duplicate trait combinations across tokens.
//
// Format: "trait_type=value" pairs joined with "|", in file order.
// Returns the empty string for documents with no attributes; callers
// skip those so that attribute-less documents are not all grouped
// together as duplicates of each other.
func (d *Document) TraitKey() string {
	if len(d.Attributes) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(d.Attributes))
	for _, a := range d.Attributes {
		pairs = append(pairs, fmt.Sprintf("%s=%v", a.TraitType, a.Value))
	}
	return strings.Join(pairs, "|")
}
