// reconcile.go implements the set arithmetic at the heart of the
// validator: intersecting and differencing the image and metadata ID
// sets, and computing gaps against the expected supply range.
package supply

import (
	"github.com/starfminer/nft-asset-combining/internal/model"
)

// Reconciliation holds the outcome of comparing the image ID set against
// the metadata ID set. All ID slices are sorted ascending.
//
// Common, MissingImages, and MissingMetadata partition the union of the
// two ID sets: every ID found in either directory lands in exactly one
// of the three.
type Reconciliation struct {
	// Common is the intersection of the two ID sets.
	Common []model.TokenID `json:"common"`

	// MissingImages lists metadata IDs with no matching image file.
	MissingImages []model.TokenID `json:"missingImages"`

	// MissingMetadata lists image IDs with no matching metadata file.
	MissingMetadata []model.TokenID `json:"missingMetadata"`

	// HasRange reports whether an expected range was determined. When
	// Common is empty and no explicit bounds were given, no range exists
	// and the gap lists are empty by policy, not by verification.
	HasRange bool `json:"hasRange"`

	// MinID and MaxID bound the expected contiguous range. Only
	// meaningful when HasRange is true.
	MinID model.TokenID `json:"minId"`
	MaxID model.TokenID `json:"maxId"`

	// GapImages lists expected-range IDs absent from the image set.
	GapImages []model.TokenID `json:"gapImages"`

	// GapMetadata lists expected-range IDs absent from the metadata set.
	GapMetadata []model.TokenID `json:"gapMetadata"`
}

// Reconcile computes the full reconciliation between the image and
// metadata ID mappings.
//
// The expected range is taken from minID/maxID when given (each bound
// may be overridden independently); any bound left nil falls back to the
// min/max of the intersection. Explicit bounds are used verbatim even
// when they are wider than any ID actually present — that is how supply
// holes at the edges of a collection are detected.
func Reconcile(images, meta map[model.TokenID]string, minID, maxID *int) *Reconciliation {
	r := &Reconciliation{}

	for id := range meta {
		if _, ok := images[id]; ok {
			r.Common = append(r.Common, id)
		} else {
			r.MissingImages = append(r.MissingImages, id)
		}
	}
	for id := range images {
		if _, ok := meta[id]; !ok {
			r.MissingMetadata = append(r.MissingMetadata, id)
		}
	}
	model.SortTokenIDs(r.Common)
	model.SortTokenIDs(r.MissingImages)
	model.SortTokenIDs(r.MissingMetadata)

	// Determine the expected range: explicit bounds win, otherwise the
	// bounds of the intersection. With an empty intersection and no
	// explicit bounds there is no range and gap checks are skipped.
	lo, hi, ok := resolveRange(r.Common, minID, maxID)
	if !ok {
		return r
	}

	r.HasRange = true
	r.MinID = lo
	r.MaxID = hi
	for id := lo; id <= hi; id++ {
		if _, found := images[id]; !found {
			r.GapImages = append(r.GapImages, id)
		}
		if _, found := meta[id]; !found {
			r.GapMetadata = append(r.GapMetadata, id)
		}
	}
	return r
}

// resolveRange picks the expected range bounds from the explicit
// overrides and the sorted intersection. Returns ok=false when neither
// source can determine a bound.
func resolveRange(common []model.TokenID, minID, maxID *int) (lo, hi model.TokenID, ok bool) {
	switch {
	case minID != nil:
		lo = model.TokenID(*minID)
	case len(common) > 0:
		lo = common[0]
	default:
		return 0, 0, false
	}

	switch {
	case maxID != nil:
		hi = model.TokenID(*maxID)
	case len(common) > 0:
		hi = common[len(common)-1]
	default:
		return 0, 0, false
	}

	return lo, hi, true
}
