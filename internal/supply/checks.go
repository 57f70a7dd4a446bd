// checks.go implements the per-file content checks: JSON validity,
// image-field consistency, and trait-combination uniqueness. All three
// collect findings instead of aborting — every remaining file is still
// checked after a failure.
package supply

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/starfminer/nft-asset-combining/internal/metadata"
	"github.com/starfminer/nft-asset-combining/internal/model"
)

// CheckJSON attempts to parse the metadata file of every token in common
// as a JSON document and returns one finding per parse failure.
//
// Only tokens present in both sets are checked: orphaned metadata files
// already show up in the missing-images list, and validating content the
// collection cannot ship would double-report them.
func CheckJSON(common []model.TokenID, meta map[model.TokenID]string) []model.TokenFinding {
	var findings []model.TokenFinding
	for _, id := range common {
		data, err := os.ReadFile(meta[id])
		if err != nil {
			findings = append(findings, model.TokenFinding{ID: id, Detail: err.Error()})
			continue
		}
		// Any top-level JSON value counts as parseable; the document
		// shape is the image-field check's concern, not this one's.
		var doc interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			findings = append(findings, model.TokenFinding{ID: id, Detail: err.Error()})
		}
	}
	return findings
}

// CheckImageField verifies, for every token in common, that the metadata
// document's "image" field refers to that token's image file.
//
// A mismatch is recorded when the field is absent, not a string, or does
// not end with "<id>.png" (case-insensitive, with or without a preceding
// path separator). Read or parse errors during this pass are recorded as
// mismatches carrying the error text, never raised.
func CheckImageField(common []model.TokenID, meta map[model.TokenID]string) []model.TokenFinding {
	var findings []model.TokenFinding
	for _, id := range common {
		doc, err := metadata.Load(meta[id])
		if err != nil {
			findings = append(findings, model.TokenFinding{
				ID:     id,
				Detail: fmt.Sprintf("(error reading: %v)", err),
			})
			continue
		}
		if doc.ImageRefersTo(int(id), ImageExt) {
			continue
		}

		// Report the offending value: the string that pointed elsewhere,
		// the non-string value, or empty for an absent field.
		detail := ""
		if doc.Image != nil {
			detail = fmt.Sprintf("%v", doc.Image)
		}
		findings = append(findings, model.TokenFinding{ID: id, Detail: detail})
	}
	return findings
}

// CheckTraitUniqueness groups all metadata documents by their canonical
// trait combination and returns the groups shared by more than one token.
//
// The check runs over the full metadata set, not just common: trait
// uniqueness is a property of the metadata alone and does not need a
// matching image. Documents that fail to parse are skipped here (they
// are already reported by CheckJSON), as are documents with no
// attributes at all.
func CheckTraitUniqueness(meta map[model.TokenID]string) []model.TraitGroup {
	byKey := make(map[string][]model.TokenID)
	for id, path := range meta {
		doc, err := metadata.Load(path)
		if err != nil {
			continue
		}
		key := doc.TraitKey()
		if key == "" {
			continue
		}
		byKey[key] = append(byKey[key], id)
	}

	var groups []model.TraitGroup
	for key, ids := range byKey {
		if len(ids) > 1 {
			groups = append(groups, model.TraitGroup{Key: key, IDs: model.SortTokenIDs(ids)})
		}
	}
	// Order groups by their lowest token ID for stable report output.
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].IDs[0] < groups[j].IDs[0]
	})
	return groups
}
