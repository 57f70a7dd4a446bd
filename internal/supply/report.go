// report.go renders a validation Result as the human-readable summary.
// Long ID lists are shown as capped previews with a trailing ellipsis;
// the JSON output path (in the cli package) carries the full lists.
package supply

import (
	"fmt"
	"io"
	"strings"

	"github.com/starfminer/nft-asset-combining/internal/model"
)

// Preview caps for the text report. Full lists are only emitted in JSON
// output mode.
const (
	missingPreviewCap = 50
	gapPreviewCap     = 80
	findingPreviewCap = 10
)

// WriteText writes the full validation summary to w, duplicate warnings
// first, then the supply summary, then every failure list, ending with
// the overall verdict line.
func WriteText(w io.Writer, r *Result) {
	fmt.Fprintf(w, "Images dir:   %s\n", r.ImagesDir)
	fmt.Fprintf(w, "Metadata dir: %s\n", r.MetadataDir)
	fmt.Fprintln(w)

	writeNameList(w, "warning: duplicate image filenames (case-insensitive):", r.ImageDuplicates)
	writeNameList(w, "warning: duplicate metadata filenames (case-insensitive):", r.MetadataDuplicates)
	writeCollisions(w, "warning: image filenames colliding on one token ID:", r.ImageCollisions)
	writeCollisions(w, "warning: metadata filenames colliding on one token ID:", r.MetadataCollisions)

	fmt.Fprintln(w, "=== Supply Summary ===")
	fmt.Fprintf(w, "Images found:   %d\n", r.ImageCount)
	fmt.Fprintf(w, "Metadata found: %d\n", r.MetadataCount)
	if len(r.Recon.Common) > 0 {
		common := r.Recon.Common
		fmt.Fprintf(w, "Overlapping IDs: %d (min=%d, max=%d)\n",
			len(common), common[0], common[len(common)-1])
	}
	fmt.Fprintln(w)

	if ids := r.Recon.MissingImages; len(ids) > 0 {
		fmt.Fprintf(w, "missing images for %d IDs (present in metadata, missing PNG):\n", len(ids))
		fmt.Fprintf(w, "   %s\n\n", previewIDs(ids, missingPreviewCap))
	}
	if ids := r.Recon.MissingMetadata; len(ids) > 0 {
		fmt.Fprintf(w, "missing metadata for %d IDs (present in images, missing JSON):\n", len(ids))
		fmt.Fprintf(w, "   %s\n\n", previewIDs(ids, missingPreviewCap))
	}

	if r.Recon.HasRange {
		if ids := r.Recon.GapImages; len(ids) > 0 {
			fmt.Fprintf(w, "image ID gaps in expected range %d-%d:\n", r.Recon.MinID, r.Recon.MaxID)
			fmt.Fprintf(w, "   %s\n\n", previewIDs(ids, gapPreviewCap))
		}
		if ids := r.Recon.GapMetadata; len(ids) > 0 {
			fmt.Fprintf(w, "metadata ID gaps in expected range %d-%d:\n", r.Recon.MinID, r.Recon.MaxID)
			fmt.Fprintf(w, "   %s\n\n", previewIDs(ids, gapPreviewCap))
		}
	} else {
		fmt.Fprintln(w, "note: no expected range (no overlap and no explicit bounds); gap checks skipped.")
		fmt.Fprintln(w)
	}

	if findings := r.InvalidJSON; len(findings) > 0 {
		fmt.Fprintf(w, "invalid JSON in %d metadata files:\n", len(findings))
		writeFindings(w, findings, ".json")
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "ok: all overlapping metadata files are valid JSON.")
		fmt.Fprintln(w)
	}

	if r.ImageFieldChecked {
		if findings := r.ImageFieldMismatches; len(findings) > 0 {
			fmt.Fprintf(w, "warning: metadata image field mismatches for %d tokens (showing up to %d):\n",
				len(findings), findingPreviewCap)
			writeFindings(w, findings, ".json image")
			fmt.Fprintln(w)
		} else {
			fmt.Fprintln(w, "ok: metadata image fields are consistent with \"<id>.png\".")
			fmt.Fprintln(w)
		}
	}

	if r.TraitsChecked {
		if groups := r.DuplicateTraits; len(groups) > 0 {
			fmt.Fprintf(w, "duplicate trait combinations for %d groups (showing up to %d):\n",
				len(groups), findingPreviewCap)
			for i, g := range groups {
				if i == findingPreviewCap {
					fmt.Fprintln(w, "  ...")
					break
				}
				fmt.Fprintf(w, "  - tokens %s share traits %s\n", joinIDs(g.IDs), g.Key)
			}
			fmt.Fprintln(w)
		} else {
			fmt.Fprintln(w, "ok: every token has a unique trait combination.")
			fmt.Fprintln(w)
		}
	}

	if r.Critical() {
		fmt.Fprintln(w, "validation FAILED (see issues above).")
	} else {
		fmt.Fprintln(w, "validation PASSED.")
	}
}

// writeNameList prints a warning header followed by one indented line per
// name. Nothing is printed for an empty list.
func writeNameList(w io.Writer, header string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintln(w, header)
	for _, n := range names {
		fmt.Fprintf(w, "  - %s\n", n)
	}
	fmt.Fprintln(w)
}

// writeCollisions prints ID collision groups in "id: a.png, b.png" form.
func writeCollisions(w io.Writer, header string, collisions []Collision) {
	if len(collisions) == 0 {
		return
	}
	fmt.Fprintln(w, header)
	for _, c := range collisions {
		fmt.Fprintf(w, "  - %d: %s\n", c.ID, strings.Join(c.Names, ", "))
	}
	fmt.Fprintln(w)
}

// writeFindings prints per-token findings as "  - <id><suffix>: <detail>"
// lines, capped at findingPreviewCap with a trailing ellipsis line.
func writeFindings(w io.Writer, findings []model.TokenFinding, suffix string) {
	for i, f := range findings {
		if i == findingPreviewCap {
			fmt.Fprintln(w, "  ...")
			return
		}
		fmt.Fprintf(w, "  - %d%s: %s\n", f.ID, suffix, f.Detail)
	}
}

// previewIDs renders up to limit IDs as a comma-separated list, appending
// " ..." when the list was truncated.
func previewIDs(ids []model.TokenID, limit int) string {
	shown := ids
	truncated := false
	if len(shown) > limit {
		shown = shown[:limit]
		truncated = true
	}
	s := joinIDs(shown)
	if truncated {
		s += " ..."
	}
	return s
}

// joinIDs renders IDs as "1, 2, 3".
func joinIDs(ids []model.TokenID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ", ")
}
