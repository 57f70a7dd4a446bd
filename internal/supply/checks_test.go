package supply

import (
	"path/filepath"
	"testing"

	"github.com/starfminer/nft-asset-combining/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- CheckJSON tests ---

// TestCheckJSON_ValidAndInvalid verifies that parse failures are
// collected per token while valid documents stay silent, and that a
// failure does not stop the remaining files from being checked.
func TestCheckJSON_ValidAndInvalid(t *testing.T) {
	dir := t.TempDir()
	meta := map[model.TokenID]string{
		1: writeFile(t, dir, "1.json", `{"name": "ok"}`),
		2: writeFile(t, dir, "2.json", `{"name": "broken"`),
		3: writeFile(t, dir, "3.json", `not json at all`),
	}

	findings := CheckJSON([]model.TokenID{1, 2, 3}, meta)

	require.Len(t, findings, 2)
	assert.Equal(t, model.TokenID(2), findings[0].ID)
	assert.NotEmpty(t, findings[0].Detail)
	assert.Equal(t, model.TokenID(3), findings[1].ID)
}

// TestCheckJSON_OnlyCommonChecked verifies that IDs outside the given
// common list are never touched — orphaned metadata files are not
// validated for parseability.
func TestCheckJSON_OnlyCommonChecked(t *testing.T) {
	dir := t.TempDir()
	meta := map[model.TokenID]string{
		1: writeFile(t, dir, "1.json", `{}`),
		9: writeFile(t, dir, "9.json", `{broken`),
	}

	findings := CheckJSON([]model.TokenID{1}, meta)
	assert.Empty(t, findings, "ID 9 is not in common and must not be checked")
}

// TestCheckJSON_MissingFile verifies that a read error is recorded as a
// finding rather than raised.
func TestCheckJSON_MissingFile(t *testing.T) {
	meta := map[model.TokenID]string{
		4: filepath.Join(t.TempDir(), "4.json"),
	}

	findings := CheckJSON([]model.TokenID{4}, meta)
	require.Len(t, findings, 1)
	assert.Equal(t, model.TokenID(4), findings[0].ID)
}

// --- CheckImageField tests ---

// TestCheckImageField_Match verifies the canonical passing case from the
// contract: metadata 5.json with image "ipfs://x/5.png" is consistent.
func TestCheckImageField_Match(t *testing.T) {
	dir := t.TempDir()
	meta := map[model.TokenID]string{
		5: writeFile(t, dir, "5.json", `{"image": "ipfs://x/5.png"}`),
	}

	findings := CheckImageField([]model.TokenID{5}, meta)
	assert.Empty(t, findings)
}

// TestCheckImageField_Mismatch verifies the canonical failing case:
// image "ipfs://x/50.png" does not refer to token 5.
func TestCheckImageField_Mismatch(t *testing.T) {
	dir := t.TempDir()
	meta := map[model.TokenID]string{
		5: writeFile(t, dir, "5.json", `{"image": "ipfs://x/50.png"}`),
	}

	findings := CheckImageField([]model.TokenID{5}, meta)
	require.Len(t, findings, 1)
	assert.Equal(t, model.TokenID(5), findings[0].ID)
	assert.Equal(t, "ipfs://x/50.png", findings[0].Detail)
}

// TestCheckImageField_NoSeparatorAndCase verifies that a bare "<id>.png"
// value matches (no path separator required) and that the comparison is
// case-insensitive.
func TestCheckImageField_NoSeparatorAndCase(t *testing.T) {
	dir := t.TempDir()
	meta := map[model.TokenID]string{
		7: writeFile(t, dir, "7.json", `{"image": "7.PNG"}`),
	}

	findings := CheckImageField([]model.TokenID{7}, meta)
	assert.Empty(t, findings)
}

// TestCheckImageField_AbsentAndNonString verifies that an absent image
// field and a non-string image field are both mismatches.
func TestCheckImageField_AbsentAndNonString(t *testing.T) {
	dir := t.TempDir()
	meta := map[model.TokenID]string{
		1: writeFile(t, dir, "1.json", `{"name": "no image field"}`),
		2: writeFile(t, dir, "2.json", `{"image": 2}`),
	}

	findings := CheckImageField([]model.TokenID{1, 2}, meta)
	require.Len(t, findings, 2)

	assert.Equal(t, model.TokenID(1), findings[0].ID)
	assert.Equal(t, "", findings[0].Detail, "absent field reports an empty value")

	assert.Equal(t, model.TokenID(2), findings[1].ID)
	assert.Equal(t, "2", findings[1].Detail, "non-string field reports its rendering")
}

// TestCheckImageField_ReadError verifies that an unreadable file during
// this pass is recorded as a mismatch carrying the error text.
func TestCheckImageField_ReadError(t *testing.T) {
	meta := map[model.TokenID]string{
		3: filepath.Join(t.TempDir(), "3.json"),
	}

	findings := CheckImageField([]model.TokenID{3}, meta)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Detail, "(error reading:")
}

// --- CheckTraitUniqueness tests ---

// TestCheckTraitUniqueness_Duplicates verifies that two tokens with an
// identical attribute combination are grouped as duplicates.
func TestCheckTraitUniqueness_Duplicates(t *testing.T) {
	dir := t.TempDir()
	shared := `{"attributes": [
		{"trait_type": "Background", "value": "Gold"},
		{"trait_type": "Body", "value": "Blue"}
	]}`
	meta := map[model.TokenID]string{
		1: writeFile(t, dir, "1.json", shared),
		2: writeFile(t, dir, "2.json", shared),
		3: writeFile(t, dir, "3.json", `{"attributes": [
			{"trait_type": "Background", "value": "Silver"},
			{"trait_type": "Body", "value": "Blue"}
		]}`),
	}

	groups := CheckTraitUniqueness(meta)

	require.Len(t, groups, 1)
	assert.Equal(t, []model.TokenID{1, 2}, groups[0].IDs)
	assert.Equal(t, "Background=Gold|Body=Blue", groups[0].Key)
}

// TestCheckTraitUniqueness_OrderMatters verifies that the same traits in
// a different order do not count as a duplicate combination.
func TestCheckTraitUniqueness_OrderMatters(t *testing.T) {
	dir := t.TempDir()
	meta := map[model.TokenID]string{
		1: writeFile(t, dir, "1.json", `{"attributes": [
			{"trait_type": "A", "value": "x"},
			{"trait_type": "B", "value": "y"}
		]}`),
		2: writeFile(t, dir, "2.json", `{"attributes": [
			{"trait_type": "B", "value": "y"},
			{"trait_type": "A", "value": "x"}
		]}`),
	}

	groups := CheckTraitUniqueness(meta)
	assert.Empty(t, groups)
}

// TestCheckTraitUniqueness_SkipsEmptyAndBroken verifies that documents
// with no attributes and documents that fail to parse are excluded from
// grouping instead of clustering together.
func TestCheckTraitUniqueness_SkipsEmptyAndBroken(t *testing.T) {
	dir := t.TempDir()
	meta := map[model.TokenID]string{
		1: writeFile(t, dir, "1.json", `{"name": "no attributes"}`),
		2: writeFile(t, dir, "2.json", `{"name": "also none"}`),
		3: writeFile(t, dir, "3.json", `{broken`),
		4: writeFile(t, dir, "4.json", `{broken`),
	}

	groups := CheckTraitUniqueness(meta)
	assert.Empty(t, groups)
}
