package supply

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starfminer/nft-asset-combining/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mkdir creates a fixture directory including parents.
func mkdir(path string) error { return os.MkdirAll(path, 0o755) }

// collectionFixture lays out a minimal collection on disk: an images
// directory with <id>.png files and a metadata directory with <id>.json
// files carrying the given contents.
func collectionFixture(t *testing.T, imageIDs []string, metaFiles map[string]string) (imagesDir, metadataDir string) {
	t.Helper()
	root := t.TempDir()
	imagesDir = filepath.Join(root, "images")
	metadataDir = filepath.Join(root, "metadata")
	require.NoError(t, mkdir(imagesDir))
	require.NoError(t, mkdir(metadataDir))

	for _, name := range imageIDs {
		writeFile(t, imagesDir, name, "png-bytes")
	}
	for name, content := range metaFiles {
		writeFile(t, metadataDir, name, content)
	}
	return imagesDir, metadataDir
}

// TestValidate_AllMatching is end-to-end scenario A: two images, two
// valid metadata files, full overlap — no findings, not critical.
func TestValidate_AllMatching(t *testing.T) {
	imagesDir, metadataDir := collectionFixture(t,
		[]string{"1.png", "2.png"},
		map[string]string{
			"1.json": `{"name": "one"}`,
			"2.json": `{"name": "two"}`,
		})

	result, err := Validate(Options{ImagesDir: imagesDir, MetadataDir: metadataDir})
	require.NoError(t, err)

	assert.Equal(t, 2, result.ImageCount)
	assert.Equal(t, 2, result.MetadataCount)
	assert.Equal(t, []model.TokenID{1, 2}, result.Recon.Common)
	assert.Empty(t, result.Recon.MissingImages)
	assert.Empty(t, result.Recon.MissingMetadata)
	assert.Empty(t, result.Recon.GapImages)
	assert.Empty(t, result.Recon.GapMetadata)
	assert.Empty(t, result.InvalidJSON)
	assert.False(t, result.Critical())
}

// TestValidate_MissingMetadata is end-to-end scenario B: images {1,2,3},
// metadata {1,2} — missing metadata [3], critical.
func TestValidate_MissingMetadata(t *testing.T) {
	imagesDir, metadataDir := collectionFixture(t,
		[]string{"1.png", "2.png", "3.png"},
		map[string]string{
			"1.json": `{}`,
			"2.json": `{}`,
		})

	result, err := Validate(Options{ImagesDir: imagesDir, MetadataDir: metadataDir})
	require.NoError(t, err)

	assert.Equal(t, []model.TokenID{3}, result.Recon.MissingMetadata)
	assert.True(t, result.Critical())
}

// TestValidate_InvalidJSON is end-to-end scenario C: a metadata file
// with invalid content for an ID present in both sets is reported and
// makes the run critical, even with no missing or gap IDs.
func TestValidate_InvalidJSON(t *testing.T) {
	imagesDir, metadataDir := collectionFixture(t,
		[]string{"1.png", "2.png"},
		map[string]string{
			"1.json": `{"name": "fine"}`,
			"2.json": `{"name": "truncated`,
		})

	result, err := Validate(Options{ImagesDir: imagesDir, MetadataDir: metadataDir})
	require.NoError(t, err)

	assert.Empty(t, result.Recon.MissingImages)
	assert.Empty(t, result.Recon.MissingMetadata)
	assert.Empty(t, result.Recon.GapImages)
	assert.Empty(t, result.Recon.GapMetadata)

	require.Len(t, result.InvalidJSON, 1)
	assert.Equal(t, model.TokenID(2), result.InvalidJSON[0].ID)
	assert.True(t, result.Critical())
}

// TestValidate_NoImages is end-to-end scenario D: zero image files is a
// precondition failure regardless of metadata directory contents.
func TestValidate_NoImages(t *testing.T) {
	imagesDir, metadataDir := collectionFixture(t,
		nil,
		map[string]string{"1.json": `{}`})

	_, err := Validate(Options{ImagesDir: imagesDir, MetadataDir: metadataDir})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "error should be a *model.CLIError")
	assert.Equal(t, model.ExitPrecondition, cliErr.Code)
}

// TestValidate_NoMetadata verifies the mirrored precondition: images
// present but zero metadata files.
func TestValidate_NoMetadata(t *testing.T) {
	imagesDir, metadataDir := collectionFixture(t,
		[]string{"1.png"},
		nil)

	_, err := Validate(Options{ImagesDir: imagesDir, MetadataDir: metadataDir})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitPrecondition, cliErr.Code)
}

// TestValidate_ExplicitRange verifies that an explicit range wider than
// any present ID produces full gap lists and a critical result.
func TestValidate_ExplicitRange(t *testing.T) {
	imagesDir, metadataDir := collectionFixture(t,
		[]string{"2.png"},
		map[string]string{"2.json": `{}`})

	minID, maxID := 1, 4
	result, err := Validate(Options{
		ImagesDir:   imagesDir,
		MetadataDir: metadataDir,
		MinID:       &minID,
		MaxID:       &maxID,
	})
	require.NoError(t, err)

	require.True(t, result.Recon.HasRange)
	assert.Equal(t, []model.TokenID{1, 3, 4}, result.Recon.GapImages)
	assert.Equal(t, []model.TokenID{1, 3, 4}, result.Recon.GapMetadata)
	assert.True(t, result.Critical())
}

// TestValidate_ImageFieldGated verifies that the image-field check only
// runs when enabled, and produces findings when it does.
func TestValidate_ImageFieldGated(t *testing.T) {
	imagesDir, metadataDir := collectionFixture(t,
		[]string{"5.png"},
		map[string]string{"5.json": `{"image": "ipfs://x/50.png"}`})

	// Disabled: no mismatch findings, run passes.
	result, err := Validate(Options{ImagesDir: imagesDir, MetadataDir: metadataDir})
	require.NoError(t, err)
	assert.False(t, result.ImageFieldChecked)
	assert.Empty(t, result.ImageFieldMismatches)
	assert.False(t, result.Critical())

	// Enabled: the mismatch is recorded. Image-field mismatches are a
	// reported condition, not critical on their own.
	result, err = Validate(Options{
		ImagesDir:       imagesDir,
		MetadataDir:     metadataDir,
		CheckImageField: true,
	})
	require.NoError(t, err)
	assert.True(t, result.ImageFieldChecked)
	require.Len(t, result.ImageFieldMismatches, 1)
	assert.Equal(t, model.TokenID(5), result.ImageFieldMismatches[0].ID)
	assert.False(t, result.Critical())
}

// TestValidate_TraitsGated verifies that duplicate trait combinations
// are critical when the traits check is enabled and invisible when not.
func TestValidate_TraitsGated(t *testing.T) {
	shared := `{"attributes": [
		{"trait_type": "Background", "value": "Gold"},
		{"trait_type": "Body", "value": "Blue"}
	]}`
	imagesDir, metadataDir := collectionFixture(t,
		[]string{"1.png", "2.png"},
		map[string]string{"1.json": shared, "2.json": shared})

	result, err := Validate(Options{ImagesDir: imagesDir, MetadataDir: metadataDir})
	require.NoError(t, err)
	assert.False(t, result.Critical())

	result, err = Validate(Options{
		ImagesDir:   imagesDir,
		MetadataDir: metadataDir,
		CheckTraits: true,
	})
	require.NoError(t, err)
	require.Len(t, result.DuplicateTraits, 1)
	assert.Equal(t, []model.TokenID{1, 2}, result.DuplicateTraits[0].IDs)
	assert.True(t, result.Critical())
}

// TestValidate_DuplicatesReportedNotCritical verifies that duplicate
// filenames are surfaced but do not fail the run by themselves.
func TestValidate_DuplicatesReportedNotCritical(t *testing.T) {
	imagesDir, metadataDir := collectionFixture(t,
		[]string{"1.png", "1.PNG"},
		map[string]string{"1.json": `{}`})

	result, err := Validate(Options{ImagesDir: imagesDir, MetadataDir: metadataDir})
	require.NoError(t, err)

	assert.Equal(t, []string{"1.png"}, result.ImageDuplicates)
	assert.False(t, result.Critical())
}
