// validator.go orchestrates a full validation run. The CLI layer is a
// thin wrapper around Validate: all policy (preconditions, what counts
// as critical) lives here so it can be exercised directly in tests.
package supply

import (
	"fmt"
	"path/filepath"

	"github.com/starfminer/nft-asset-combining/internal/model"
)

// Options configures a validation run. The zero value is not useful;
// callers fill in both directories at minimum.
type Options struct {
	// ImagesDir is the directory scanned for "<id>.png" files.
	ImagesDir string

	// MetadataDir is the directory scanned for "<id>.json" files.
	MetadataDir string

	// MinID and MaxID override the expected supply range. A nil bound
	// falls back to the bound inferred from the ID intersection. The CLI
	// layer merges flag and manifest values before filling these.
	MinID *int
	MaxID *int

	// CheckImageField enables the metadata "image" field consistency check.
	CheckImageField bool

	// CheckTraits enables the trait-combination uniqueness check.
	CheckTraits bool
}

// Result is the complete outcome of a validation run: everything the
// report needs, with all ID lists sorted ascending.
type Result struct {
	// ImagesDir and MetadataDir are the absolute paths that were scanned.
	ImagesDir   string `json:"imagesDir"`
	MetadataDir string `json:"metadataDir"`

	// ImageDuplicates and MetadataDuplicates list filenames occurring
	// more than once per directory after lower-casing.
	ImageDuplicates    []string `json:"imageDuplicates,omitempty"`
	MetadataDuplicates []string `json:"metadataDuplicates,omitempty"`

	// ImageCollisions and MetadataCollisions list token IDs claimed by
	// more than one filename (leading-zero variants).
	ImageCollisions    []Collision `json:"imageCollisions,omitempty"`
	MetadataCollisions []Collision `json:"metadataCollisions,omitempty"`

	// ImageCount and MetadataCount are the distinct token IDs found per
	// directory.
	ImageCount    int `json:"imageCount"`
	MetadataCount int `json:"metadataCount"`

	// Recon holds the set reconciliation between the two ID sets.
	Recon *Reconciliation `json:"reconciliation"`

	// InvalidJSON lists tokens whose metadata failed to parse.
	InvalidJSON []model.TokenFinding `json:"invalidJson,omitempty"`

	// ImageFieldChecked records whether the image-field check ran;
	// ImageFieldMismatches holds its findings.
	ImageFieldChecked    bool                 `json:"imageFieldChecked"`
	ImageFieldMismatches []model.TokenFinding `json:"imageFieldMismatches,omitempty"`

	// TraitsChecked records whether the trait-uniqueness check ran;
	// DuplicateTraits holds its findings.
	TraitsChecked   bool               `json:"traitsChecked"`
	DuplicateTraits []model.TraitGroup `json:"duplicateTraits,omitempty"`
}

// Critical reports whether the run found any condition that fails the
// collection: missing files on either side, gaps in the expected range,
// unparseable metadata, or (when checked) duplicate trait combinations.
//
// Duplicate filenames, ID collisions, and image-field mismatches are
// reported conditions but not critical on their own.
func (r *Result) Critical() bool {
	if len(r.Recon.MissingImages) > 0 || len(r.Recon.MissingMetadata) > 0 {
		return true
	}
	if len(r.Recon.GapImages) > 0 || len(r.Recon.GapMetadata) > 0 {
		return true
	}
	if len(r.InvalidJSON) > 0 {
		return true
	}
	if r.TraitsChecked && len(r.DuplicateTraits) > 0 {
		return true
	}
	return false
}

// Validate performs one full validation run.
//
// Every returned error is a *model.CLIError with ExitPrecondition: an
// empty image or metadata set, or an unreadable directory, means the run
// cannot produce a meaningful report and aborts before any further
// checks. A completed run always returns a Result, even when critical
// findings are present — translating Critical() into an exit code is the
// caller's job, after the report has been printed.
func Validate(opts Options) (*Result, error) {
	imagesDir, err := filepath.Abs(opts.ImagesDir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitPrecondition, "resolve images dir", err)
	}
	metadataDir, err := filepath.Abs(opts.MetadataDir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitPrecondition, "resolve metadata dir", err)
	}

	result := &Result{
		ImagesDir:         imagesDir,
		MetadataDir:       metadataDir,
		ImageFieldChecked: opts.CheckImageField,
		TraitsChecked:     opts.CheckTraits,
	}

	// Step 1: duplicate filenames, per directory. Reported, not fatal.
	if result.ImageDuplicates, err = FindDuplicates(imagesDir); err != nil {
		return nil, model.WrapCLIError(model.ExitPrecondition, "scan images dir", err)
	}
	if result.MetadataDuplicates, err = FindDuplicates(metadataDir); err != nil {
		return nil, model.WrapCLIError(model.ExitPrecondition, "scan metadata dir", err)
	}

	// Step 2: collect token IDs from both directories.
	images, err := CollectIDs(imagesDir, ImageExt)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitPrecondition, "scan images dir", err)
	}
	meta, err := CollectIDs(metadataDir, MetadataExt)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitPrecondition, "scan metadata dir", err)
	}
	result.ImageCollisions = images.Collisions
	result.MetadataCollisions = meta.Collisions
	result.ImageCount = len(images.Paths)
	result.MetadataCount = len(meta.Paths)

	// Step 3: preconditions. An empty set on either side makes every
	// downstream check meaningless, so the run aborts here.
	if len(images.Paths) == 0 {
		return nil, model.NewCLIError(model.ExitPrecondition,
			fmt.Sprintf("no PNG files named like 1.png, 2.png, ... found in %s", imagesDir))
	}
	if len(meta.Paths) == 0 {
		return nil, model.NewCLIError(model.ExitPrecondition,
			fmt.Sprintf("no JSON metadata files named like 1.json, 2.json, ... found in %s", metadataDir))
	}

	// Step 4: set reconciliation and gap detection.
	result.Recon = Reconcile(images.Paths, meta.Paths, opts.MinID, opts.MaxID)

	// Step 5: content checks over the intersection. Metadata files in
	// common may be read twice (once per checker); acceptable at this
	// scale and keeps the checkers independent.
	result.InvalidJSON = CheckJSON(result.Recon.Common, meta.Paths)
	if opts.CheckImageField {
		result.ImageFieldMismatches = CheckImageField(result.Recon.Common, meta.Paths)
	}
	if opts.CheckTraits {
		result.DuplicateTraits = CheckTraitUniqueness(meta.Paths)
	}

	return result, nil
}
