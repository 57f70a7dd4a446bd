// Package cli — validate.go implements the "nft-asset-combining validate"
// command.
//
// The validate command is the core operation of the toolkit. It
// reconciles the image directory against the metadata directory and
// reports duplicate filenames, missing IDs on either side, supply gaps
// against the expected range, unparseable metadata JSON, and (optionally)
// image-field and trait-uniqueness inconsistencies.
//
// Orchestration steps:
//  1. Resolve the optional collection manifest
//  2. Merge the expected range: flags > manifest > inferred
//  3. Run the validator (supply.Validate)
//  4. Print the full report (text or JSON)
//  5. Translate critical findings into exit code 2
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/starfminer/nft-asset-combining/internal/manifest"
	"github.com/starfminer/nft-asset-combining/internal/model"
	"github.com/starfminer/nft-asset-combining/internal/supply"
)

// validateFlags holds the flag values for the validate command.
// These are bound to cobra flags in NewValidateCommand.
type validateFlags struct {
	imagesDir       string // --images-dir: folder containing <id>.png files
	metadataDir     string // --metadata-dir: folder containing <id>.json files
	minID           int    // --min-id: expected range lower bound
	maxID           int    // --max-id: expected range upper bound
	checkImageField bool   // --check-image-field: verify metadata image references
	checkTraits     bool   // --check-traits: verify trait-combination uniqueness
	manifestPath    string // --manifest: explicit collection manifest path
}

// NewValidateCommand creates the "validate" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewValidateCommand() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate supply integrity of image and metadata files",
		Long: `Validate NFT supply integrity: matching image+metadata IDs, missing and
extra IDs, gaps against the expected supply range, and JSON validity.

Image files are expected to be named <id>.png and metadata files <id>.json,
where <id> is a non-negative integer.

Exit codes:
  0  validation passed
  1  precondition failure (no image or no metadata files found)
  2  critical validation failure

Examples:
  nft-asset-combining validate
  nft-asset-combining validate --images-dir art --metadata-dir metadata
  nft-asset-combining validate --min-id 1 --max-id 1000
  nft-asset-combining validate --check-image-field --check-traits --json`,

		// No positional arguments are required for the validate command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			// Distinguish "flag not given" from an explicit zero: only a
			// changed flag overrides the manifest or inferred bound.
			var minID, maxID *int
			if cmd.Flags().Changed("min-id") {
				minID = &flags.minID
			}
			if cmd.Flags().Changed("max-id") {
				maxID = &flags.maxID
			}
			return runValidate(flags, minID, maxID)
		},
	}

	cmd.Flags().StringVar(&flags.imagesDir, "images-dir", ".", "Folder containing PNG files")
	cmd.Flags().StringVar(&flags.metadataDir, "metadata-dir", "metadata", "Folder containing JSON metadata")
	cmd.Flags().IntVar(&flags.minID, "min-id", 0, "Minimum token ID expected (default: inferred)")
	cmd.Flags().IntVar(&flags.maxID, "max-id", 0, "Maximum token ID expected (default: inferred)")
	cmd.Flags().BoolVar(&flags.checkImageField, "check-image-field", false,
		"Check that each metadata image field ends with \"<id>.png\" (best-effort)")
	cmd.Flags().BoolVar(&flags.checkTraits, "check-traits", false,
		"Check that every token has a unique trait combination")
	cmd.Flags().StringVar(&flags.manifestPath, "manifest", "",
		"Collection manifest path (default: collection.yaml / collection.json in the current directory)")

	return cmd
}

// runValidate is the main logic function for the validate command.
func runValidate(flags *validateFlags, minID, maxID *int) error {
	// Step 1: Resolve the optional collection manifest. Without an
	// explicit --manifest, the standard names are searched in the
	// current directory; absence is fine.
	mf, err := manifest.Resolve(flags.manifestPath, ".")
	if err != nil {
		return err // Resolve already returns CLIError with ExitPrecondition
	}
	if mf != nil {
		VerboseLog("Loaded collection manifest (name: %q)", mf.Name)
	}

	// Step 2: Merge the expected range. Explicit flags win verbatim over
	// the manifest; the manifest wins over the inferred bounds.
	if mf != nil && mf.Supply != nil {
		if minID == nil {
			minID = mf.Supply.MinID
		}
		if maxID == nil {
			maxID = mf.Supply.MaxID
		}
	}

	// Step 3: Run the validator.
	result, err := supply.Validate(supply.Options{
		ImagesDir:       flags.imagesDir,
		MetadataDir:     flags.metadataDir,
		MinID:           minID,
		MaxID:           maxID,
		CheckImageField: flags.checkImageField,
		CheckTraits:     flags.checkTraits,
	})
	if err != nil {
		return err // Validate already returns CLIError with ExitPrecondition
	}

	// Step 4: Print the full report. The report is always printed before
	// any failure exit code is produced.
	printValidateResult(result)

	// Step 5: Critical findings fail the run with exit code 2.
	if result.Critical() {
		return model.NewCLIError(model.ExitValidationFailed, "supply validation failed")
	}
	return nil
}

// printValidateResult outputs the validation report in text or JSON
// format, depending on the global --json flag.
func printValidateResult(result *supply.Result) {
	if IsJSONOutput() {
		printValidateResultJSON(result)
	} else {
		supply.WriteText(os.Stdout, result)
	}
}

// validateReportJSON is the JSON output structure for the validate
// command. Unlike the text report, the ID lists are complete (no
// preview caps).
type validateReportJSON struct {
	Passed bool `json:"passed"`
	*supply.Result
}

// printValidateResultJSON outputs the validation result as structured JSON.
func printValidateResultJSON(result *supply.Result) {
	report := validateReportJSON{
		Passed: !result.Critical(),
		Result: result,
	}

	// MarshalIndent produces human-readable JSON with 2-space indentation.
	data, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(data))
}
