// Package cli — resize.go implements the "nft-asset-combining resize"
// command.
//
// The resize command bulk-resizes WebP collection art to a fixed square
// size. Defaults come from the collection manifest when one is present;
// flags always win.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starfminer/nft-asset-combining/internal/manifest"
	"github.com/starfminer/nft-asset-combining/internal/model"
	"github.com/starfminer/nft-asset-combining/internal/resize"
)

// resizeFlags holds the flag values for the resize command.
type resizeFlags struct {
	inputDir     string // --input-dir: folder scanned for *.webp files
	outputDir    string // --output-dir: destination folder
	size         int    // --size: square output edge length in pixels
	lossy        bool   // --lossy: use lossy WebP instead of lossless
	manifestPath string // --manifest: explicit collection manifest path
}

// NewResizeCommand creates the "resize" cobra command.
func NewResizeCommand() *cobra.Command {
	flags := &resizeFlags{}

	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Bulk-resize WebP collection art to a fixed square size",
		Long: `Resize every *.webp file in the input directory to a square of the given
size and write the results (same filenames) into the output directory.

Output is lossless WebP by default, preserving transparency exactly.
Per-file failures are reported and counted but do not stop the run.

Examples:
  nft-asset-combining resize
  nft-asset-combining resize --input-dir art --output-dir resized_webp --size 512
  nft-asset-combining resize --lossy`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runResize(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.inputDir, "input-dir", ".", "Folder containing WebP files")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "resized_webp", "Destination folder")
	cmd.Flags().IntVar(&flags.size, "size", 512, "Square output size in pixels")
	cmd.Flags().BoolVar(&flags.lossy, "lossy", false, "Use lossy WebP encoding instead of lossless")
	cmd.Flags().StringVar(&flags.manifestPath, "manifest", "",
		"Collection manifest path (default: collection.yaml / collection.json in the current directory)")

	return cmd
}

// runResize is the main logic function for the resize command.
func runResize(cmd *cobra.Command, flags *resizeFlags) error {
	// Manifest defaults apply only where the corresponding flag was not
	// given explicitly.
	mf, err := manifest.Resolve(flags.manifestPath, ".")
	if err != nil {
		return err
	}
	size := flags.size
	lossless := !flags.lossy
	if mf != nil && mf.Resize != nil {
		if !cmd.Flags().Changed("size") && mf.Resize.Size > 0 {
			size = mf.Resize.Size
		}
		if !cmd.Flags().Changed("lossy") && mf.Resize.Lossless != nil {
			lossless = *mf.Resize.Lossless
		}
	}
	if size <= 0 {
		return model.NewCLIError(model.ExitPrecondition,
			fmt.Sprintf("invalid size %d: must be positive", size))
	}

	VerboseLog("Resizing %s -> %s at %dx%d (lossless=%t)",
		flags.inputDir, flags.outputDir, size, size, lossless)

	summary, err := resize.Run(resize.Options{
		InputDir:  flags.inputDir,
		OutputDir: flags.outputDir,
		Size:      size,
		Lossless:  lossless,
	}, progressPrinter())
	if err != nil {
		return model.WrapCLIError(model.ExitPrecondition, "resize run failed", err)
	}

	printSummary(summary)
	if len(summary.Failed) > 0 {
		return model.NewCLIError(model.ExitPrecondition,
			fmt.Sprintf("%d of %d files failed to resize", len(summary.Failed), len(summary.Failed)+len(summary.Converted)))
	}
	return nil
}

// progressPrinter returns the per-file progress logger: one stdout line
// per file in text mode, silent in JSON mode (the summary carries the
// same information).
func progressPrinter() func(format string, args ...interface{}) {
	if IsJSONOutput() {
		return func(string, ...interface{}) {}
	}
	return func(format string, args ...interface{}) {
		fmt.Printf(format+"\n", args...)
	}
}

// printSummary outputs a processing summary in text or JSON format.
func printSummary(summary *resize.Summary) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(data))
		return
	}

	for _, f := range summary.Failed {
		fmt.Printf("failed: %s: %v\n", f.Name, f.Err)
	}
	fmt.Printf("done: %d converted, %d failed. Output in %s\n",
		len(summary.Converted), len(summary.Failed), summary.OutputDir)
}
