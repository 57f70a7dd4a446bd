// Package cli — thumbs.go implements the "nft-asset-combining thumbs"
// command.
//
// The thumbs command generates PNG preview thumbnails for collection
// images, scaled to a target width with the aspect ratio preserved.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starfminer/nft-asset-combining/internal/model"
	"github.com/starfminer/nft-asset-combining/internal/resize"
)

// thumbsFlags holds the flag values for the thumbs command.
type thumbsFlags struct {
	imagesDir string // --images-dir: folder scanned for *.png files
	outputDir string // --output-dir: destination folder
	width     int    // --width: thumbnail width in pixels
}

// NewThumbsCommand creates the "thumbs" cobra command.
func NewThumbsCommand() *cobra.Command {
	flags := &thumbsFlags{}

	cmd := &cobra.Command{
		Use:   "thumbs",
		Short: "Generate PNG preview thumbnails for collection images",
		Long: `Generate a thumb_<name>.png preview for every *.png file in the images
directory, scaled to the given width with the aspect ratio preserved.

Per-file failures are reported and counted but do not stop the run.

Examples:
  nft-asset-combining thumbs
  nft-asset-combining thumbs --images-dir art --output-dir thumbs --width 200`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runThumbs(flags)
		},
	}

	cmd.Flags().StringVar(&flags.imagesDir, "images-dir", ".", "Folder containing PNG files")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "thumbs", "Destination folder")
	cmd.Flags().IntVar(&flags.width, "width", 200, "Thumbnail width in pixels")

	return cmd
}

// runThumbs is the main logic function for the thumbs command.
func runThumbs(flags *thumbsFlags) error {
	if flags.width <= 0 {
		return model.NewCLIError(model.ExitPrecondition,
			fmt.Sprintf("invalid width %d: must be positive", flags.width))
	}

	VerboseLog("Generating thumbnails %s -> %s at width %d",
		flags.imagesDir, flags.outputDir, flags.width)

	summary, err := resize.RunThumbs(resize.ThumbOptions{
		ImagesDir: flags.imagesDir,
		OutputDir: flags.outputDir,
		Width:     flags.width,
	}, progressPrinter())
	if err != nil {
		return model.WrapCLIError(model.ExitPrecondition, "thumbnail run failed", err)
	}

	printSummary(summary)
	if len(summary.Failed) > 0 {
		return model.NewCLIError(model.ExitPrecondition,
			fmt.Sprintf("%d of %d files failed", len(summary.Failed), len(summary.Failed)+len(summary.Converted)))
	}
	return nil
}
