package resize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/bimg"
)

// Options configures a bulk WebP resize run.
type Options struct {
	// InputDir is scanned (non-recursively) for *.webp files.
	InputDir string

	// OutputDir receives the resized files under their original names.
	// Created if absent.
	OutputDir string

	// Size is the output edge length in pixels; output is always square,
	// ignoring the source aspect ratio, matching how collection art is
	// normalized for marketplaces.
	Size int

	// Lossless selects lossless WebP re-encoding. Collection source art
	// is typically flat-color with transparency, where lossless WebP is
	// both smaller and exact.
	Lossless bool
}

// FileError records a single file that failed to process.
type FileError struct {
	// Name is the source filename inside InputDir.
	Name string `json:"name"`

	// Err is the failure.
	Err error `json:"-"`

	// Detail is the failure text, for JSON output.
	Detail string `json:"detail"`
}

// Summary is the outcome of a resize or thumbnail run.
type Summary struct {
	// Converted lists the filenames written to OutputDir, in input order.
	Converted []string `json:"converted"`

	// Failed lists per-file failures. Any entry makes the run exit
	// non-zero, but never stops the remaining files.
	Failed []FileError `json:"failed,omitempty"`

	// OutputDir is the resolved output directory.
	OutputDir string `json:"outputDir"`
}

// ListWebP returns the regular filenames directly inside dir whose
// extension is .webp (case-insensitive), sorted. A non-existent
// directory is an error here, unlike the validator's scanners — there
// is nothing useful a resize run can do without its input.
func ListWebP(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".webp") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Run resizes every WebP file in opts.InputDir to opts.Size×opts.Size
// and writes the results into opts.OutputDir. logf receives one progress
// line per converted file (the CLI passes its stdout printer; tests pass
// a discard function).
func Run(opts Options, logf func(format string, args ...interface{})) (*Summary, error) {
	names, err := ListWebP(opts.InputDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	summary := &Summary{OutputDir: opts.OutputDir}
	for _, name := range names {
		outPath := filepath.Join(opts.OutputDir, name)
		if err := resizeOne(filepath.Join(opts.InputDir, name), outPath, opts); err != nil {
			summary.Failed = append(summary.Failed, FileError{Name: name, Err: err, Detail: err.Error()})
			continue
		}
		summary.Converted = append(summary.Converted, name)
		logf("resized: %s -> %s", name, outPath)
	}
	return summary, nil
}

// resizeOne processes a single file through libvips.
func resizeOne(srcPath, outPath string, opts Options) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	// Force makes bimg ignore the source aspect ratio and emit exactly
	// Size×Size. StripMetadata drops EXIF/ICC blobs that serve no
	// purpose in collection art.
	processed, err := bimg.NewImage(data).Process(bimg.Options{
		Width:         opts.Size,
		Height:        opts.Size,
		Force:         true,
		Type:          bimg.WEBP,
		Lossless:      opts.Lossless,
		StripMetadata: true,
	})
	if err != nil {
		return fmt.Errorf("resize to %dx%d: %w", opts.Size, opts.Size, err)
	}

	if err := os.WriteFile(outPath, processed, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
