// Package manifest loads the optional collection manifest file.
//
// A manifest describes the collection as a whole: its name, the expected
// token supply range, and default settings for the image tooling. It is a
// human-edited file, so two formats are accepted:
//
//   - collection.yaml — parsed with gopkg.in/yaml.v3
//   - collection.json — parsed as JSONC via github.com/tidwall/jsonc,
//     so comments and trailing commas are tolerated
//
// The manifest is entirely optional: explicit CLI flags always take
// precedence over manifest values, and a missing manifest simply means
// all settings come from flags or are inferred from the scanned files.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/starfminer/nft-asset-combining/internal/model"
)

// Manifest is the parsed collection manifest.
type Manifest struct {
	// Name is the display name of the collection.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Supply declares the expected contiguous token ID range.
	Supply *SupplyRange `json:"supply,omitempty" yaml:"supply,omitempty"`

	// Resize holds default settings for the resize command.
	Resize *ResizeDefaults `json:"resize,omitempty" yaml:"resize,omitempty"`
}

// SupplyRange is the expected [MinID, MaxID] interval for the collection.
// Pointer fields distinguish "not set" from an explicit zero.
type SupplyRange struct {
	MinID *int `json:"minId,omitempty" yaml:"minId,omitempty"`
	MaxID *int `json:"maxId,omitempty" yaml:"maxId,omitempty"`
}

// ResizeDefaults seeds the resize command's flag defaults.
type ResizeDefaults struct {
	// Size is the square output edge length in pixels.
	Size int `json:"size,omitempty" yaml:"size,omitempty"`

	// Lossless selects lossless WebP output.
	Lossless *bool `json:"lossless,omitempty" yaml:"lossless,omitempty"`
}

// Validate checks manifest field consistency. A manifest that declares a
// supply range must declare a non-inverted one.
func (m *Manifest) Validate() error {
	if m.Supply != nil && m.Supply.MinID != nil && m.Supply.MaxID != nil {
		if *m.Supply.MinID > *m.Supply.MaxID {
			return fmt.Errorf("supply: minId %d is greater than maxId %d", *m.Supply.MinID, *m.Supply.MaxID)
		}
	}
	if m.Resize != nil && m.Resize.Size < 0 {
		return fmt.Errorf("resize: size must not be negative, got %d", m.Resize.Size)
	}
	return nil
}

// Load reads and parses a manifest file. The format is chosen by file
// extension: .yaml/.yml use the YAML parser, anything else is treated as
// JSONC (comments and trailing commas stripped before encoding/json).
//
// Returns a CLIError with ExitPrecondition when the file is missing or
// malformed: a manifest that was explicitly pointed at must be usable.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitPrecondition,
				fmt.Sprintf("collection manifest not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, model.WrapCLIError(
				model.ExitPrecondition,
				fmt.Sprintf("invalid collection manifest %s", path),
				err,
			)
		}
	default:
		// JSON manifests frequently carry comments, so strip JSONC
		// syntax before handing off to encoding/json.
		if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
			return nil, model.WrapCLIError(
				model.ExitPrecondition,
				fmt.Sprintf("invalid collection manifest %s", path),
				err,
			)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, model.WrapCLIError(
			model.ExitPrecondition,
			fmt.Sprintf("invalid collection manifest %s", path),
			err,
		)
	}
	return &m, nil
}

// Find searches for a manifest file in the standard locations under dir.
//
// Search order:
//  1. <dir>/collection.yaml
//  2. <dir>/collection.yml
//  3. <dir>/collection.json
//
// Returns the path of the first candidate that exists, or "" when no
// manifest is present (which is not an error — the manifest is optional).
func Find(dir string) string {
	candidates := []string{
		filepath.Join(dir, "collection.yaml"),
		filepath.Join(dir, "collection.yml"),
		filepath.Join(dir, "collection.json"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Resolve locates and loads the manifest for a run.
//
// When explicitPath is non-empty it is loaded directly and any failure is
// an error. Otherwise the standard candidates under searchDir are tried;
// absence yields (nil, nil).
func Resolve(explicitPath, searchDir string) (*Manifest, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}
	found := Find(searchDir)
	if found == "" {
		return nil, nil
	}
	return Load(found)
}
