// scanner.go builds the per-directory view of a collection: which token
// IDs exist, which filenames collide, and which names are duplicated.
package supply

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/starfminer/nft-asset-combining/internal/model"
)

// Recognized file extensions for the two record kinds. The filename
// contract is external and must be preserved: image files are named
// "<id>.png", metadata files "<id>.json".
const (
	ImageExt    = "png"
	MetadataExt = "json"
)

// idPattern matches collection filenames of the form "<digits>.<ext>".
// The extension is matched case-insensitively; the digits are captured
// as-is and converted via integer parse, so "01" and "1" both yield
// token ID 1.
var idPattern = regexp.MustCompile(`^(\d+)\.([A-Za-z0-9]+)$`)

// Collision records two or more distinct filenames in the same directory
// that parse to the same token ID (e.g. "01.png" and "1.png"). Only the
// last name in directory order survives in the ID mapping, so collisions
// are surfaced separately instead of being silently swallowed.
type Collision struct {
	// ID is the token ID the filenames collide on.
	ID model.TokenID `json:"id"`

	// Names lists the colliding filenames in directory order. The last
	// entry is the one whose path won the mapping slot.
	Names []string `json:"names"`
}

// ScanResult is the outcome of scanning one directory for one record kind.
type ScanResult struct {
	// Paths maps each token ID found to the file path that represents it.
	// When filenames collide on an ID, the last one in directory order
	// wins (os.ReadDir returns names sorted, so this is deterministic:
	// "1.png" sorts after "01.png" and wins).
	Paths map[model.TokenID]string

	// Collisions lists IDs claimed by more than one filename.
	Collisions []Collision
}

// IDs returns the token IDs present in the scan, sorted ascending.
func (r *ScanResult) IDs() []model.TokenID {
	ids := make([]model.TokenID, 0, len(r.Paths))
	for id := range r.Paths {
		ids = append(ids, id)
	}
	return model.SortTokenIDs(ids)
}

// CollectIDs scans dir for regular files named "<id>.<ext>" where ext is
// one of the recognized extensions (case-insensitive), and returns the
// token ID mapping.
//
// Non-matching files are silently ignored. A non-existent directory
// yields an empty result, not an error: the caller decides whether an
// empty record set is fatal.
func CollectIDs(dir string, exts ...string) (*ScanResult, error) {
	result := &ScanResult{Paths: make(map[model.TokenID]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	recognized := make(map[string]bool, len(exts))
	for _, ext := range exts {
		recognized[strings.ToLower(ext)] = true
	}

	// Track every matching filename per ID so that leading-zero
	// collisions ("01.png" vs "1.png") can be reported.
	namesByID := make(map[model.TokenID][]string)

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		m := idPattern.FindStringSubmatch(entry.Name())
		if m == nil || !recognized[strings.ToLower(m[2])] {
			continue
		}

		// The digits always parse for this pattern unless they overflow
		// int, in which case the file cannot be a real token and is
		// ignored like any other non-matching name.
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		id := model.TokenID(n)
		result.Paths[id] = filepath.Join(dir, entry.Name())
		namesByID[id] = append(namesByID[id], entry.Name())
	}

	for id, names := range namesByID {
		if len(names) > 1 {
			result.Collisions = append(result.Collisions, Collision{ID: id, Names: names})
		}
	}
	sort.Slice(result.Collisions, func(i, j int) bool {
		return result.Collisions[i].ID < result.Collisions[j].ID
	})

	return result, nil
}

// FindDuplicates returns the filenames (lower-cased for comparison) that
// occur more than once directly inside dir. On a case-sensitive
// filesystem "1.PNG" and "1.png" can coexist and count as a duplicate
// pair. Directory absence yields an empty list.
//
// The result is sorted so report output is deterministic.
func FindDuplicates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	counts := make(map[string]int)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		counts[strings.ToLower(entry.Name())]++
	}

	var dupes []string
	for name, c := range counts {
		if c > 1 {
			dupes = append(dupes, name)
		}
	}
	sort.Strings(dupes)
	return dupes, nil
}
