package runner

import (
	"fmt"
	"os"
	"path/filepath"
)

// =============================================================================
// Directory Bootstrap
// =============================================================================

// EnsureDirectories creates each listed directory under root, intermediate
// segments included. Idempotent: directories that already exist are left
// untouched. The first failure aborts, since a missing output directory
// would fail the stack at runtime anyway.
func EnsureDirectories(root string, dirs []string) error {
	for _, dir := range dirs {
		path := dir
		if !filepath.IsAbs(path) && root != "" {
			path = filepath.Join(root, dir)
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	}
	return nil
}
