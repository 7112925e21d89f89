package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// TargetFormatVersion is the highest store format version this version
	// of the code supports.
	TargetFormatVersion int64 = 1

	// metaFileName holds the store metadata inside the entries directory.
	// It shares the .json extension with entry files but is never a valid
	// date, so enumeration skips it.
	metaFileName = "daybook.json"
)

// storeMeta is the on-disk shape of the store metadata file.
type storeMeta struct {
	FormatVersion int64 `json:"format_version"`
}

// GetStoreFormatVersion retrieves the format version stamped on the store at
// dir. Returns 0 if the metadata file does not exist yet.
func GetStoreFormatVersion(dir string) (int64, error) {
	data, err := os.ReadFile(filepath.Join(dir, metaFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read store metadata in %q: %w", dir, err)
	}

	var meta storeMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return 0, fmt.Errorf("failed to decode store metadata in %q: %w", dir, err)
	}

	return meta.FormatVersion, nil
}

// stampStoreVersion writes the metadata file with the given format version.
func stampStoreVersion(dir string, version int64) error {
	data, err := json.Marshal(storeMeta{FormatVersion: version})
	if err != nil {
		return fmt.Errorf("failed to encode store metadata: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, metaFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write store metadata in %q: %w", dir, err)
	}

	return nil
}

// UpgradeStore brings the entry store at dir up to targetVersion. A store
// without a metadata file is treated as new and stamped directly; a store
// stamped with a newer version than the application supports is refused.
func UpgradeStore(dir string, targetVersion int64) error {
	current, err := GetStoreFormatVersion(dir)
	if err != nil {
		return err
	}

	switch {
	case current == 0:
		return stampStoreVersion(dir, targetVersion)
	case current == targetVersion:
		return nil
	case current < targetVersion:
		// No older on-disk formats have shipped, so there is nothing to
		// migrate from yet.
		return fmt.Errorf("entry store %q has format version %d, older than target %d; automatic migration from this version is not supported", dir, current, targetVersion)
	default:
		return fmt.Errorf("entry store %q has format version %d, newer than target %d; please upgrade the application", dir, current, targetVersion)
	}
}
