package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/unowned-ai/daybook/pkg/logging"
)

var storeLog = logging.ForComponent(logging.CompStore)

const entryExt = ".json"

// Store persists diary entries as one JSON file per date inside a single
// directory. It is safe for the single-user, single-process access pattern
// the application assumes; there is no cross-entry locking.
type Store struct {
	dir string
}

// Open prepares dir as an entry store, creating it (and its metadata file)
// if absent, and verifying the store format version.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("entry store directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create entry store directory %q: %w", dir, err)
	}

	if err := UpgradeStore(dir, TargetFormatVersion); err != nil {
		return nil, err
	}

	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) entryPath(date Date) string {
	return filepath.Join(s.dir, date.String()+entryExt)
}

// Load returns the stored text for date. A missing entry yields empty text
// and no error; so does an entry that cannot be decoded, which is logged
// and otherwise treated as absent. Only real I/O failures are returned.
func (s *Store) Load(ctx context.Context, date Date) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.entryPath(date))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read entry for %s: %w", date, err)
	}

	var rec entryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		storeLog.Warn("entry record undecodable, treating as missing",
			"date", date.String(), "error", err.Error())
		return "", nil
	}

	return rec.Text, nil
}

// Save writes text as the entry for date, replacing any prior content. The
// write goes to a temp file in the same directory first and is renamed into
// place, so a crash mid-save never corrupts a previously valid entry.
func (s *Store) Save(ctx context.Context, date Date, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entryRecord{Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode entry for %s: %w", date, err)
	}

	tmp := filepath.Join(s.dir, "."+date.String()+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write entry for %s: %w", date, err)
	}

	if err := os.Rename(tmp, s.entryPath(date)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace entry for %s: %w", date, err)
	}

	return nil
}

// ListAll enumerates every persisted entry in unspecified order. Files that
// are not entry records, fail to read, or fail to decode are skipped with a
// diagnostic; one bad file never aborts the enumeration.
func (s *Store) ListAll(ctx context.Context) ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry store directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if de.IsDir() {
			continue
		}

		name := de.Name()
		if !strings.HasSuffix(name, entryExt) || name == metaFileName {
			continue
		}

		date, err := ParseDate(strings.TrimSuffix(name, entryExt))
		if err != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			storeLog.Warn("skipping unreadable entry file",
				"file", name, "error", err.Error())
			continue
		}

		var rec entryRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			storeLog.Warn("skipping undecodable entry file",
				"file", name, "error", err.Error())
			continue
		}

		entries = append(entries, Entry{Date: date, Text: rec.Text})
	}

	return entries, nil
}
