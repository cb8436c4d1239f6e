package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const backupPrefix = "synopsis-"

// WriteBackup writes a snapshot of the raw content document into dir and
// prunes older snapshots beyond keep. Returns the path of the new file.
func WriteBackup(dir string, raw []byte, keep int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := backupPrefix + time.Now().UTC().Format("20060102-150405") + ".json"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if err := pruneBackups(dir, keep); err != nil {
		return path, fmt.Errorf("failed to prune old backups: %w", err)
	}
	return path, nil
}

// pruneBackups keeps the newest keep snapshot files and removes the rest.
// Snapshot names embed their timestamp, so lexical order is age order.
func pruneBackups(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}

	if len(names) <= keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
